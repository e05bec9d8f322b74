package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

var ErrInvalidCredentials = errors.New("invalid username or password")

// Claims carries the authenticated user through the JWT.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates the single configured admin user and maintains
// the append-only access log (newest first). Failed logins return an error
// and record nothing.
type AuthService struct {
	store  *store.Store
	logger *zap.Logger

	username     string
	passwordHash []byte
	jwtSecret    string
	tokenExpiry  time.Duration

	mu   sync.Mutex
	logs []domain.AccessLogEntry
}

// NewAuthService hashes the configured password and loads the access log
// snapshot.
func NewAuthService(ctx context.Context, st *store.Store, username, password, jwtSecret string, tokenExpiry time.Duration, logger *zap.Logger) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AuthService{
		store:        st,
		logger:       logger,
		username:     username,
		passwordHash: hash,
		jwtSecret:    jwtSecret,
		tokenExpiry:  tokenExpiry,
		logs:         st.AccessLogs(ctx),
	}, nil
}

// Login verifies the credentials, records a LOGIN entry and returns a signed
// access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	s.Record(ctx, domain.AccessTypeLogin, username, "Successful login")
	return token, nil
}

// Logout records a LOGOUT entry. Token invalidation is the client's job; the
// access log is the durable trace.
func (s *AuthService) Logout(ctx context.Context, username string) {
	s.Record(ctx, domain.AccessTypeLogout, username, "User logged out")
}

// Record prepends an entry to the access log and persists the new snapshot.
func (s *AuthService) Record(ctx context.Context, entryType, user, details string) {
	entry := domain.AccessLogEntry{
		Type:      entryType,
		User:      user,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Details:   details,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append([]domain.AccessLogEntry{entry}, s.logs...)
	if err := s.store.SaveAccessLogs(ctx, s.logs); err != nil {
		s.logger.Error("Failed to persist access log", zap.Error(err))
	}
}

// Logs returns a copy of the access log, newest first.
func (s *AuthService) Logs() []domain.AccessLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.AccessLogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

// ValidateToken parses and verifies an access token, returning the
// authenticated username and role. It satisfies middleware.TokenValidator.
func (s *AuthService) ValidateToken(tokenString string) (string, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", jwt.ErrTokenUnverifiable
	}
	return claims.Username, claims.Role, nil
}

func (s *AuthService) generateToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}
