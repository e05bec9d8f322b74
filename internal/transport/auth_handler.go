package transport

import (
	"errors"
	"net/http"

	"github.com/Saiganesh18787/catalog-management-system/internal/middleware"
	"github.com/Saiganesh18787/catalog-management-system/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// AuthHandler handles HTTP requests for authentication and the access log
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// RegisterRoutes registers auth and access-log routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/api/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/auth/logout", h.Logout)
		r.Get("/api/logs", h.AccessLogs)
	})
}

// Login authenticates the admin user and returns an access token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Debug("Login rejected", zap.String("username", req.Username))
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	h.logger.Info("User logged in", zap.String("username", req.Username))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{Token: token, User: req.Username})
}

// Logout records the logout in the access log
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if username, ok := middleware.GetUsername(r.Context()); ok {
		h.auth.Logout(r.Context(), username)
	}
	w.WriteHeader(http.StatusNoContent)
}

// AccessLogs returns the audit trail, newest first
func (h *AuthHandler) AccessLogs(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.auth.Logs())
}
