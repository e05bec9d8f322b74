package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/config"
	"github.com/Saiganesh18787/catalog-management-system/internal/holiday"
	custommiddleware "github.com/Saiganesh18787/catalog-management-system/internal/middleware"
	"github.com/Saiganesh18787/catalog-management-system/internal/service"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"
	"github.com/Saiganesh18787/catalog-management-system/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  *store.Store
}

func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, st *store.Store) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	authService, err := service.NewAuthService(
		ctx, st,
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenExpiry)*time.Minute,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	catalogService := service.NewCatalogService(ctx, st, logger)
	salesService := service.NewSalesService(ctx, st, logger)
	billService := service.NewBillService(ctx, st, logger)
	holidayClient := holiday.NewClient(cfg.Holiday.BaseURL, cfg.Holiday.Country)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger)
	productHandler := transport.NewProductHandler(catalogService, authService, logger)
	salesHandler := transport.NewSalesHandler(salesService, logger)
	billHandler := transport.NewBillHandler(billService, logger)
	systemHandler := transport.NewSystemHandler(st, holidayClient, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(authService, logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router, authMiddleware)
	salesHandler.RegisterRoutes(router, authMiddleware)
	billHandler.RegisterRoutes(router, authMiddleware)
	systemHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		store:  st,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close store", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
