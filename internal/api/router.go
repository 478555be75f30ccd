// Package api provides the HTTP API for the Kripto Haber backend.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/admin"
	"github.com/burksnli/kripto-haber-backend/internal/api/handler"
	"github.com/burksnli/kripto-haber-backend/internal/api/middleware"
	"github.com/burksnli/kripto-haber-backend/internal/device"
	"github.com/burksnli/kripto-haber-backend/internal/ingest"
	"github.com/burksnli/kripto-haber-backend/internal/news"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version       string
	Logger        zerolog.Logger
	ServiceName   string
	Metrics       *middleware.Metrics
	Store         *news.Store
	IngestService *ingest.Service
	Devices       *device.Registry
	Sessions      *admin.SessionManager
	BotConfigured bool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "kriptohaber-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version)
	newsHandler := handler.NewNewsHandler(cfg.Store)
	ingestHandler := handler.NewIngestHandler(cfg.IngestService, cfg.Logger, cfg.BotConfigured)
	deviceHandler := handler.NewDeviceHandler(cfg.Devices)
	adminHandler := handler.NewAdminHandler(cfg.Sessions)

	// Session gate for mutating endpoints
	adminAuth := middleware.AdminAuth(cfg.Sessions)

	// Rate limit middleware per endpoint category
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)         // 10 req/min
	ingestRateLimit := middleware.RateLimitByIP(middleware.IngestRateLimit)     // 60 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	r.Route("/api", func(r chi.Router) {
		// Ingestion ingress
		r.With(ingestRateLimit).Post("/telegram-webhook", ingestHandler.Webhook)
		r.With(ingestRateLimit).Get("/telegram-poll", ingestHandler.Poll)
		r.With(ingestRateLimit).Post("/telegram-test", ingestHandler.Test)

		// Feed
		r.Route("/news", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", newsHandler.ListNews)
			r.With(adminAuth).Put("/{id}", newsHandler.UpdateNews)
			r.With(adminAuth).Delete("/{id}", newsHandler.DeleteNews)
		})

		// Devices
		r.With(standardRateLimit).Post("/register-push-token", deviceHandler.RegisterToken)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authRateLimit) // 10 requests per minute per IP
		r.Post("/login", adminHandler.Login)
		r.With(adminAuth).Post("/logout", adminHandler.Logout)
	})

	// Liveness (public, unthrottled)
	r.Get("/health", opsHandler.HealthCheck)

	return r
}
