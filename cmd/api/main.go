// Package main provides the entrypoint for the Kripto Haber API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/admin"
	"github.com/burksnli/kripto-haber-backend/internal/api"
	"github.com/burksnli/kripto-haber-backend/internal/api/middleware"
	"github.com/burksnli/kripto-haber-backend/internal/database"
	"github.com/burksnli/kripto-haber-backend/internal/device"
	"github.com/burksnli/kripto-haber-backend/internal/ingest"
	"github.com/burksnli/kripto-haber-backend/internal/news"
	"github.com/burksnli/kripto-haber-backend/internal/push"
	"github.com/burksnli/kripto-haber-backend/internal/telegram"
	"github.com/burksnli/kripto-haber-backend/internal/telemetry"
	"github.com/burksnli/kripto-haber-backend/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "kriptohaber-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Kripto Haber API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Run migrations and connect to the database
	dbConfig := database.ConfigFromEnv()
	if err := database.Migrate(ctx, dbConfig); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize the feed store and hydrate the mirror before serving reads
	store := news.NewStore(news.StoreConfig{
		Repository: news.NewPostgresRepository(pool),
		Logger:     log,
	})
	if err := store.Hydrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to hydrate feed store")
	}
	log.Info().Int("items", store.Count()).Msg("feed store hydrated")

	// Initialize device registry and push fan-out
	devices := device.NewRegistry()
	expoClient := push.NewClient(push.ClientConfig{
		GatewayURL: os.Getenv("EXPO_PUSH_URL"),
		Logger:     log,
	})
	notifier := push.NewNotifier(push.NotifierConfig{
		Registry: devices,
		Gateway:  expoClient,
		Logger:   log,
	})

	// Initialize the Telegram client
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set - polling will reject requests")
	}
	telegramClient := telegram.NewClient(telegram.ClientConfig{
		BotToken: botToken,
		BaseURL:  os.Getenv("TELEGRAM_API_URL"),
		Logger:   log,
	})

	// Initialize the ingestion pipeline
	ingestService := ingest.NewService(ingest.ServiceConfig{
		Store:    store,
		Source:   telegramClient,
		Notifier: notifier,
		Logger:   log,
	})
	log.Info().Msg("ingestion service initialized")

	// Initialize admin sessions
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set - admin login is disabled")
	}
	sessionTTL := admin.DefaultSessionTTL
	if raw := os.Getenv("ADMIN_SESSION_TTL"); raw != "" {
		parsed, parseErr := time.ParseDuration(raw)
		if parseErr != nil {
			log.Fatal().Err(parseErr).Str("value", raw).Msg("invalid ADMIN_SESSION_TTL")
		}
		sessionTTL = parsed
	}
	sessions := admin.NewSessionManager(admin.SessionManagerConfig{
		Password: adminPassword,
		TTL:      sessionTTL,
		Logger:   log,
	})

	// Optional background poller, for deployments without a reachable webhook
	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		interval, parseErr := time.ParseDuration(raw)
		if parseErr != nil {
			log.Fatal().Err(parseErr).Str("value", raw).Msg("invalid POLL_INTERVAL")
		}
		if interval > 0 {
			if !telegramClient.Configured() {
				log.Fatal().Msg("POLL_INTERVAL set but TELEGRAM_BOT_TOKEN is missing")
			}
			poller := worker.NewPoller(worker.PollerConfig{
				Service:  ingestService,
				Interval: interval,
				Logger:   log,
			})
			go poller.Run(pollCtx)
		}
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:       Version,
		Logger:        log,
		ServiceName:   serviceName,
		Metrics:       metrics,
		Store:         store,
		IngestService: ingestService,
		Devices:       devices,
		Sessions:      sessions,
		BotConfigured: telegramClient.Configured(),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopPoller()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
