package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/amqp"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/config"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/handler"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/middleware"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/postgres"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/storage"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/service"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Ledger API
// @version 1.0
// @description Personal finance ledger: income and outcome transactions, categories, balance and CSV import.
// @BasePath /api/v1
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(pool, postgres.MigrateUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	uploads, err := storage.NewUploadStore(context.Background(), *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload store")
	}
	log.Info().Str("driver", cfg.Upload.Driver).Msg("Upload store ready")

	// Initialize repositories
	categoryRepo := postgres.NewCategoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	transactor := postgres.NewTransactor(pool)

	// Event fan-out: WebSocket clients always, RabbitMQ when configured
	hub := websocket.NewHub()
	publishers := websocket.MultiPublisher{hub}
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to message broker")
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("Publishing ledger events to message broker")
	}

	// Initialize services
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, transactor)
	transactionService.SetEventPublisher(publishers)
	importService := service.NewImportService(uploads, categoryRepo, transactionRepo, transactor)
	importService.SetEventPublisher(publishers)
	categoryService := service.NewCategoryService(categoryRepo)
	balanceService := service.NewBalanceService(transactionRepo)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(pool)
	transactionHandler := handler.NewTransactionHandler(transactionService, importService, uploads, cfg.Upload.MaxBytes)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	balanceHandler := handler.NewBalanceHandler(balanceService)
	webSocketHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Multipart bodies above the import limit are refused before parsing
	e.Use(echomiddleware.BodyLimit(bodyLimit(cfg.Upload.MaxBytes)))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Register API routes
	handler.RegisterRoutes(e, rateLimiter, healthHandler, transactionHandler, categoryHandler, balanceHandler, webSocketHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
