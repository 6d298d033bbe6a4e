package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/fardinbaf/scamguard-backend/internal/config"
	"github.com/fardinbaf/scamguard-backend/internal/database"
	"github.com/fardinbaf/scamguard-backend/internal/handlers"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/logging"
	"github.com/fardinbaf/scamguard-backend/internal/middleware"
	"github.com/fardinbaf/scamguard-backend/internal/routes"
	"github.com/fardinbaf/scamguard-backend/internal/services"
	"github.com/fardinbaf/scamguard-backend/internal/storage"
	"github.com/fardinbaf/scamguard-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment")
	}

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Blob storage (evidence files, ad banner) served as static files
	blobs, err := storage.NewDisk(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		slog.Error("blob storage init failed", "error", err)
		os.Exit(1)
	}

	// Stores and services
	db := store.NewGorm(database.DB)
	mailer := services.NewMailer(cfg.SenderEmail)
	reconciler := identity.NewReconciler(db, cfg.AdminIdentifier)
	authService := services.NewAuthService(db, db, mailer, cfg)
	reportService := services.NewReportService(db, db, blobs)
	userService := services.NewUserService(db)
	adService := services.NewAdvertisementService(db, blobs)

	// Seed the advertisement singleton row
	if err := adService.Seed(context.Background()); err != nil {
		slog.Error("advertisement seed failed", "error", err)
		os.Exit(1)
	}

	// Background maintenance
	maintenanceDone := make(chan struct{})
	logging.StartCleanup(database.DB, maintenanceDone)
	services.StartOrphanSweep(db, db, blobs, maintenanceDone)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	reportHandler := handlers.NewReportHandler(reportService)
	userHandler := handlers.NewUserHandler(userService)
	adHandler := handlers.NewAdvertisementHandler(adService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})
	app.Use(middleware.ResolveIdentity(cfg, reconciler))

	// Evidence files and ad images
	app.Static("/uploads", blobs.Root())

	// Routes
	routes.Setup(app, cfg, authHandler, healthHandler, reportHandler, userHandler, adHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(maintenanceDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
