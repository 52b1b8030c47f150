package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinic-queue/internal/adapters/http/middleware"
	"clinic-queue/internal/adapters/http/routes"
	"clinic-queue/internal/config"
	"clinic-queue/internal/core/services"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"

	_ "clinic-queue/docs" // Swagger docs
)

// @title Clinic Queue API
// @version 1.0
// @description Token queue and appointment booking for a small clinic.

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session
// @description Session cookie set by POST /login. A "Bearer <token>" Authorization header is accepted too.

func main() {
	if err := run(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// run wires the application and blocks until the server stops. Deferred
// cleanup runs on every return path.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLog := logger.New(cfg.LogLevel, cfg.IsDev())
	ctx := context.Background()

	// Open record store
	store, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer store.Close()

	// Seed default accounts and empty collections on first start
	if err := config.NewSeeder(store, cfg).Run(ctx); err != nil {
		return fmt.Errorf("failed to seed record store: %w", err)
	}

	collector := metrics.New()
	svc := routes.NewServices(store, cfg, collector, appLog)

	// Maintenance jobs
	cronService := services.NewCronService(appLog)
	if cfg.Backup.Enabled {
		if err := cronService.AddJob(cfg.Backup.Schedule, "backup", svc.Backup.Run); err != nil {
			return fmt.Errorf("invalid BACKUP_SCHEDULE %q: %w", cfg.Backup.Schedule, err)
		}
	}
	if err := cronService.AddJob("@hourly", "session-prune", func(ctx context.Context) error {
		_, err := svc.Auth.PruneSessions(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("failed to schedule session prune: %w", err)
	}
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Clinic Queue API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg, collector)

	// Setup routes
	routes.Setup(app, svc, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s, STORE: %s]", cfg.Port, cfg.AppMode, store.Driver())
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
