package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"abonizera-api/internal/adapters/http/middleware"
	"abonizera-api/internal/adapters/http/routes"
	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/config"
	"abonizera-api/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "abonizera-api/docs" // Swagger docs
)

// @title Abonizera API
// @version 1.0
// @description Multi-tenant debt tracking backend: clients, balances, payment history and support tickets.

// @contact.name API Support

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey SessionAuth
// @in header
// @name X-Session-ID
// @description Opaque session id returned by the login endpoints.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Start cron service (nightly reset token purge)
	cronService := services.NewCronService(db)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Abonizera API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
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
