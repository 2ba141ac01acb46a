package routes

import (
	"time"

	"abonizera-api/internal/adapters/http/handlers"
	"abonizera-api/internal/adapters/http/middleware"
	"abonizera-api/internal/adapters/persistence/repositories"
	"abonizera-api/internal/config"
	"abonizera-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	adminRepo := repositories.NewAdminRepository(db)
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)
	diagnosticsRepo := repositories.NewDiagnosticsRepository(db)

	// Initialize services
	sessions := services.NewSessionStore()
	smsService := services.NewSMSService(cfg.SMS)
	adminService := services.NewAdminService(adminRepo, sessions)
	userService := services.NewUserService(userRepo, sessions, smsService)
	clientService := services.NewClientService(clientRepo, historyRepo)
	historyService := services.NewHistoryService(historyRepo)
	ticketService := services.NewTicketService(ticketRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, diagnosticsRepo)
	adminHandler := handlers.NewAdminHandler(adminService, userService)
	authHandler := handlers.NewAuthHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	ticketHandler := handlers.NewTicketHandler(ticketService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Diagnostics
	api.Get("/health", healthHandler.HealthCheck)
	api.Get("/test-db", healthHandler.TestTable("Database", "users"))
	api.Get("/test-clients", healthHandler.TestTable("Abonizera", "abonizera"))
	api.Get("/test-tickets", healthHandler.TestTable("Ticket", "ticket"))
	api.Get("/test-admin", healthHandler.TestTable("Admin", "admin"))

	// Admin auth
	adminGroup := api.Group("/admin", middleware.NoCacheHeaders())
	adminGroup.Post("/signup", middleware.AuthRateLimiter(), adminHandler.Signup)
	adminGroup.Post("/login", middleware.AuthRateLimiter(), adminHandler.Login)
	adminGroup.Post("/logout", adminHandler.Logout)

	// Admin protected
	adminProtected := adminGroup.Use(middleware.AdminAuth(sessions))
	adminProtected.Get("/profile", adminHandler.GetProfile)
	adminProtected.Put("/profile", adminHandler.UpdateProfile)
	adminProtected.Get("/users", adminHandler.ListUsers)
	adminProtected.Get("/user/:id", adminHandler.GetUser)
	adminProtected.Put("/user/:id", adminHandler.UpdateUserStatus)

	// End-user auth
	api.Post("/signup", middleware.AuthRateLimiter(), middleware.NoCacheHeaders(), authHandler.Signup)
	api.Post("/login", middleware.AuthRateLimiter(), middleware.NoCacheHeaders(), authHandler.Login)
	api.Post("/forgot-password", middleware.StrictRateLimiter(), middleware.NoCacheHeaders(), authHandler.ForgotPassword)
	api.Post("/reset-password", middleware.StrictRateLimiter(), middleware.NoCacheHeaders(), authHandler.ResetPassword)

	// Clients: static segments register before the /:id and /:telephone
	// wildcards or Fiber would shadow them
	clients := api.Group("/clients")
	clients.Get("/stats", middleware.CacheControl(60*time.Second), clientHandler.Stats)
	clients.Get("/check-telephone/:telephone", clientHandler.CheckTelephone)
	clients.Get("/check/:telephone", clientHandler.CheckClient)
	clients.Get("/telephone/:telephone", clientHandler.GetByTelephone)
	clients.Get("/abanyizera/:telephone", middleware.UserAuth(sessions), clientHandler.ListCrossUser)
	clients.Post("/add-product", clientHandler.AddProduct)
	clients.Put("/update-balance", clientHandler.UpdateBalance)
	clients.Delete("/product/:id", clientHandler.DeleteProduct)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.ListAll)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:telephone", clientHandler.DeleteClient)

	api.Get("/my-clients/:userId", clientHandler.ListMine)

	// Payment history
	api.Post("/history", historyHandler.Record)
	api.Get("/history", historyHandler.ListAll)
	api.Get("/history/user/:userId", historyHandler.ListByUser)

	// Support tickets
	tickets := api.Group("/tickets")
	tickets.Get("/page/:page/limit/:limit", ticketHandler.ListPage)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.ListAll)
	tickets.Get("/:id", ticketHandler.Get)
	tickets.Put("/:id", ticketHandler.Update)
	tickets.Delete("/:id", ticketHandler.Delete)
}
