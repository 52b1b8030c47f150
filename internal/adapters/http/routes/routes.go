package routes

import (
	"time"

	"clinic-queue/internal/adapters/http/handlers"
	"clinic-queue/internal/adapters/http/middleware"
	"clinic-queue/internal/adapters/persistence/models"
	"clinic-queue/internal/adapters/persistence/recordstore"
	"clinic-queue/internal/adapters/persistence/repositories"
	"clinic-queue/internal/config"
	"clinic-queue/internal/core/domain"
	"clinic-queue/internal/core/services"
	"clinic-queue/internal/pkg/logger"
	"clinic-queue/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
)

// Services groups the core services built on one record store
type Services struct {
	Store       recordstore.Store
	Auth        *services.AuthService
	Users       *services.UserService
	Queue       *services.QueueService
	Appointment *services.AppointmentService
	Backup      *services.BackupService
	Notify      *services.QueueNotifyService
	Metrics     *metrics.Collector
	Log         *logger.Logger
}

// NewServices wires repositories and services onto store
func NewServices(store recordstore.Store, cfg *config.Config, collector *metrics.Collector, log *logger.Logger) *Services {
	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(store)
	sessionRepo := repositories.NewSessionRepository(store)
	queueRepo := repositories.NewQueueRepository(store, models.QueueState{
		AvgTimePerPatient: cfg.Queue.AvgTimePerPatient,
	})
	appointmentRepo := repositories.NewAppointmentRepository(store)

	// Initialize services
	notify := services.NewQueueNotifyService(log)
	return &Services{
		Store:       store,
		Auth:        services.NewAuthService(accountRepo, sessionRepo, cfg, log),
		Users:       services.NewUserService(accountRepo),
		Queue:       services.NewQueueService(queueRepo, accountRepo, collector, log).WithNotifier(notify),
		Appointment: services.NewAppointmentService(appointmentRepo, collector, log),
		Backup:      services.NewBackupService(store, cfg.Backup.Keep, collector, log),
		Notify:      notify,
		Metrics:     collector,
		Log:         log,
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *Services, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(svc.Store, cfg, svc.Log)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg, svc.Log)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Log)
	queueHandler := handlers.NewQueueHandler(svc.Queue, svc.Log)
	displayHandler := handlers.NewQueueDisplayHandler(svc.Queue, svc.Notify, svc.Log)
	appointmentHandler := handlers.NewAppointmentHandler(svc.Appointment, svc.Log)
	pageHandler := handlers.NewPageHandler(cfg.PublicDir)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Prometheus exposition
	app.Get("/metrics", adaptor.HTTPHandler(svc.Metrics.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(svc.Auth, cfg)

	setupAuthRoutes(app, authHandler, auth)
	setupQueueRoutes(app, queueHandler, auth)
	setupDisplayRoutes(app, displayHandler, auth)
	setupAppointmentRoutes(app, appointmentHandler, auth)

	// Admin routes
	app.Get("/allUsers", auth, middleware.AdminOnly(), userHandler.AllUsers)

	setupPageRoutes(app, pageHandler, middleware.PageAuth(svc.Auth, cfg))

	// Static assets (login.html, register.html, display.html, script.js).
	// Only requests no route above answered reach this point.
	app.Use(middleware.CacheControl(10 * time.Minute))
	app.Static("/", cfg.PublicDir, fiber.Static{
		Compress: true,
	})
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Get("/logout", handler.Logout)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", auth, handler.Me)
}

// setupQueueRoutes configures token queue routes
func setupQueueRoutes(router fiber.Router, handler *handlers.QueueHandler, auth fiber.Handler) {
	noCache := middleware.NoCacheHeaders()

	router.Get("/status", noCache, handler.Status)

	// Patient
	router.Post("/getToken", auth, middleware.PatientOnly(), handler.GetToken)
	router.Post("/token", auth, middleware.PatientOnly(), handler.GetToken)
	router.Get("/myTokens", noCache, auth, middleware.PatientOnly(), handler.MyTokens)
	router.Get("/history", noCache, auth, middleware.PatientOnly(), handler.MyTokens)

	// Doctor
	router.Post("/next", auth, middleware.DoctorOnly(), handler.Next)
}

// setupDisplayRoutes configures the server-sent event streams
func setupDisplayRoutes(router fiber.Router, handler *handlers.QueueDisplayHandler, auth fiber.Handler) {
	router.Get("/display/events", handler.DisplayEvents)
	router.Get("/events", auth, middleware.PatientOnly(), handler.PatientEvents)
}

// setupAppointmentRoutes configures booking and approval routes
func setupAppointmentRoutes(router fiber.Router, handler *handlers.AppointmentHandler, auth fiber.Handler) {
	router.Post("/book", auth, middleware.PatientOnly(), handler.Book)
	router.Get("/appointments", auth, middleware.DoctorOnly(), handler.List)
	router.Post("/approve/:id", auth, middleware.DoctorOnly(), handler.Approve)
}

// setupPageRoutes configures the role landing pages
func setupPageRoutes(router fiber.Router, handler *handlers.PageHandler, pageAuth fiber.Handler) {
	for _, role := range []domain.Role{domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin} {
		router.Get(role.HomePath(), pageAuth, handler.Serve(role))
	}
}
