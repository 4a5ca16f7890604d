package main

import (
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/handlers"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/internal/utils"
	"github.com/taskhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg        *config.Config
	db         *gorm.DB
	dispatcher services.Dispatcher
	worker     *services.Worker
	reminder   *services.ReminderService

	authLimiter *middleware.RateLimiter

	authService *services.AuthService

	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	projectHandler      *handlers.ProjectHandler
	taskHandler         *handlers.TaskHandler
	storyHandler        *handlers.StoryHandler
	labelHandler        *handlers.LabelHandler
	categoryHandler     *handlers.CategoryHandler
	notificationHandler *handlers.NotificationHandler
	messageHandler      *handlers.MessageHandler
	analyticsHandler    *handlers.AnalyticsHandler
	healthHandler       *handlers.HealthHandler
	metricsHandler      *handlers.MetricsHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	app := newAppServices(cfg, models.GetDB())

	// Create default admin user
	if err := app.authService.CreateAdminIfNotExists(&cfg.Auth); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	// Start async worker if Redis is enabled
	if app.worker != nil {
		if err := app.worker.Start(); err != nil {
			logger.Error().Err(err).Msg("Failed to start notification worker")
		}
	}

	if err := app.reminder.StartScheduler(); err != nil {
		logger.Error().Err(err).Msg("Failed to start reminder scheduler")
	}

	return app
}

// newAppServices wires services and handlers on an open database without
// starting any background work.
func newAppServices(cfg *config.Config, db *gorm.DB) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	notificationService := services.NewNotificationService(db)

	// Notification dispatch uses Redis if enabled, otherwise sync mode
	dispatcher := services.NewDispatcher(&cfg.Redis, notificationService.Deliver)
	var worker *services.Worker
	if dispatcher.IsAsync() {
		worker = services.NewWorker(&cfg.Redis, notificationService.Deliver)
	}

	authService := services.NewAuthService(db, &cfg.JWT)

	return &appServices{
		cfg:         cfg,
		db:          db,
		dispatcher:  dispatcher,
		worker:      worker,
		reminder:    services.NewReminderService(db, dispatcher, cfg.Reminder),
		authService: authService,
		authLimiter: middleware.NewRateLimiter(cfg.Auth.RateLimitRPS, cfg.Auth.RateLimitBurst),

		authHandler:         handlers.NewAuthHandler(authService),
		userHandler:         handlers.NewUserHandler(authService),
		projectHandler:      handlers.NewProjectHandler(services.NewProjectService(db)),
		taskHandler:         handlers.NewTaskHandler(services.NewTaskService(db, dispatcher)),
		storyHandler:        handlers.NewStoryHandler(services.NewStoryService(db)),
		labelHandler:        handlers.NewLabelHandler(services.NewLabelService(db)),
		categoryHandler:     handlers.NewCategoryHandler(services.NewCategoryService(db)),
		notificationHandler: handlers.NewNotificationHandler(notificationService),
		messageHandler:      handlers.NewMessageHandler(services.NewMessageService(db)),
		analyticsHandler:    handlers.NewAnalyticsHandler(services.NewAnalyticsService(db)),
		healthHandler:       handlers.NewHealthHandler(db, dispatcher),
		metricsHandler:      handlers.NewMetricsHandler(db, dispatcher),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminder.StopScheduler()
	s.authLimiter.Stop()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.dispatcher != nil {
		s.dispatcher.Close()
	}

	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}
