package main

import (
	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/config"
	"github.com/liushuo/teamboard/backend/internal/handlers"
	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/internal/utils"
	"github.com/liushuo/teamboard/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg                 *config.Config
	gate                *authz.Gate
	storage             services.Storage
	notificationService *services.NotificationService
	reminderService     *services.ReminderService
	taskQueue           services.TaskQueue
	worker              *services.Worker
	authHandler         *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed default data
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Start system log cleanup scheduler
	services.StartLogCleanupScheduler(models.GetDB())

	// Attachment blob store
	storage, err := services.NewStorage(&cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.InitTaskQueue(cfg)
	notificationService := services.NewNotificationService(models.GetDB(), taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.Process)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notificationService.Process)
			worker.Start()
		}
	}

	// Due-task reminder scheduler
	reminderService := services.NewReminderService(models.GetDB(), &cfg.Reminder, notificationService)
	reminderService.Start()

	return &appServices{
		cfg:                 cfg,
		gate:                authz.NewGate(models.GetDB()),
		storage:             storage,
		notificationService: notificationService,
		reminderService:     reminderService,
		taskQueue:           taskQueue,
		worker:              worker,
		authHandler:         handlers.NewAuthHandler(models.GetDB(), cfg),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.Stop()
	services.StopLogCleanupScheduler()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
