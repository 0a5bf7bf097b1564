package services

import (
	"errors"
	"os"
	"time"

	"github.com/liushuo/teamboard/backend/internal/config"
	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const reminderLockName = "task_reminder"

// ReminderService runs the due-task reminder on a cron schedule. Reminders
// go out on workdays only, using the configured business calendar, and a
// database lock keeps multiple instances from double-sending.
type ReminderService struct {
	db                  *gorm.DB
	cfg                 *config.ReminderConfig
	taskService         *TaskService
	notificationService *NotificationService
	holidayService      *HolidayService
	cronScheduler       *cron.Cron
}

func NewReminderService(db *gorm.DB, cfg *config.ReminderConfig, notificationService *NotificationService) *ReminderService {
	return &ReminderService{
		db:                  db,
		cfg:                 cfg,
		taskService:         NewTaskService(db),
		notificationService: notificationService,
		holidayService:      NewHolidayService(),
	}
}

func (s *ReminderService) Start() {
	if !s.cfg.Enabled {
		logger.Infof("[Reminder] Scheduler disabled")
		return
	}

	spec := s.cfg.Cron
	if spec == "" {
		spec = "0 9 * * *"
	}

	s.cronScheduler = cron.New()
	if _, err := s.cronScheduler.AddFunc(spec, s.Run); err != nil {
		logger.Errorf("[Reminder] Invalid cron spec %q: %v", spec, err)
		return
	}

	s.cronScheduler.Start()
	logger.Infof("[Reminder] Scheduler started (cron: %s, calendar: %s)", spec, s.cfg.Calendar)
}

func (s *ReminderService) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// Run executes one reminder sweep. Exported so a sweep can be triggered
// outside the schedule.
func (s *ReminderService) Run() {
	now := time.Now()

	if !s.holidayService.IsWorkday(now, s.cfg.Calendar) {
		logger.Infof("[Reminder] Skipping sweep, %s is not a workday", now.Format("2006-01-02"))
		return
	}

	if !s.acquireLock(now) {
		logger.Infof("[Reminder] Sweep already claimed by another instance")
		return
	}

	tasks, err := s.taskService.DueSoon(24 * time.Hour)
	if err != nil {
		logger.Errorf("[Reminder] Failed to query due tasks: %v", err)
		return
	}

	for i := range tasks {
		s.notificationService.NotifyTaskDue(&tasks[i])
	}

	logger.Infof("[Reminder] Sweep complete, %d reminders queued", len(tasks))
}

// acquireLock claims today's sweep through a unique insert. A second
// instance inserting the same (name, key) pair hits the unique index and
// backs off.
func (s *ReminderService) acquireLock(now time.Time) bool {
	host, _ := os.Hostname()

	lock := models.SchedulerLock{
		LockName:  reminderLockName,
		LockKey:   now.Format("2006-01-02"),
		LockedBy:  host,
		LockedAt:  now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	err := s.db.Create(&lock).Error
	if err == nil {
		s.cleanupExpiredLocks(now)
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false
	}

	// Drivers without ErrDuplicatedKey translation surface the raw
	// constraint error; treat any insert failure as lost.
	logger.Warnf("[Reminder] Lock insert failed: %v", err)
	return false
}

func (s *ReminderService) cleanupExpiredLocks(now time.Time) {
	s.db.Where("expires_at < ?", now).Delete(&models.SchedulerLock{})
}
