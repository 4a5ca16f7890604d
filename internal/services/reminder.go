package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/logger"
	"gorm.io/gorm"
)

const reminderWindow = 24 * time.Hour

// ReminderService notifies assignees of open tasks that fall due within the
// next day. It runs once a day on a cron schedule.
type ReminderService struct {
	db             *gorm.DB
	dispatcher     Dispatcher
	cfg            config.ReminderConfig
	cronScheduler  *cron.Cron
	currentEntryID cron.EntryID
}

func NewReminderService(db *gorm.DB, dispatcher Dispatcher, cfg config.ReminderConfig) *ReminderService {
	return &ReminderService{db: db, dispatcher: dispatcher, cfg: cfg}
}

// StartScheduler registers the daily job. It is a no-op when reminders are disabled.
func (s *ReminderService) StartScheduler() error {
	if !s.cfg.Enabled {
		logger.Infof("[Reminder] Disabled")
		return nil
	}

	expr, err := cronExpr(s.cfg.Time)
	if err != nil {
		return err
	}

	s.cronScheduler = cron.New()
	entryID, err := s.cronScheduler.AddFunc(expr, func() {
		if _, err := s.RunOnce(time.Now()); err != nil {
			logger.Error().Err(err).Msg("[Reminder] run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	s.currentEntryID = entryID

	s.cronScheduler.Start()
	logger.Infof("[Reminder] Scheduled at %s (cron: %s)", s.cfg.Time, expr)
	return nil
}

func (s *ReminderService) StopScheduler() {
	if s.cronScheduler != nil {
		<-s.cronScheduler.Stop().Done()
	}
}

// RunOnce dispatches reminders for open tasks due in (now, now+24h] that have
// not had a reminder in the last 24h. It returns the number of tasks reminded.
func (s *ReminderService) RunOnce(now time.Time) (int, error) {
	now = now.UTC()
	var tasks []models.Task
	err := preloadAssignees(s.db).
		Where("due_date > ? AND due_date <= ? AND status <> ?", now, now.Add(reminderWindow), models.StatusDone).
		Where("id NOT IN (?)", s.db.Model(&models.Notification{}).
			Select("task_id").
			Where("type = ? AND task_id IS NOT NULL AND created_at > ?", models.NotificationReminder, now.Add(-reminderWindow))).
		Find(&tasks).Error
	if err != nil {
		return 0, err
	}

	reminded := 0
	for i := range tasks {
		task := &tasks[i]
		recipients := task.AssigneeIDs()
		if len(recipients) == 0 {
			continue
		}
		dispatchQuietly(s.dispatcher, &NotificationJob{
			RecipientIDs: recipients,
			Type:         models.NotificationReminder,
			Message:      fmt.Sprintf("%q is due %s", task.Title, task.DueDate.UTC().Format("2006-01-02 15:04 UTC")),
			TaskID:       &task.ID,
			ProjectID:    task.ProjectID,
		})
		reminded++
	}

	if reminded > 0 {
		logger.Info().Int("tasks", reminded).Msg("[Reminder] reminders dispatched")
	}
	return reminded, nil
}

// cronExpr turns "HH:MM" into a daily cron expression.
func cronExpr(at string) (string, error) {
	parts := strings.Split(strings.TrimSpace(at), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid reminder time %q, expected HH:MM", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid reminder hour in %q", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid reminder minute in %q", at)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
