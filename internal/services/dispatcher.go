package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/pkg/logger"
)

const (
	TaskTypeNotification = "notification:deliver"
	notificationQueue    = "default"
)

// NotificationJob fans a single message out to a set of recipients.
type NotificationJob struct {
	RecipientIDs []uint `json:"recipientIds"`
	Type         string `json:"type"`
	Message      string `json:"message"`
	TaskID       *uint  `json:"taskId,omitempty"`
	ProjectID    *uint  `json:"projectId,omitempty"`
}

// DeliverFunc persists a notification job.
type DeliverFunc func(context.Context, *NotificationJob) error

// Dispatcher hands notification jobs to whatever delivers them.
type Dispatcher interface {
	// Dispatch submits a job. Jobs without recipients are dropped.
	Dispatch(job *NotificationJob) error
	// IsAsync returns true if jobs are delivered out of band
	IsAsync() bool
	// Close releases the dispatcher's resources
	Close() error
}

// NewDispatcher returns a Redis-backed dispatcher when Redis is enabled and
// reachable, and an in-process one otherwise.
func NewDispatcher(cfg *config.RedisConfig, deliver DeliverFunc) Dispatcher {
	if cfg == nil || !cfg.Enabled {
		logger.Infof("[Dispatcher] Sync dispatcher initialized (Redis disabled)")
		return NewSyncDispatcher(deliver)
	}

	d, err := NewAsyncDispatcher(cfg)
	if err != nil {
		logger.Warnf("[Dispatcher] Redis unavailable, falling back to sync mode: %v", err)
		return NewSyncDispatcher(deliver)
	}
	logger.Infof("[Dispatcher] Async dispatcher initialized with Redis at %s", cfg.Addr)
	return d
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// AsyncDispatcher enqueues jobs on asynq for the Worker to deliver.
type AsyncDispatcher struct {
	client *asynq.Client
}

func NewAsyncDispatcher(cfg *config.RedisConfig) (*AsyncDispatcher, error) {
	opt := redisOpt(cfg)
	client := asynq.NewClient(opt)

	// Probe the connection before committing to async mode.
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncDispatcher{client: client}, nil
}

func (d *AsyncDispatcher) Dispatch(job *NotificationJob) error {
	if job == nil || len(job.RecipientIDs) == 0 {
		return nil
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification job: %w", err)
	}

	info, err := d.client.Enqueue(asynq.NewTask(TaskTypeNotification, payload),
		asynq.Queue(notificationQueue),
		asynq.TaskID(uuid.NewString()),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return fmt.Errorf("enqueue notification job: %w", err)
	}

	logger.Debug().Str("task_id", info.ID).Str("type", job.Type).
		Int("recipients", len(job.RecipientIDs)).Msg("notification job enqueued")
	return nil
}

func (d *AsyncDispatcher) IsAsync() bool {
	return true
}

func (d *AsyncDispatcher) Close() error {
	return d.client.Close()
}

// SyncDispatcher delivers jobs in the calling goroutine.
type SyncDispatcher struct {
	deliver DeliverFunc
}

func NewSyncDispatcher(deliver DeliverFunc) *SyncDispatcher {
	return &SyncDispatcher{deliver: deliver}
}

func (d *SyncDispatcher) Dispatch(job *NotificationJob) error {
	if job == nil || len(job.RecipientIDs) == 0 {
		return nil
	}
	if d.deliver == nil {
		logger.Warnf("[SyncDispatcher] no deliver func set, job dropped")
		return nil
	}
	return d.deliver(context.Background(), job)
}

func (d *SyncDispatcher) IsAsync() bool {
	return false
}

func (d *SyncDispatcher) Close() error {
	return nil
}

// dispatchQuietly logs dispatch failures instead of failing the caller's
// request; the triggering write has already been committed.
func dispatchQuietly(d Dispatcher, job *NotificationJob) {
	if d == nil {
		return
	}
	if err := d.Dispatch(job); err != nil {
		logger.Error().Err(err).Str("type", job.Type).Msg("failed to dispatch notification")
	}
}
