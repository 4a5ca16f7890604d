package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/pkg/logger"
)

// Worker consumes notification jobs enqueued by AsyncDispatcher.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	deliver DeliverFunc
	running bool
	mu      sync.Mutex
}

// NewWorker returns nil when Redis is disabled.
func NewWorker(cfg *config.RedisConfig, deliver DeliverFunc) *Worker {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				notificationQueue: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("type", task.Type()).Msg("[Worker] task failed")
			}),
		},
	)

	w := &Worker{
		server:  server,
		mux:     asynq.NewServeMux(),
		deliver: deliver,
	}
	w.mux.HandleFunc(TaskTypeNotification, w.handleNotification)
	return w
}

// Start begins processing tasks
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	w.running = true
	logger.Infof("[Worker] Async worker started")
	return nil
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	logger.Infof("[Worker] Shutting down...")
	w.server.Shutdown()
	w.running = false
	logger.Infof("[Worker] Shutdown complete")
}

func (w *Worker) handleNotification(ctx context.Context, t *asynq.Task) error {
	job, err := decodeNotificationJob(t.Payload())
	if err != nil {
		logger.Error().Err(err).Msg("[Worker] dropping malformed notification job")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if w.deliver == nil {
		logger.Warnf("[Worker] no deliver func set")
		return nil
	}
	return w.deliver(ctx, job)
}

func decodeNotificationJob(payload []byte) (*NotificationJob, error) {
	var job NotificationJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("unmarshal notification job: %w", err)
	}
	return &job, nil
}
