package handlers

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/logger"
	"gorm.io/gorm"
)

var startTime = time.Now()

type MetricsHandler struct {
	db         *gorm.DB
	dispatcher services.Dispatcher
}

func NewMetricsHandler(db *gorm.DB, dispatcher services.Dispatcher) *MetricsHandler {
	return &MetricsHandler{db: db, dispatcher: dispatcher}
}

// Metrics returns Prometheus-compatible text format metrics.
// GET /metrics
func (h *MetricsHandler) Metrics(c *gin.Context) {
	var b strings.Builder

	// -- Runtime metrics --
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeGauge(&b, "taskhub_uptime_seconds", "Time since server start in seconds", time.Since(startTime).Seconds())
	writeGauge(&b, "taskhub_goroutines", "Number of active goroutines", float64(runtime.NumGoroutine()))
	writeGauge(&b, "taskhub_memory_alloc_bytes", "Current heap allocation in bytes", float64(m.Alloc))
	writeGauge(&b, "taskhub_gc_runs_total", "Total number of GC runs", float64(m.NumGC))

	// -- Database metrics --
	if sqlDB, err := h.db.DB(); err == nil {
		stats := sqlDB.Stats()
		writeGauge(&b, "taskhub_db_open_connections", "Number of open DB connections", float64(stats.OpenConnections))
		writeGauge(&b, "taskhub_db_in_use_connections", "Number of in-use DB connections", float64(stats.InUse))
	}

	// -- Queue metrics --
	queueAsync := 0.0
	if h.dispatcher != nil && h.dispatcher.IsAsync() {
		queueAsync = 1.0
	}
	writeGauge(&b, "taskhub_queue_async_enabled", "Whether the async notification queue (Redis) is enabled (1=yes, 0=no)", queueAsync)

	// -- Domain metrics --
	// A failed query omits its series rather than reporting a false zero.
	failed := 0
	queryFailed := func(metric string, err error) bool {
		if err == nil {
			return false
		}
		logger.Ctx(c).Error().Err(err).Str("metric", metric).Msg("metrics query failed")
		failed++
		return true
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err := h.db.Model(&models.Task{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if !queryFailed("taskhub_tasks", err) {
		counts := make(map[string]int64, len(rows))
		for _, r := range rows {
			counts[r.Status] = r.Count
		}
		fmt.Fprintf(&b, "# HELP taskhub_tasks Number of tasks by status\n# TYPE taskhub_tasks gauge\n")
		for _, status := range models.TaskStatuses {
			fmt.Fprintf(&b, "taskhub_tasks{status=%q} %d\n", status, counts[status])
		}
		b.WriteString("\n")
	}

	counters := []struct {
		name, help string
		query      *gorm.DB
	}{
		{"taskhub_projects_total", "Total number of projects", h.db.Model(&models.Project{})},
		{"taskhub_users_active", "Number of active users", h.db.Model(&models.User{}).Where("is_active = ?", true)},
		{"taskhub_notifications_unread", "Unread notifications across all users", h.db.Model(&models.Notification{}).Where("is_read = ?", false)},
	}
	for _, m := range counters {
		var n int64
		if queryFailed(m.name, m.query.Count(&n).Error) {
			continue
		}
		writeGauge(&b, m.name, m.help, float64(n))
	}
	writeGauge(&b, "taskhub_metrics_query_errors", "Domain metric queries that failed during this scrape", float64(failed))

	c.Data(200, "text/plain; version=0.0.4; charset=utf-8", []byte(b.String()))
}

func writeGauge(b *strings.Builder, name, help string, value float64) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s gauge\n", name)
	fmt.Fprintf(b, "%s %g\n\n", name, value)
}
