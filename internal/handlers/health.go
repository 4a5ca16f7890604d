package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// HealthHandler provides enhanced health check endpoints.
type HealthHandler struct {
	db         *gorm.DB
	dispatcher services.Dispatcher
}

func NewHealthHandler(db *gorm.DB, dispatcher services.Dispatcher) *HealthHandler {
	return &HealthHandler{db: db, dispatcher: dispatcher}
}

// CheckHealth returns the health status of all subsystems.
// GET /api/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"
	status := http.StatusOK

	// Driver errors go to the log only; the endpoint is unauthenticated.
	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		logger.Ctx(c).Error().Err(err).Msg("health check: database unreachable")
		dbStatus = "unavailable"
		overall = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	queueMode := "sync"
	if h.dispatcher != nil && h.dispatcher.IsAsync() {
		queueMode = "async (Redis)"
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": "taskhub",
		"components": gin.H{
			"database":   dbStatus,
			"queue_mode": queueMode,
		},
	})
}
