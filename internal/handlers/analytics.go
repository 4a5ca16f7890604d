package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Overview returns task and project totals for the caller
// GET /api/analytics
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	out, err := h.analyticsService.Overview(middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "analytics fetched successfully", out)
}

// Tasks returns the task breakdown and daily trend for a date range
// GET /api/analytics/tasks
func (h *AnalyticsHandler) Tasks(c *gin.Context) {
	var req services.AnalyticsRequest
	if !bindQuery(c, &req) {
		return
	}
	out, err := h.analyticsService.Tasks(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "task analytics fetched successfully", out)
}

// Projects returns per-project progress
// GET /api/analytics/projects
func (h *AnalyticsHandler) Projects(c *gin.Context) {
	out, err := h.analyticsService.Projects(middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "project analytics fetched successfully", out)
}

// UserEngagement returns per-user activity counts
// GET /api/analytics/user-engagement
func (h *AnalyticsHandler) UserEngagement(c *gin.Context) {
	var req services.AnalyticsRequest
	if !bindQuery(c, &req) {
		return
	}
	out, err := h.analyticsService.UserEngagement(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "user engagement fetched successfully", out)
}
