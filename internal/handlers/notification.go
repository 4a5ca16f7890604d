package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications, newest first
// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	var req services.NotificationListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.notificationService.List(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notifications fetched successfully", page)
}

// UnreadCount returns the number of unread notifications
// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "unread count fetched successfully", gin.H{"count": count})
}

// GetByID returns one of the caller's notifications
// GET /api/notifications/:id
func (h *NotificationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "notification")
	if !ok {
		return
	}

	n, err := h.notificationService.GetByID(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notification fetched successfully", n)
}

// MarkRead marks a notification as read
// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id", "notification")
	if !ok {
		return
	}

	n, err := h.notificationService.MarkRead(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notification marked as read", n)
}

// MarkAllRead marks all of the caller's notifications as read
// PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notificationService.MarkAllRead(middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "all notifications marked as read", gin.H{"updated": updated})
}

// Archive archives a notification
// PUT /api/notifications/:id/archive
func (h *NotificationHandler) Archive(c *gin.Context) {
	id, ok := parseID(c, "id", "notification")
	if !ok {
		return
	}

	n, err := h.notificationService.Archive(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notification archived", n)
}

// Delete deletes a notification
// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notification deleted successfully", nil)
}
