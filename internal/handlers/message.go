package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send posts a direct or project message
// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req services.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messageService.Send(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "message sent successfully", msg)
}

// List returns messages visible to the caller
// GET /api/messages
func (h *MessageHandler) List(c *gin.Context) {
	var req services.MessageListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.messageService.List(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "messages fetched successfully", page)
}

// UnreadCount returns the number of unread direct messages
// GET /api/messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messageService.UnreadCount(middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "unread count fetched successfully", gin.H{"count": count})
}

// ChatWithUser returns the direct conversation with a user
// GET /api/messages/chat/user/:userId
func (h *MessageHandler) ChatWithUser(c *gin.Context) {
	userID, ok := parseID(c, "userId", "user")
	if !ok {
		return
	}

	var req services.PageRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.messageService.ChatWithUser(middleware.GetActor(c), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "conversation fetched successfully", page)
}

// ChatInProject returns a project's group chat
// GET /api/messages/chat/project/:projectId
func (h *MessageHandler) ChatInProject(c *gin.Context) {
	projectID, ok := parseID(c, "projectId", "project")
	if !ok {
		return
	}

	var req services.PageRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.messageService.ChatInProject(middleware.GetActor(c), projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "project conversation fetched successfully", page)
}

// GetByID returns a message the caller can see
// GET /api/messages/:id
func (h *MessageHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "message")
	if !ok {
		return
	}

	msg, err := h.messageService.GetByID(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "message fetched successfully", msg)
}

// Edit changes the content of the caller's message
// PUT /api/messages/:id
func (h *MessageHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id", "message")
	if !ok {
		return
	}

	var req services.EditMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messageService.Edit(middleware.GetActor(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "message updated successfully", msg)
}

// MarkRead marks a message as read
// PUT /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id", "message")
	if !ok {
		return
	}

	msg, err := h.messageService.MarkRead(middleware.GetActor(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "message marked as read", msg)
}

// Delete deletes one of the caller's messages
// DELETE /api/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "message")
	if !ok {
		return
	}

	if err := h.messageService.Delete(middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "message deleted successfully", nil)
}
