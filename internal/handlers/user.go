package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

// UserHandler serves the admin/manager user management routes.
type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// List returns paginated users
// GET /api/users/all
func (h *UserHandler) List(c *gin.Context) {
	var req services.UserListRequest
	if !bindQuery(c, &req) {
		return
	}

	page, err := h.authService.ListUsers(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "users fetched successfully", page)
}

// AssignRole changes a user's global role
// PUT /api/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	var req AssignRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.AssignRole(middleware.GetActor(c), id, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "role updated successfully", user)
}

// Delete deactivates and removes a user
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.authService.DeleteUser(middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "user deleted successfully", nil)
}
