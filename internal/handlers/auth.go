package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a member account and logs it in
// POST /api/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "user registered successfully", result)
}

// Login handles user login
// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "login successful", result)
}

// Logout handles user logout (client-side token removal)
// POST /api/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, "logged out successfully", nil)
}

// GetProfile returns the current logged-in user
// GET /api/users/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "profile fetched successfully", user)
}

// UpdateProfile updates the caller's own profile
// PUT /api/users/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(middleware.GetActor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "profile updated successfully", user)
}

// ChangePassword changes the caller's password
// PUT /api/users/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(middleware.GetActor(c), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "password changed successfully", nil)
}
