package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

const (
	ContextActor    = "actor"
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// TokenVerifier resolves a bearer token to the calling user.
type TokenVerifier interface {
	Authenticate(token string) (*services.Actor, error)
}

// AuthRequired is a middleware that checks for a valid JWT token and loads
// the caller's current role.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		actor, err := verifier.Authenticate(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextActor, actor)
		c.Set(ContextUserID, actor.UserID)
		c.Set(ContextUsername, actor.Username)
		c.Set(ContextRole, actor.Role)

		c.Next()
	}
}

// RoleRequired allows only callers holding one of the given global roles.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient role")
	}
}

// GetActor returns the authenticated caller, or nil outside AuthRequired.
func GetActor(c *gin.Context) *services.Actor {
	if v, exists := c.Get(ContextActor); exists {
		if actor, ok := v.(*services.Actor); ok {
			return actor
		}
	}
	return nil
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUsername gets the current username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	return ""
}

// GetRole gets the current user role from context
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}
