package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier accepts a fixed set of tokens.
type stubVerifier map[string]*services.Actor

func (v stubVerifier) Authenticate(token string) (*services.Actor, error) {
	if actor, ok := v[token]; ok {
		return actor, nil
	}
	return nil, response.NewUnauthorized("invalid or expired token")
}

var testVerifier = stubVerifier{
	"good-token": {UserID: 7, Username: "testuser", Role: "manager"},
}

func protectedRouter() *gin.Engine {
	router := gin.New()
	router.Use(AuthRequired(testVerifier))
	router.GET("/protected", func(c *gin.Context) {
		actor := GetActor(c)
		c.JSON(200, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
			"role":     GetRole(c),
			"elevated": actor.Elevated(),
		})
	})
	return router
}

func TestAuthRequired_NoHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	protectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["success"] != false {
		t.Errorf("expected failure envelope, got %v", body)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	router := protectedRouter()

	testCases := []string{
		"InvalidToken",
		"Basic good-token",
		"Bearer",
		"Bearer   ",
	}

	for _, authHeader := range testCases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", authHeader)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status %d, got %d", authHeader, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	protectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	protectedRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var body struct {
		UserID   uint   `json:"user_id"`
		Username string `json:"username"`
		Role     string `json:"role"`
		Elevated bool   `json:"elevated"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.UserID != 7 || body.Username != "testuser" || body.Role != "manager" || !body.Elevated {
		t.Errorf("unexpected context values: %+v", body)
	}
}

func TestRoleRequired(t *testing.T) {
	tests := []struct {
		role   string
		status int
	}{
		{"", http.StatusForbidden},
		{"member", http.StatusForbidden},
		{"manager", http.StatusOK},
		{"admin", http.StatusOK},
	}

	for _, tt := range tests {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if tt.role != "" {
				c.Set(ContextRole, tt.role)
			}
			c.Next()
		})
		router.Use(RoleRequired("admin", "manager"))
		router.GET("/admin", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin", nil)
		router.ServeHTTP(w, req)

		if w.Code != tt.status {
			t.Errorf("role %q: expected status %d, got %d", tt.role, tt.status, w.Code)
		}
	}
}

func TestGetActor(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if actor := GetActor(c); actor != nil {
		t.Errorf("expected nil actor, got %+v", actor)
	}

	c.Set(ContextActor, &services.Actor{UserID: 3})
	if actor := GetActor(c); actor == nil || actor.UserID != 3 {
		t.Errorf("unexpected actor: %+v", actor)
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := GetUserID(c); id != 0 {
		t.Errorf("expected 0 for missing user_id, got %d", id)
	}

	c.Set(ContextUserID, uint(42))
	if id := GetUserID(c); id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestGetUsername(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if name := GetUsername(c); name != "" {
		t.Errorf("expected empty string for missing username, got %q", name)
	}

	c.Set(ContextUsername, "testuser")
	if name := GetUsername(c); name != "testuser" {
		t.Errorf("expected %q, got %q", "testuser", name)
	}
}

func TestGetRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if role := GetRole(c); role != "" {
		t.Errorf("expected empty string for missing role, got %q", role)
	}

	c.Set(ContextRole, "admin")
	if role := GetRole(c); role != "admin" {
		t.Errorf("expected %q, got %q", "admin", role)
	}
}
