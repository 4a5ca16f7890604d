package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMaskSensitiveFields(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"username":"amy","password":"hunter2"}`, `{"username":"amy","password":"***"}`},
		{`{"oldPassword": "a", "newPassword": "b"}`, `{"oldPassword": "***", "newPassword": "***"}`},
		{`{"title":"no secrets here"}`, `{"title":"no secrets here"}`},
		{`{"token":"abc","nested":{"token":"def"}}`, `{"token":"***","nested":{"token":"***"}}`},
	}

	for _, tt := range tests {
		if got := maskSensitiveFields(tt.in); got != tt.want {
			t.Errorf("maskSensitiveFields(%s) = %s, expected %s", tt.in, got, tt.want)
		}
	}
}

func TestParseRouteInfo(t *testing.T) {
	tests := []struct {
		path, method   string
		module, action string
	}{
		{"/api/tasks", "POST", "Tasks", "Create"},
		{"/api/tasks/:id", "PUT", "Tasks", "Update"},
		{"/api/tasks/:id/complete", "PATCH", "Tasks", "Complete"},
		{"/api/notifications/read-all", "PATCH", "Notifications", "Read-All"},
		{"/api/projects/:id/members/:userId", "DELETE", "Projects", "Delete"},
		{"", "POST", "Unknown", "Create"},
	}

	for _, tt := range tests {
		module, action := parseRouteInfo(tt.path, tt.method)
		if module != tt.module || action != tt.action {
			t.Errorf("parseRouteInfo(%q, %s) = %s/%s, expected %s/%s",
				tt.path, tt.method, module, action, tt.module, tt.action)
		}
	}
}

func TestAuditLog_PreservesRequestBody(t *testing.T) {
	router := gin.New()
	router.Use(AuditLog())
	var seen string
	router.POST("/api/tasks", func(c *gin.Context) {
		b, _ := c.GetRawData()
		seen = string(b)
		c.Status(http.StatusCreated)
	})

	body := `{"title":"write docs"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/tasks", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if seen != body {
		t.Errorf("handler saw %q, expected %q", seen, body)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestFormatAuditMessage(t *testing.T) {
	if got := formatAuditMessage("amy", "DELETE", "/api/tasks/3", 200); got != "[Audit] amy DELETE /api/tasks/3 → OK" {
		t.Errorf("got %q", got)
	}
	if got := formatAuditMessage("", "POST", "/api/auth/login", 401); !strings.Contains(got, "anonymous") || !strings.HasSuffix(got, "Failed") {
		t.Errorf("got %q", got)
	}
}
