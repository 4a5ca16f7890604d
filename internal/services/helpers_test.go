package services

import (
	"context"
	"sync"
	"testing"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// createUser inserts a user directly, skipping bcrypt.
func createUser(t *testing.T, db *gorm.DB, username, role string) *Actor {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &Actor{UserID: user.ID, Username: username, Role: role}
}

// recordingDispatcher captures jobs and delivers them through an optional
// NotificationService.
type recordingDispatcher struct {
	mu      sync.Mutex
	jobs    []NotificationJob
	deliver DeliverFunc
}

func (d *recordingDispatcher) Dispatch(job *NotificationJob) error {
	if len(job.RecipientIDs) == 0 {
		return nil
	}
	d.mu.Lock()
	d.jobs = append(d.jobs, *job)
	d.mu.Unlock()
	if d.deliver != nil {
		return d.deliver(context.Background(), job)
	}
	return nil
}

func (d *recordingDispatcher) IsAsync() bool { return false }
func (d *recordingDispatcher) Close() error  { return nil }

func (d *recordingDispatcher) byType(typ string) []NotificationJob {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []NotificationJob
	for _, j := range d.jobs {
		if j.Type == typ {
			out = append(out, j)
		}
	}
	return out
}

func expectKind(t *testing.T, err error, kind string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", kind)
	}
	if !response.IsKind(err, kind) {
		t.Fatalf("expected %s, got %T: %v", kind, err, err)
	}
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }
