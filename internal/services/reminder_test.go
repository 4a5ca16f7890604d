package services

import (
	"testing"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/models"
)

func TestCronExpr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"08:00", "0 8 * * *", false},
		{"23:59", "59 23 * * *", false},
		{" 7:05 ", "5 7 * * *", false},
		{"24:00", "", true},
		{"08:60", "", true},
		{"0800", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := cronExpr(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("cronExpr(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("cronExpr(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestReminderRunOnce(t *testing.T) {
	f := newTaskFixture(t)
	now := time.Now()
	soon := now.Add(3 * time.Hour)
	later := now.Add(72 * time.Hour)

	dueSoon := f.create(t, &CreateTaskRequest{Title: "soon", DueDate: &soon, Assignees: []AssigneeInput{{UserID: f.alice.UserID}}})
	f.create(t, &CreateTaskRequest{Title: "later", DueDate: &later, Assignees: []AssigneeInput{{UserID: f.alice.UserID}}})
	f.create(t, &CreateTaskRequest{Title: "finished", DueDate: &soon, Status: models.StatusDone, Assignees: []AssigneeInput{{UserID: f.bob.UserID}}})
	f.create(t, &CreateTaskRequest{Title: "nobody", DueDate: &soon})

	svc := NewReminderService(f.db, f.disp, config.ReminderConfig{Enabled: true, Time: "08:00"})
	n, err := svc.RunOnce(now)
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("reminded %d tasks, expected 1", n)
	}

	jobs := f.disp.byType(models.NotificationReminder)
	if len(jobs) != 1 || *jobs[0].TaskID != dueSoon.ID || jobs[0].RecipientIDs[0] != f.alice.UserID {
		t.Errorf("unexpected reminder jobs: %+v", jobs)
	}

	n, err = svc.RunOnce(now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second RunOnce() error = %v", err)
	}
	if n != 0 {
		t.Errorf("a task reminded in the last day should not be reminded again, got %d", n)
	}
}

func TestReminderStartScheduler(t *testing.T) {
	db := newTestDB(t)

	disabled := NewReminderService(db, nil, config.ReminderConfig{Enabled: false})
	if err := disabled.StartScheduler(); err != nil {
		t.Errorf("disabled scheduler error = %v", err)
	}
	disabled.StopScheduler()

	bad := NewReminderService(db, nil, config.ReminderConfig{Enabled: true, Time: "noon"})
	if err := bad.StartScheduler(); err == nil {
		t.Error("expected error for invalid time")
	}

	ok := NewReminderService(db, nil, config.ReminderConfig{Enabled: true, Time: "08:00"})
	if err := ok.StartScheduler(); err != nil {
		t.Fatalf("StartScheduler() error = %v", err)
	}
	ok.StopScheduler()
}
