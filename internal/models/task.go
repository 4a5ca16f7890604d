package models

import (
	"time"

	"gorm.io/gorm"
)

// Task is a unit of work, optionally attached to a project.
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description string         `gorm:"type:text" json:"description" validate:"max=10000"`
	Status      string         `gorm:"size:20;not null;default:todo;index" json:"status" validate:"required,task_status"`
	Priority    string         `gorm:"size:20;not null;default:medium;index" json:"priority" validate:"required,priority"`
	DueDate     *time.Time     `gorm:"index" json:"dueDate"`
	ProjectID   *uint          `gorm:"index" json:"projectId"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty" validate:"-"`
	CategoryID  *uint          `gorm:"index" json:"categoryId"`
	LabelIDs    []uint         `gorm:"serializer:json;type:text" json:"labels"`
	Subtasks    []Subtask      `gorm:"serializer:json;type:text" json:"subtasks" validate:"max=100,dive"`
	Assignees   []TaskAssignee `gorm:"foreignKey:TaskID" json:"assignees" validate:"max=50,dive"`
	Comments    []TaskComment  `gorm:"foreignKey:TaskID" json:"comments" validate:"-"`
	CreatedBy   uint           `gorm:"index" json:"createdBy"`
	CompletedAt *time.Time     `json:"completedAt"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string { return "tasks" }

// Subtask is embedded in its task's row.
type Subtask struct {
	Title     string `json:"title" validate:"required,max=200"`
	Completed bool   `json:"completed"`
}

// TaskAssignee links a user to a task with a role label such as "responsible".
type TaskAssignee struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	TaskID    uint      `gorm:"uniqueIndex:idx_task_user;not null" json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_task_user;not null;index" json:"userId" validate:"required"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Role      string    `gorm:"size:50;not null" json:"role" validate:"required,max=50"`
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"assignedAt"`
}

func (TaskAssignee) TableName() string { return "task_assignees" }

// TaskComment is appended to a task's comment list.
type TaskComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"taskId"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Content   string    `gorm:"type:text;not null" json:"content" validate:"required,max=5000"`
	CreatedAt time.Time `json:"createdAt"`
}

func (TaskComment) TableName() string { return "task_comments" }

// AssigneeIDs returns the assigned user ids in list order.
func (t *Task) AssigneeIDs() []uint {
	ids := make([]uint, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		ids = append(ids, a.UserID)
	}
	return ids
}

// IsAssignee reports whether userID is among the loaded assignees.
func (t *Task) IsAssignee(userID uint) bool {
	for _, a := range t.Assignees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
