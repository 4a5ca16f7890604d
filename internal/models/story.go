package models

import (
	"time"

	"gorm.io/gorm"
)

// Story is the legacy grouping unit. StoryID is allocated from the "story"
// counter and never taken from the client.
type Story struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StoryID     int64          `gorm:"uniqueIndex;not null" json:"storyId"`
	Title       string         `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description string         `gorm:"type:text" json:"description" validate:"max=10000"`
	Status      string         `gorm:"size:20;not null;default:backlog;index" json:"status" validate:"required,task_status"`
	CreatedBy   uint           `gorm:"index;not null" json:"createdBy"`
	Creator     *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty" validate:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Story) TableName() string { return "stories" }

// Counter is a named monotonic sequence.
type Counter struct {
	Name string `gorm:"primaryKey;size:50"`
	Seq  int64  `gorm:"not null;default:0"`
}

func (Counter) TableName() string { return "counters" }
