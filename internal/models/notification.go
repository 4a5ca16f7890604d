package models

import "time"

// Notification is addressed to a single recipient.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"index;not null" json:"recipientId" validate:"required"`
	Type        string    `gorm:"size:20;not null;default:system" json:"type" validate:"required,notification_type"`
	Message     string    `gorm:"size:1000;not null" json:"message" validate:"required,max=1000"`
	TaskID      *uint     `gorm:"index" json:"taskId"`
	ProjectID   *uint     `json:"projectId"`
	Read        bool      `gorm:"column:is_read;default:false;index" json:"read"`
	Archived    bool      `gorm:"default:false" json:"archived"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }
