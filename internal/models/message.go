package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is either direct (RecipientID set) or a project group message
// (ProjectID set), never both.
type Message struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SenderID    uint           `gorm:"index;not null" json:"senderId" validate:"required"`
	Sender      *User          `gorm:"foreignKey:SenderID" json:"sender,omitempty" validate:"-"`
	RecipientID *uint          `gorm:"index" json:"recipientId" validate:"required_without=ProjectID,excluded_with=ProjectID"`
	ProjectID   *uint          `gorm:"index" json:"projectId" validate:"required_without=RecipientID"`
	Content     string         `gorm:"type:text;not null" json:"content" validate:"required,max=5000"`
	Read        bool           `gorm:"column:is_read;default:false;index" json:"read"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Message) TableName() string { return "messages" }

// IsDirect reports whether the message is addressed to a single user.
func (m *Message) IsDirect() bool {
	return m.RecipientID != nil
}
