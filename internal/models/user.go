package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account. Users are soft-removed, never hard-deleted.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:100;not null" json:"username" validate:"required,min=3,max=100"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email" validate:"required,email,max=255"`
	Password  string         `gorm:"size:255;not null" json:"-" validate:"required"` // bcrypt hash
	Name      string         `gorm:"size:100" json:"name" validate:"max=100"`
	Avatar    string         `gorm:"size:500" json:"avatar" validate:"omitempty,url,max=500"`
	Bio       string         `gorm:"size:1000" json:"bio" validate:"max=1000"`
	Role      string         `gorm:"size:20;default:member;index" json:"role" validate:"required,user_role"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time     `json:"lastLogin"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
