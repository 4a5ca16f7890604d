package models

import "time"

// ProjectMember represents a user's membership and role within a project.
// Position keeps the member list in insertion order.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Role      string    `gorm:"size:20;default:member" json:"role" validate:"required,project_role"`
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"joinedAt"`
}

func (ProjectMember) TableName() string { return "project_members" }
