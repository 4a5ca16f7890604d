package models

import (
	"time"

	"gorm.io/gorm"
)

// Project groups tasks and carries an ordered member list.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description string          `gorm:"type:text" json:"description" validate:"max=10000"`
	StartDate   *time.Time      `json:"startDate"`
	EndDate     *time.Time      `json:"endDate"`
	Priority    string          `gorm:"size:20;default:medium" json:"priority" validate:"required,priority"`
	Status      string          `gorm:"size:20;default:active;index" json:"status" validate:"required,project_status"`
	Tags        []string        `gorm:"serializer:json;type:text" json:"tags" validate:"max=50,dive,required,max=50"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members" validate:"-"`
	CreatedBy   uint            `gorm:"index" json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// MemberRole returns the project role held by userID, or "" for non-members.
// Members must be loaded.
func (p *Project) MemberRole(userID uint) string {
	for _, m := range p.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return ""
}
