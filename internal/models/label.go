package models

import "time"

// Label tags tasks. A nil ProjectID makes the label global.
type Label struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name" validate:"required,max=50"`
	Color       string    `gorm:"size:7" json:"color" validate:"omitempty,hexcolor"`
	Description string    `gorm:"size:500" json:"description" validate:"max=500"`
	ProjectID   *uint     `gorm:"index" json:"projectId"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Label) TableName() string { return "labels" }

// Category classifies tasks. A nil ProjectID makes the category global.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name" validate:"required,max=50"`
	Color       string    `gorm:"size:7" json:"color" validate:"omitempty,hexcolor"`
	Icon        string    `gorm:"size:100" json:"icon" validate:"max=100"`
	Description string    `gorm:"size:500" json:"description" validate:"max=500"`
	ProjectID   *uint     `gorm:"index" json:"projectId"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }
