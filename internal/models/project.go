package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a workspace that owns tasks, notes and members.
// CreatedBy is immutable after creation; the creator is implicitly the
// project admin regardless of the membership table.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:50;default:active" json:"status"` // active, archived
	CreatedBy   uint           `gorm:"index;not null" json:"created_by"`
	Creator     *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }
