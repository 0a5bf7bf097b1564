package models

import (
	"time"

	"gorm.io/gorm"
)

// Note is a free-form annotation on a project, optionally scoped to one of
// its tasks. When TaskID is set the project is inferred from the task at
// creation time, so ProjectID is always populated.
type Note struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"index;not null" json:"project_id"`
	Project   *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	TaskID    *uint          `gorm:"index" json:"task_id"`
	Task      *Task          `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CreatedBy uint           `gorm:"index;not null" json:"created_by"`
	Author    *User          `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Note) TableName() string { return "notes" }
