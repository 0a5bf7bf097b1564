package models

import (
	"time"

	"gorm.io/gorm"
)

// Subtask is a checklist item under a task. It has no project reference of
// its own; the owning project is always resolved through the parent task.
type Subtask struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TaskID    uint           `gorm:"index;not null" json:"task_id"`
	Task      *Task          `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Title     string         `gorm:"size:300;not null" json:"title"`
	Done      bool           `gorm:"default:false" json:"done"`
	CreatedBy uint           `gorm:"index;not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Subtask) TableName() string { return "subtasks" }
