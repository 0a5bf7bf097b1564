package models

import (
	"time"

	"gorm.io/gorm"
)

// Task represents a unit of work inside a project. AssignedBy is the user
// who created the task, AssignedTo the user responsible for it; both are
// required and drive the member-level ownership rules.
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title       string         `gorm:"size:300;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:50;default:todo" json:"status"`     // todo, in_progress, done
	Priority    string         `gorm:"size:20;default:medium" json:"priority"` // low, medium, high
	DueDate     *time.Time     `gorm:"index" json:"due_date"`
	AssignedTo  uint           `gorm:"index;not null" json:"assigned_to"`
	Assignee    *User          `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	AssignedBy  uint           `gorm:"index;not null" json:"assigned_by"`
	Assigner    *User          `gorm:"foreignKey:AssignedBy" json:"assigner,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string { return "tasks" }

// IsOwnedBy reports whether the given user created the task or is assigned
// to it. This is the ownership test used by member-level permissions.
func (t *Task) IsOwnedBy(userID uint) bool {
	return t.AssignedBy == userID || t.AssignedTo == userID
}
