package models

import "time"

// Attachment records a file uploaded against a task. The file content lives
// in the blob store; only the returned URL is kept here.
type Attachment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"index;not null" json:"task_id"`
	Task       *Task     `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	FileName   string    `gorm:"size:300;not null" json:"file_name"`
	StorageKey string    `gorm:"size:100;not null" json:"-"`
	URL        string    `gorm:"size:500;not null" json:"url"`
	Size       int64     `json:"size"`
	UploadedBy uint      `gorm:"index;not null" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Attachment) TableName() string { return "attachments" }
