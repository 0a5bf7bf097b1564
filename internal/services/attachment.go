package services

import (
	"io"

	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/pkg/logger"
	"gorm.io/gorm"
)

type AttachmentService struct {
	db      *gorm.DB
	storage Storage
}

func NewAttachmentService(db *gorm.DB, storage Storage) *AttachmentService {
	return &AttachmentService{db: db, storage: storage}
}

func (s *AttachmentService) List(taskID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := s.db.Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Upload stores the file content and records the attachment row.
func (s *AttachmentService) Upload(taskID, uploaderID uint, fileName string, size int64, r io.Reader) (*models.Attachment, error) {
	url, key, err := s.storage.Save(fileName, r)
	if err != nil {
		return nil, err
	}

	attachment := models.Attachment{
		TaskID:     taskID,
		FileName:   fileName,
		StorageKey: key,
		URL:        url,
		Size:       size,
		UploadedBy: uploaderID,
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		if removeErr := s.storage.Remove(key); removeErr != nil {
			logger.Warnf("[Attachment] Failed to remove orphaned blob %s: %v", key, removeErr)
		}
		return nil, err
	}
	return &attachment, nil
}

func (s *AttachmentService) Get(attachmentID uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := s.db.First(&attachment, attachmentID).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// Delete removes the row first, then the blob. A dangling blob is logged
// rather than failing the request.
func (s *AttachmentService) Delete(attachment *models.Attachment) error {
	if err := s.db.Delete(attachment).Error; err != nil {
		return err
	}
	if err := s.storage.Remove(attachment.StorageKey); err != nil {
		logger.Warnf("[Attachment] Failed to remove blob %s: %v", attachment.StorageKey, err)
	}
	return nil
}
