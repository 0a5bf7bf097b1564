package services

import (
	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/gorm"
)

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

type NoteListRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type NoteListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.Note `json:"items"`
}

type CreateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

type UpdateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

// ListForProject returns project-level notes, those without a task scope.
func (s *NoteService) ListForProject(projectID uint, req *NoteListRequest) (*NoteListResponse, error) {
	query := s.db.Model(&models.Note{}).
		Where("project_id = ? AND task_id IS NULL", projectID)
	return s.list(query, req)
}

// ListForTask returns notes attached to a single task.
func (s *NoteService) ListForTask(taskID uint, req *NoteListRequest) (*NoteListResponse, error) {
	query := s.db.Model(&models.Note{}).Where("task_id = ?", taskID)
	return s.list(query, req)
}

func (s *NoteService) list(query *gorm.DB, req *NoteListRequest) (*NoteListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var notes []models.Note
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Author").
		Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}

	return &NoteListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    notes,
	}, nil
}

// CreateForProject stores a project-level note.
func (s *NoteService) CreateForProject(projectID, authorID uint, req *CreateNoteRequest) (*models.Note, error) {
	note := models.Note{
		ProjectID: projectID,
		Body:      req.Body,
		CreatedBy: authorID,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateForTask stores a task-scoped note. ProjectID comes from the task so
// the note always lands in the task's own project.
func (s *NoteService) CreateForTask(task *models.Task, authorID uint, req *CreateNoteRequest) (*models.Note, error) {
	note := models.Note{
		ProjectID: task.ProjectID,
		TaskID:    &task.ID,
		Body:      req.Body,
		CreatedBy: authorID,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Update(note *models.Note, req *UpdateNoteRequest) error {
	return s.db.Model(note).Update("body", req.Body).Error
}

func (s *NoteService) Delete(noteID uint) error {
	return s.db.Delete(&models.Note{}, noteID).Error
}
