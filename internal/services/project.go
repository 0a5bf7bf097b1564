package services

import (
	"errors"

	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Name     string `form:"name"`
	Status   string `form:"status"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// List returns the projects the user belongs to, either as creator or
// through a membership row.
func (s *ProjectService) List(userID uint, req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Project{}).
		Where("created_by = ? OR id IN (?)", userID,
			s.db.Model(&models.ProjectMember{}).
				Select("project_id").
				Where("user_id = ?", userID))

	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var projects []models.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Creator").
		Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// Create stores a new project and enrolls the creator as project_admin.
// The membership row is a read-model denormalization for member listings;
// role resolution derives the creator's role from CreatedBy, never from
// this row.
func (s *ProjectService) Create(userID uint, req *CreateProjectRequest) (*models.Project, error) {
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      "active",
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      authz.RoleProjectAdmin.String(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Get(projectID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Creator").First(&project, projectID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update modifies mutable project fields. CreatedBy is immutable.
func (s *ProjectService) Update(project *models.Project, req *UpdateProjectRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "archived" {
			return errors.New("invalid status, must be 'active' or 'archived'")
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(project).Updates(updates).Error
}

// Delete removes a project and everything it owns: memberships, tasks
// with their subtasks, notes and attachments.
func (s *ProjectService) Delete(projectID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", projectID).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&models.Subtask{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&models.Attachment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", projectID).
			Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).
			Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, projectID).Error
	})
}
