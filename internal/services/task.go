package services

import (
	"errors"
	"time"

	"github.com/liushuo/teamboard/backend/internal/models"
	"gorm.io/gorm"
)

var ErrAssigneeNotMember = errors.New("assignee is not a member of the project")

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

type TaskListRequest struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	AssignedTo *uint  `form:"assigned_to"`
}

type TaskListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.Task `json:"items"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=300"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  uint       `json:"assigned_to" binding:"required"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type AssignTaskRequest struct {
	AssignedTo uint `json:"assigned_to" binding:"required"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title" binding:"required,max=300"`
}

type UpdateSubtaskRequest struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}

func validTaskStatus(s string) bool {
	return s == "todo" || s == "in_progress" || s == "done"
}

func validTaskPriority(p string) bool {
	return p == "low" || p == "medium" || p == "high"
}

// List returns tasks of a project with optional filters.
func (s *TaskService) List(projectID uint, req *TaskListRequest) (*TaskListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Task{}).Where("project_id = ?", projectID)
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		query = query.Where("priority = ?", req.Priority)
	}
	if req.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *req.AssignedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var tasks []models.Task
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Assignee").Preload("Assigner").
		Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return &TaskListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    tasks,
	}, nil
}

// Create stores a task. The acting user becomes AssignedBy; the assignee
// must belong to the project (creator or membership row).
func (s *TaskService) Create(projectID, actorID uint, req *CreateTaskRequest) (*models.Task, error) {
	if err := s.requireProjectUser(projectID, req.AssignedTo); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if !validTaskPriority(priority) {
		return nil, errors.New("invalid priority, must be 'low', 'medium' or 'high'")
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      "todo",
		Priority:    priority,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  actorID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Assignee").Preload("Assigner").First(&task, task.ID)
	return &task, nil
}

func (s *TaskService) Get(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Assignee").Preload("Assigner").
		First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Update(task *models.Task, req *UpdateTaskRequest) error {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !validTaskStatus(*req.Status) {
			return errors.New("invalid status, must be 'todo', 'in_progress' or 'done'")
		}
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		if !validTaskPriority(*req.Priority) {
			return errors.New("invalid priority, must be 'low', 'medium' or 'high'")
		}
		updates["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(task).Updates(updates).Error
}

// Assign changes the task's assignee to another project user.
func (s *TaskService) Assign(task *models.Task, assigneeID uint) error {
	if err := s.requireProjectUser(task.ProjectID, assigneeID); err != nil {
		return err
	}
	return s.db.Model(task).Update("assigned_to", assigneeID).Error
}

// Delete removes a task together with its subtasks, task-scoped notes
// and attachments.
func (s *TaskService) Delete(taskID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).
			Delete(&models.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).
			Delete(&models.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).
			Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, taskID).Error
	})
}

// DueSoon returns unfinished tasks whose due date falls inside the
// window. Used by the reminder scheduler.
func (s *TaskService) DueSoon(window time.Duration) ([]models.Task, error) {
	now := time.Now()
	var tasks []models.Task
	err := s.db.Preload("Assignee").Preload("Project").
		Where("status != ?", "done").
		Where("due_date IS NOT NULL AND due_date BETWEEN ? AND ?", now, now.Add(window)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// --- subtasks ---

func (s *TaskService) ListSubtasks(taskID uint) ([]models.Subtask, error) {
	var subtasks []models.Subtask
	if err := s.db.Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&subtasks).Error; err != nil {
		return nil, err
	}
	return subtasks, nil
}

func (s *TaskService) CreateSubtask(taskID, actorID uint, req *CreateSubtaskRequest) (*models.Subtask, error) {
	subtask := models.Subtask{
		TaskID:    taskID,
		Title:     req.Title,
		CreatedBy: actorID,
	}
	if err := s.db.Create(&subtask).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (s *TaskService) UpdateSubtask(subtask *models.Subtask, req *UpdateSubtaskRequest) error {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Done != nil {
		updates["done"] = *req.Done
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(subtask).Updates(updates).Error
}

func (s *TaskService) DeleteSubtask(subtaskID uint) error {
	return s.db.Delete(&models.Subtask{}, subtaskID).Error
}

// requireProjectUser verifies the user is the project creator or holds a
// membership row.
func (s *TaskService) requireProjectUser(projectID, userID uint) error {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return err
	}
	if project.CreatedBy == userID {
		return nil
	}

	var member models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAssigneeNotMember
	}
	return err
}
