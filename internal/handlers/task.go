package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/middleware"
	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db                  *gorm.DB
	taskService         *services.TaskService
	notificationService *services.NotificationService
	gate                *authz.Gate
}

func NewTaskHandler(db *gorm.DB, gate *authz.Gate, notificationService *services.NotificationService) *TaskHandler {
	return &TaskHandler{
		db:                  db,
		taskService:         services.NewTaskService(db),
		notificationService: notificationService,
		gate:                gate,
	}
}

// List returns the tasks of a project
// GET /api/projects/:id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	var req services.TaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project := authz.GetProject(c)
	resp, err := h.taskService.List(project.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Create creates a task in a project
// POST /api/projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project := authz.GetProject(c)
	userID := middleware.GetUserID(c)

	task, err := h.taskService.Create(project.ID, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrAssigneeNotMember) {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "project not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	var actor models.User
	if err := h.db.First(&actor, userID).Error; err == nil {
		h.notificationService.NotifyTaskAssigned(task, project, &actor)
	}

	services.LogInfo("task", "create", "task created: "+task.Title, &userID, c.ClientIP(), c.Request.UserAgent(),
		gin.H{"project_id": project.ID, "task_id": task.ID})
	response.Created(c, task)
}

// Get returns one task
// GET /api/tasks/:taskID
func (h *TaskHandler) Get(c *gin.Context) {
	task := authz.GetTask(c)

	full, err := h.taskService.Get(task.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, full)
}

// Update modifies a task
// PUT /api/tasks/:taskID
func (h *TaskHandler) Update(c *gin.Context) {
	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task := authz.GetTask(c)
	if err := h.taskService.Update(task, &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, task)
}

// Assign reassigns a task to another project user
// PUT /api/tasks/:taskID/assignee
func (h *TaskHandler) Assign(c *gin.Context) {
	var req services.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task := authz.GetTask(c)
	userID := middleware.GetUserID(c)

	// Target user comes from the body, so this guard runs after the gate.
	if err := authz.CheckSelfTarget(authz.ActionAssignTask, userID, req.AssignedTo); err != nil {
		h.gate.RejectDeny(c, authz.ActionAssignTask, err)
		return
	}

	if err := h.taskService.Assign(task, req.AssignedTo); err != nil {
		if errors.Is(err, services.ErrAssigneeNotMember) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	project := authz.GetProject(c)
	var actor models.User
	if err := h.db.First(&actor, userID).Error; err == nil {
		h.notificationService.NotifyTaskAssigned(task, project, &actor)
	}

	response.Success(c, task)
}

// Delete removes a task
// DELETE /api/tasks/:taskID
func (h *TaskHandler) Delete(c *gin.Context) {
	task := authz.GetTask(c)

	if err := h.taskService.Delete(task.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	services.LogInfo("task", "delete", "task deleted: "+task.Title, &userID, c.ClientIP(), c.Request.UserAgent(),
		gin.H{"task_id": task.ID})
	response.Success(c, gin.H{"message": "task deleted"})
}
