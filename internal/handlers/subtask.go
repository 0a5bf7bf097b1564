package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/middleware"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/pkg/response"
	"gorm.io/gorm"
)

type SubtaskHandler struct {
	taskService *services.TaskService
}

func NewSubtaskHandler(db *gorm.DB) *SubtaskHandler {
	return &SubtaskHandler{
		taskService: services.NewTaskService(db),
	}
}

// List returns the subtasks of a task
// GET /api/tasks/:taskID/subtasks
func (h *SubtaskHandler) List(c *gin.Context) {
	task := authz.GetTask(c)

	subtasks, err := h.taskService.ListSubtasks(task.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, subtasks)
}

// Create adds a subtask to a task
// POST /api/tasks/:taskID/subtasks
func (h *SubtaskHandler) Create(c *gin.Context) {
	var req services.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task := authz.GetTask(c)
	subtask, err := h.taskService.CreateSubtask(task.ID, middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, subtask)
}

// Update modifies a subtask
// PUT /api/subtasks/:subtaskID
func (h *SubtaskHandler) Update(c *gin.Context) {
	var req services.UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subtask := authz.GetSubtask(c)
	if err := h.taskService.UpdateSubtask(subtask, &req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, subtask)
}

// Delete removes a subtask
// DELETE /api/subtasks/:subtaskID
func (h *SubtaskHandler) Delete(c *gin.Context) {
	subtask := authz.GetSubtask(c)

	if err := h.taskService.DeleteSubtask(subtask.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "subtask deleted"})
}
