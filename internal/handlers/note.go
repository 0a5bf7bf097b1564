package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/middleware"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/pkg/response"
	"gorm.io/gorm"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(db *gorm.DB) *NoteHandler {
	return &NoteHandler{
		noteService: services.NewNoteService(db),
	}
}

// ListForProject returns project-level notes
// GET /api/projects/:id/notes
func (h *NoteHandler) ListForProject(c *gin.Context) {
	var req services.NoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project := authz.GetProject(c)
	resp, err := h.noteService.ListForProject(project.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// CreateForProject adds a project-level note
// POST /api/projects/:id/notes
func (h *NoteHandler) CreateForProject(c *gin.Context) {
	var req services.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project := authz.GetProject(c)
	note, err := h.noteService.CreateForProject(project.ID, middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, note)
}

// ListForTask returns task-scoped notes
// GET /api/tasks/:taskID/notes
func (h *NoteHandler) ListForTask(c *gin.Context) {
	var req services.NoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task := authz.GetTask(c)
	resp, err := h.noteService.ListForTask(task.ID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// CreateForTask adds a note to a task
// POST /api/tasks/:taskID/notes
func (h *NoteHandler) CreateForTask(c *gin.Context) {
	var req services.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task := authz.GetTask(c)
	note, err := h.noteService.CreateForTask(task, middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Created(c, note)
}

// Update modifies a note's body
// PUT /api/notes/:noteID
func (h *NoteHandler) Update(c *gin.Context) {
	var req services.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	note := authz.GetNote(c)
	if err := h.noteService.Update(note, &req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, note)
}

// Delete removes a note
// DELETE /api/notes/:noteID
func (h *NoteHandler) Delete(c *gin.Context) {
	note := authz.GetNote(c)

	if err := h.noteService.Delete(note.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "note deleted"})
}
