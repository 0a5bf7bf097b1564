package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/middleware"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/pkg/response"
	"gorm.io/gorm"
)

// maxAttachmentSize caps a single upload at 20 MiB.
const maxAttachmentSize = 20 << 20

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(db *gorm.DB, storage services.Storage) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: services.NewAttachmentService(db, storage),
	}
}

// List returns a task's attachments
// GET /api/tasks/:taskID/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	task := authz.GetTask(c)

	attachments, err := h.attachmentService.List(task.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, attachments)
}

// Upload stores a file against a task
// POST /api/tasks/:taskID/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field required")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		response.BadRequest(c, "file exceeds the 20 MiB limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	defer f.Close()

	task := authz.GetTask(c)
	userID := middleware.GetUserID(c)

	attachment, err := h.attachmentService.Upload(task.ID, userID, fileHeader.Filename, fileHeader.Size, f)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	services.LogInfo("attachment", "upload", "attachment uploaded: "+attachment.FileName, &userID,
		c.ClientIP(), c.Request.UserAgent(), gin.H{"task_id": task.ID, "size": attachment.Size})
	response.Created(c, attachment)
}

// Delete removes an attachment
// DELETE /api/tasks/:taskID/attachments/:attachmentID
func (h *AttachmentHandler) Delete(c *gin.Context) {
	attachmentID, err := strconv.ParseUint(c.Param("attachmentID"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid attachment id")
		return
	}

	attachment, err := h.attachmentService.Get(uint(attachmentID))
	if err != nil {
		response.NotFound(c, "attachment not found")
		return
	}

	// Attachments follow the task scope; the gate already checked the
	// task, so only cross-task id confusion is rejected here.
	task := authz.GetTask(c)
	if attachment.TaskID != task.ID {
		response.NotFound(c, "attachment not found")
		return
	}

	if err := h.attachmentService.Delete(attachment); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "attachment deleted"})
}
