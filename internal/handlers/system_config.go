package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/pkg/response"
	"gorm.io/gorm"
)

// SystemConfigHandler manages runtime settings stored in the database.
// These are operational endpoints; deployments are expected to restrict
// them at the network layer.
type SystemConfigHandler struct {
	configService    *services.SystemConfigService
	systemLogService *services.SystemLogService
}

func NewSystemConfigHandler(db *gorm.DB) *SystemConfigHandler {
	return &SystemConfigHandler{
		configService:    services.NewSystemConfigService(db),
		systemLogService: services.NewSystemLogService(db),
	}
}

// GetEmailConfig returns the notification email settings
// GET /api/system/config/email
func (h *SystemConfigHandler) GetEmailConfig(c *gin.Context) {
	response.Success(c, h.configService.GetEmailConfig())
}

// UpdateEmailConfig updates the notification email settings
// PUT /api/system/config/email
func (h *SystemConfigHandler) UpdateEmailConfig(c *gin.Context) {
	var req services.UpdateEmailConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateEmailConfig(&req); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, h.configService.GetEmailConfig())
}

// GetLogRetention returns the system log retention in days
// GET /api/system/config/log-retention
func (h *SystemConfigHandler) GetLogRetention(c *gin.Context) {
	response.Success(c, gin.H{"retention_days": h.systemLogService.GetRetentionDays()})
}

type updateLogRetentionRequest struct {
	RetentionDays int `json:"retention_days" binding:"required,min=1,max=3650"`
}

// UpdateLogRetention sets the system log retention in days
// PUT /api/system/config/log-retention
func (h *SystemConfigHandler) UpdateLogRetention(c *gin.Context) {
	var req updateLogRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.Set("log_retention_days", strconv.Itoa(req.RetentionDays)); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"retention_days": req.RetentionDays})
}
