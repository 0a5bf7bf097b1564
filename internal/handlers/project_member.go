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

// ProjectMemberHandler provides CRUD endpoints for project members.
type ProjectMemberHandler struct {
	db                  *gorm.DB
	memberService       *services.MemberService
	notificationService *services.NotificationService
	gate                *authz.Gate
}

func NewProjectMemberHandler(db *gorm.DB, gate *authz.Gate, notificationService *services.NotificationService) *ProjectMemberHandler {
	return &ProjectMemberHandler{
		db:                  db,
		memberService:       services.NewMemberService(db),
		notificationService: notificationService,
		gate:                gate,
	}
}

// List returns all members of a project.
// GET /api/projects/:id/members
func (h *ProjectMemberHandler) List(c *gin.Context) {
	project := authz.GetProject(c)

	members, err := h.memberService.List(project.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, members)
}

// Add adds a user to a project with the specified role.
// POST /api/projects/:id/members
func (h *ProjectMemberHandler) Add(c *gin.Context) {
	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project := authz.GetProject(c)
	userID := middleware.GetUserID(c)

	// Target user comes from the body, so this guard runs after the gate.
	if err := authz.CheckMemberAdd(project, userID, req.UserID); err != nil {
		h.gate.RejectDeny(c, authz.ActionAddMember, err)
		return
	}

	member, err := h.memberService.Add(project.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, services.ErrAlreadyMember), errors.Is(err, services.ErrInvalidRole):
			response.BadRequest(c, err.Error())
		default:
			response.ServerError(c, err.Error())
		}
		return
	}

	var actor models.User
	if err := h.db.First(&actor, userID).Error; err == nil {
		h.notificationService.NotifyMemberAdded(member, project, &actor)
	}

	services.LogInfo("member", "add", "member added to "+project.Name, &userID, c.ClientIP(), c.Request.UserAgent(),
		gin.H{"target_user_id": req.UserID, "role": req.Role})
	response.Created(c, member)
}

// Update updates a member's role.
// PUT /api/projects/:id/members/:memberID
func (h *ProjectMemberHandler) Update(c *gin.Context) {
	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member := authz.GetMember(c)
	project := authz.GetProject(c)

	if err := h.memberService.UpdateRole(member, project, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrCreatorImmutable):
			response.BadRequest(c, err.Error())
		default:
			response.ServerError(c, err.Error())
		}
		return
	}

	response.Success(c, member)
}

// Remove removes a member from a project.
// DELETE /api/projects/:id/members/:memberID
func (h *ProjectMemberHandler) Remove(c *gin.Context) {
	member := authz.GetMember(c)
	project := authz.GetProject(c)

	if err := h.memberService.Remove(member, project); err != nil {
		if errors.Is(err, services.ErrCreatorImmutable) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	services.LogInfo("member", "remove", "member removed from "+project.Name, &userID, c.ClientIP(), c.Request.UserAgent(),
		gin.H{"target_user_id": member.UserID})
	response.Success(c, gin.H{"message": "member removed"})
}
