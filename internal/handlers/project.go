package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/middleware"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns the projects visible to the current user
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.projectService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Create creates a project owned by the current user
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	project, err := h.projectService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	services.LogInfo("project", "create", "project created: "+project.Name, &userID, c.ClientIP(), c.Request.UserAgent(), nil)
	response.Created(c, project)
}

// Get returns one project
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project := authz.GetProject(c)

	// Reload with creator info for the detail view.
	full, err := h.projectService.Get(project.ID)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"project": full,
		"role":    authz.GetRole(c),
	})
}

// Update modifies a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project := authz.GetProject(c)
	if err := h.projectService.Update(project, &req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, project)
}

// Delete removes a project and everything under it
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	project := authz.GetProject(c)

	if err := h.projectService.Delete(project.ID); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	services.LogInfo("project", "delete", "project deleted: "+project.Name, &userID, c.ClientIP(), c.Request.UserAgent(), nil)
	response.Success(c, gin.H{"message": "project deleted"})
}
