package main

import (
	"github.com/gin-gonic/gin"
	"github.com/liushuo/teamboard/backend/internal/authz"
	"github.com/liushuo/teamboard/backend/internal/handlers"
	"github.com/liushuo/teamboard/backend/internal/middleware"
	"github.com/liushuo/teamboard/backend/internal/models"
	"github.com/liushuo/teamboard/backend/internal/services"
	"github.com/liushuo/teamboard/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	gate := svc.gate

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// Attachment blobs
	if local, ok := svc.storage.(*services.LocalStorage); ok {
		r.Static(svc.cfg.Storage.BaseURL, local.Root())
	}

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// User directory
			userHandler := handlers.NewUserHandler(models.GetDB())
			protected.GET("/users", userHandler.List)
			protected.GET("/users/:id", userHandler.Get)

			// Projects. Listing and creation carry no project scope yet,
			// so only authentication applies; everything else goes through
			// the gate.
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			protected.GET("/projects", projectHandler.List)
			protected.POST("/projects", projectHandler.Create)
			protected.GET("/projects/:id",
				gate.Require(authz.ActionViewProject, authz.ProjectParam("id")), projectHandler.Get)
			protected.PUT("/projects/:id",
				gate.Require(authz.ActionUpdateProject, authz.ProjectParam("id")), projectHandler.Update)
			protected.DELETE("/projects/:id",
				gate.Require(authz.ActionDeleteProject, authz.ProjectParam("id")), projectHandler.Delete)

			// Project members
			memberHandler := handlers.NewProjectMemberHandler(models.GetDB(), gate, svc.notificationService)
			protected.GET("/projects/:id/members",
				gate.Require(authz.ActionViewMembers, authz.ProjectParam("id")), memberHandler.List)
			protected.POST("/projects/:id/members",
				gate.Require(authz.ActionAddMember, authz.ProjectParam("id")), memberHandler.Add)
			protected.PUT("/projects/:id/members/:memberID",
				gate.Require(authz.ActionUpdateMemberRole, authz.MemberParam("memberID")), memberHandler.Update)
			protected.DELETE("/projects/:id/members/:memberID",
				gate.Require(authz.ActionRemoveMember, authz.MemberParam("memberID")), memberHandler.Remove)

			// Tasks
			taskHandler := handlers.NewTaskHandler(models.GetDB(), gate, svc.notificationService)
			protected.GET("/projects/:id/tasks",
				gate.Require(authz.ActionViewTask, authz.ProjectParam("id")), taskHandler.List)
			protected.POST("/projects/:id/tasks",
				gate.Require(authz.ActionCreateTask, authz.ProjectParam("id")), taskHandler.Create)
			protected.GET("/tasks/:taskID",
				gate.Require(authz.ActionViewTask, authz.TaskParam("taskID")), taskHandler.Get)
			protected.PUT("/tasks/:taskID",
				gate.Require(authz.ActionUpdateTask, authz.TaskParam("taskID")), taskHandler.Update)
			protected.PUT("/tasks/:taskID/assignee",
				gate.Require(authz.ActionAssignTask, authz.TaskParam("taskID")), taskHandler.Assign)
			protected.DELETE("/tasks/:taskID",
				gate.Require(authz.ActionDeleteTask, authz.TaskParam("taskID")), taskHandler.Delete)

			// Subtasks
			subtaskHandler := handlers.NewSubtaskHandler(models.GetDB())
			protected.GET("/tasks/:taskID/subtasks",
				gate.Require(authz.ActionViewSubtask, authz.TaskParam("taskID")), subtaskHandler.List)
			protected.POST("/tasks/:taskID/subtasks",
				gate.Require(authz.ActionCreateSubtask, authz.TaskParam("taskID")), subtaskHandler.Create)
			protected.PUT("/subtasks/:subtaskID",
				gate.Require(authz.ActionUpdateSubtask, authz.SubtaskParam("subtaskID")), subtaskHandler.Update)
			protected.DELETE("/subtasks/:subtaskID",
				gate.Require(authz.ActionDeleteSubtask, authz.SubtaskParam("subtaskID")), subtaskHandler.Delete)

			// Notes
			noteHandler := handlers.NewNoteHandler(models.GetDB())
			protected.GET("/projects/:id/notes",
				gate.Require(authz.ActionViewNote, authz.ProjectParam("id")), noteHandler.ListForProject)
			protected.POST("/projects/:id/notes",
				gate.Require(authz.ActionCreateNote, authz.ProjectParam("id")), noteHandler.CreateForProject)
			protected.GET("/tasks/:taskID/notes",
				gate.Require(authz.ActionViewNote, authz.TaskParam("taskID")), noteHandler.ListForTask)
			protected.POST("/tasks/:taskID/notes",
				gate.Require(authz.ActionCreateNote, authz.TaskParam("taskID")), noteHandler.CreateForTask)
			protected.PUT("/notes/:noteID",
				gate.Require(authz.ActionUpdateNote, authz.NoteParam("noteID")), noteHandler.Update)
			protected.DELETE("/notes/:noteID",
				gate.Require(authz.ActionDeleteNote, authz.NoteParam("noteID")), noteHandler.Delete)

			// Attachments (task scoped)
			attachmentHandler := handlers.NewAttachmentHandler(models.GetDB(), svc.storage)
			protected.GET("/tasks/:taskID/attachments",
				gate.Require(authz.ActionViewTask, authz.TaskParam("taskID")), attachmentHandler.List)
			protected.POST("/tasks/:taskID/attachments",
				gate.Require(authz.ActionUpdateTask, authz.TaskParam("taskID")), attachmentHandler.Upload)
			protected.DELETE("/tasks/:taskID/attachments/:attachmentID",
				gate.Require(authz.ActionUpdateTask, authz.TaskParam("taskID")), attachmentHandler.Delete)

			// System endpoints. Deployments are expected to fence these off
			// at the network layer.
			systemLogHandler := handlers.NewSystemLogHandler(models.GetDB())
			protected.GET("/system/logs", systemLogHandler.List)
			protected.GET("/system/logs/modules", systemLogHandler.GetModules)
			protected.POST("/system/logs/cleanup", systemLogHandler.Cleanup)

			systemConfigHandler := handlers.NewSystemConfigHandler(models.GetDB())
			protected.GET("/system/config/email", systemConfigHandler.GetEmailConfig)
			protected.PUT("/system/config/email", systemConfigHandler.UpdateEmailConfig)
			protected.GET("/system/config/log-retention", systemConfigHandler.GetLogRetention)
			protected.PUT("/system/config/log-retention", systemConfigHandler.UpdateLogRetention)
		}
	}
}
