package main

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/logger"
	"github.com/taskhub/backend/pkg/response"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(svc.cfg.Server.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	r.GET("/metrics", svc.metricsHandler.Metrics)

	api := r.Group("/api")
	api.Use(middleware.AuditLog())
	{
		api.GET("/health", svc.healthHandler.CheckHealth)

		// User routes (public)
		public := api.Group("/users", svc.authLimiter.Middleware())
		{
			public.POST("/register", svc.authHandler.Register)
			public.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.authService))
		{
			// Users
			protected.POST("/users/logout", svc.authHandler.Logout)
			protected.GET("/users/profile", svc.authHandler.GetProfile)
			protected.PUT("/users/profile", svc.authHandler.UpdateProfile)
			protected.PUT("/users/password", svc.authHandler.ChangePassword)

			elevated := protected.Group("/users", middleware.RoleRequired(models.RoleAdmin, models.RoleManager))
			{
				elevated.GET("/all", svc.userHandler.List)
				elevated.DELETE("/:id", svc.userHandler.Delete)
			}
			protected.PUT("/users/:id/role", middleware.RoleRequired(models.RoleAdmin), svc.userHandler.AssignRole)

			// Stories
			protected.GET("/story", svc.storyHandler.List)
			protected.GET("/story/count", svc.storyHandler.Count)
			protected.GET("/story/:id", svc.storyHandler.GetByID)
			protected.POST("/story", svc.storyHandler.Create)
			protected.PUT("/story/:id", svc.storyHandler.Update)
			protected.DELETE("/story/:id", svc.storyHandler.Delete)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)
			protected.POST("/projects/:id/members", svc.projectHandler.AddMember)
			protected.DELETE("/projects/:id/members/:memberId", svc.projectHandler.RemoveMember)

			// Tasks
			protected.GET("/tasks", svc.taskHandler.List)
			protected.GET("/tasks/my-tasks", svc.taskHandler.MyTasks)
			protected.GET("/tasks/project/:id", svc.taskHandler.ByProject)
			protected.GET("/tasks/:id", svc.taskHandler.GetByID)
			protected.POST("/tasks", svc.taskHandler.Create)
			protected.PUT("/tasks/:id", svc.taskHandler.Update)
			protected.PUT("/tasks/:id/complete", svc.taskHandler.Complete)
			protected.DELETE("/tasks/:id", svc.taskHandler.Delete)
			protected.POST("/tasks/:id/comments", svc.taskHandler.AddComment)

			// Labels
			protected.GET("/labels", svc.labelHandler.List)
			protected.GET("/labels/:id", svc.labelHandler.GetByID)
			protected.POST("/labels", svc.labelHandler.Create)
			protected.PUT("/labels/:id", svc.labelHandler.Update)
			protected.DELETE("/labels/:id", svc.labelHandler.Delete)

			// Categories
			protected.GET("/categories", svc.categoryHandler.List)
			protected.GET("/categories/:id", svc.categoryHandler.GetByID)
			protected.POST("/categories", svc.categoryHandler.Create)
			protected.PUT("/categories/:id", svc.categoryHandler.Update)
			protected.DELETE("/categories/:id", svc.categoryHandler.Delete)

			// Notifications
			protected.GET("/notifications", svc.notificationHandler.List)
			protected.GET("/notifications/unread-count", svc.notificationHandler.UnreadCount)
			protected.PUT("/notifications/read-all", svc.notificationHandler.MarkAllRead)
			protected.GET("/notifications/:id", svc.notificationHandler.GetByID)
			protected.PUT("/notifications/:id/read", svc.notificationHandler.MarkRead)
			protected.PUT("/notifications/:id/archive", svc.notificationHandler.Archive)
			protected.DELETE("/notifications/:id", svc.notificationHandler.Delete)

			// Messages
			protected.POST("/messages", svc.messageHandler.Send)
			protected.GET("/messages", svc.messageHandler.List)
			protected.GET("/messages/unread-count", svc.messageHandler.UnreadCount)
			protected.GET("/messages/chat/user/:userId", svc.messageHandler.ChatWithUser)
			protected.GET("/messages/chat/project/:projectId", svc.messageHandler.ChatInProject)
			protected.GET("/messages/:id", svc.messageHandler.GetByID)
			protected.PUT("/messages/:id", svc.messageHandler.Edit)
			protected.PUT("/messages/:id/read", svc.messageHandler.MarkRead)
			protected.DELETE("/messages/:id", svc.messageHandler.Delete)

			// Analytics
			protected.GET("/analytics", svc.analyticsHandler.Overview)
			protected.GET("/analytics/tasks", svc.analyticsHandler.Tasks)
			protected.GET("/analytics/projects", svc.analyticsHandler.Projects)
			protected.GET("/analytics/user-engagement", svc.analyticsHandler.UserEngagement)
		}
	}
}
