package routes

import (
	"time"

	"review-portal-api/config"
	"review-portal-api/controllers"
	"review-portal-api/middleware"
	"review-portal-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication (login is rate limited)
			public.POST("/login",
				middleware.RateLimitMiddleware(config.RDB, 10, time.Minute),
				controllers.Login)
			public.POST("/refresh", controllers.RefreshToken)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Review Portal API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Common endpoints (all authenticated users)
			protected.GET("/cycles", controllers.GetCycles)
			protected.GET("/cycles/:id", controllers.GetCycle)
			protected.GET("/cycles/:id/windows", controllers.GetCycleWindows)
			protected.GET("/categories", controllers.GetCategories)
			protected.GET("/grading-types", controllers.GetGradingTypes)
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:notification_id/read", controllers.MarkNotificationRead)
			protected.PUT("/notifications/read-all", controllers.MarkAllNotificationsRead)

			// Cycle administration
			admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/cycles", controllers.CreateCycle)
				admin.POST("/cycles/:id/windows", controllers.CreateCycleWindow)
				admin.POST("/categories", controllers.CreateCategory)
				admin.POST("/grading-types", controllers.CreateGradingType)
				admin.PUT("/grading-types/:id", controllers.UpdateGradingType)
				admin.DELETE("/grading-types/:id", controllers.DeleteGradingType)
				admin.GET("/reports/gradings.xlsx", controllers.ExportGradingReport)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("", middleware.RequireRole(models.RoleSubmitter, models.RoleAdmin), controllers.CreateSubmission)
				submissions.POST("/:id/submit", controllers.SubmitSubmission)

				// Assignments (admin or coordinator)
				assign := submissions.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator))
				{
					assign.GET("/:id/verifiers", controllers.GetVerifiers)
					assign.POST("/:id/verifiers", controllers.AssignVerifier)
					assign.DELETE("/:id/verifiers/:user_id", controllers.RemoveVerifier)
					assign.POST("/:id/coordinators", controllers.AssignCoordinator)
					assign.DELETE("/:id/coordinators/:user_id", controllers.RemoveCoordinator)
				}

				// Grading (verifiers record and edit their own grades)
				submissions.GET("/:id/gradings", controllers.GetGradings)
				submissions.POST("/:id/gradings", middleware.RequireRole(models.RoleVerifier), controllers.RecordGrading)

				// Decisions
				decisions := submissions.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator, models.RoleVerifier))
				{
					decisions.POST("/:id/advance", controllers.AdvanceSubmission)
					decisions.POST("/:id/accept", controllers.AcceptSubmission)
					decisions.POST("/:id/reject", controllers.RejectSubmission)
				}
			}

			// Grade edits addressed by id
			protected.PUT("/gradings/:grading_id", middleware.RequireRole(models.RoleVerifier, models.RoleAdmin), controllers.UpdateGrading)

			// Dashboard
			dashboard := protected.Group("/dashboard", middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator))
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}
		}
	}
}
