package routes

import (
	"citizen-services-api/controllers"
	"citizen-services-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Registration and login
			public.POST("/users/register", controllers.Register)
			public.POST("/users/login", controllers.Login)
			public.POST("/admins/login", controllers.AdminLogin)

			// Catalog browsing is open
			public.GET("/departments", controllers.GetAllDepartments)
			public.GET("/departments/:dept_id", controllers.GetDepartmentByID)
			public.GET("/departments/:dept_id/services", controllers.GetDepartmentServices)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Citizen Services API is running",
				})
			})
		}

		// User routes (require user authentication)
		users := v1.Group("/users")
		users.Use(middleware.AuthUser())
		{
			users.GET("/profile", controllers.ShowUserProfile)
			users.PUT("/profile", controllers.UpdateUserProfile)
			users.PUT("/change-password", controllers.ChangePassword)

			users.GET("/documents", controllers.ShowUserDocuments)
			users.POST("/documents", controllers.UploadDocument)
			users.DELETE("/documents/:document_id", controllers.DeleteDocument)

			users.GET("/notifications", controllers.GetUserNotifications)
			users.PUT("/notifications/:notification_id/read", controllers.MarkNotificationRead)

			users.GET("/receipts", controllers.GetUserReceipts)
			users.GET("/requests", controllers.GetMyRequests)
		}

		// Admin routes (require admin authentication)
		admins := v1.Group("/admins")
		admins.Use(middleware.AuthAdmin())
		{
			admins.GET("/profile", controllers.GetAdminProfile)
			admins.POST("/add", controllers.AddAdmin)
			admins.PUT("/reset-password/:admin_id", controllers.ResetAdminPassword)
		}

		// Catalog management (admin only)
		departments := v1.Group("/departments")
		departments.Use(middleware.AuthAdmin())
		{
			departments.POST("", controllers.CreateDepartment)
			departments.PUT("/:dept_id", controllers.UpdateDepartment)
			departments.DELETE("/:dept_id", controllers.DeleteDepartment)
			departments.GET("/:dept_id/stats", controllers.GetDepartmentStats)

			departments.GET("/:dept_id/services/all", controllers.GetServicesByDepartment)
			departments.POST("/:dept_id/services", controllers.AddService)
			departments.PUT("/:dept_id/services/:service_id", controllers.UpdateService)
			departments.DELETE("/:dept_id/services/:service_id", controllers.RemoveService)
			departments.PUT("/:dept_id/services/:service_id/toggle", controllers.ToggleServiceStatus)
			departments.GET("/:dept_id/services/:service_id/stats", controllers.GetServiceStats)
		}

		// Request lifecycle, user side
		userRequests := v1.Group("/requests")
		userRequests.Use(middleware.AuthUser())
		{
			userRequests.POST("", controllers.MakeRequest)
			userRequests.GET("/my-requests", controllers.GetMyRequests)
			userRequests.GET("/:request_id/status", controllers.CheckRequestStatus)
			userRequests.PUT("/:request_id/cancel", controllers.CancelRequest)
		}

		// Request administration
		adminRequests := v1.Group("/requests")
		adminRequests.Use(middleware.AuthAdmin())
		{
			adminRequests.GET("/all", controllers.GetAllRequests)
			adminRequests.GET("/:request_id", controllers.GetRequestDetails)
			adminRequests.PUT("/:request_id/status", controllers.UpdateRequestStatus)
			adminRequests.PUT("/:request_id/assign", controllers.AssignRequest)
		}
	}
}
