package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/otabek/davomat/internal/app/controllers"
	"github.com/otabek/davomat/internal/app/models"
	"github.com/otabek/davomat/internal/app/models/dto"
	"github.com/otabek/davomat/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	attendanceController *controllers.AttendanceController,
	groupController *controllers.GroupController,
	userController *controllers.UserController,
	certificateController *controllers.CertificateController,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Certificate verification is public: it is the QR scan target on the
	// printed PDF.
	v1.GET("/certificates/:id", certificateController.GetByID)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		groups := authenticated.Group("/groups")
		{
			groups.GET("/:id", groupController.GetGroup)

			groupsAdmin := groups.Group("")
			groupsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				groupsAdmin.POST("/:id/attendance", attendanceController.CreateAttendance)
				groupsAdmin.DELETE("/:id/members/:userId", groupController.RemoveMember)
				groupsAdmin.DELETE("/:id", groupController.DeleteGroup)
			}
		}

		attendance := authenticated.Group("/attendance")
		attendance.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			attendance.GET("/:id", attendanceController.GetRecord)
			attendance.PATCH("/:id/members/:userId", attendanceController.UpdateMemberStatus)
		}

		users := authenticated.Group("/users")
		{
			users.GET("/me/attendance", userController.MyAttendance)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				usersAdmin.GET("/attendance-stats", userController.AttendanceStats)
			}
		}

		certificates := authenticated.Group("/certificates")
		{
			certificates.GET("", certificateController.ListMine)

			certificatesSuperAdmin := certificates.Group("")
			certificatesSuperAdmin.Use(authMiddleware.SuperAdminOnly())
			{
				certificatesSuperAdmin.POST("", certificateController.Issue)
				certificatesSuperAdmin.DELETE("/:id", certificateController.Delete)
			}
		}
	}

	// Stored artifacts (certificate PDFs, group images)
	router.Static("/uploads", uploadsDir)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
