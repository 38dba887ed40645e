package router

import (
	"schoolms/internal/config"
	"schoolms/internal/handlers"
	"schoolms/internal/middleware"
	"schoolms/internal/models"

	"github.com/gin-gonic/gin"
)

// New builds the API router. Route-to-role mapping is static configuration:
// the guard middleware runs before any domain handler.
func New(cfg *config.Config) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	authHandler := handlers.NewAuthHandler(cfg)
	classHandler := handlers.NewClassHandler()
	studentHandler := handlers.NewStudentHandler(cfg)
	teacherHandler := handlers.NewTeacherHandler(cfg)
	attendanceHandler := handlers.NewAttendanceHandler()
	feeHandler := handlers.NewFeeHandler()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register-admin", authHandler.RegisterAdmin)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/auth/me", authHandler.Me)
			protected.PUT("/auth/password", authHandler.ChangePassword)

			classes := protected.Group("/classes")
			{
				classes.POST("", middleware.RequireRole(models.RoleAdmin), classHandler.CreateClass)
				classes.GET("", classHandler.ListClasses)
				classes.GET("/:id", classHandler.GetClass)
			}

			students := protected.Group("/students")
			{
				students.POST("", middleware.RequireRole(models.RoleAdmin), studentHandler.CreateStudent)
				students.GET("", studentHandler.ListStudents)
				students.GET("/:id", studentHandler.GetStudent)
			}

			teachers := protected.Group("/teachers")
			{
				teachers.POST("", middleware.RequireRole(models.RoleAdmin), teacherHandler.CreateTeacher)
				teachers.GET("", teacherHandler.ListTeachers)
				teachers.GET("/:id", teacherHandler.GetTeacher)
			}

			attendance := protected.Group("/attendance")
			{
				attendance.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleTeacher), attendanceHandler.MarkBulk)
				attendance.GET("/class/:classId", attendanceHandler.GetClassAttendance)
				attendance.GET("/student/:id/stats", attendanceHandler.GetStudentStats)
			}

			fees := protected.Group("/fees")
			{
				fees.POST("", middleware.RequireRole(models.RoleAdmin), feeHandler.AssignFee)
				fees.GET("/student/:studentId", feeHandler.ListStudentFees)
				fees.PUT("/:id/pay", middleware.RequireRole(models.RoleAdmin), feeHandler.PayFee)
			}
		}
	}

	return router
}
