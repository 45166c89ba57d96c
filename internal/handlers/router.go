package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/services"
	"github.com/SAP-F-2025/hostel-service/internal/utils"
)

type HandlerManager struct {
	studentHandler *RecordHandler[models.Student]
	foodHandler    *RecordHandler[models.Food]
	userHandler    *UserHandler
	exportHandler  *ExportHandler
	healthHandler  *HealthHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		studentHandler: NewStudentHandler(serviceManager.Students(), logger),
		foodHandler:    NewFoodHandler(serviceManager.Foods(), logger),
		userHandler:    NewUserHandler(serviceManager.Users(), logger),
		exportHandler:  NewExportHandler(serviceManager.Export(), logger),
		healthHandler:  NewHealthHandler(serviceManager, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/", hm.healthHandler.Home)
	router.GET("/test", hm.healthHandler.Test)
	router.GET("/health", hm.healthHandler.Health)

	// Student routes; single records live under /tutors
	students := router.Group("/students")
	{
		students.GET("", hm.studentHandler.List)
		students.POST("", hm.studentHandler.Create)
		students.GET("/export", hm.exportHandler.ExportStudents)
	}

	tutors := router.Group("/tutors")
	{
		tutors.GET("/:id", hm.studentHandler.Get)
		tutors.DELETE("/:id", hm.studentHandler.Delete)
		tutors.PUT("/:id", hm.studentHandler.UpdateStatus)
	}

	// Food routes; single records live under /orders
	foods := router.Group("/foods")
	{
		foods.GET("", hm.foodHandler.List)
		foods.POST("", hm.foodHandler.Create)
		foods.GET("/export", hm.exportHandler.ExportFoods)
	}

	orders := router.Group("/orders")
	{
		orders.DELETE("/:id", hm.foodHandler.Delete)
		orders.PUT("/:id", hm.foodHandler.UpdateStatus)
	}

	users := router.Group("/users")
	{
		users.GET("", hm.userHandler.ListUsers)
		users.POST("", hm.userHandler.CreateUser)
		users.PUT("", hm.userHandler.UpsertUser)
		users.GET("/:email", hm.userHandler.GetRoleFlags)
		users.PUT("/admin", hm.userHandler.MakeAdmin)
		users.PUT("/teacher", hm.userHandler.MakeTeacher)
	}
}
