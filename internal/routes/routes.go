package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/traindesk/traindesk-backend/internal/handler"
	"github.com/traindesk/traindesk-backend/internal/middleware"
	"github.com/traindesk/traindesk-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	blockoutHandler *handler.BlockoutHandler,
	trainerHandler *handler.TrainerHandler,
	healthHandler *handler.HealthHandler,
	jwtManager *jwt.Manager,
) {
	router.GET("/health", healthHandler.Check)

	// Trainer schedule reads (public within the internal network)
	trainer := router.Group("/trainer")
	trainer.GET("/:trainerId/blockouts", trainerHandler.ListBlockouts)
	trainer.GET("/:trainerId/calendar", trainerHandler.Calendar)
	trainer.GET("/:trainerId/course-runs", trainerHandler.ListCourseRuns)

	// Trainer directory
	trainers := router.Group("/trainers")
	trainers.GET("", trainerHandler.List)
	trainers.GET("/:id", trainerHandler.Get)

	// Blockout CRUD; mutations require a bearer token
	blockouts := router.Group("/blockouts")
	blockouts.GET("/:id", blockoutHandler.Get)
	blockouts.POST("", middleware.JWTAuth(jwtManager), blockoutHandler.Create)
	blockouts.PUT("/:id", middleware.JWTAuth(jwtManager), blockoutHandler.Update)
	blockouts.DELETE("/:id", middleware.JWTAuth(jwtManager), blockoutHandler.Delete)
}
