package routes

import (
	"drivehub/config"
	"drivehub/controllers"
	"drivehub/middleware"
	"drivehub/repository"

	"github.com/gin-gonic/gin"
)

// Dependencies carries the wired controllers and the user repository the
// auth middleware needs.
type Dependencies struct {
	Auth  *controllers.AuthController
	Files *controllers.FileController
	Trash *controllers.TrashController
	Users repository.UserRepository
}

func SetupRoutes(r *gin.Engine, deps *Dependencies) {
	// Global middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Public routes
		AuthRoutes(v1, deps)

		// Protected routes
		FileRoutes(v1, deps)
	}

	// Locally stored blobs are served straight from disk
	if cfg := config.GetConfig(); cfg.StorageProvider == "local" {
		r.Static("/uploads", cfg.UploadPath)
	}
}
