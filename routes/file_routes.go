package routes

import (
	"drivehub/middleware"

	"github.com/gin-gonic/gin"
)

func FileRoutes(r *gin.RouterGroup, deps *Dependencies) {
	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware(deps.Users))
	{
		files.GET("", deps.Files.List)
		files.POST("/upload", deps.Files.Upload)
		files.POST("/folder", deps.Files.CreateFolder)
		files.GET("/shared", deps.Files.ListShared)

		files.GET("/trash", deps.Trash.GetTrash)
		files.DELETE("/trash/empty", deps.Trash.EmptyTrash)

		files.GET("/:id/download", deps.Files.Download)
		files.GET("/:id/summary", deps.Files.GetSummary)
		files.POST("/:id/share", deps.Files.Share)
		files.POST("/:id/restore", deps.Trash.Restore)
		files.PATCH("/:id/star", deps.Files.ToggleStar)
		files.PATCH("/:id", deps.Files.Rename)
		files.DELETE("/:id", deps.Files.Delete)
	}
}
