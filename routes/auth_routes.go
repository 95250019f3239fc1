package routes

import (
	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.RouterGroup, deps *Dependencies) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
	}
}
