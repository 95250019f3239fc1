package controllers

import (
	"drivehub/models"
	"drivehub/services"
	"drivehub/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register creates a new user account
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	resp, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		serviceErrorResponse(c, err, "Registration failed")
		return
	}

	utils.CreatedResponse(c, "Account created successfully", resp)
}

// Login authenticates a user
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceErrorResponse(c, err, "Login failed")
		return
	}

	utils.SuccessResponse(c, "Login successful", resp)
}
