package controllers

import (
	"errors"
	"net/http"

	"drivehub/services"
	"drivehub/utils"

	"github.com/gin-gonic/gin"
)

// serviceErrorResponse maps a service error onto the right HTTP status.
func serviceErrorResponse(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, services.ErrPermissionDenied):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidArgument):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrUpstreamFailure):
		utils.ErrorResponse(c, http.StatusBadGateway, fallback, map[string]interface{}{
			"error": err.Error(),
		})
	default:
		utils.InternalServerErrorResponse(c, fallback)
	}
}
