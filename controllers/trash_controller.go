package controllers

import (
	"drivehub/services"
	"drivehub/utils"

	"github.com/gin-gonic/gin"
)

type TrashController struct {
	trashService *services.TrashService
}

func NewTrashController(trashService *services.TrashService) *TrashController {
	return &TrashController{trashService: trashService}
}

// GetTrash returns the requester's top-level trashed nodes, newest first
func (tc *TrashController) GetTrash(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	nodes, err := tc.trashService.GetTrash(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to list trash")
		return
	}

	utils.SuccessResponse(c, "Trash retrieved successfully", nodes)
}

// Restore brings a trashed node and its owned descendants back
func (tc *TrashController) Restore(c *gin.Context) {
	user, nodeID, ok := requireUserAndNodeID(c)
	if !ok {
		return
	}

	if err := tc.trashService.Restore(c.Request.Context(), user.ID, nodeID); err != nil {
		serviceErrorResponse(c, err, "Failed to restore")
		return
	}

	utils.SuccessResponse(c, "Restored successfully", nil)
}

// EmptyTrash permanently removes every trashed node owned by the requester
func (tc *TrashController) EmptyTrash(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	purged, err := tc.trashService.EmptyTrash(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to empty trash")
		return
	}

	utils.SuccessResponse(c, "Trash emptied", gin.H{"purged": purged})
}
