package controllers

import (
	"io"

	"drivehub/config"
	"drivehub/models"
	"drivehub/services"
	"drivehub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FileController struct {
	nodeService    *services.NodeService
	shareService   *services.ShareService
	trashService   *services.TrashService
	summaryService *services.SummaryService
}

func NewFileController(nodeService *services.NodeService, shareService *services.ShareService, trashService *services.TrashService, summaryService *services.SummaryService) *FileController {
	return &FileController{
		nodeService:    nodeService,
		shareService:   shareService,
		trashService:   trashService,
		summaryService: summaryService,
	}
}

// Upload stores an uploaded file under the optional parent folder
func (fc *FileController) Upload(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}
	if max := config.GetConfig().MaxUploadSize; max > 0 && fileHeader.Size > max {
		utils.BadRequestResponse(c, "File exceeds the maximum upload size")
		return
	}

	parentID, ok := optionalObjectID(c, c.PostForm("parent"))
	if !ok {
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read uploaded file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read uploaded file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	node, err := fc.nodeService.Upload(c.Request.Context(), user.ID, fileHeader.Filename, mimeType, data, parentID)
	if err != nil {
		serviceErrorResponse(c, err, "Upload failed")
		return
	}

	utils.CreatedResponse(c, "File uploaded successfully", node)
}

// CreateFolder creates a new folder
func (fc *FileController) CreateFolder(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	var req models.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	parentID, ok := optionalObjectID(c, req.ParentID)
	if !ok {
		return
	}

	folder, err := fc.nodeService.CreateFolder(c.Request.Context(), user.ID, req.Name, parentID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to create folder")
		return
	}

	utils.CreatedResponse(c, "Folder created successfully", folder)
}

// List returns the active nodes under the given parent
func (fc *FileController) List(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	parentID, ok := optionalObjectID(c, c.Query("parent"))
	if !ok {
		return
	}

	nodes, err := fc.nodeService.List(c.Request.Context(), user.ID, parentID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to list files")
		return
	}

	utils.SuccessResponse(c, "Files retrieved successfully", nodes)
}

// ListShared returns the nodes shared with the requester
func (fc *FileController) ListShared(c *gin.Context) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return
	}

	nodes, err := fc.nodeService.ListShared(c.Request.Context(), user.ID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to list shared files")
		return
	}

	utils.SuccessResponse(c, "Shared files retrieved successfully", nodes)
}

// Download returns a temporary signed URL for the file content
func (fc *FileController) Download(c *gin.Context) {
	user, nodeID, ok := requireUserAndNodeID(c)
	if !ok {
		return
	}

	url, err := fc.nodeService.DownloadURL(c.Request.Context(), user.ID, nodeID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to generate download URL")
		return
	}

	utils.SuccessResponse(c, "Download URL generated", gin.H{"url": url})
}

// Share grants another user access to the node
func (fc *FileController) Share(c *gin.Context) {
	user, nodeID, ok := requireUserAndNodeID(c)
	if !ok {
		return
	}

	var req models.ShareNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	node, err := fc.shareService.Share(c.Request.Context(), user.ID, nodeID, req.Email, models.Permission(req.Permission))
	if err != nil {
		serviceErrorResponse(c, err, "Failed to share")
		return
	}

	utils.SuccessResponse(c, "Shared successfully", node)
}

// ToggleStar flips the starred flag on the node
func (fc *FileController) ToggleStar(c *gin.Context) {
	user, nodeID, ok := requireUserAndNodeID(c)
	if !ok {
		return
	}

	starred, err := fc.nodeService.ToggleStar(c.Request.Context(), user.ID, nodeID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to update star")
		return
	}

	utils.SuccessResponse(c, "Star updated", gin.H{"starred": starred})
}

// Rename changes the node's display name
func (fc *FileController) Rename(c *gin.Context) {
	user, nodeID, ok := requireUserAndNodeID(c)
	if !ok {
		return
	}

	var req models.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	node, err := fc.nodeService.Rename(c.Request.Context(), user.ID, nodeID, req.Name)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to rename")
		return
	}

	utils.SuccessResponse(c, "Renamed successfully", node)
}

// Delete moves the node to the trash, or removes it permanently when
// ?permanent=true
func (fc *FileController) Delete(c *gin.Context) {
	user, nodeID, ok := requireUserAndNodeID(c)
	if !ok {
		return
	}

	if c.Query("permanent") == "true" {
		if err := fc.trashService.Purge(c.Request.Context(), user.ID, nodeID); err != nil {
			serviceErrorResponse(c, err, "Failed to delete permanently")
			return
		}
		utils.SuccessResponse(c, "Deleted permanently", nil)
		return
	}

	if err := fc.trashService.SoftDelete(c.Request.Context(), user.ID, nodeID); err != nil {
		serviceErrorResponse(c, err, "Failed to move to trash")
		return
	}
	utils.SuccessResponse(c, "Moved to trash", nil)
}

// GetSummary returns the AI summary for a PDF file
func (fc *FileController) GetSummary(c *gin.Context) {
	user, nodeID, ok := requireUserAndNodeID(c)
	if !ok {
		return
	}

	summary, err := fc.summaryService.GetSummary(c.Request.Context(), user.ID, nodeID)
	if err != nil {
		serviceErrorResponse(c, err, "Failed to generate summary")
		return
	}

	utils.SuccessResponse(c, "Summary generated", summary)
}

// requireUserAndNodeID pulls the authenticated user and the :id path
// parameter, writing the error response itself on failure.
func requireUserAndNodeID(c *gin.Context) (*models.User, primitive.ObjectID, bool) {
	user, exists := utils.GetUserFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "User not found in context")
		return nil, primitive.NilObjectID, false
	}

	nodeID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid file ID")
		return nil, primitive.NilObjectID, false
	}
	return user, nodeID, true
}

// optionalObjectID parses an optional id string, writing a 400 when it is
// present but malformed.
func optionalObjectID(c *gin.Context, raw string) (*primitive.ObjectID, bool) {
	if raw == "" || raw == "root" {
		return nil, true
	}
	id, err := utils.StringToObjectID(raw)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid parent ID")
		return nil, false
	}
	return &id, true
}
