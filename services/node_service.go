package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"drivehub/models"
	"drivehub/repository"
	"drivehub/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const downloadURLExpiry = 1 * time.Hour

// NodeService covers node creation, listing and the small per-node
// mutations. Cascading lifecycle transitions live in TrashService.
type NodeService struct {
	nodes     repository.NodeRepository
	blobs     storage.BlobStore
	access    *AccessService
	summaries *SummaryService
}

func NewNodeService(nodes repository.NodeRepository, blobs storage.BlobStore, access *AccessService, summaries *SummaryService) *NodeService {
	return &NodeService{
		nodes:     nodes,
		blobs:     blobs,
		access:    access,
		summaries: summaries,
	}
}

// CreateFolder creates a folder owned by the requester. The parent, when
// given, must be an active folder.
func (s *NodeService) CreateFolder(ctx context.Context, owner primitive.ObjectID, name string, parentID *primitive.ObjectID) (*models.Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrInvalidArgument)
	}
	if err := s.validateParent(ctx, parentID); err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Node{
		OwnerID:    owner,
		ParentID:   parentID,
		Name:       name,
		IsFolder:   true,
		SharedWith: []models.ShareEntry{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.nodes.Create(ctx, folder); err != nil {
		return nil, upstream("folder create", err)
	}
	return folder, nil
}

// Upload stores the file bytes in the blob store and records the node.
// PDF uploads trigger summary generation in the background; its failure is
// logged, never surfaced to the uploader.
func (s *NodeService) Upload(ctx context.Context, owner primitive.ObjectID, name, mimeType string, data []byte, parentID *primitive.ObjectID) (*models.Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidArgument)
	}
	if err := s.validateParent(ctx, parentID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%d-%s", owner.Hex(), time.Now().UnixMilli(), name)
	if err := s.blobs.Put(key, data); err != nil {
		return nil, upstream("blob upload", err)
	}

	now := time.Now()
	file := &models.Node{
		OwnerID:    owner,
		ParentID:   parentID,
		Name:       name,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		StorageKey: key,
		SharedWith: []models.ShareEntry{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.nodes.Create(ctx, file); err != nil {
		return nil, upstream("file create", err)
	}

	if file.IsPDF() && s.summaries != nil {
		go func(id primitive.ObjectID) {
			if _, err := s.summaries.Generate(context.Background(), id); err != nil {
				log.Printf("Background summary for %s failed: %v", id.Hex(), err)
			}
		}(file.ID)
	}

	return file, nil
}

// List returns the active nodes under parent visible to the requester,
// folders first then name ascending.
func (s *NodeService) List(ctx context.Context, requester primitive.ObjectID, parentID *primitive.ObjectID) ([]models.Node, error) {
	nodes, err := s.nodes.ListChildren(ctx, parentID, requester, true)
	if err != nil {
		return nil, upstream("list children", err)
	}
	return nodes, nil
}

// ListShared returns the active nodes shared with the requester.
func (s *NodeService) ListShared(ctx context.Context, requester primitive.ObjectID) ([]models.Node, error) {
	nodes, err := s.nodes.FindSharedWith(ctx, requester)
	if err != nil {
		return nil, upstream("list shared", err)
	}
	return nodes, nil
}

// ToggleStar flips the starred flag and returns the new value.
func (s *NodeService) ToggleStar(ctx context.Context, requester, nodeID primitive.ObjectID) (bool, error) {
	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return false, err
	}
	if err := s.access.Authorize(requester, node, VerbStar); err != nil {
		return false, err
	}

	starred := !node.Starred
	if err := s.nodes.SetStarred(ctx, nodeID, starred); err != nil {
		return false, upstream("star update", err)
	}
	return starred, nil
}

// Rename changes a node's display name. Editors and owners may rename.
func (s *NodeService) Rename(ctx context.Context, requester, nodeID primitive.ObjectID, name string) (*models.Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(requester, node, VerbRename); err != nil {
		return nil, err
	}

	if err := s.nodes.Rename(ctx, nodeID, name); err != nil {
		return nil, upstream("rename", err)
	}
	node.Name = name
	return node, nil
}

// DownloadURL returns a temporary signed URL for a file's content.
func (s *NodeService) DownloadURL(ctx context.Context, requester, nodeID primitive.ObjectID) (string, error) {
	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return "", err
	}
	if err := s.access.Authorize(requester, node, VerbDownload); err != nil {
		return "", err
	}
	if node.IsFolder {
		return "", fmt.Errorf("%w: cannot generate URL for folders", ErrInvalidArgument)
	}

	url, err := s.blobs.PresignedURL(node.StorageKey, downloadURLExpiry)
	if err != nil {
		return "", upstream("presign", err)
	}
	return url, nil
}

func (s *NodeService) validateParent(ctx context.Context, parentID *primitive.ObjectID) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.nodes.Get(ctx, *parentID)
	if err != nil {
		return err
	}
	if !parent.IsFolder {
		return fmt.Errorf("%w: parent must be a folder", ErrInvalidArgument)
	}
	if parent.IsDeleted {
		return fmt.Errorf("%w: parent folder is in the trash", ErrInvalidArgument)
	}
	return nil
}
