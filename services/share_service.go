package services

import (
	"context"
	"fmt"

	"drivehub/models"
	"drivehub/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShareService maintains a node's shared-with list. Sharing is an
// owner-only upsert: at most one entry per target user, last permission
// wins. There is no unshare operation.
type ShareService struct {
	nodes  repository.NodeRepository
	users  repository.UserRepository
	access *AccessService
}

func NewShareService(nodes repository.NodeRepository, users repository.UserRepository, access *AccessService) *ShareService {
	return &ShareService{
		nodes:  nodes,
		users:  users,
		access: access,
	}
}

// Share grants targetEmail the given permission on the node and returns
// the updated node. An empty permission defaults to viewer.
func (s *ShareService) Share(ctx context.Context, requester, nodeID primitive.ObjectID, targetEmail string, permission models.Permission) (*models.Node, error) {
	if targetEmail == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}
	if permission == "" {
		permission = models.PermissionViewer
	}
	if !permission.IsValid() {
		return nil, fmt.Errorf("%w: permission must be viewer or editor", ErrInvalidArgument)
	}

	node, err := s.nodes.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(requester, node, VerbShare); err != nil {
		return nil, err
	}

	target, err := s.users.GetByEmail(ctx, targetEmail)
	if err != nil {
		return nil, err
	}
	if target.ID == requester {
		return nil, fmt.Errorf("%w: cannot share with yourself", ErrInvalidArgument)
	}

	shares := node.SharedWith
	updated := false
	for i := range shares {
		if shares[i].UserID == target.ID {
			shares[i].Permission = permission
			updated = true
			break
		}
	}
	if !updated {
		shares = append(shares, models.ShareEntry{UserID: target.ID, Permission: permission})
	}

	if err := s.nodes.SetShares(ctx, nodeID, shares); err != nil {
		return nil, upstream("share update", err)
	}

	node.SharedWith = shares
	return node, nil
}
