package repository

import (
	"context"
	"errors"
	"time"

	"drivehub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// NodeRepository is durable CRUD over node records. Implementations perform
// independent per-node writes; no method spans more than one record.
type NodeRepository interface {
	Create(ctx context.Context, node *models.Node) error
	// Get returns the node or ErrNotFound.
	Get(ctx context.Context, id primitive.ObjectID) (*models.Node, error)

	// ListChildren returns the direct children of parent (nil = root),
	// ordered folders first then name ascending. When visibleTo is a real
	// user id the result is restricted to nodes that user owns or appears
	// in the shared-with list of; pass primitive.NilObjectID to skip the
	// visibility filter. When activeOnly is true trashed nodes are
	// excluded.
	ListChildren(ctx context.Context, parent *primitive.ObjectID, visibleTo primitive.ObjectID, activeOnly bool) ([]models.Node, error)

	Rename(ctx context.Context, id primitive.ObjectID, name string) error
	SetStarred(ctx context.Context, id primitive.ObjectID, starred bool) error
	SetShares(ctx context.Context, id primitive.ObjectID, shares []models.ShareEntry) error
	SetSummary(ctx context.Context, id primitive.ObjectID, summary *models.Summary) error

	// MarkDeleted and ClearDeleted flip the trash state of a single node.
	MarkDeleted(ctx context.Context, id primitive.ObjectID, at time.Time) error
	ClearDeleted(ctx context.Context, id primitive.ObjectID) error

	// HardDelete removes the record. Deleting an absent record is not an
	// error: flat trash purges visit nodes in arbitrary order and may
	// race their own earlier deletions.
	HardDelete(ctx context.Context, id primitive.ObjectID) error

	FindByOwner(ctx context.Context, owner primitive.ObjectID, deleted bool) ([]models.Node, error)
	FindSharedWith(ctx context.Context, user primitive.ObjectID) ([]models.Node, error)
	FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Node, error)
}

// UserRepository resolves account records for auth and share targets.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// GetByEmail returns the user or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
