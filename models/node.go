package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission is the access level granted to a user a node is shared with.
type Permission string

const (
	PermissionViewer Permission = "viewer"
	PermissionEditor Permission = "editor"
)

// IsValid reports whether p is one of the known share permissions.
func (p Permission) IsValid() bool {
	return p == PermissionViewer || p == PermissionEditor
}

// ShareEntry grants one user one permission on a node. A node's SharedWith
// list holds at most one entry per user.
type ShareEntry struct {
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Permission Permission         `bson:"permission" json:"permission"`
}

// Summary is a cached AI-generated summary for a PDF file.
type Summary struct {
	Text        string    `bson:"text" json:"text"`
	MainPoints  []string  `bson:"main_points" json:"main_points"`
	Topics      []string  `bson:"topics" json:"topics"`
	GeneratedAt time.Time `bson:"generated_at" json:"generated_at"`
}

// Node is a single file or folder record in the drive tree. Folders carry
// size 0 and an empty storage key; ParentID nil means the node sits at the
// root of its owner's tree.
type Node struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	ParentID   *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Name       string              `bson:"name" json:"name" validate:"required"`
	IsFolder   bool                `bson:"is_folder" json:"is_folder"`
	MimeType   string              `bson:"mime_type" json:"mime_type"`
	Size       int64               `bson:"size" json:"size"`
	StorageKey string              `bson:"storage_key" json:"storage_key,omitempty"`
	Starred    bool                `bson:"starred" json:"starred"`
	SharedWith []ShareEntry        `bson:"shared_with" json:"shared_with"`
	IsDeleted  bool                `bson:"is_deleted" json:"is_deleted"`
	DeletedAt  *time.Time          `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	Summary    *Summary            `bson:"summary,omitempty" json:"summary,omitempty"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updated_at"`
}

// SharedPermission returns the permission granted to userID, if any.
func (n *Node) SharedPermission(userID primitive.ObjectID) (Permission, bool) {
	for _, entry := range n.SharedWith {
		if entry.UserID == userID {
			return entry.Permission, true
		}
	}
	return "", false
}

// IsPDF reports whether the node is a file with a PDF mime type.
func (n *Node) IsPDF() bool {
	return !n.IsFolder && strings.Contains(strings.ToLower(n.MimeType), "pdf")
}

type FolderCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID string `json:"parent_id,omitempty"`
}

type ShareNodeRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Permission string `json:"permission,omitempty"`
}

type RenameRequest struct {
	Name string `json:"name" validate:"required"`
}
