package services

import (
	"fmt"

	"drivehub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the access level a requester holds on a node, derived from
// ownership plus the node's shared-with list. Roles are ordered so that a
// higher role always includes the verbs of a lower one.
type Role int

const (
	RoleNone Role = iota
	RoleViewer
	RoleEditor
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleEditor:
		return "editor"
	case RoleViewer:
		return "viewer"
	default:
		return "none"
	}
}

// Verb is an operation gated by the access policy.
type Verb string

const (
	VerbView     Verb = "view"
	VerbDownload Verb = "download"
	VerbStar     Verb = "star"
	VerbShare    Verb = "share"
	VerbRename   Verb = "rename"
	VerbTrash    Verb = "trash"
	VerbRestore  Verb = "restore"
	VerbPurge    Verb = "purge"
)

// minimumRole is the policy table: the weakest role allowed per verb.
var minimumRole = map[Verb]Role{
	VerbView:     RoleViewer,
	VerbDownload: RoleViewer,
	VerbStar:     RoleViewer,
	VerbRename:   RoleEditor,
	VerbTrash:    RoleEditor,
	VerbShare:    RoleOwner,
	VerbRestore:  RoleOwner,
	VerbPurge:    RoleOwner,
}

// AccessService derives roles and enforces the verb policy.
type AccessService struct{}

func NewAccessService() *AccessService {
	return &AccessService{}
}

// RoleOf returns the role userID holds on node.
func (s *AccessService) RoleOf(userID primitive.ObjectID, node *models.Node) Role {
	if node.OwnerID == userID {
		return RoleOwner
	}
	if permission, ok := node.SharedPermission(userID); ok {
		switch permission {
		case models.PermissionEditor:
			return RoleEditor
		case models.PermissionViewer:
			return RoleViewer
		}
	}
	return RoleNone
}

// Authorize returns ErrPermissionDenied unless userID may perform verb on
// node.
func (s *AccessService) Authorize(userID primitive.ObjectID, node *models.Node, verb Verb) error {
	required, ok := minimumRole[verb]
	if !ok {
		return fmt.Errorf("unknown verb: %s", verb)
	}
	if s.RoleOf(userID, node) < required {
		return fmt.Errorf("%w: %s requires %s", ErrPermissionDenied, verb, required)
	}
	return nil
}
