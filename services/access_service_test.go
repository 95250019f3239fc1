package services

import (
	"testing"

	"drivehub/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRoleOf(t *testing.T) {
	access := NewAccessService()
	owner := primitive.NewObjectID()
	editor := primitive.NewObjectID()
	viewer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	node := &models.Node{
		OwnerID: owner,
		SharedWith: []models.ShareEntry{
			{UserID: editor, Permission: models.PermissionEditor},
			{UserID: viewer, Permission: models.PermissionViewer},
		},
	}

	assert.Equal(t, RoleOwner, access.RoleOf(owner, node))
	assert.Equal(t, RoleEditor, access.RoleOf(editor, node))
	assert.Equal(t, RoleViewer, access.RoleOf(viewer, node))
	assert.Equal(t, RoleNone, access.RoleOf(stranger, node))
}

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleNone < RoleViewer)
	assert.True(t, RoleViewer < RoleEditor)
	assert.True(t, RoleEditor < RoleOwner)
}

func TestAuthorize(t *testing.T) {
	access := NewAccessService()
	owner := primitive.NewObjectID()
	editor := primitive.NewObjectID()
	viewer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	node := &models.Node{
		OwnerID: owner,
		SharedWith: []models.ShareEntry{
			{UserID: editor, Permission: models.PermissionEditor},
			{UserID: viewer, Permission: models.PermissionViewer},
		},
	}

	cases := []struct {
		name    string
		user    primitive.ObjectID
		verb    Verb
		allowed bool
	}{
		{"owner can share", owner, VerbShare, true},
		{"owner can purge", owner, VerbPurge, true},
		{"owner can restore", owner, VerbRestore, true},
		{"editor can trash", editor, VerbTrash, true},
		{"editor can rename", editor, VerbRename, true},
		{"editor can view", editor, VerbView, true},
		{"editor cannot share", editor, VerbShare, false},
		{"editor cannot restore", editor, VerbRestore, false},
		{"editor cannot purge", editor, VerbPurge, false},
		{"viewer can view", viewer, VerbView, true},
		{"viewer can download", viewer, VerbDownload, true},
		{"viewer can star", viewer, VerbStar, true},
		{"viewer cannot trash", viewer, VerbTrash, false},
		{"viewer cannot rename", viewer, VerbRename, false},
		{"stranger cannot view", stranger, VerbView, false},
		{"stranger cannot trash", stranger, VerbTrash, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := access.Authorize(tc.user, node, tc.verb)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPermissionDenied)
			}
		})
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "owner", RoleOwner.String())
	assert.Equal(t, "editor", RoleEditor.String())
	assert.Equal(t, "viewer", RoleViewer.String())
	assert.Equal(t, "none", RoleNone.String())
}
