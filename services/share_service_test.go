package services

import (
	"context"
	"testing"

	"drivehub/models"
	"drivehub/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newShareFixture(t *testing.T) (*ShareService, *repository.MemoryNodeRepository, *models.User, *models.User) {
	t.Helper()
	nodes := repository.NewMemoryNodeRepository()
	users := repository.NewMemoryUserRepository()
	ctx := context.Background()

	owner := &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, users.Create(ctx, owner))
	target := &models.User{Name: "Target", Email: "target@example.com"}
	require.NoError(t, users.Create(ctx, target))

	return NewShareService(nodes, users, NewAccessService()), nodes, owner, target
}

func TestShareGrantsPermission(t *testing.T) {
	svc, nodes, owner, target := newShareFixture(t)
	ctx := context.Background()

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)

	node, err := svc.Share(ctx, owner.ID, file.ID, "target@example.com", models.PermissionEditor)
	require.NoError(t, err)
	require.Len(t, node.SharedWith, 1)
	assert.Equal(t, target.ID, node.SharedWith[0].UserID)
	assert.Equal(t, models.PermissionEditor, node.SharedWith[0].Permission)

	// Persisted, not just returned.
	stored, err := nodes.Get(ctx, file.ID)
	require.NoError(t, err)
	require.Len(t, stored.SharedWith, 1)
	assert.Equal(t, models.PermissionEditor, stored.SharedWith[0].Permission)
}

func TestShareUpsertsExistingEntry(t *testing.T) {
	svc, nodes, owner, target := newShareFixture(t)
	ctx := context.Background()

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)

	_, err := svc.Share(ctx, owner.ID, file.ID, "target@example.com", models.PermissionViewer)
	require.NoError(t, err)

	node, err := svc.Share(ctx, owner.ID, file.ID, "target@example.com", models.PermissionEditor)
	require.NoError(t, err)

	// Last permission wins; no duplicate entries.
	require.Len(t, node.SharedWith, 1)
	assert.Equal(t, target.ID, node.SharedWith[0].UserID)
	assert.Equal(t, models.PermissionEditor, node.SharedWith[0].Permission)
}

func TestShareDefaultsToViewer(t *testing.T) {
	svc, nodes, owner, _ := newShareFixture(t)
	ctx := context.Background()

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)

	node, err := svc.Share(ctx, owner.ID, file.ID, "target@example.com", "")
	require.NoError(t, err)
	require.Len(t, node.SharedWith, 1)
	assert.Equal(t, models.PermissionViewer, node.SharedWith[0].Permission)
}

func TestShareRejectsInvalidPermission(t *testing.T) {
	svc, nodes, owner, _ := newShareFixture(t)

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)

	_, err := svc.Share(context.Background(), owner.ID, file.ID, "target@example.com", "admin")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestShareIsOwnerOnly(t *testing.T) {
	svc, nodes, owner, target := newShareFixture(t)
	ctx := context.Background()

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)
	require.NoError(t, nodes.SetShares(ctx, file.ID, []models.ShareEntry{
		{UserID: target.ID, Permission: models.PermissionEditor},
	}))

	// Even an editor cannot re-share the node.
	_, err := svc.Share(ctx, target.ID, file.ID, "owner@example.com", models.PermissionViewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestShareUnknownTarget(t *testing.T) {
	svc, nodes, owner, _ := newShareFixture(t)

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)

	_, err := svc.Share(context.Background(), owner.ID, file.ID, "nobody@example.com", models.PermissionViewer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShareWithSelf(t *testing.T) {
	svc, nodes, owner, _ := newShareFixture(t)

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)

	_, err := svc.Share(context.Background(), owner.ID, file.ID, "owner@example.com", models.PermissionViewer)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestShareRequiresEmail(t *testing.T) {
	svc, nodes, owner, _ := newShareFixture(t)

	file := seedFile(nodes, owner.ID, "doc.pdf", nil)

	_, err := svc.Share(context.Background(), owner.ID, file.ID, "", models.PermissionViewer)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestShareMissingNode(t *testing.T) {
	svc, _, owner, _ := newShareFixture(t)

	_, err := svc.Share(context.Background(), owner.ID, primitive.NewObjectID(), "target@example.com", models.PermissionViewer)
	assert.ErrorIs(t, err, ErrNotFound)
}
