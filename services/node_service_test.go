package services

import (
	"context"
	"strings"
	"testing"

	"drivehub/models"
	"drivehub/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newNodeFixture() (*NodeService, *repository.MemoryNodeRepository, *fakeBlobStore) {
	nodes := repository.NewMemoryNodeRepository()
	blobs := newFakeBlobStore()
	return NewNodeService(nodes, blobs, NewAccessService(), nil), nodes, blobs
}

func TestCreateFolder(t *testing.T) {
	svc, nodes, _ := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	folder, err := svc.CreateFolder(ctx, owner, "Documents", nil)
	require.NoError(t, err)
	assert.True(t, folder.IsFolder)
	assert.Nil(t, folder.ParentID)

	child, err := svc.CreateFolder(ctx, owner, "Invoices", &folder.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, folder.ID, *child.ParentID)

	stored, err := nodes.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoices", stored.Name)
}

func TestCreateFolderValidation(t *testing.T) {
	svc, nodes, _ := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	_, err := svc.CreateFolder(ctx, owner, "", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	missing := primitive.NewObjectID()
	_, err = svc.CreateFolder(ctx, owner, "Docs", &missing)
	assert.ErrorIs(t, err, ErrNotFound)

	file := seedFile(nodes, owner, "not-a-folder.txt", nil)
	_, err = svc.CreateFolder(ctx, owner, "Docs", &file.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	trashed := seedFolder(nodes, owner, "Trashed", nil)
	require.NoError(t, nodes.MarkDeleted(ctx, trashed.ID, trashed.CreatedAt))
	_, err = svc.CreateFolder(ctx, owner, "Docs", &trashed.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpload(t *testing.T) {
	svc, nodes, blobs := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	data := []byte("hello world")
	file, err := svc.Upload(ctx, owner, "hello.txt", "text/plain", data, nil)
	require.NoError(t, err)

	assert.False(t, file.IsFolder)
	assert.Equal(t, int64(len(data)), file.Size)
	assert.Equal(t, "text/plain", file.MimeType)
	assert.True(t, strings.HasPrefix(file.StorageKey, owner.Hex()+"/"))
	assert.True(t, strings.HasSuffix(file.StorageKey, "-hello.txt"))

	stored, err := blobs.Get(file.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	_, err = nodes.Get(ctx, file.ID)
	assert.NoError(t, err)
}

func TestUploadBlobFailure(t *testing.T) {
	svc, nodes, blobs := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	blobs.failPut = true
	_, err := svc.Upload(ctx, owner, "hello.txt", "text/plain", []byte("x"), nil)
	assert.ErrorIs(t, err, ErrUpstreamFailure)

	// No record is created when the blob write fails.
	children, err := nodes.ListChildren(ctx, nil, owner, true)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestListFoldersFirst(t *testing.T) {
	svc, nodes, _ := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	seedFile(nodes, owner, "b.txt", nil)
	seedFolder(nodes, owner, "Z-folder", nil)
	seedFile(nodes, owner, "a.txt", nil)

	trashed := seedFile(nodes, owner, "gone.txt", nil)
	require.NoError(t, nodes.MarkDeleted(ctx, trashed.ID, trashed.CreatedAt))

	listed, err := svc.List(ctx, owner, nil)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Z-folder", listed[0].Name)
	assert.Equal(t, "a.txt", listed[1].Name)
	assert.Equal(t, "b.txt", listed[2].Name)
}

func TestListShared(t *testing.T) {
	svc, nodes, _ := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	viewer := primitive.NewObjectID()

	shared := seedFile(nodes, owner, "shared.txt", nil)
	require.NoError(t, nodes.SetShares(ctx, shared.ID, []models.ShareEntry{
		{UserID: viewer, Permission: models.PermissionViewer},
	}))
	seedFile(nodes, owner, "private.txt", nil)

	listed, err := svc.ListShared(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "shared.txt", listed[0].Name)
}

func TestToggleStar(t *testing.T) {
	svc, nodes, _ := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	file := seedFile(nodes, owner, "doc.pdf", nil)

	starred, err := svc.ToggleStar(ctx, owner, file.ID)
	require.NoError(t, err)
	assert.True(t, starred)

	starred, err = svc.ToggleStar(ctx, owner, file.ID)
	require.NoError(t, err)
	assert.False(t, starred)

	_, err = svc.ToggleStar(ctx, stranger, file.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRename(t *testing.T) {
	svc, nodes, _ := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	viewer := primitive.NewObjectID()

	file := seedFile(nodes, owner, "old.txt", nil)
	require.NoError(t, nodes.SetShares(ctx, file.ID, []models.ShareEntry{
		{UserID: viewer, Permission: models.PermissionViewer},
	}))

	renamed, err := svc.Rename(ctx, owner, file.ID, "new.txt")
	require.NoError(t, err)
	assert.Equal(t, "new.txt", renamed.Name)

	stored, err := nodes.Get(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.txt", stored.Name)

	_, err = svc.Rename(ctx, viewer, file.ID, "nope.txt")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Rename(ctx, owner, file.ID, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDownloadURL(t *testing.T) {
	svc, nodes, _ := newNodeFixture()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	file := seedFile(nodes, owner, "doc.pdf", nil)
	folder := seedFolder(nodes, owner, "Docs", nil)

	url, err := svc.DownloadURL(ctx, owner, file.ID)
	require.NoError(t, err)
	assert.Contains(t, url, file.StorageKey)

	_, err = svc.DownloadURL(ctx, owner, folder.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.DownloadURL(ctx, stranger, file.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
