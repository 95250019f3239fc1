package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"drivehub/models"
	"drivehub/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeBlobStore records puts and deletes so tests can assert blob
// lifecycle behavior.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes map[string]int
	failPut bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		deletes: make(map[string]int),
	}
}

func (f *fakeBlobStore) Put(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return errors.New("put rejected")
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBlobStore) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func (f *fakeBlobStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes[key]++
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) PresignedURL(key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://blobs.test/%s", key), nil
}

func (f *fakeBlobStore) deleteCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes[key]
}

// seedFolder creates an active folder record directly in the repository.
func seedFolder(repo repository.NodeRepository, owner primitive.ObjectID, name string, parent *primitive.ObjectID) *models.Node {
	node := &models.Node{
		OwnerID:    owner,
		ParentID:   parent,
		Name:       name,
		IsFolder:   true,
		SharedWith: []models.ShareEntry{},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := repo.Create(context.Background(), node); err != nil {
		panic(err)
	}
	return node
}

// seedFile creates an active file record with a storage key.
func seedFile(repo repository.NodeRepository, owner primitive.ObjectID, name string, parent *primitive.ObjectID) *models.Node {
	node := &models.Node{
		OwnerID:    owner,
		ParentID:   parent,
		Name:       name,
		MimeType:   "text/plain",
		Size:       42,
		StorageKey: fmt.Sprintf("%s/%s", owner.Hex(), name),
		SharedWith: []models.ShareEntry{},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := repo.Create(context.Background(), node); err != nil {
		panic(err)
	}
	return node
}
