package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// LocalClient implements BlobStore on the local file system. Used for
// development; downloads are served from the /uploads static route instead
// of real presigned URLs.
type LocalClient struct {
	basePath string
	baseURL  string
}

// NewLocalClient creates a new local storage client.
func NewLocalClient(basePath, baseURL string) (*LocalClient, error) {
	if basePath == "" {
		basePath = "./uploads"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %v", err)
	}

	return &LocalClient{basePath: basePath, baseURL: baseURL}, nil
}

// Put saves data to the local file system.
func (lc *LocalClient) Put(key string, data []byte) error {
	fullPath := filepath.Join(lc.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Get reads data from the local file system.
func (lc *LocalClient) Get(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(lc.basePath, key))
}

// Delete removes a file. A missing file counts as deleted.
func (lc *LocalClient) Delete(key string) error {
	err := os.Remove(filepath.Join(lc.basePath, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// PresignedURL returns a static-route URL; local files carry no expiry.
func (lc *LocalClient) PresignedURL(key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("%s/uploads/%s", lc.baseURL, url.PathEscape(key)), nil
}
