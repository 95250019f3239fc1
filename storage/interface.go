package storage

import "time"

// BlobStore is the external binary-object collaborator. Node records hold
// opaque keys into it; folder nodes never touch it.
type BlobStore interface {
	Put(key string, data []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	PresignedURL(key string, expiry time.Duration) (string, error)
}

// StorageError represents storage-specific errors.
type StorageError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
}

func (e *StorageError) Error() string {
	return e.Message
}

// NewStorageError creates a new storage error.
func NewStorageError(provider, code, message, key string) *StorageError {
	return &StorageError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Key:      key,
	}
}
