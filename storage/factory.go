package storage

import "fmt"

// NewBlobStore builds the configured blob store implementation.
func NewBlobStore(provider string, s3cfg S3Config, localPath, baseURL string) (BlobStore, error) {
	switch provider {
	case "s3":
		return NewS3Client(s3cfg)
	case "local":
		return NewLocalClient(localPath, baseURL)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", provider)
	}
}
