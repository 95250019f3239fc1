package storage

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Config holds connection settings for an S3 or S3-compatible bucket.
type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// S3Client implements BlobStore for Amazon S3.
type S3Client struct {
	client *s3.S3
	bucket string
}

// NewS3Client creates a new S3 client.
func NewS3Client(cfg S3Config) (*S3Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	// Custom endpoint for S3-compatible services
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %v", err)
	}

	return &S3Client{
		client: s3.New(sess),
		bucket: cfg.Bucket,
	}, nil
}

// Put uploads data to S3.
func (s *S3Client) Put(key string, data []byte) error {
	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return NewStorageError("s3", "UPLOAD_FAILED", err.Error(), key)
	}
	return nil
}

// Get downloads data from S3.
func (s *S3Client) Get(key string) ([]byte, error) {
	result, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, NewStorageError("s3", "DOWNLOAD_FAILED", err.Error(), key)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, NewStorageError("s3", "READ_FAILED", err.Error(), key)
	}
	return data, nil
}

// Delete deletes an object from S3.
func (s *S3Client) Delete(key string) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NewStorageError("s3", "DELETE_FAILED", err.Error(), key)
	}
	return nil
}

// PresignedURL generates a temporary download URL.
func (s *S3Client) PresignedURL(key string, expiry time.Duration) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiry)
	if err != nil {
		return "", NewStorageError("s3", "PRESIGN_FAILED", err.Error(), key)
	}
	return url, nil
}
