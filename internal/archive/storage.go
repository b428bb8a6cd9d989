package archive

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// Storage writes archived statements somewhere durable.
type Storage interface {
	// Write stores the content of r under objectName and returns its URI.
	Write(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
}

// uploadTimeout bounds a single object upload.
const uploadTimeout = 2 * time.Minute

// GCSStorage stores objects in a single Google Cloud Storage bucket.
// It assumes Application Default Credentials are configured.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

var _ Storage = (*GCSStorage)(nil)

// NewGCSStorage creates a storage client bound to bucket.
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("NewGCSStorage: bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewGCSStorage: create storage client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

// Write streams r into gs://bucket/objectName.
func (s *GCSStorage) Write(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("Write: copy to GCS writer: %w", err)
	}

	// Close finalizes the upload.
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("Write: finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

// Close releases the underlying storage client.
func (s *GCSStorage) Close() error {
	return s.client.Close()
}
