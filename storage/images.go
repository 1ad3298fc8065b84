package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	gcs "cloud.google.com/go/storage"
	"go-roadwatch/types"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ImageStore uploads damage photos to a Cloud Storage bucket. An image upload
// failure must never block persisting the report; callers log the error and
// continue without image fields.
type ImageStore struct {
	client *gcs.Client
	bucket string
}

// NewImageStore wraps an injected storage client. The caller owns the client's
// lifecycle.
func NewImageStore(client *gcs.Client, bucket string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket}
}

// Upload writes the image under a timestamped path and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, data []byte, filename, contentType string) (types.ImageRef, error) {
	if s == nil || s.client == nil {
		return types.ImageRef{}, fmt.Errorf("image store not configured")
	}

	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")
	objectPath := fmt.Sprintf("uploads/%d_%s", time.Now().UnixMilli(), sanitized)

	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return types.ImageRef{}, fmt.Errorf("failed to write image %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return types.ImageRef{}, fmt.Errorf("failed to finalize image %s: %w", objectPath, err)
	}

	return types.ImageRef{
		URL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath),
		Path: objectPath,
	}, nil
}

// Delete removes a previously uploaded image.
func (s *ImageStore) Delete(ctx context.Context, objectPath string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("image store not configured")
	}
	if err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", objectPath, err)
	}
	return nil
}
