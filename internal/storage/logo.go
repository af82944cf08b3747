// Package storage holds the object-storage layer for shop assets.
package storage

import (
	"context"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// LogoStore writes shop logos to a Cloud Storage bucket and exposes their
// public URLs. Objects live under lubricenters/{id}/logo{ext} so a re-upload
// replaces the previous logo in place.
type LogoStore struct {
	client *gcs.Client
	bucket string
}

// NewLogoStore creates a LogoStore backed by the named bucket.
func NewLogoStore(client *gcs.Client, bucket string) (*LogoStore, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket name is empty")
	}
	return &LogoStore{client: client, bucket: bucket}, nil
}

// extensionFor maps the upload content type to a file extension. Unknown
// types keep a generic name; the content type on the object is what browsers
// actually honor.
func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

// Upload stores the logo bytes and returns the object's public URL. The
// bucket is expected to allow public reads of logo objects.
func (s *LogoStore) Upload(ctx context.Context, lubricenterID string, image []byte, contentType string) (string, error) {
	objectName := fmt.Sprintf("lubricenters/%s/logo%s", lubricenterID, extensionFor(contentType))

	writer := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=3600"

	if _, err := writer.Write(image); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write logo object '%s': %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize logo object '%s': %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}
