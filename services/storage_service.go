package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/anritvox/backend-anritvox/structs"
)

// StorageService stores product images in an S3-compatible bucket and
// produces time-limited viewing URLs. Only object keys are persisted;
// signed URLs are generated per read and never written to the database.
type StorageService struct {
	logger *gecho.Logger
	cfg    *structs.StorageConfig
	client *minio.Client
}

func NewStorageService(logger *gecho.Logger, cfg *structs.Config) (*StorageService, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
		Region: cfg.Storage.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &StorageService{
		logger: logger,
		cfg:    cfg.Storage,
		client: client,
	}, nil
}

// Upload stores the image bytes under a fresh key and returns that key.
func (ss *StorageService) Upload(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("products/%s%s", uuid.New().String(), extensionFor(contentType))

	_, err := ss.client.PutObject(ctx, ss.cfg.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		ss.logger.Error("Failed to upload image", gecho.Field("error", err), gecho.Field("key", key))
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, nil
}

// Presign produces a temporary viewing URL for a stored object key.
func (ss *StorageService) Presign(ctx context.Context, key string) (string, error) {
	signed, err := ss.client.PresignedGetObject(ctx, ss.cfg.Bucket, key, ss.cfg.PresignTTL, url.Values{})
	if err != nil {
		ss.logger.Error("Failed to presign image URL", gecho.Field("error", err), gecho.Field("key", key))
		return "", fmt.Errorf("failed to presign url: %w", err)
	}
	return signed.String(), nil
}

// Delete removes a stored object. Missing objects are not an error.
func (ss *StorageService) Delete(ctx context.Context, key string) error {
	err := ss.client.RemoveObject(ctx, ss.cfg.Bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		ss.logger.Warn("Failed to delete stored image", gecho.Field("error", err), gecho.Field("key", key))
		return err
	}
	return nil
}

// MaxFileSize returns the per-image upload limit in bytes.
func (ss *StorageService) MaxFileSize() int64 {
	return ss.cfg.MaxFileSize
}

// ExtractKey recovers the object key from a stored file path. Early
// records persisted full (sometimes already signed) URLs instead of bare
// keys; those must be unwrapped before re-signing so URLs never get
// double-wrapped.
func ExtractKey(stored string) string {
	if !strings.Contains(stored, "://") {
		return strings.TrimPrefix(stored, "/")
	}

	parsed, err := url.Parse(stored)
	if err != nil {
		return stored
	}

	key := strings.TrimPrefix(parsed.Path, "/")

	// Path-style URLs carry the bucket as the first path segment.
	if idx := strings.IndexByte(key, '/'); idx > 0 && !strings.HasPrefix(key, "products/") {
		key = key[idx+1:]
	}
	return key
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}

// presignTimeout bounds how long a single presign call may take when
// hydrating product lists.
const presignTimeout = 10 * time.Second
