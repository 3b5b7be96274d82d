package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kozaktomas/face-vault/internal/config"
)

// MinioStorage implements BlobStorage on any S3-compatible endpoint.
type MinioStorage struct {
	client *minio.Client
	bucket string
	useSSL bool
}

// NewMinioStorage creates a blob store from the storage configuration.
func NewMinioStorage(cfg *config.StorageConfig) (*MinioStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket, useSSL: cfg.UseSSL}, nil
}

// Put uploads data as <folder>/<uuid><extension> and returns the object URL.
func (s *MinioStorage) Put(ctx context.Context, data []byte, extension, folder string) (string, error) {
	key := strings.Trim(folder, "/") + "/" + uuid.New().String() + extension

	contentType := "image/" + strings.TrimPrefix(extension, ".")
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %q: %w", key, err)
	}

	return s.objectURL(key), nil
}

// DeleteMany removes the given keys. Keys derived from object URLs carry the
// bucket as their first path segment; that prefix is stripped before the
// delete call. Missing objects are not an error.
func (s *MinioStorage) DeleteMany(ctx context.Context, keys []string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: strings.TrimPrefix(key, s.bucket+"/")}
	}
	close(objectsCh)

	deleted := len(keys)
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rErr.Err == nil {
			continue
		}
		errResp := minio.ToErrorResponse(rErr.Err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			continue // already gone counts as deleted
		}
		deleted--
		return deleted, fmt.Errorf("failed to delete object %q: %w", rErr.ObjectName, rErr.Err)
	}

	return deleted, nil
}

// List returns the objects stored under folder.
func (s *MinioStorage) List(ctx context.Context, folder string) ([]Object, error) {
	prefix := strings.Trim(folder, "/") + "/"

	var objects []Object
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list folder %q: %w", folder, obj.Err)
		}
		if obj.Key == prefix {
			continue
		}
		objects = append(objects, Object{
			Key:          obj.Key,
			URL:          s.objectURL(obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return objects, nil
}

// objectURL builds the path-style public URL for a key. The bucket segment
// stays in the URL so database.BlobKey round-trips back to a deletable key.
func (s *MinioStorage) objectURL(key string) string {
	scheme := "https"
	if !s.useSSL {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key)
}
