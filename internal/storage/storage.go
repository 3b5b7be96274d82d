// Package storage provides object storage for processed face images.
package storage

import (
	"context"
	"time"
)

// Object describes a stored blob.
type Object struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// BlobStorage is the object-store contract the ingest and folder-delete
// paths depend on. Keys are <folder>/<filename>; URLs embed the folder
// segment because the database derives folder membership from them.
type BlobStorage interface {
	// Put uploads data under a generated name inside folder and returns the
	// public URL of the stored object.
	Put(ctx context.Context, data []byte, extension, folder string) (string, error)
	// DeleteMany removes the given keys and returns how many were deleted.
	DeleteMany(ctx context.Context, keys []string) (int, error)
	// List returns the objects stored under folder.
	List(ctx context.Context, folder string) ([]Object, error)
}
