package pipeline

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-vault/internal/database"
	"github.com/kozaktomas/face-vault/internal/storage"
)

// FolderDeletion coordinates removing a folder from the store and the blob
// storage. The store goes first: it is the source of truth for search, so a
// crash between the two steps leaves orphaned blobs (recoverable by manual
// cleanup) rather than store records pointing at deleted blobs.
type FolderDeletion struct {
	store   database.FaceWriter
	storage storage.BlobStorage
}

// NewFolderDeletion creates a folder deletion coordinator.
func NewFolderDeletion(store database.FaceWriter, blobs storage.BlobStorage) *FolderDeletion {
	return &FolderDeletion{store: store, storage: blobs}
}

// DeleteResult summarizes a folder deletion.
type DeleteResult struct {
	RecordsRemoved int `json:"db_records_removed"`
	BlobsDeleted   int `json:"blobs_deleted"`
}

// Delete removes every record in the folder and then the blobs behind them,
// using the exact keys the store reported. An empty folder is a success with
// zero deletions. Errors from either step are surfaced: folder deletion has
// externally visible consequences, so silent partial failure is not
// acceptable here.
func (c *FolderDeletion) Delete(ctx context.Context, folder string) (DeleteResult, error) {
	keys, err := c.store.DeleteByFolder(ctx, folder)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("deleting folder %q records: %w", folder, err)
	}

	result := DeleteResult{RecordsRemoved: len(keys)}
	if len(keys) == 0 {
		return result, nil
	}

	deleted, err := c.storage.DeleteMany(ctx, keys)
	result.BlobsDeleted = deleted
	if err != nil {
		// Records are already gone; the remaining blobs are orphans.
		return result, fmt.Errorf("deleting folder %q blobs: %w", folder, err)
	}

	return result, nil
}
