package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/kozaktomas/face-vault/internal/database"
	"github.com/kozaktomas/face-vault/internal/database/mock"
	"github.com/kozaktomas/face-vault/internal/storage"
)

// seedFolder registers a record and a matching blob for the given folder.
func seedFolder(t *testing.T, store *mock.FaceStore, blobs *storage.MockStorage, folder, name string) string {
	t.Helper()
	ctx := context.Background()

	url, err := blobs.Put(ctx, []byte("image bytes"), ".jpg", folder)
	if err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	err = store.Upsert(ctx, database.FaceRecord{
		ImagePath: name,
		BlobURL:   url,
		Embedding: []float32{1, 0},
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}
	return url
}

func TestFolderDeletion(t *testing.T) {
	store := mock.NewFaceStore()
	blobs := storage.NewMockStorage("bucket.example.com")
	coordinator := NewFolderDeletion(store, blobs)

	seedFolder(t, store, blobs, "class-10", "a.jpg")
	seedFolder(t, store, blobs, "class-10", "b.jpg")
	keepURL := seedFolder(t, store, blobs, "class-100", "c.jpg")

	result, err := coordinator.Delete(context.Background(), "class-10")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if result.RecordsRemoved != 2 {
		t.Errorf("expected 2 records removed, got %d", result.RecordsRemoved)
	}
	if result.BlobsDeleted != 2 {
		t.Errorf("expected 2 blobs deleted, got %d", result.BlobsDeleted)
	}

	// The class-100 record and blob must survive the class-10 delete.
	if _, ok := store.Get("c.jpg"); !ok {
		t.Error("class-100 record deleted by class-10 folder delete")
	}
	if !blobs.Has(database.BlobKey(keepURL)) {
		t.Error("class-100 blob deleted by class-10 folder delete")
	}

	remaining, _ := store.All(context.Background())
	if len(remaining) != 1 {
		t.Errorf("expected 1 surviving record, got %d", len(remaining))
	}
}

func TestFolderDeletionEmptyFolder(t *testing.T) {
	store := mock.NewFaceStore()
	blobs := storage.NewMockStorage("bucket.example.com")
	coordinator := NewFolderDeletion(store, blobs)

	result, err := coordinator.Delete(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("empty folder must be a success: %v", err)
	}
	if result.RecordsRemoved != 0 || result.BlobsDeleted != 0 {
		t.Errorf("expected zero deletions, got %+v", result)
	}
}

func TestFolderDeletionStoreErrorSurfaces(t *testing.T) {
	store := mock.NewFaceStore()
	store.DeleteError = errors.New("backend down")
	blobs := storage.NewMockStorage("bucket.example.com")
	coordinator := NewFolderDeletion(store, blobs)

	if _, err := coordinator.Delete(context.Background(), "class-10"); err == nil {
		t.Error("store failure must surface to the caller")
	}
	if blobs.Len() != 0 {
		t.Error("blob delete must not run when the store delete fails")
	}
}

func TestFolderDeletionBlobErrorSurfaces(t *testing.T) {
	store := mock.NewFaceStore()
	blobs := storage.NewMockStorage("bucket.example.com")
	seedFolder(t, store, blobs, "class-10", "a.jpg")
	blobs.DeleteError = errors.New("storage unavailable")

	coordinator := NewFolderDeletion(store, blobs)

	result, err := coordinator.Delete(context.Background(), "class-10")
	if err == nil {
		t.Fatal("blob failure must surface to the caller")
	}
	// The store delete already happened; the count reflects that.
	if result.RecordsRemoved != 1 {
		t.Errorf("expected 1 record removed before blob failure, got %d", result.RecordsRemoved)
	}
}
