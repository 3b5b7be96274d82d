// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kozaktomas/face-vault/internal/database"
)

// FaceStore is an in-memory implementation of database.FaceWriter.
// It mirrors the substring folder matching of the PostgreSQL repository.
type FaceStore struct {
	mu      sync.RWMutex
	records map[string]database.FaceRecord

	// Error injection
	UpsertError error
	ListError   error
	DeleteError error
	CountError  error
}

// NewFaceStore creates a new in-memory face store.
func NewFaceStore() *FaceStore {
	return &FaceStore{
		records: make(map[string]database.FaceRecord),
	}
}

// Upsert inserts or replaces a record by image path.
func (m *FaceStore) Upsert(ctx context.Context, record database.FaceRecord) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.records[record.ImagePath]; ok {
		record.CreatedAt = existing.CreatedAt
	} else if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	m.records[record.ImagePath] = record
	return nil
}

// ListByFolder returns records whose blob URL contains /<folder>/.
func (m *FaceStore) ListByFolder(ctx context.Context, folder string) ([]database.FaceRecord, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	if folder == "" {
		return m.All(ctx)
	}

	pattern := database.FolderPattern(folder)

	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []database.FaceRecord
	for _, rec := range m.records {
		if strings.Contains(rec.BlobURL, pattern) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// All returns every stored record.
func (m *FaceStore) All(ctx context.Context) ([]database.FaceRecord, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]database.FaceRecord, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	return records, nil
}

// Count returns the number of stored records.
func (m *FaceStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// DeleteByFolder removes matching records and returns their blob keys.
func (m *FaceStore) DeleteByFolder(ctx context.Context, folder string) ([]string, error) {
	if m.DeleteError != nil {
		return nil, m.DeleteError
	}

	pattern := database.FolderPattern(folder)

	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for path, rec := range m.records {
		if strings.Contains(rec.BlobURL, pattern) {
			if key := database.BlobKey(rec.BlobURL); key != "" {
				keys = append(keys, key)
			}
			delete(m.records, path)
		}
	}
	return keys, nil
}

// Get returns the record for an image path, if present. Test helper.
func (m *FaceStore) Get(imagePath string) (database.FaceRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[imagePath]
	return rec, ok
}
