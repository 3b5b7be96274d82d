package database

import "context"

// FaceReader provides read-only access to stored face records.
type FaceReader interface {
	// ListByFolder returns records whose blob URL contains /<folder>/.
	// An empty folder returns every record.
	ListByFolder(ctx context.Context, folder string) ([]FaceRecord, error)
	// All returns every stored record.
	All(ctx context.Context) ([]FaceRecord, error)
	// Count returns the total number of records stored.
	Count(ctx context.Context) (int, error)
}

// FaceWriter provides write access to stored face records.
type FaceWriter interface {
	FaceReader

	// Upsert inserts a record or replaces the blob URL and embedding of an
	// existing one keyed by ImagePath. CreatedAt is preserved on replace.
	Upsert(ctx context.Context, record FaceRecord) error

	// DeleteByFolder removes every record matching the folder and returns
	// the blob key derived from each removed record's URL. The find and
	// delete happen in one transaction: a key is returned iff its record
	// was removed.
	DeleteByFolder(ctx context.Context, folder string) ([]string, error)
}
