package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kozaktomas/face-vault/internal/database"
	"github.com/pgvector/pgvector-go"
)

// FaceRepository provides PostgreSQL-backed face record storage.
type FaceRepository struct {
	pool *Pool
}

// NewFaceRepository creates a new PostgreSQL face repository.
func NewFaceRepository(pool *Pool) *FaceRepository {
	return &FaceRepository{pool: pool}
}

// Upsert inserts a record or replaces an existing one keyed by image path.
// created_at is set on first insert only, so replace keeps the original
// registration time.
func (r *FaceRepository) Upsert(ctx context.Context, record database.FaceRecord) error {
	vec := pgvector.NewVector(record.Embedding)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO faces (image_path, blob_url, embedding, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (image_path)
		DO UPDATE SET blob_url = $2, embedding = $3
	`, record.ImagePath, record.BlobURL, vec)
	if err != nil {
		return fmt.Errorf("upsert face %q: %w", record.ImagePath, err)
	}

	return nil
}

// ListByFolder returns records whose blob URL contains /<folder>/.
// An empty folder returns everything. The LIKE match over-matches folder
// names that prefix longer ones; see database.FolderPattern.
func (r *FaceRepository) ListByFolder(ctx context.Context, folder string) ([]database.FaceRecord, error) {
	if folder == "" {
		return r.All(ctx)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT image_path, blob_url, embedding, created_at
		FROM faces
		WHERE blob_url LIKE $1
	`, "%"+database.FolderPattern(folder)+"%")
	if err != nil {
		return nil, fmt.Errorf("list faces by folder %q: %w", folder, err)
	}
	defer rows.Close()

	return scanFaces(rows)
}

// All returns every stored record.
func (r *FaceRepository) All(ctx context.Context) ([]database.FaceRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT image_path, blob_url, embedding, created_at
		FROM faces
	`)
	if err != nil {
		return nil, fmt.Errorf("list all faces: %w", err)
	}
	defer rows.Close()

	return scanFaces(rows)
}

// Count returns the total number of records stored.
func (r *FaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM faces").Scan(&count); err != nil {
		return 0, fmt.Errorf("count faces: %w", err)
	}
	return count, nil
}

// DeleteByFolder removes every record matching the folder and returns the
// blob key derived from each removed record's URL. Select and delete run in
// one transaction so a key is reported iff its record is gone.
func (r *FaceRepository) DeleteByFolder(ctx context.Context, folder string) ([]string, error) {
	pattern := "%" + database.FolderPattern(folder) + "%"

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	rows, err := tx.QueryContext(ctx, "SELECT blob_url FROM faces WHERE blob_url LIKE $1", pattern)
	if err != nil {
		return nil, fmt.Errorf("select folder %q records: %w", folder, err)
	}

	var keys []string
	for rows.Next() {
		var blobURL string
		if err := rows.Scan(&blobURL); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan blob url: %w", err)
		}
		if key := database.BlobKey(blobURL); key != "" {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate folder %q records: %w", folder, err)
	}
	rows.Close()

	if len(keys) == 0 {
		// Nothing matched; an empty folder is a successful zero-deletion.
		return nil, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM faces WHERE blob_url LIKE $1", pattern); err != nil {
		return nil, fmt.Errorf("delete folder %q records: %w", folder, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit folder %q delete: %w", folder, err)
	}

	return keys, nil
}

// scanFaces reads face records from a result set.
func scanFaces(rows *sql.Rows) ([]database.FaceRecord, error) {
	var records []database.FaceRecord
	for rows.Next() {
		var rec database.FaceRecord
		var vec pgvector.Vector
		if err := rows.Scan(&rec.ImagePath, &rec.BlobURL, &vec, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan face: %w", err)
		}
		rec.Embedding = vec.Slice()
		records = append(records, rec)
	}
	return records, rows.Err()
}
