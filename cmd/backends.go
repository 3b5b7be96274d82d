package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/database/postgres"
	"github.com/kozaktomas/face-vault/internal/embedder"
	"github.com/kozaktomas/face-vault/internal/storage"
)

// backends holds the shared service dependencies built from configuration.
type backends struct {
	cfg      *config.Config
	pool     *postgres.Pool
	faces    *postgres.FaceRepository
	storage  *storage.MinioStorage
	embedder *embedder.Client
}

// initBackends connects to PostgreSQL, runs migrations, and builds the blob
// storage and embedding clients. Callers must Close() the result.
func initBackends(ctx context.Context) (*backends, error) {
	cfg := config.Load()

	pool, err := postgres.NewPool(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := pool.Migrate(ctx, cfg.Embedding.Dim); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	blobs, err := storage.NewMinioStorage(&cfg.Storage)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create blob storage: %w", err)
	}

	return &backends{
		cfg:      cfg,
		pool:     pool,
		faces:    postgres.NewFaceRepository(pool),
		storage:  blobs,
		embedder: embedder.NewClient(cfg.Embedding.URL, cfg.Embedding.Model),
	}, nil
}

// Close releases the database pool.
func (b *backends) Close() {
	if err := b.pool.Close(); err != nil {
		fmt.Printf("Warning: failed to close database pool: %v\n", err)
	}
}
