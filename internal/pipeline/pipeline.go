// Package pipeline orchestrates the per-image ingest flow: watermark,
// compress, upload, embed, store. Batches run on a bounded worker pool and
// never abort because one item failed.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kozaktomas/face-vault/internal/constants"
	"github.com/kozaktomas/face-vault/internal/database"
	"github.com/kozaktomas/face-vault/internal/embedder"
	"github.com/kozaktomas/face-vault/internal/imaging"
	"github.com/kozaktomas/face-vault/internal/storage"
)

// Pipeline wires the collaborators of the ingest path. Construct once at
// startup and share; all methods are safe for concurrent use.
type Pipeline struct {
	store       database.FaceWriter
	storage     storage.BlobStorage
	embedder    embedder.Embedder
	concurrency int
}

// New creates an ingest pipeline. Concurrency <= 0 falls back to the default
// worker count.
func New(store database.FaceWriter, blobs storage.BlobStorage, emb embedder.Embedder, concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = constants.UploadConcurrency
	}
	return &Pipeline{
		store:       store,
		storage:     blobs,
		embedder:    emb,
		concurrency: concurrency,
	}
}

// Item is one image submitted for ingest.
type Item struct {
	Filename string
	Data     []byte
}

// ItemResult is the per-item outcome of an ingest.
type ItemResult struct {
	Filename        string `json:"filename"`
	BlobURL         string `json:"blob_url"`
	Processed       bool   `json:"processed"`
	EmbeddingStored bool   `json:"embedding_stored"`
	Error           string `json:"error,omitempty"`
}

// BatchResult aggregates a batch ingest. Results keep submission order so
// callers can correlate entries with their input files.
type BatchResult struct {
	TotalFiles        int          `json:"total_files"`
	SuccessfulUploads int          `json:"successful_uploads"`
	FailedUploads     int          `json:"failed_uploads"`
	Results           []ItemResult `json:"results"`
	ProcessingTime    float64      `json:"processing_time"`
}

// validateExtension returns the matched allowed extension for a filename.
func validateExtension(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("no filename")
	}
	lower := strings.ToLower(filename)
	for _, ext := range constants.AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return ext, nil
		}
	}
	return "", fmt.Errorf("invalid file type %q", filepath.Ext(filename))
}

// ProcessOne runs the full ingest for a single image. When original is true
// the watermark/compression step is skipped and the raw bytes are stored.
// The scratch file used to derive the record key is removed on every exit
// path.
func (p *Pipeline) ProcessOne(ctx context.Context, item Item, watermark []byte, folder string, original bool) ItemResult {
	result := ItemResult{Filename: item.Filename}

	ext, err := validateExtension(item.Filename)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	content := item.Data
	if !original {
		content = imaging.Process(item.Data, watermark)
		ext = ".jpg" // processed uploads become JPEG
		result.Processed = true
	}

	if folder == "" {
		folder = constants.DefaultFolder
	}

	blobURL, err := p.storage.Put(ctx, content, ext, folder)
	if err != nil {
		result.Processed = false
		result.Error = fmt.Sprintf("upload failed: %v", err)
		return result
	}
	result.BlobURL = blobURL

	// The scratch file gives each ingest a unique record key and keeps the
	// processed bytes on disk for the duration of the embed call.
	scratch, err := os.CreateTemp("", "face-vault-*"+ext)
	if err != nil {
		result.Error = fmt.Sprintf("scratch file failed: %v", err)
		return result
	}
	scratchPath := scratch.Name()
	defer os.Remove(scratchPath)

	if _, err := scratch.Write(content); err != nil {
		scratch.Close()
		result.Error = fmt.Sprintf("scratch write failed: %v", err)
		return result
	}
	scratch.Close()

	embedding, err := p.embedder.ComputeEmbedding(ctx, content)
	if err != nil {
		// No face found or embedder unreachable; the record is skipped but
		// the blob stays uploaded, matching the original behavior.
		result.Error = fmt.Sprintf("embedding failed: %v", err)
		return result
	}

	if err := p.store.Upsert(ctx, database.FaceRecord{
		ImagePath: scratchPath,
		BlobURL:   blobURL,
		Embedding: embedding,
	}); err != nil {
		result.Error = fmt.Sprintf("store failed: %v", err)
		return result
	}

	result.EmbeddingStored = true
	return result
}

// ProgressFunc is called after each batch item completes.
type ProgressFunc func(done, total int)

// ProcessBatch ingests items concurrently on a bounded worker pool. Partial
// failure never aborts the batch; each item reports its own outcome.
func (p *Pipeline) ProcessBatch(ctx context.Context, items []Item, watermark []byte, folder string, original bool, onProgress ProgressFunc) BatchResult {
	start := time.Now()

	type indexedResult struct {
		index  int
		result ItemResult
	}

	resultsChan := make(chan indexedResult, len(items))
	semaphore := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup
	var doneCount int
	var progressMu sync.Mutex

	reportProgress := func() {
		if onProgress == nil {
			return
		}
		progressMu.Lock()
		doneCount++
		done := doneCount
		progressMu.Unlock()
		onProgress(done, len(items))
	}

	for i := range items {
		wg.Add(1)
		go func(idx int, item Item) {
			defer wg.Done()

			// Acquire semaphore
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				resultsChan <- indexedResult{idx, ItemResult{Filename: item.Filename, Error: ctx.Err().Error()}}
				reportProgress()
				return
			}

			resultsChan <- indexedResult{idx, p.ProcessOne(ctx, item, watermark, folder, original)}
			reportProgress()
		}(i, items[i])
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results maintaining submission order.
	results := make([]ItemResult, len(items))
	for r := range resultsChan {
		results[r.index] = r.result
	}

	batch := BatchResult{
		TotalFiles:     len(items),
		Results:        results,
		ProcessingTime: time.Since(start).Seconds(),
	}
	for _, r := range results {
		if r.EmbeddingStored {
			batch.SuccessfulUploads++
		} else {
			batch.FailedUploads++
		}
	}

	return batch
}
