// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Upload constants
const (
	// MaxUploadSize is the maximum size of a multipart upload request (100 MB)
	MaxUploadSize = 100 << 20

	// DefaultFolder is the storage folder used when the caller does not name one
	DefaultFolder = "face-images"

	// UploadConcurrency is the number of parallel workers for batch ingest
	UploadConcurrency = 5
)

// AllowedExtensions lists the accepted image file extensions (lowercase).
var AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Similarity search constants
const (
	// DefaultDistanceThreshold is the default maximum cosine distance for a match.
	// Lower values = stricter matching.
	DefaultDistanceThreshold = 0.40

	// DefaultSearchLimit is the default number of ranked matches returned to the caller
	DefaultSearchLimit = 5
)

// Compression constants
const (
	// MaxImageSize is the maximum dimension (width or height) before the
	// compressor downscales the input once, ahead of the encode loop
	MaxImageSize = 1920

	// TargetImageBytes is the byte budget the compressor aims for (500 KiB)
	TargetImageBytes = 500 * 1024
)

// Watermark constants
const (
	// WatermarkWidthRatio is the mark width as a fraction of the base width
	WatermarkWidthRatio = 0.10

	// WatermarkPaddingRatio is the bottom-right padding as a fraction of the base width
	WatermarkPaddingRatio = 0.02
)
