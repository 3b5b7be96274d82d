package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/kozaktomas/face-vault/internal/constants"
)

// Compression ladder parameters. The loop walks quality down first and only
// then trades resolution, because a sharp smaller image beats a blurry large
// one once quality reduction stops helping.
const (
	startQuality    = 90
	qualityStep     = 10
	qualityFloor    = 70
	resetQuality    = 85 // after a shrink the smaller canvas earns quality back
	fallbackQuality = 50 // last resort once the image cannot shrink further
	shrinkRatio     = 0.75
	minWidth        = 600
	maxAttempts     = 15
)

// CompressToTarget encodes img as JPEG within maxBytes, walking a bounded
// quality/resize ladder. If the attempt budget runs out the last encoding is
// returned anyway; the only error case is an image the JPEG encoder rejects.
func CompressToTarget(img image.Image, maxBytes int) ([]byte, error) {
	// Very large sources will never fit the budget through quality reduction
	// alone, so bound the dimensions once before the loop.
	bounds := img.Bounds()
	if bounds.Dx() > constants.MaxImageSize || bounds.Dy() > constants.MaxImageSize {
		img = resizeToFit(img, constants.MaxImageSize)
	}

	quality := startQuality
	var buf bytes.Buffer

	for attempt := 0; attempt < maxAttempts; attempt++ {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		if buf.Len() <= maxBytes {
			return buf.Bytes(), nil
		}

		if quality > qualityFloor {
			quality -= qualityStep
			continue
		}

		newWidth := int(float64(img.Bounds().Dx()) * shrinkRatio)
		newHeight := int(float64(img.Bounds().Dy()) * shrinkRatio)
		if newWidth < minWidth {
			// Tiny and still over budget; force low quality for the
			// remaining attempts instead of shrinking into uselessness.
			quality = fallbackQuality
			continue
		}

		img = scale(img, newWidth, newHeight)
		quality = resetQuality
	}

	// Attempt budget exhausted: best effort wins over failure.
	return buf.Bytes(), nil
}

// resizeToFit downscales img so neither dimension exceeds maxSize,
// preserving aspect ratio.
func resizeToFit(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var newWidth, newHeight int
	if width > height {
		newWidth = maxSize
		newHeight = int(float64(height) * float64(maxSize) / float64(width))
	} else {
		newHeight = maxSize
		newWidth = int(float64(width) * float64(maxSize) / float64(height))
	}

	return scale(img, newWidth, newHeight)
}
