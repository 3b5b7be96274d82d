// Package imaging implements the deterministic image pipeline every stored
// photo passes through before an embedding is requested: optional watermark
// overlay, alpha flattening, and best-effort compression to a byte budget.
package imaging

import (
	"bytes"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/kozaktomas/face-vault/internal/constants"
)

// Process applies the optional watermark to imageData and compresses the
// result to the configured byte budget. A nil mark skips the overlay.
//
// Processing never fails the caller: if the input cannot be decoded, the
// original bytes come back unmodified so the downstream consumer still has
// something storable.
func Process(imageData, watermark []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return imageData
	}

	if len(watermark) > 0 {
		mark, _, err := image.Decode(bytes.NewReader(watermark))
		if err == nil {
			img = Overlay(img, mark)
		}
	}

	// JPEG has no alpha channel; flatten onto white before encoding.
	flat := flatten(img)

	out, err := CompressToTarget(flat, constants.TargetImageBytes)
	if err != nil {
		return imageData
	}
	return out
}

// flatten draws img onto an opaque white canvas of the same size.
func flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	stddraw.Draw(flat, flat.Bounds(), image.White, image.Point{}, stddraw.Src)
	stddraw.Draw(flat, flat.Bounds(), img, bounds.Min, stddraw.Over)
	return flat
}

// scale resizes img to width x height with Catmull-Rom resampling.
func scale(img image.Image, width, height int) *image.RGBA {
	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)
	return resized
}
