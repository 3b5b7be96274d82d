package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/kozaktomas/face-vault/internal/constants"
)

// noisyImage produces an image that resists JPEG compression.
func noisyImage(width, height int) *image.RGBA {
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func flatImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCompressToTargetMeetsBudget(t *testing.T) {
	img := noisyImage(2400, 1800)

	out, err := CompressToTarget(img, constants.TargetImageBytes)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("compress returned empty bytes")
	}
	if len(out) > constants.TargetImageBytes {
		t.Errorf("output %d bytes exceeds budget %d", len(out), constants.TargetImageBytes)
	}

	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	if decoded.Bounds().Dx() > constants.MaxImageSize || decoded.Bounds().Dy() > constants.MaxImageSize {
		t.Errorf("initial bound was not applied: %v", decoded.Bounds())
	}
}

func TestCompressToTargetSmallInputFirstTry(t *testing.T) {
	img := flatImage(320, 240, color.RGBA{R: 200, G: 180, B: 160, A: 255})

	out, err := CompressToTarget(img, constants.TargetImageBytes)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}
	if len(out) == 0 || len(out) > constants.TargetImageBytes {
		t.Errorf("expected an in-budget encoding, got %d bytes", len(out))
	}

	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Bounds().Dx() != 320 {
		t.Errorf("small image must keep its dimensions, got %v", decoded.Bounds())
	}
}

func TestCompressToTargetSafetyValve(t *testing.T) {
	// A one-byte budget can never be met; the bounded loop must still
	// terminate and hand back the last encoding.
	img := noisyImage(800, 600)

	out, err := CompressToTarget(img, 1)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("exhausted compressor must return best-effort bytes, got none")
	}
	if _, _, err := image.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("best-effort output is not decodable: %v", err)
	}
}

func TestProcessUndecodableInputPassesThrough(t *testing.T) {
	garbage := []byte("not an image at all")

	out := Process(garbage, nil)
	if !bytes.Equal(out, garbage) {
		t.Error("undecodable input must come back unmodified")
	}
}

func TestProcessProducesJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, flatImage(640, 480, color.RGBA{R: 10, G: 20, B: 30, A: 255})); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	out := Process(buf.Bytes(), nil)

	_, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("processed output not decodable: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
}
