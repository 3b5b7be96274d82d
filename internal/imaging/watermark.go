package imaging

import (
	"image"
	stddraw "image/draw"

	"github.com/kozaktomas/face-vault/internal/constants"
)

// Overlay composites mark onto base at the bottom-right corner. The mark is
// scaled to a fixed fraction of the base width (aspect ratio preserved) and
// offset from the corner by a fixed fraction of the base width on both axes.
// The mark's alpha channel is respected during composition.
func Overlay(base, mark image.Image) image.Image {
	baseBounds := base.Bounds()
	baseWidth := baseBounds.Dx()
	baseHeight := baseBounds.Dy()

	markWidth := int(float64(baseWidth) * constants.WatermarkWidthRatio)
	if markWidth < 1 {
		markWidth = 1
	}
	aspect := float64(mark.Bounds().Dy()) / float64(mark.Bounds().Dx())
	markHeight := int(float64(markWidth) * aspect)
	if markHeight < 1 {
		markHeight = 1
	}

	scaledMark := scale(mark, markWidth, markHeight)

	padding := int(float64(baseWidth) * constants.WatermarkPaddingRatio)
	x := baseWidth - markWidth - padding
	y := baseHeight - markHeight - padding

	out := image.NewRGBA(image.Rect(0, 0, baseWidth, baseHeight))
	stddraw.Draw(out, out.Bounds(), base, baseBounds.Min, stddraw.Src)

	markRect := image.Rect(x, y, x+markWidth, y+markHeight)
	stddraw.Draw(out, markRect, scaledMark, image.Point{}, stddraw.Over)

	return out
}
