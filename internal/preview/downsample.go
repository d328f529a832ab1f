package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled preview to w x h. The scaled image is
// composited over bg, so pixels the filter leaves partly transparent at the
// edges blend into the background instead of showing through.
// Images that already fit are returned as is.
func Downsample(img *image.NRGBA, w, h int, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	// x/image/draw premultiplies NRGBA sources itself
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Over, nil)
	return out
}
