// Package preview draws a top-down map of exported spectator positions so a
// layout can be checked without loading it into the game.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tm-spectators/internal/export"
	"tm-spectators/internal/mathutil"
)

// Options controls preview rendering.
type Options struct {
	Size        int    // output edge length in pixels
	Supersample int    // render scale before downsampling
	Caption     string // drawn in the top-left corner, empty for the default
}

// DefaultOptions renders a 512 px preview at 2x supersampling.
var DefaultOptions = Options{Size: 512, Supersample: 2}

var (
	background = color.NRGBA{24, 26, 32, 255}
	gridColor  = color.NRGBA{48, 52, 62, 255}
	tickColor  = color.NRGBA{235, 235, 235, 255}
	textColor  = color.NRGBA{200, 200, 200, 255}
	lowColor   = color.NRGBA{60, 140, 255, 255}
	highColor  = color.NRGBA{255, 90, 60, 255}
)

// Render plots rows looking down the game's up axis: posX to the right and
// posY (source Y) upwards. Points are coloured from blue (lowest) to red
// (highest); each tick shows where the spectator's rotated +Y axis points.
func Render(rows []export.Row, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions.Size
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	ss := opts.Supersample
	size := opts.Size * ss

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fill(img, background)

	margin := 24 * ss
	if 4*margin > size {
		margin = size / 8
	}
	drawGrid(img, margin)

	if len(rows) > 0 {
		minX, maxX := math.Inf(1), math.Inf(-1)
		minY, maxY := math.Inf(1), math.Inf(-1)
		minH, maxH := math.Inf(1), math.Inf(-1)
		for _, r := range rows {
			minX, maxX = math.Min(minX, r.Pos[0]), math.Max(maxX, r.Pos[0])
			minY, maxY = math.Min(minY, r.Pos[2]), math.Max(maxY, r.Pos[2])
			minH, maxH = math.Min(minH, r.Pos[1]), math.Max(maxH, r.Pos[1])
		}
		span := math.Max(maxX-minX, maxY-minY)
		if span < 0.001 {
			span = 0.001
		}
		scale := float64(size-2*margin) / span
		cx, cy := (minX+maxX)/2, (minY+maxY)/2

		radius := 3 * ss
		tick := float64(9 * ss)
		for _, r := range rows {
			px := float64(size)/2 + (r.Pos[0]-cx)*scale
			py := float64(size)/2 - (r.Pos[2]-cy)*scale

			t := 0.5
			if maxH > minH {
				t = (r.Pos[1] - minH) / (maxH - minH)
			}

			q := mathutil.QuatWXYZ(r.Quat[0], r.Quat[1], r.Quat[2], r.Quat[3])
			if q.Len() > 1e-9 {
				d := q.Normalize().Rotate(mathutil.AxisY)
				if l := math.Hypot(d[0], d[1]); l > 1e-9 {
					drawLine(img, px, py, px+d[0]/l*tick, py-d[1]/l*tick, tickColor)
				}
			}
			drawDisc(img, px, py, radius, lerp(lowColor, highColor, t))
		}
	}

	out := Downsample(img, opts.Size, opts.Size, background)

	caption := opts.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d spectators", len(rows))
	}
	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(6, 16),
	}
	d.DrawString(caption)

	return out
}

func fill(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

func drawGrid(img *image.NRGBA, margin int) {
	b := img.Bounds()
	step := (b.Dx() - 2*margin) / 8
	if step < 1 {
		return
	}
	for i := 0; i <= 8; i++ {
		p := margin + i*step
		for k := margin; k <= b.Dx()-margin; k++ {
			img.SetNRGBA(p, k, gridColor)
			img.SetNRGBA(k, p, gridColor)
		}
	}
}

func drawDisc(img *image.NRGBA, cx, cy float64, r int, c color.NRGBA) {
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.SetNRGBA(x0+x, y0+y, c)
			}
		}
	}
}

func drawLine(img *image.NRGBA, x0, y0, x1, y1 float64, c color.NRGBA) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		img.SetNRGBA(int(x0), int(y0), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetNRGBA(int(math.Round(x0+(x1-x0)*t)), int(math.Round(y0+(y1-y0)*t)), c)
	}
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
