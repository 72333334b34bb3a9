package dither

import (
	"image"

	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// FloydSteinberg is the sequential reference error-diffusion strategy.
//
// Pixels are processed in raster order. Each pixel's accumulated value is
// clamped to [0,255] per channel, snapped to the nearest palette entry, and
// the signed quantization error is pushed onto not-yet-visited neighbors
// with the classic weights:
//
//	          x    7/16
//	3/16   5/16   1/16
//
// Error diffusion is inherently sequential: every pixel's input depends on
// the errors of pixels before it in raster order, so this strategy does not
// partition work across goroutines. Row-parallel variants need a boundary
// exchange between partitions to stay exact; with the buffer sizes this
// pipeline sees, the sequential pass is already fast enough.
type FloydSteinberg struct{}

// Name implements Strategy.
func (FloydSteinberg) Name() string { return FloydSteinbergName }

// Apply implements Strategy.
func (FloydSteinberg) Apply(src *image.NRGBA, pal *palette.Palette) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	// Rolling error rows, indexed with a +1 offset so diffusion into
	// x-1 and x+1 needs no bounds checks. Three floats per pixel.
	cur := make([]float64, (w+2)*3)
	next := make([]float64, (w+2)*3)

	for y := 0; y < h; y++ {
		for i := range next {
			next[i] = 0
		}
		srcRow := src.PixOffset(b.Min.X, b.Min.Y+y)
		outRow := out.PixOffset(0, y)

		for x := 0; x < w; x++ {
			si := srcRow + x*4
			ei := (x + 1) * 3

			r := clampChannel(float64(src.Pix[si]) + cur[ei])
			g := clampChannel(float64(src.Pix[si+1]) + cur[ei+1])
			bch := clampChannel(float64(src.Pix[si+2]) + cur[ei+2])

			got := pal.NearestColor(palette.Color{R: r, G: g, B: bch})

			oi := outRow + x*4
			out.Pix[oi] = got.R
			out.Pix[oi+1] = got.G
			out.Pix[oi+2] = got.B
			out.Pix[oi+3] = src.Pix[si+3]

			errR := float64(r) - float64(got.R)
			errG := float64(g) - float64(got.G)
			errB := float64(bch) - float64(got.B)

			diffuse(cur, ei+3, errR, errG, errB, 7.0/16.0)  // right
			diffuse(next, ei-3, errR, errG, errB, 3.0/16.0) // below-left
			diffuse(next, ei, errR, errG, errB, 5.0/16.0)   // below
			diffuse(next, ei+3, errR, errG, errB, 1.0/16.0) // below-right
		}

		cur, next = next, cur
	}
	return out
}

func diffuse(row []float64, i int, r, g, b, weight float64) {
	row[i] += r * weight
	row[i+1] += g * weight
	row[i+2] += b * weight
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
