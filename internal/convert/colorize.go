package convert

import (
	"context"
	"image"
	"math"

	"github.com/ironsheep/paintbynum-mcp/internal/grid"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// ctxCheckInterval is how many cells are colored between cancellation
// checks.
const ctxCheckInterval = 256

// colorizeCells assigns a palette code to every tessellation site by
// averaging the source pixels inside the site's footprint and snapping the
// average to the nearest palette color.
//
// src is either the original decoded image or its dithered counterpart;
// colorizeCells does not care which. The palette is read, never written:
// a cell whose average matches nothing exactly still maps onto an existing
// code.
func colorizeCells(ctx context.Context, g *grid.Geometry, src *image.NRGBA, pal *palette.Palette) ([]grid.Cell, error) {
	sites := g.Sites()
	cells := make([]grid.Cell, 0, len(sites))
	for i, s := range sites {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		avg := footprintAverage(g, s, src)
		cells = append(cells, grid.Cell{
			X:    s.X,
			Y:    s.Y,
			Code: pal.Nearest(avg),
			CX:   s.CX,
			CY:   s.CY,
		})
	}
	return cells, nil
}

// footprintAverage computes the mean color of the source pixels whose
// centers fall inside the site's footprint, weighting every pixel equally.
// Boundary cells average only their in-image part. A clipped cell so thin
// that it holds no pixel center falls back to sampling the pixel nearest
// its centroid.
func footprintAverage(g *grid.Geometry, s grid.Site, src *image.NRGBA) palette.Color {
	b := src.Bounds()
	minX, minY, maxX, maxY := g.Bounds(s)
	x0 := clamp(int(math.Floor(minX)), 0, b.Dx())
	x1 := clamp(int(math.Ceil(maxX)), 0, b.Dx())
	y0 := clamp(int(math.Floor(minY)), 0, b.Dy())
	y1 := clamp(int(math.Ceil(maxY)), 0, b.Dy())

	var sumR, sumG, sumB float64
	n := 0
	for y := y0; y < y1; y++ {
		row := src.PixOffset(0, y)
		for x := x0; x < x1; x++ {
			if !g.Contains(s, float64(x)+0.5, float64(y)+0.5) {
				continue
			}
			o := row + x*4
			sumR += float64(src.Pix[o])
			sumG += float64(src.Pix[o+1])
			sumB += float64(src.Pix[o+2])
			n++
		}
	}
	if n == 0 {
		return samplePixel(src, s.CX, s.CY)
	}
	return palette.Color{
		R: uint8(sumR/float64(n) + 0.5),
		G: uint8(sumG/float64(n) + 0.5),
		B: uint8(sumB/float64(n) + 0.5),
	}
}

// samplePixel reads the pixel nearest the given point, clamped to the
// image.
func samplePixel(src *image.NRGBA, px, py float64) palette.Color {
	b := src.Bounds()
	x := clamp(int(px), 0, b.Dx()-1)
	y := clamp(int(py), 0, b.Dy()-1)
	o := src.PixOffset(x, y)
	return palette.Color{R: src.Pix[o], G: src.Pix[o+1], B: src.Pix[o+2]}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
