package render

import (
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/paintbynum-mcp/internal/convert"
	"github.com/ironsheep/paintbynum-mcp/internal/grid"
)

// board is one rendering in progress: a white canvas plus the geometry
// that maps cells onto it.
type board struct {
	canvas  *image.NRGBA
	geom    *grid.Geometry
	res     *convert.Result
	scale   int
	outline color.NRGBA
}

func newBoard(res *convert.Result, opts Options) (*board, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}
	geom, err := res.Geometry()
	if err != nil {
		return nil, err
	}
	outline, err := opts.outline()
	if err != nil {
		return nil, err
	}

	scale := opts.scale()
	canvas := image.NewNRGBA(image.Rect(0, 0, res.Width*scale, res.Height*scale))
	for i := range canvas.Pix {
		canvas.Pix[i] = 0xFF
	}
	return &board{canvas: canvas, geom: geom, res: res, scale: scale, outline: outline}, nil
}

// contains tests whether a canvas pixel center lands inside the cell's
// drawn shape. Honeycomb cells draw as circles of one cell size diameter,
// which is narrower than their sampling footprint; square and diamond
// cells draw their footprint as is.
func (b *board) contains(c grid.Cell, px, py int) bool {
	x := (float64(px) + 0.5) / float64(b.scale)
	y := (float64(py) + 0.5) / float64(b.scale)
	if b.geom.Type == grid.Honeycomb {
		dx := x - c.CX
		dy := y - c.CY
		r := float64(b.geom.CellSize) / 2
		return dx*dx+dy*dy <= r*r
	}
	return b.geom.Contains(c.Site(), x, y)
}

// cellRect is the canvas-space bounding box of the cell's shape, padded a
// pixel for the border pass and clipped to the canvas.
func (b *board) cellRect(c grid.Cell) image.Rectangle {
	minX, minY, maxX, maxY := b.geom.Bounds(c.Site())
	s := float64(b.scale)
	r := image.Rect(
		int(math.Floor(minX*s))-1,
		int(math.Floor(minY*s))-1,
		int(math.Ceil(maxX*s))+1,
		int(math.Ceil(maxY*s))+1,
	)
	return r.Intersect(b.canvas.Rect)
}

// strokeCell draws the cell's border: every shape pixel with at least one
// neighbor outside the shape. Cells clipped by the image edge get their
// border along that edge too.
func (b *board) strokeCell(c grid.Cell) {
	r := b.cellRect(c)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			if !b.contains(c, px, py) {
				continue
			}
			if b.contains(c, px-1, py) && b.contains(c, px+1, py) &&
				b.contains(c, px, py-1) && b.contains(c, px, py+1) {
				continue
			}
			b.canvas.SetNRGBA(px, py, b.outline)
		}
	}
}

// paintCell floods the cell's shape with its palette color.
func (b *board) paintCell(c grid.Cell) {
	pc := b.res.Palette.Color(c.Code)
	fillColor := color.NRGBA{R: pc.R, G: pc.G, B: pc.B, A: 0xFF}
	r := b.cellRect(c)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			if b.contains(c, px, py) {
				b.canvas.SetNRGBA(px, py, fillColor)
			}
		}
	}
}

// labelCell writes the cell's palette code at its centroid. Background
// entries have no label, and a label that will not fit inside the cell is
// skipped rather than smeared over neighbors.
func (b *board) labelCell(c grid.Cell) {
	label := b.res.Palette.Label(c.Code)
	if label == "" {
		return
	}
	w := labelWidth(label)
	if w+2 > b.geom.CellSize*b.scale {
		return
	}
	x := int(c.CX*float64(b.scale)) - w/2
	y := int(c.CY*float64(b.scale)) - glyphRows/2
	drawText(b.canvas, x, y, label, labelColor)
}
