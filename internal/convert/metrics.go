package convert

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// ErrorReport summarizes how far a conversion's cells sit from the pixels
// they cover. Distances are Euclidean in 8-bit RGB space.
type ErrorReport struct {
	// PerPixel is the mean distance between each covered source pixel
	// and the palette color of its cell. Dithering usually raises this:
	// error diffusion trades pointwise accuracy for neighborhood
	// accuracy.
	PerPixel float64 `json:"perPixel"`

	// PerPixelMax and PerPixelStdDev describe the distribution behind
	// PerPixel: the worst single pixel and the spread around the mean.
	PerPixelMax    float64 `json:"perPixelMax"`
	PerPixelStdDev float64 `json:"perPixelStdDev"`

	// PerCell is the mean distance between each cell's average source
	// color and its palette color.
	PerCell float64 `json:"perCell"`

	// Neighborhood compares the painted board against the source after
	// both are averaged over blocks four cells wide. Averaging stands in
	// for viewing distance, so this is the measure under which dithering
	// shows its benefit on smooth gradients.
	Neighborhood float64 `json:"neighborhood"`
}

// QuantizationError measures res against the preprocessed source image it
// was derived from.
func QuantizationError(src *image.NRGBA, res *Result) (ErrorReport, error) {
	geom, err := res.Geometry()
	if err != nil {
		return ErrorReport{}, err
	}

	b := src.Bounds()
	blockEdge := 4 * res.CellSize
	blockCols := (b.Dx() + blockEdge - 1) / blockEdge
	blockRows := (b.Dy() + blockEdge - 1) / blockEdge
	blocks := make([]blockAccum, blockCols*blockRows)

	perPixel := make([]float64, 0, b.Dx()*b.Dy())
	perCell := make([]float64, 0, len(res.Cells))
	for _, cell := range res.Cells {
		pc := res.Palette.Color(cell.Code)
		site := cell.Site()

		minX, minY, maxX, maxY := geom.Bounds(site)
		x0 := clamp(int(math.Floor(minX)), 0, b.Dx())
		x1 := clamp(int(math.Ceil(maxX)), 0, b.Dx())
		y0 := clamp(int(math.Floor(minY)), 0, b.Dy())
		y1 := clamp(int(math.Ceil(maxY)), 0, b.Dy())

		var sumR, sumG, sumB float64
		n := 0
		for y := y0; y < y1; y++ {
			row := src.PixOffset(0, y)
			for x := x0; x < x1; x++ {
				if !geom.Contains(site, float64(x)+0.5, float64(y)+0.5) {
					continue
				}
				o := row + x*4
				r := float64(src.Pix[o])
				g := float64(src.Pix[o+1])
				bl := float64(src.Pix[o+2])
				sumR += r
				sumG += g
				sumB += bl
				n++
				perPixel = append(perPixel, rgbDistance(r, g, bl, pc))

				blk := &blocks[(y/blockEdge)*blockCols+x/blockEdge]
				blk.srcR += r
				blk.srcG += g
				blk.srcB += bl
				blk.renR += float64(pc.R)
				blk.renG += float64(pc.G)
				blk.renB += float64(pc.B)
				blk.n++
			}
		}
		if n > 0 {
			fn := float64(n)
			perCell = append(perCell, rgbDistance(sumR/fn, sumG/fn, sumB/fn, pc))
		}
	}

	neighborhood := make([]float64, 0, len(blocks))
	for _, blk := range blocks {
		if blk.n == 0 {
			continue
		}
		fn := float64(blk.n)
		dr := blk.srcR/fn - blk.renR/fn
		dg := blk.srcG/fn - blk.renG/fn
		db := blk.srcB/fn - blk.renB/fn
		neighborhood = append(neighborhood, math.Sqrt(dr*dr+dg*dg+db*db))
	}

	return ErrorReport{
		PerPixel:       meanOrZero(perPixel),
		PerPixelMax:    maxOrZero(perPixel),
		PerPixelStdDev: stdDevOrZero(perPixel),
		PerCell:        meanOrZero(perCell),
		Neighborhood:   meanOrZero(neighborhood),
	}, nil
}

// blockAccum accumulates source and rendered color mass for one
// neighborhood block.
type blockAccum struct {
	srcR, srcG, srcB float64
	renR, renG, renB float64
	n                int
}

// QuantizationErrorFromBytes is QuantizationError against the image a
// fresh conversion of data under cfg would consume. It exists for callers
// that hold the original bytes rather than the decoded buffer.
func QuantizationErrorFromBytes(data []byte, cfg Config, res *Result) (ErrorReport, error) {
	decoded, err := Decode(data)
	if err != nil {
		return ErrorReport{}, err
	}
	img, err := preprocess(decoded, cfg)
	if err != nil {
		return ErrorReport{}, err
	}
	return QuantizationError(img, res)
}

func rgbDistance(r, g, b float64, c palette.Color) float64 {
	dr := r - float64(c.R)
	dg := g - float64(c.G)
	db := b - float64(c.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func meanOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func maxOrZero(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Max(xs)
}

// stdDevOrZero guards the n<2 cases where a sample deviation is undefined.
func stdDevOrZero(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
