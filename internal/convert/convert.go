package convert

import (
	"context"

	"github.com/ironsheep/paintbynum-mcp/internal/dither"
	"github.com/ironsheep/paintbynum-mcp/internal/grid"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// Convert runs the whole pipeline on raw image bytes: decode, preprocess,
// palette extraction, optional dithering, tessellation and cell coloring.
//
// Every call starts from the original bytes; nothing is carried over from
// previous conversions, so changing one option re-derives the complete
// Result. The pipeline is pure and deterministic: identical bytes and an
// identical Config produce an identical Result.
//
// The context only bounds how long the work may run. A cancelled context
// surfaces as ctx.Err(); option and input problems surface as *ConfigError,
// *DecodeError or *EmptyImageError.
func Convert(ctx context.Context, data []byte, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	decoded, err := Decode(data)
	if err != nil {
		return nil, err
	}
	img, err := preprocess(decoded, cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pal, err := palette.Extract(img, cfg.paletteOptions())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// With dithering on, cells average the error-diffused buffer; off,
	// they average the original pixels and the nearest-color snap happens
	// once per cell instead of once per pixel.
	source := img
	if cfg.Dither {
		strategy, err := dither.ForName(cfg.DitherStrategy)
		if err != nil {
			return nil, &ConfigError{Field: "ditherStrategy", Reason: err.Error()}
		}
		source = strategy.Apply(img, pal)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	b := img.Bounds()
	geom, err := grid.NewGeometry(grid.Type(cfg.GridType), b.Dx(), b.Dy(), cfg.CellSize)
	if err != nil {
		return nil, &ConfigError{Field: "gridType", Reason: err.Error()}
	}

	cells, err := colorizeCells(ctx, geom, source, pal)
	if err != nil {
		return nil, err
	}

	return &Result{
		GridType: geom.Type,
		CellSize: cfg.CellSize,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Dithered: cfg.Dither,
		Palette:  pal,
		Cells:    cells,
	}, nil
}
