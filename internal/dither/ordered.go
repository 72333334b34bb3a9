package dither

import (
	"image"

	"github.com/disintegration/imaging"
	libdither "github.com/makeworld-the-better-one/dither/v2"

	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// Bayer applies ordered dithering with an 8x8 Bayer threshold matrix.
//
// Unlike error diffusion, ordered dithering perturbs each pixel
// independently of its neighbors, so it is trivially parallel and produces
// a regular crosshatch texture instead of Floyd–Steinberg's organic grain.
// The underlying matcher works in linear RGB, which can pick a different
// palette entry than the pipeline's sRGB metric for borderline pixels; the
// colorizer re-matches cell averages afterwards, so cell codes always come
// from the sRGB metric either way.
type Bayer struct{}

// Name implements Strategy.
func (Bayer) Name() string { return BayerName }

// Apply implements Strategy.
func (Bayer) Apply(src *image.NRGBA, pal *palette.Palette) *image.NRGBA {
	d := libdither.NewDitherer(pal.ColorPalette())
	d.Mapper = libdither.Bayer(8, 8, 1.0)

	// Dither a clone so the source buffer stays untouched regardless of
	// how the library handles the concrete image type.
	out := d.Dither(imaging.Clone(src))
	if n, ok := out.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(out)
}
