package dither

import (
	"fmt"
	"image"

	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// Strategy names accepted by ForName.
const (
	FloydSteinbergName = "floyd-steinberg"
	BayerName          = "bayer"
)

// Strategy maps a full-resolution pixel buffer onto palette colors,
// spreading quantization error so gradients survive the reduced palette.
//
// Apply must be a pure function: identical input buffer + palette produce a
// bit-identical output buffer. It must not mutate the source image or the
// palette. The returned buffer is origin-normalized with the source's
// dimensions, and every pixel holds a palette color.
type Strategy interface {
	Name() string
	Apply(src *image.NRGBA, pal *palette.Palette) *image.NRGBA
}

// ForName returns the strategy registered under name. The empty string
// selects Floyd–Steinberg, the reference error-diffusion implementation.
func ForName(name string) (Strategy, error) {
	switch name {
	case FloydSteinbergName, "":
		return FloydSteinberg{}, nil
	case BayerName:
		return Bayer{}, nil
	default:
		return nil, fmt.Errorf("unknown dither strategy %q", name)
	}
}
