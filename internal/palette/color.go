package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an opaque RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
//
// Color is an immutable value type; two Colors are equal exactly when all
// three components are equal.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// FromColor converts any standard library color to a Color, discarding alpha.
//
// 16-bit components are scaled down by right-shifting 8 bits, matching how
// the rest of the pipeline reads decoded pixels.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBA implements the color.Color interface. The color is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// NRGBA returns the color as a fully opaque color.NRGBA value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color in "#RRGGBB" format.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// DistanceSq returns the squared Euclidean distance between two colors in
// RGB channel space.
//
// The squared form is exact integer arithmetic (maximum value 3·255² =
// 195075), which keeps nearest-entry comparisons free of floating-point
// rounding and therefore bit-reproducible across runs and platforms.
func (c Color) DistanceSq(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

// Lightness returns the HSL lightness of the color in [0, 1].
func (c Color) Lightness() float64 {
	_, _, l := c.colorful().Hsl()
	return l
}

// Luminance returns the relative luminance of the color in [0, 1],
// computed from linear RGB with the Rec. 709 coefficients.
func (c Color) Luminance() float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
