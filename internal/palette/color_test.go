package palette

import (
	"image/color"
	"math"
	"testing"
)

func TestColor_Hex(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want string
	}{
		{"black", Color{0, 0, 0}, "#000000"},
		{"white", Color{255, 255, 255}, "#FFFFFF"},
		{"orange", Color{255, 128, 64}, "#FF8040"},
		{"single digit channels", Color{1, 2, 3}, "#010203"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Hex(); got != tt.want {
				t.Errorf("Hex: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestColor_DistanceSq(t *testing.T) {
	tests := []struct {
		name string
		a, b Color
		want int
	}{
		{"identical", Color{10, 20, 30}, Color{10, 20, 30}, 0},
		{"unit red", Color{10, 0, 0}, Color{11, 0, 0}, 1},
		{"black to white", Color{0, 0, 0}, Color{255, 255, 255}, 3 * 255 * 255},
		{"mixed", Color{0, 10, 20}, Color{3, 14, 32}, 9 + 16 + 144},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.DistanceSq(tt.b); got != tt.want {
				t.Errorf("DistanceSq: got %d, want %d", got, tt.want)
			}
			if got := tt.b.DistanceSq(tt.a); got != tt.want {
				t.Errorf("DistanceSq should be symmetric: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	c := FromColor(color.NRGBA{R: 255, G: 128, B: 64, A: 255})
	want := Color{R: 255, G: 128, B: 64}
	if c != want {
		t.Errorf("FromColor: got %+v, want %+v", c, want)
	}

	// Alpha is discarded, not premultiplied away entirely: a half-opaque
	// color decodes through RGBA() premultiplied, so channels shrink.
	half := FromColor(color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	if half.R > 200 || half.G > 100 || half.B > 50 {
		t.Errorf("premultiplied conversion should not grow channels: got %+v", half)
	}
}

func TestColor_RGBAInterface(t *testing.T) {
	c := Color{R: 12, G: 34, B: 56}
	r, g, b, a := c.RGBA()
	if a != 0xFFFF {
		t.Errorf("alpha: got %d, want 65535", a)
	}
	if r>>8 != 12 || g>>8 != 34 || b>>8 != 56 {
		t.Errorf("RGBA: got (%d,%d,%d), want 16-bit expansions of (12,34,56)", r, g, b)
	}
}

func TestColor_Lightness(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want float64
	}{
		{"black", Color{0, 0, 0}, 0.0},
		{"white", Color{255, 255, 255}, 1.0},
		{"mid gray", Color{128, 128, 128}, 0.502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Lightness()
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Lightness: got %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestColor_Luminance(t *testing.T) {
	// Green dominates relative luminance; blue contributes least.
	green := Color{0, 255, 0}.Luminance()
	blue := Color{0, 0, 255}.Luminance()
	if green <= blue {
		t.Errorf("green luminance (%.3f) should exceed blue (%.3f)", green, blue)
	}
	if w := (Color{255, 255, 255}).Luminance(); math.Abs(w-1.0) > 0.001 {
		t.Errorf("white luminance: got %.3f, want 1.0", w)
	}
}
