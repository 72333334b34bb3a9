package convert

import (
	"fmt"

	"github.com/ironsheep/paintbynum-mcp/internal/dither"
	"github.com/ironsheep/paintbynum-mcp/internal/grid"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// Suggested defaults for callers that expose Config to users. Convert
// itself applies none of them: a Config must arrive fully specified.
const (
	DefaultCellSize    = 24
	DefaultPaletteSize = 16
	DefaultGridType    = string(grid.Square)
)

// Config carries every knob of a conversion. The same Config and the same
// image bytes always produce the same Result.
//
// Validation is strict rather than forgiving: a zero CellSize or
// PaletteSize is an error, not a request for defaults. Front ends that
// want optional fields fill them in before calling Convert.
type Config struct {
	// GridType selects the tessellation: "square", "diamond" or
	// "honeycomb".
	GridType string `json:"gridType" yaml:"gridType"`

	// CellSize is the cell pitch in pixels. Must be positive.
	CellSize int `json:"cellSize" yaml:"cellSize"`

	// PaletteSize is the maximum number of palette entries K.
	PaletteSize int `json:"paletteSize" yaml:"paletteSize"`

	// PaletteStrategy selects the quantizer, "kmeans" or "mediancut".
	// Empty selects kmeans.
	PaletteStrategy string `json:"paletteStrategy,omitempty" yaml:"paletteStrategy"`

	// Dither enables error-diffusion preprocessing before cells are
	// colored. Off, cells average the original pixels directly.
	Dither bool `json:"dither" yaml:"dither"`

	// DitherStrategy names the dithering algorithm when Dither is set.
	// Empty selects Floyd-Steinberg.
	DitherStrategy string `json:"ditherStrategy,omitempty" yaml:"ditherStrategy"`

	// DedupThreshold is the RGB distance under which extracted palette
	// candidates merge. 0 selects the palette package default.
	DedupThreshold float64 `json:"dedupThreshold,omitempty" yaml:"dedupThreshold"`

	// WhiteThreshold is the HSL lightness at or above which a palette
	// entry counts as unlabeled background. 0 selects the default.
	WhiteThreshold float64 `json:"whiteThreshold,omitempty" yaml:"whiteThreshold"`

	// PreblurSigma applies a Gaussian blur of this radius before
	// quantization, which suppresses sensor noise and JPEG speckle.
	// 0 disables the blur.
	PreblurSigma float64 `json:"preblurSigma,omitempty" yaml:"preblurSigma"`

	// MaxDimension, when positive, downscales the decoded image so that
	// neither side exceeds it, preserving aspect ratio.
	MaxDimension int `json:"maxDimension,omitempty" yaml:"maxDimension"`
}

// Validate checks every field and returns a *ConfigError naming the first
// offending one.
func (c Config) Validate() error {
	if _, err := grid.ParseType(c.GridType); err != nil {
		return &ConfigError{Field: "gridType", Reason: err.Error()}
	}
	if c.CellSize <= 0 {
		return &ConfigError{Field: "cellSize", Reason: fmt.Sprintf("must be positive, got %d", c.CellSize)}
	}
	if c.PaletteSize < 1 {
		return &ConfigError{Field: "paletteSize", Reason: fmt.Sprintf("must be at least 1, got %d", c.PaletteSize)}
	}
	if c.PaletteSize > palette.MaxColors {
		return &ConfigError{Field: "paletteSize", Reason: fmt.Sprintf("must be at most %d, got %d", palette.MaxColors, c.PaletteSize)}
	}
	switch c.PaletteStrategy {
	case "", palette.StrategyKMeans, palette.StrategyMedianCut:
	default:
		return &ConfigError{Field: "paletteStrategy", Reason: fmt.Sprintf("unknown strategy %q", c.PaletteStrategy)}
	}
	if _, err := dither.ForName(c.DitherStrategy); err != nil {
		return &ConfigError{Field: "ditherStrategy", Reason: err.Error()}
	}
	if c.DedupThreshold < 0 {
		return &ConfigError{Field: "dedupThreshold", Reason: "must not be negative"}
	}
	if c.WhiteThreshold < 0 || c.WhiteThreshold > 1 {
		return &ConfigError{Field: "whiteThreshold", Reason: "must be within [0,1]"}
	}
	if c.PreblurSigma < 0 {
		return &ConfigError{Field: "preblurSigma", Reason: "must not be negative"}
	}
	if c.MaxDimension < 0 {
		return &ConfigError{Field: "maxDimension", Reason: "must not be negative"}
	}
	return nil
}

// paletteOptions maps the config onto palette extraction options.
func (c Config) paletteOptions() palette.Options {
	return palette.Options{
		MaxColors:      c.PaletteSize,
		Strategy:       c.PaletteStrategy,
		DedupThreshold: c.DedupThreshold,
		WhiteThreshold: c.WhiteThreshold,
	}
}
