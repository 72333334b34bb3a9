package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"strconv"

	"github.com/ironsheep/paintbynum-mcp/internal/convert"
	"github.com/ironsheep/paintbynum-mcp/internal/fill"
)

// Image is an encoded rendering ready for transport.
type Image struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Options controls how a board is drawn.
type Options struct {
	// Scale multiplies the output resolution. Small cells need 2x or
	// more before their code labels have room to draw. Clamped to 1..8.
	Scale int

	// OutlineHex is the cell border color, "#RRGGBB" or "#RRGGBBAA".
	// Empty selects a medium gray.
	OutlineHex string

	// HideLabels leaves cells unlabeled even where a label would fit.
	HideLabels bool
}

func (o Options) scale() int {
	if o.Scale < 1 {
		return 1
	}
	if o.Scale > 8 {
		return 8
	}
	return o.Scale
}

func (o Options) outline() (color.NRGBA, error) {
	if o.OutlineHex == "" {
		return color.NRGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF}, nil
	}
	return parseHexColor(o.OutlineHex)
}

var labelColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}

// Outline renders the unpainted board: white canvas, cell borders, and
// each cell's palette code at its centroid. Cells of background palette
// entries carry no label, and labels that would not fit inside a cell are
// left out.
func Outline(res *convert.Result, opts Options) (*Image, error) {
	b, err := newBoard(res, opts)
	if err != nil {
		return nil, err
	}
	for _, c := range res.Cells {
		b.strokeCell(c)
		if !opts.HideLabels {
			b.labelCell(c)
		}
	}
	return b.encode()
}

// Preview renders work in progress: filled cells are painted with their
// palette color, unfilled cells keep outline and label. Rendering a
// finished board (every cell filled) therefore approximates the quantized
// source image.
func Preview(res *convert.Result, filled []fill.Key, opts Options) (*Image, error) {
	b, err := newBoard(res, opts)
	if err != nil {
		return nil, err
	}
	set := make(map[fill.Key]bool, len(filled))
	for _, k := range filled {
		set[k] = true
	}
	for _, c := range res.Cells {
		if set[fill.Key{X: c.X, Y: c.Y}] {
			b.paintCell(c)
			continue
		}
		b.strokeCell(c)
		if !opts.HideLabels {
			b.labelCell(c)
		}
	}
	return b.encode()
}

func (b *board) encode() (*Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.canvas); err != nil {
		return nil, fmt.Errorf("encode rendering: %w", err)
	}
	return &Image{
		Width:       b.canvas.Rect.Dx(),
		Height:      b.canvas.Rect.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA", leading '#' optional.
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("hex color must be 6 or 8 digits")
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
