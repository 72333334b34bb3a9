package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/paintbynum-mcp/internal/convert"
	"github.com/ironsheep/paintbynum-mcp/internal/fill"
	"github.com/ironsheep/paintbynum-mcp/internal/grid"
	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

func twoColorPalette() *palette.Palette {
	return &palette.Palette{Entries: []palette.Entry{
		{Color: palette.Color{R: 200, G: 40, B: 40}, Population: 10},
		{Color: palette.Color{R: 40, G: 40, B: 200}, Population: 5},
	}}
}

// testResult lays out a real tessellation and assigns codes round-robin, so
// fixtures stay valid for every grid type.
func testResult(t *testing.T, gt grid.Type, w, h, size int, pal *palette.Palette) *convert.Result {
	t.Helper()
	geom, err := grid.NewGeometry(gt, w, h, size)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	sites := geom.Sites()
	cells := make([]grid.Cell, len(sites))
	for i, s := range sites {
		cells[i] = grid.Cell{
			X:    s.X,
			Y:    s.Y,
			Code: palette.Code(i % pal.Len()),
			CX:   s.CX,
			CY:   s.CY,
		}
	}
	return &convert.Result{
		GridType: gt,
		CellSize: size,
		Width:    w,
		Height:   h,
		Palette:  pal,
		Cells:    cells,
	}
}

func decodeRendering(t *testing.T, img *Image) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(img.ImageBase64)
	if err != nil {
		t.Fatalf("base64 decode: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	return decoded
}

func pixelAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func countColor(img image.Image, want color.NRGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if pixelAt(img, x, y) == want {
				n++
			}
		}
	}
	return n
}

var (
	white       = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	defaultGray = color.NRGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF}
)

func TestOutline_BordersAndLabels(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 8, twoColorPalette())
	img, err := Outline(res, Options{})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if img.Width != 16 || img.Height != 16 {
		t.Fatalf("got %dx%d, want 16x16", img.Width, img.Height)
	}
	if img.MimeType != "image/png" {
		t.Fatalf("mime type = %q", img.MimeType)
	}

	decoded := decodeRendering(t, img)
	if got := pixelAt(decoded, 1, 1); got != white {
		t.Errorf("interior pixel = %v, want white", got)
	}
	if got := pixelAt(decoded, 0, 0); got != defaultGray {
		t.Errorf("image-edge border pixel = %v, want gray", got)
	}
	if got := pixelAt(decoded, 8, 3); got != defaultGray {
		t.Errorf("shared-edge border pixel = %v, want gray", got)
	}
	// Cell (0,0) has code 0, label "1", drawn around the centroid (4,4).
	if got := pixelAt(decoded, 4, 2); got != labelColor {
		t.Errorf("label pixel = %v, want %v", got, labelColor)
	}
}

func TestOutline_HideLabels(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 8, twoColorPalette())
	img, err := Outline(res, Options{HideLabels: true})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if n := countColor(decodeRendering(t, img), labelColor); n != 0 {
		t.Errorf("found %d label pixels with labels hidden", n)
	}
}

func TestOutline_LabelNeedsRoom(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 4, twoColorPalette())

	img, err := Outline(res, Options{})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if n := countColor(decodeRendering(t, img), labelColor); n != 0 {
		t.Errorf("4px cells at 1x fit no label, found %d label pixels", n)
	}

	img, err = Outline(res, Options{Scale: 2})
	if err != nil {
		t.Fatalf("Outline at 2x: %v", err)
	}
	if n := countColor(decodeRendering(t, img), labelColor); n == 0 {
		t.Error("4px cells at 2x should fit labels, found none")
	}
}

func TestOutline_BackgroundEntriesUnlabeled(t *testing.T) {
	pal := &palette.Palette{Entries: []palette.Entry{
		{Color: palette.Color{R: 250, G: 250, B: 250}, Population: 10, Background: true},
	}}
	res := testResult(t, grid.Square, 16, 16, 8, pal)
	img, err := Outline(res, Options{})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	decoded := decodeRendering(t, img)
	if n := countColor(decoded, labelColor); n != 0 {
		t.Errorf("background cells should carry no label, found %d label pixels", n)
	}
	if n := countColor(decoded, defaultGray); n == 0 {
		t.Error("borders should still be drawn for background cells")
	}
}

func TestPreview_PaintsFilledCells(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 8, twoColorPalette())
	// Sites are row-major, so cell (1,0) is index 1 with code 1.
	img, err := Preview(res, []fill.Key{{X: 1, Y: 0}}, Options{})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	decoded := decodeRendering(t, img)

	blue := color.NRGBA{R: 40, G: 40, B: 200, A: 0xFF}
	if got := pixelAt(decoded, 12, 3); got != blue {
		t.Errorf("filled-cell interior = %v, want %v", got, blue)
	}
	if got := pixelAt(decoded, 8, 3); got != blue {
		t.Errorf("filled cells paint over their border, got %v", got)
	}
	if got := pixelAt(decoded, 1, 1); got != white {
		t.Errorf("unfilled-cell interior = %v, want white", got)
	}
	if got := pixelAt(decoded, 0, 0); got != defaultGray {
		t.Errorf("unfilled-cell border = %v, want gray", got)
	}
}

func TestPreview_NoFillsMatchesOutline(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 8, twoColorPalette())
	outline, err := Outline(res, Options{})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	preview, err := Preview(res, nil, Options{})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if outline.ImageBase64 != preview.ImageBase64 {
		t.Error("preview with no fills should render identically to the outline")
	}
}

func TestRender_ScaleGrowsCanvas(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 8, twoColorPalette())
	img, err := Outline(res, Options{Scale: 3})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if img.Width != 48 || img.Height != 48 {
		t.Fatalf("got %dx%d, want 48x48", img.Width, img.Height)
	}
	decoded := decodeRendering(t, img)
	if b := decoded.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Fatalf("decoded bounds %v, want 48x48", b)
	}
}

func TestRender_Deterministic(t *testing.T) {
	res := testResult(t, grid.Honeycomb, 40, 40, 10, twoColorPalette())
	first, err := Outline(res, Options{Scale: 2})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	second, err := Outline(res, Options{Scale: 2})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if first.ImageBase64 != second.ImageBase64 {
		t.Error("repeated renderings of the same result differ")
	}
}

func TestOutline_AllGridTypes(t *testing.T) {
	for _, gt := range []grid.Type{grid.Square, grid.Diamond, grid.Honeycomb} {
		t.Run(string(gt), func(t *testing.T) {
			res := testResult(t, gt, 40, 40, 10, twoColorPalette())
			img, err := Outline(res, Options{HideLabels: true})
			if err != nil {
				t.Fatalf("Outline: %v", err)
			}
			decoded := decodeRendering(t, img)
			if b := decoded.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
				t.Fatalf("decoded bounds %v, want 40x40", b)
			}
			if n := countColor(decoded, defaultGray); n == 0 {
				t.Error("no border pixels drawn")
			}
		})
	}
}

func TestOutline_CustomOutlineColor(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 8, twoColorPalette())
	img, err := Outline(res, Options{OutlineHex: "#FF0000", HideLabels: true})
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	decoded := decodeRendering(t, img)
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	if got := pixelAt(decoded, 0, 0); got != red {
		t.Errorf("border pixel = %v, want red", got)
	}
}

func TestOutline_BadOutlineColor(t *testing.T) {
	res := testResult(t, grid.Square, 16, 16, 8, twoColorPalette())
	if _, err := Outline(res, Options{OutlineHex: "notacolor"}); err == nil {
		t.Fatal("expected error for malformed outline color")
	}
}

func TestOutline_RejectsInvalidResult(t *testing.T) {
	res := &convert.Result{GridType: grid.Square, CellSize: 8, Width: 16, Height: 16}
	if _, err := Outline(res, Options{}); err == nil {
		t.Fatal("expected error for result without a palette")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#FF0000", want: color.NRGBA{R: 0xFF, A: 0xFF}},
		{in: "00FF00", want: color.NRGBA{G: 0xFF, A: 0xFF}},
		{in: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "zzzzzz", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseHexColor(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHexColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLabelWidth(t *testing.T) {
	if got := labelWidth(""); got != 0 {
		t.Errorf("labelWidth(\"\") = %d", got)
	}
	if got := labelWidth("1"); got != 3 {
		t.Errorf("labelWidth(\"1\") = %d, want 3", got)
	}
	if got := labelWidth("42"); got != 7 {
		t.Errorf("labelWidth(\"42\") = %d, want 7", got)
	}
}
