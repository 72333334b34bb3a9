package palette

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strconv"
)

// MaxColors is the hard upper bound on palette size. Codes index the
// palette as uint8, and paint-by-number labels stop being useful long
// before that limit is reached.
const MaxColors = 64

// Label alphabet for codes. Skips I and O, which read as 1 and 0 when
// printed small inside a cell.
const labelAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	// DefaultDedupThreshold is the Euclidean RGB distance below which two
	// palette candidates are considered duplicates of each other.
	DefaultDedupThreshold = 8.0

	// DefaultWhiteThreshold is the HSL lightness at or above which a
	// low-saturation palette entry counts as background.
	DefaultWhiteThreshold = 0.92

	// whiteMaxSaturation bounds how colorful an entry may be and still
	// qualify as background. Keeps bright saturated colors labeled.
	whiteMaxSaturation = 0.2
)

// Quantizer strategy names accepted by Options.Strategy.
const (
	StrategyKMeans    = "kmeans"
	StrategyMedianCut = "mediancut"
)

// Code identifies a palette entry by its position. Code order is the
// palette's insertion order and is stable across re-conversions of the
// same input.
type Code uint8

// Entry is one palette slot: the quantized color, how many sampled pixels
// backed it, and whether it plays the background role (label suppressed).
type Entry struct {
	Color      Color `json:"color"`
	Population int   `json:"population"`
	Background bool  `json:"background"`
}

// Palette is an ordered sequence of unique colors. The index of an entry is
// its Code. Entries are assigned once during extraction and must not be
// mutated afterwards; every later pipeline stage only reads.
type Palette struct {
	Entries []Entry `json:"entries"`
}

// Options configures palette extraction. Zero values select the documented
// defaults.
type Options struct {
	// MaxColors is the target palette size K. Required, 1..MaxColors.
	MaxColors int

	// Strategy selects the quantizer: StrategyKMeans (default) or
	// StrategyMedianCut. Both are deterministic.
	Strategy string

	// DedupThreshold is the Euclidean RGB distance under which clustered
	// candidates merge. 0 selects DefaultDedupThreshold.
	DedupThreshold float64

	// WhiteThreshold is the HSL lightness at or above which an entry is
	// marked background. 0 selects DefaultWhiteThreshold.
	WhiteThreshold float64
}

// Extract derives a palette of at most opts.MaxColors colors from the image.
//
// Extraction is deterministic: repeated calls on an identical image with
// identical options produce an identical palette, including entry order.
// Entry order is population-descending (ties broken by first discovery), so
// Code 0 is always the most common color.
//
// # Algorithm
//
// The image is first scanned for distinct colors. If there are no more than
// K of them, the palette is exactly that set and no clustering runs. A
// fully uniform image therefore yields a palette of size 1.
//
// Otherwise the configured strategy reduces the color space:
//   - kmeans: deterministic k-means over a subsampled pixel set, seeded by
//     farthest-point traversal from the first sample.
//   - mediancut: median-cut bucketing over the full buffer.
//
// Clustered candidates closer than DedupThreshold merge into the earlier
// candidate, so the palette never carries near-duplicate entries.
//
// Finally, entries whose lightness reaches WhiteThreshold (at low
// saturation) are marked Background. Background entries keep their slot and
// Code but report an empty label.
func Extract(img *image.NRGBA, opts Options) (*Palette, error) {
	k := opts.MaxColors
	if k <= 0 {
		return nil, fmt.Errorf("palette size must be at least 1, got %d", k)
	}
	if k > MaxColors {
		return nil, fmt.Errorf("palette size %d exceeds maximum %d", k, MaxColors)
	}

	dedup := opts.DedupThreshold
	if dedup == 0 {
		dedup = DefaultDedupThreshold
	}
	white := opts.WhiteThreshold
	if white == 0 {
		white = DefaultWhiteThreshold
	}

	exact, ok := distinctColors(img, k)
	var entries []Entry
	if ok {
		entries = exact
	} else {
		var cands []Entry
		var err error
		switch opts.Strategy {
		case StrategyKMeans, "":
			cands, err = kmeansCandidates(img, k)
		case StrategyMedianCut:
			cands, err = medianCutCandidates(img, k)
		default:
			err = fmt.Errorf("unknown quantizer strategy %q", opts.Strategy)
		}
		if err != nil {
			return nil, err
		}
		entries = dedupMerge(cands, dedup)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("image produced no palette candidates")
	}
	if len(entries) > k {
		entries = entries[:k]
	}
	markBackground(entries, white)

	return &Palette{Entries: entries}, nil
}

// Len returns the number of palette entries.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// Color returns the color of the given code. The code must be in range.
func (p *Palette) Color(c Code) Color {
	return p.Entries[c].Color
}

// Background reports whether the entry for the given code plays the
// background role.
func (p *Palette) Background(c Code) bool {
	return p.Entries[c].Background
}

// Label returns the user-facing label for a code: a single character from
// the label alphabet for small codes, the decimal code + 1 beyond that, and
// the empty string for background entries.
func (p *Palette) Label(c Code) string {
	if int(c) >= len(p.Entries) {
		return ""
	}
	if p.Entries[c].Background {
		return ""
	}
	if int(c) < len(labelAlphabet) {
		return string(labelAlphabet[c])
	}
	return strconv.Itoa(int(c) + 1)
}

// Nearest returns the code of the palette entry closest to c in Euclidean
// RGB space. Ties break toward the lowest code, so the lookup is
// deterministic for every input color.
func (p *Palette) Nearest(c Color) Code {
	best := 0
	bestD := p.Entries[0].Color.DistanceSq(c)
	for i := 1; i < len(p.Entries); i++ {
		if d := p.Entries[i].Color.DistanceSq(c); d < bestD {
			best, bestD = i, d
		}
	}
	return Code(best)
}

// NearestColor returns the palette color closest to c.
func (p *Palette) NearestColor(c Color) Color {
	return p.Entries[p.Nearest(c)].Color
}

// ColorPalette returns the palette as a standard library color.Palette,
// preserving code order. Used where third-party code expects the stdlib
// type.
func (p *Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Color.NRGBA()
	}
	return out
}

// distinctColors scans the image and, when it holds at most k distinct
// colors, returns them as exact palette entries ordered by population
// (first appearance breaks ties). The scan aborts as soon as a (k+1)-th
// distinct color appears; the second return is false in that case.
//
// Alpha is ignored: a transparent pixel still contributes its RGB triple,
// which keeps the result total and deterministic for any decodable input.
func distinctColors(img *image.NRGBA, k int) ([]Entry, bool) {
	type seen struct {
		order int
		count int
	}
	b := img.Bounds()
	colors := make(map[Color]*seen, k+1)
	order := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			c := Color{R: img.Pix[row], G: img.Pix[row+1], B: img.Pix[row+2]}
			row += 4
			s := colors[c]
			if s == nil {
				if len(colors) == k {
					return nil, false
				}
				s = &seen{order: order}
				order++
				colors[c] = s
			}
			s.count++
		}
	}
	if len(colors) == 0 {
		return nil, false
	}

	type rec struct {
		color Color
		seen  *seen
	}
	recs := make([]rec, 0, len(colors))
	for c, s := range colors {
		recs = append(recs, rec{color: c, seen: s})
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].seen.count != recs[j].seen.count {
			return recs[i].seen.count > recs[j].seen.count
		}
		return recs[i].seen.order < recs[j].seen.order
	})

	entries := make([]Entry, len(recs))
	for i, r := range recs {
		entries[i] = Entry{Color: r.color, Population: r.seen.count}
	}
	return entries, true
}

// dedupMerge folds candidates that sit within threshold of an earlier
// candidate into that earlier entry, summing populations. Order of the
// surviving entries is preserved.
func dedupMerge(cands []Entry, threshold float64) []Entry {
	thresholdSq := int(threshold * threshold)
	out := make([]Entry, 0, len(cands))
	for _, c := range cands {
		merged := false
		for i := range out {
			if out[i].Color.DistanceSq(c.Color) < thresholdSq {
				out[i].Population += c.Population
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, c)
		}
	}
	return out
}

// markBackground flags entries bright and desaturated enough to count as
// background. Flags only; slots and codes are untouched.
func markBackground(entries []Entry, whiteThreshold float64) {
	for i := range entries {
		cf := entries[i].Color.colorful()
		_, s, l := cf.Hsl()
		if l >= whiteThreshold && s <= whiteMaxSaturation {
			entries[i].Background = true
		}
	}
}
