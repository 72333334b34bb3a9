package palette

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

// medianCutCandidates reduces the image to at most k colors with a
// median-cut quantizer and returns them as palette candidates ordered by
// population (quantizer emission order breaks ties).
//
// Median-cut buckets pixels in raster order, so its output is deterministic
// without any extra seeding discipline. Populations are counted against the
// same deterministic pixel sample the k-means strategy uses, keeping the
// two strategies' orderings comparable.
func medianCutCandidates(img *image.NRGBA, k int) ([]Entry, error) {
	q := quantize.MedianCutQuantizer{AddTransparent: false}
	quantized := q.Quantize(make(color.Palette, 0, k), img)
	if len(quantized) == 0 {
		return nil, fmt.Errorf("median-cut produced no colors")
	}

	cands := make([]Entry, len(quantized))
	for i, c := range quantized {
		cands[i] = Entry{Color: FromColor(c)}
	}

	// Count populations over the stride sample so ordering reflects how
	// much of the image each candidate actually covers.
	tmp := &Palette{Entries: cands}
	for _, o := range sampleObservations(img, false) {
		coords := o.Coordinates()
		c := coordinatesColor(coords)
		cands[tmp.Nearest(c)].Population++
	}

	type cand struct {
		entry Entry
		emit  int
	}
	recs := make([]cand, len(cands))
	for i, e := range cands {
		recs[i] = cand{entry: e, emit: i}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].entry.Population != recs[j].entry.Population {
			return recs[i].entry.Population > recs[j].entry.Population
		}
		return recs[i].emit < recs[j].emit
	})

	out := make([]Entry, len(recs))
	for i, r := range recs {
		out[i] = r.entry
	}
	return out, nil
}
