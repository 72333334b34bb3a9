package palette

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/muesli/clusters"
)

const (
	// maxSamples caps how many pixels feed the k-means run. Keeps large
	// images tractable without changing results for a given image.
	maxSamples = 12000

	// maxIterations bounds the Lloyd iterations when centers keep drifting.
	maxIterations = 24

	// convergenceEpsilon is the per-component center movement below which
	// the run stops early.
	convergenceEpsilon = 1e-6
)

// kmeansCandidates clusters a deterministic pixel sample into k groups and
// returns the cluster centers as palette candidates, ordered by cluster
// population (seeding order breaks ties).
//
// Determinism is the whole point of this driver: cluster seeds come from a
// farthest-point traversal of the raster-ordered sample rather than random
// draws, so identical input always yields identical clusters.
func kmeansCandidates(img *image.NRGBA, k int) ([]Entry, error) {
	obs := sampleObservations(img, true)
	if len(obs) == 0 {
		// Image is fully transparent; sample it anyway so extraction
		// stays total.
		obs = sampleObservations(img, false)
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("no pixels to sample")
	}
	if k > len(obs) {
		k = len(obs)
	}

	cc := make(clusters.Clusters, k)
	for i, seed := range farthestPointSeeds(obs, k) {
		cc[i] = clusters.Cluster{Center: seed}
	}

	for iter := 0; iter < maxIterations; iter++ {
		cc.Reset()
		for _, o := range obs {
			ci := cc.Nearest(o)
			cc[ci].Append(o)
		}

		prev := snapshotCenters(cc)
		cc.Recenter()
		if maxCenterShift(prev, cc) < convergenceEpsilon {
			break
		}
	}

	type clusterRec struct {
		entry Entry
		seed  int
	}
	recs := make([]clusterRec, 0, len(cc))
	for i, c := range cc {
		if len(c.Observations) == 0 {
			continue
		}
		recs = append(recs, clusterRec{
			entry: Entry{
				Color:      coordinatesColor(c.Center),
				Population: len(c.Observations),
			},
			seed: i,
		})
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].entry.Population != recs[j].entry.Population {
			return recs[i].entry.Population > recs[j].entry.Population
		}
		return recs[i].seed < recs[j].seed
	})

	out := make([]Entry, len(recs))
	for i, r := range recs {
		out[i] = r.entry
	}
	return out, nil
}

// sampleObservations walks the image on a uniform stride and returns the
// visited pixels as normalized RGB observations. With skipTransparent set,
// pixels with zero alpha are left out.
//
// The stride is derived from the pixel count so the sample stays near
// maxSamples regardless of image size.
func sampleObservations(img *image.NRGBA, skipTransparent bool) clusters.Observations {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	obs := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			i := img.PixOffset(x, y)
			if skipTransparent && img.Pix[i+3] == 0 {
				continue
			}
			obs = append(obs, clusters.Coordinates{
				float64(img.Pix[i]) / 255.0,
				float64(img.Pix[i+1]) / 255.0,
				float64(img.Pix[i+2]) / 255.0,
			})
		}
	}
	return obs
}

// farthestPointSeeds picks k initial centers: the first observation, then
// repeatedly the observation farthest from all chosen seeds. Ties resolve
// to the lowest sample index.
func farthestPointSeeds(obs clusters.Observations, k int) []clusters.Coordinates {
	seeds := make([]clusters.Coordinates, 0, k)
	first := obs[0].Coordinates()
	seeds = append(seeds, first)

	minDist := make([]float64, len(obs))
	for i, o := range obs {
		minDist[i] = o.Distance(first)
	}

	for len(seeds) < k {
		best, bestD := 0, -1.0
		for i, d := range minDist {
			if d > bestD {
				best, bestD = i, d
			}
		}
		next := obs[best].Coordinates()
		seeds = append(seeds, next)
		for i, o := range obs {
			if d := o.Distance(next); d < minDist[i] {
				minDist[i] = d
			}
		}
	}
	return seeds
}

func snapshotCenters(cc clusters.Clusters) []clusters.Coordinates {
	out := make([]clusters.Coordinates, len(cc))
	for i, c := range cc {
		out[i] = append(clusters.Coordinates(nil), c.Center...)
	}
	return out
}

func maxCenterShift(prev []clusters.Coordinates, cc clusters.Clusters) float64 {
	shift := 0.0
	for i, c := range cc {
		for d := range c.Center {
			if s := math.Abs(c.Center[d] - prev[i][d]); s > shift {
				shift = s
			}
		}
	}
	return shift
}

// coordinatesColor rounds a normalized cluster center back to an 8-bit
// color.
func coordinatesColor(c clusters.Coordinates) Color {
	clamp := func(v float64) uint8 {
		n := int(math.Round(v * 255.0))
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	return Color{R: clamp(c[0]), G: clamp(c[1]), B: clamp(c[2])}
}
