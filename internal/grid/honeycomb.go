package grid

import "math"

// Honeycomb cells are drawn as circles of diameter s, packed on the
// hexagonal lattice: rows are s·√3/2 apart and odd rows shift half a cell
// left, so every center is exactly s from its six neighbors. Sampling and
// hit-testing use the lattice's Voronoi cell (the regular hexagon with
// across-flats width s), which tiles the plane with no gaps, while the
// circle rendering leaves the familiar pinholes between cells.

// honeycombRowPitch is the vertical distance between row centers in units
// of the cell size.
const honeycombRowPitch = 0.8660254037844386 // √3/2

// honeycombVertexRadius is the hexagon center-to-vertex distance in units
// of the cell size.
const honeycombVertexRadius = 0.5773502691896258 // 1/√3

func honeycombSites(width, height, size int) []Site {
	w := float64(width)
	h := float64(height)
	s := float64(size)
	pitch := s * honeycombRowPitch
	vr := s * honeycombVertexRadius

	var sites []Site
	for r := 0; ; r++ {
		cy := s/2 + float64(r)*pitch
		if cy-vr >= h {
			break
		}
		offset := s / 2
		if r%2 == 1 {
			offset = 0
		}
		for c := 0; ; c++ {
			cx := offset + float64(c)*s
			if cx-s/2 >= w {
				break
			}
			sites = append(sites, Site{X: c, Y: r, CX: cx, CY: cy})
		}
	}
	return sites
}

func honeycombContains(site Site, size int, px, py float64) bool {
	s := float64(size)
	dx := px - site.CX
	dy := py - site.CY
	half := s / 2
	return math.Abs(dx) <= half &&
		math.Abs(dx/2+dy*honeycombRowPitch) <= half &&
		math.Abs(dx/2-dy*honeycombRowPitch) <= half
}

func honeycombBounds(site Site, size int) (minX, minY, maxX, maxY float64) {
	s := float64(size)
	vr := s * honeycombVertexRadius
	return site.CX - s/2, site.CY - vr, site.CX + s/2, site.CY + vr
}
