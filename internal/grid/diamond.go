package grid

import "math"

// The diamond layout is the square lattice rotated 45 degrees about the
// image center. Lattice cell (i,j) lives at rotated-frame position
// (i·s, j·s); the world-space mapping through the center C is
//
//	world = C + R(45°)·(u, v)
//
// so footprints are rhombi of side s with area s². Lattice indices are
// shifted after the visibility scan so the smallest surviving i and j
// become zero.

func diamondCenter(cx, cy, size float64, i, j int) (x, y float64) {
	r := math.Sqrt2 / 2
	u := float64(i) * size
	v := float64(j) * size
	return cx + r*(u-v), cy + r*(u+v)
}

// diamondFrame maps a world point into the rotated lattice frame.
func diamondFrame(cx, cy, px, py float64) (u, v float64) {
	r := math.Sqrt2 / 2
	dx := px - cx
	dy := py - cy
	return r * (dx + dy), r * (-dx + dy)
}

func diamondSites(width, height, size int) (sites []Site, shiftI, shiftJ int) {
	w := float64(width)
	h := float64(height)
	s := float64(size)
	cx := w / 2
	cy := h / 2

	// Candidate index range from the image corners in the rotated frame,
	// padded by one lattice step.
	uMin, uMax := math.Inf(1), math.Inf(-1)
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		u, v := diamondFrame(cx, cy, p[0], p[1])
		uMin = math.Min(uMin, u)
		uMax = math.Max(uMax, u)
		vMin = math.Min(vMin, v)
		vMax = math.Max(vMax, v)
	}
	iMin := int(math.Floor(uMin/s)) - 1
	iMax := int(math.Ceil(uMax/s)) + 1
	jMin := int(math.Floor(vMin/s)) - 1
	jMax := int(math.Ceil(vMax/s)) + 1

	type lattice struct{ i, j int }
	var kept []lattice
	minI, minJ := iMax+1, jMax+1
	for j := jMin; j <= jMax; j++ {
		for i := iMin; i <= iMax; i++ {
			if !diamondIntersects(cx, cy, w, h, s, i, j) {
				continue
			}
			kept = append(kept, lattice{i, j})
			if i < minI {
				minI = i
			}
			if j < minJ {
				minJ = j
			}
		}
	}

	sites = make([]Site, 0, len(kept))
	for _, l := range kept {
		x, y := diamondCenter(cx, cy, s, l.i, l.j)
		sites = append(sites, Site{X: l.i - minI, Y: l.j - minJ, CX: x, CY: y})
	}
	return sites, minI, minJ
}

// diamondIntersects reports whether lattice cell (i,j) overlaps the image
// rect with positive area. Both shapes are convex, so checking separation
// along the rect normals (world x,y) and the rhombus normals (frame u,v)
// is exact; touching along a zero-area edge does not count.
func diamondIntersects(cx, cy, w, h, s float64, i, j int) bool {
	u0 := float64(i) * s
	v0 := float64(j) * s

	// World-axis extents of the rhombus corners.
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	r := math.Sqrt2 / 2
	for _, d := range [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		u := u0 + d[0]*s/2
		v := v0 + d[1]*s/2
		x := cx + r*(u-v)
		y := cy + r*(u+v)
		xMin = math.Min(xMin, x)
		xMax = math.Max(xMax, x)
		yMin = math.Min(yMin, y)
		yMax = math.Max(yMax, y)
	}
	if xMax <= 0 || xMin >= w || yMax <= 0 || yMin >= h {
		return false
	}

	// Frame-axis extents of the rect corners.
	uMin, uMax := math.Inf(1), math.Inf(-1)
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		u, v := diamondFrame(cx, cy, p[0], p[1])
		uMin = math.Min(uMin, u)
		uMax = math.Max(uMax, u)
		vMin = math.Min(vMin, v)
		vMax = math.Max(vMax, v)
	}
	if uMax <= u0-s/2 || uMin >= u0+s/2 || vMax <= v0-s/2 || vMin >= v0+s/2 {
		return false
	}
	return true
}

func (g *Geometry) diamondContains(site Site, px, py float64) bool {
	s := float64(g.CellSize)
	i := site.X + g.shiftI
	j := site.Y + g.shiftJ
	u, v := diamondFrame(float64(g.Width)/2, float64(g.Height)/2, px, py)
	du := u - float64(i)*s
	dv := v - float64(j)*s
	return du >= -s/2 && du < s/2 && dv >= -s/2 && dv < s/2
}

func diamondBounds(site Site, size int) (minX, minY, maxX, maxY float64) {
	// The rhombus bbox is the centroid padded by the circumradius s/√2
	// on both axes.
	r := float64(size) * math.Sqrt2 / 2
	return site.CX - r, site.CY - r, site.CX + r, site.CY + r
}
