package grid

import (
	"fmt"

	"github.com/ironsheep/paintbynum-mcp/internal/palette"
)

// Type selects the tessellation layout.
type Type string

const (
	// Square is the axis-aligned grid; cell (x,y) covers the pixel rect
	// [x·s,(x+1)·s) × [y·s,(y+1)·s).
	Square Type = "square"

	// Diamond is the square lattice rotated 45 degrees about the image
	// center; footprints are rhombi of the same area.
	Diamond Type = "diamond"

	// Honeycomb is staggered rows of circular cells on a hexagonal
	// packing; sampling footprints are the packing's Voronoi hexagons.
	Honeycomb Type = "honeycomb"
)

// ParseType validates a grid type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Square, Diamond, Honeycomb:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown grid type %q", s)
	}
}

// Site is a tessellation slot before color assignment: lattice coordinates
// plus the pixel-space centroid of its footprint.
type Site struct {
	X  int
	Y  int
	CX float64
	CY float64
}

// Cell is a Site with its assigned palette code: one paint-by-number unit.
// Cells are created once per conversion and never mutated afterwards.
type Cell struct {
	X    int          `json:"x"`
	Y    int          `json:"y"`
	Code palette.Code `json:"code"`
	CX   float64      `json:"cx"`
	CY   float64      `json:"cy"`
}

// Site returns the cell's tessellation slot.
func (c Cell) Site() Site {
	return Site{X: c.X, Y: c.Y, CX: c.CX, CY: c.CY}
}

// Geometry is one concrete tessellation of a w×h pixel area: the ordered
// cell sites plus the math to test and bound each site's footprint.
//
// A Geometry is fully determined by (type, width, height, cellSize), so the
// same constructor arguments always rebuild identical sites in identical
// order, which is what lets a serialized conversion be re-hit-tested after
// loading.
type Geometry struct {
	Type     Type
	CellSize int
	Width    int
	Height   int

	sites []Site

	// Diamond lattice indices are shifted so the smallest surviving
	// index is zero; these restore the rotated-frame indices.
	shiftI int
	shiftJ int
}

// NewGeometry tessellates a width×height pixel area with cells of the given
// size.
//
// Sites are generated in row-major order (top row first, left to right).
// Footprints overhang the image edges rather than leaving border gaps, and
// clipped boundary cells are kept.
func NewGeometry(t Type, width, height, cellSize int) (*Geometry, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %d", cellSize)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("cannot tessellate a %dx%d area", width, height)
	}

	g := &Geometry{Type: t, CellSize: cellSize, Width: width, Height: height}
	switch t {
	case Square:
		g.sites = squareSites(width, height, cellSize)
	case Diamond:
		g.sites, g.shiftI, g.shiftJ = diamondSites(width, height, cellSize)
	case Honeycomb:
		g.sites = honeycombSites(width, height, cellSize)
	default:
		return nil, fmt.Errorf("unknown grid type %q", t)
	}
	return g, nil
}

// Sites returns the ordered tessellation. The slice is owned by the
// Geometry; callers must not modify it.
func (g *Geometry) Sites() []Site {
	return g.sites
}

// Contains reports whether the pixel-space point (px,py) lies inside the
// footprint of the given site.
//
// Square and diamond footprints partition the plane exactly (half-open
// edges); honeycomb uses the closed Voronoi hexagon, so points on shared
// hexagon edges belong to both neighbors, which is harmless for sampling
// and coverage.
func (g *Geometry) Contains(s Site, px, py float64) bool {
	switch g.Type {
	case Square:
		return squareContains(s, g.CellSize, px, py)
	case Diamond:
		return g.diamondContains(s, px, py)
	case Honeycomb:
		return honeycombContains(s, g.CellSize, px, py)
	default:
		return false
	}
}

// Bounds returns the axis-aligned bounding box of the site's footprint,
// unclipped: boundary cells may extend past the image edges.
func (g *Geometry) Bounds(s Site) (minX, minY, maxX, maxY float64) {
	switch g.Type {
	case Square:
		return squareBounds(s, g.CellSize)
	case Diamond:
		return diamondBounds(s, g.CellSize)
	case Honeycomb:
		return honeycombBounds(s, g.CellSize)
	default:
		return 0, 0, 0, 0
	}
}
