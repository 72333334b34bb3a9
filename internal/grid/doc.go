// Package grid tessellates a pixel area into paint-by-number cells.
//
// Three layouts are supported: square (axis-aligned rects), diamond (the
// square lattice rotated 45 degrees about the image center), and honeycomb
// (circles on a staggered hexagonal packing). Every layout covers the
// image extent: boundary cells are clipped by the edges rather than
// dropped, and cells are emitted in row-major lattice order.
//
// # Determinism
//
// A tessellation is a pure function of (type, width, height, cellSize):
// the same inputs always produce the same sites in the same order, with no
// dependence on map iteration or randomness. Serialized conversions rely
// on this to rebuild hit-testing geometry after a round trip.
//
// # Footprints
//
// A site's footprint is the region Contains answers for, which is what the
// colorizer averages over. For square and diamond grids the footprint is
// the drawn shape itself and footprints partition the plane exactly. For
// honeycomb grids the drawn circle of diameter s under-covers the plane,
// so the footprint is instead the packing's Voronoi hexagon, which
// attributes interior pixels to exactly one cell; only slivers above the
// first row, where the next row up would sit, go unclaimed.
package grid
