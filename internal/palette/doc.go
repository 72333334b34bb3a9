// Package palette derives and serves the bounded color palette at the heart
// of a paint-by-number conversion.
//
// A palette is an ordered list of unique colors extracted from a source
// image. The position of a color in that list is its Code, the number the
// user reads off a cell to know which color to paint. Code order is
// population order (most common color first), fixed at extraction time and
// reproduced exactly on every re-run over the same input.
//
// # Determinism
//
// Every operation in this package is deterministic. The k-means strategy
// seeds its clusters by farthest-point traversal of a stride-sampled pixel
// set instead of random draws; the median-cut strategy buckets pixels in
// raster order; nearest-entry lookup breaks distance ties toward the lowest
// code. Converting the same image twice therefore yields byte-identical
// palettes, which re-processing and save/resume both rely on.
//
// # Distance Metric
//
// Color distance is Euclidean in 8-bit RGB space, computed in exact integer
// arithmetic. Perceptually uniform spaces would order some pairs
// differently, but RGB Euclidean is cheap, stable, and good enough at
// paint-by-number palette sizes.
//
// # Background Entries
//
// Entries bright and desaturated enough to read as paper (HSL lightness at
// or above the configured threshold, saturation at most 0.2) are flagged as
// background. They keep their slot and Code (cells still reference them),
// but Label returns "" so printed sheets leave those cells unnumbered.
package palette
