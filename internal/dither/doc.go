// Package dither maps full-resolution pixel buffers onto a bounded palette
// while preserving perceived gradients.
//
// Direct nearest-entry mapping of a smooth ramp produces hard banding once
// the palette is small. Dithering trades that banding for controlled noise:
// pixels alternate between nearby palette entries so that, averaged over a
// cell, the mix approximates the original color. The conversion pipeline
// runs a Strategy over the decoded buffer before cells are sampled;
// dithering already-averaged cell colors would defeat the point.
//
// Two strategies are provided behind the same contract:
//   - FloydSteinberg: sequential error diffusion, the reference
//     implementation and the default.
//   - Bayer: ordered dithering with an 8x8 threshold matrix.
//
// Both are deterministic; repeated application to the same input yields
// bit-identical buffers.
package dither
