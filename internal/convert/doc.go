// Package convert turns raw image bytes into a paint-by-number Result.
//
// The pipeline is a fixed sequence of pure stages: decode and normalize
// the bytes, optionally downscale and blur, extract a bounded palette,
// optionally dither, tessellate the pixel area into cells, and color every
// cell by averaging its footprint and snapping to the nearest palette
// entry. Convert is the only entry point; each call works from the
// original bytes so that option changes never observe stale intermediate
// state.
//
// # Determinism
//
// Identical input bytes and an identical Config yield a Result that
// marshals to byte-identical JSON. Nothing in the pipeline consults
// randomness, wall clocks or map iteration order.
//
// # Errors
//
// Failures are typed by what went wrong rather than where: *ConfigError
// for rejected options, *DecodeError for unreadable bytes, and
// *EmptyImageError for images with no pixel area. Cancellation surfaces
// as the context's own error.
package convert
