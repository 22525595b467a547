// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded buffers between sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling of whole decoded buffers.
//
// Example:
//
//	converted := resample.Buffer(buf, 44100)
package resample
