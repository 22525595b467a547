// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines the decoded Buffer type and sample conversion functions
// Package audio provides fundamental audio types for the voxdeck engine.
//
// This package defines the core types used throughout the library:
//   - Buffer: Fully decoded, immutable PCM audio (interleaved stereo float32)
//   - Sample conversion from integer PCM formats to float32
//
// Every Buffer is stereo. Mono sources are upmixed by duplicating the
// single channel into both output channels at decode time.
//
// Example:
//
//	buf := &audio.Buffer{Samples: samples, SampleRate: 44100}
//	fmt.Println(buf.Frames(), buf.Duration())
package audio
