// ABOUTME: Audio output interface definition
// ABOUTME: Callback-driven contract implemented by playback backends
package output

import "fmt"

// RenderFunc fills out with the next frames of interleaved stereo
// float32 audio. len(out) is always frames*2. It runs on the backend's
// render thread and must write every requested sample.
type RenderFunc func(out []float32, frames int)

// Device represents an audio output device driven by a render callback.
type Device interface {
	// Start opens the device stream and begins invoking render at the
	// device clock's pace. finished is called when the stream itself
	// stops; it may be nil.
	Start(render RenderFunc, finished func()) error

	// Close stops the stream and releases the device. Safe to call
	// more than once; only the first call releases resources.
	Close() error
}

// New creates a device for the named backend at the given sample rate.
func New(backend string, sampleRate int) (Device, error) {
	switch backend {
	case "", "malgo":
		return NewMalgo(sampleRate), nil
	case "oto":
		return NewOto(sampleRate), nil
	case "null":
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend: %q", backend)
	}
}
