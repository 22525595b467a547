// ABOUTME: Audio output package providing playback backends
// ABOUTME: Callback-driven device abstraction over malgo, oto, and null
// Package output provides audio playback device backends.
//
// A Device invokes a RenderFunc at the pace of the hardware clock to
// pull interleaved stereo float32 frames. Backends:
//   - Malgo: miniaudio data callback (default)
//   - Oto: persistent oto player pulling through an io.Reader adapter
//   - Null: silent device for degraded mode and tests
//
// Example:
//
//	dev, err := output.New("malgo", 44100)
//	if err == nil {
//	    err = dev.Start(engine.Render, engine.DeviceFinished)
//	}
package output
