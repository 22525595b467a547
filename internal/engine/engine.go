// ABOUTME: Real-time playback engine with lock-guarded transport state
// ABOUTME: Control API mutates the session; the device clock pulls frames
package engine

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/voxdeck/voxdeck-go/pkg/audio"
	"github.com/voxdeck/voxdeck-go/pkg/audio/decode"
	"github.com/voxdeck/voxdeck-go/pkg/audio/output"
	"github.com/voxdeck/voxdeck-go/pkg/audio/resample"
)

// DefaultSampleRate is the device rate used when none is configured.
const DefaultSampleRate = 44100

// Config controls engine construction.
type Config struct {
	// Backend selects the output device ("malgo", "oto", "null").
	Backend string

	// SampleRate is the output device rate. Decoded audio at other
	// rates is resampled on load so the device opens exactly once.
	SampleRate int

	Logger *zap.Logger
}

// Engine owns the playback session and the output device. All session
// fields are guarded by mu, shared between the control thread and the
// device's render thread. Mutations other than Load hold the lock for
// O(1) work; Load decodes before taking it.
type Engine struct {
	mu          sync.Mutex
	buf         *audio.Buffer
	pos         int // frame index, 0 <= pos <= buf.Frames()
	playing     bool
	volume      float32
	currentFile string

	sampleRate int
	device     output.Device
	deviceErr  error
	closeOnce  sync.Once
	log        *zap.Logger
}

// New constructs the engine and acquires the output device. A device
// that cannot be opened (no hardware, permission denied) does not fail
// construction: the engine stays usable as a silent no-op and the
// error is reported through DeviceErr.
func New(cfg Config) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	e := &Engine{
		volume:     1.0,
		sampleRate: cfg.SampleRate,
		log:        cfg.Logger,
	}

	dev, err := output.New(cfg.Backend, cfg.SampleRate)
	if err != nil {
		e.deviceErr = err
		e.log.Warn("audio device unavailable, playback disabled", zap.Error(err))
		return e
	}
	if err := dev.Start(e.Render, e.DeviceFinished); err != nil {
		_ = dev.Close()
		e.deviceErr = err
		e.log.Warn("audio device failed to start, playback disabled", zap.Error(err))
		return e
	}

	e.device = dev
	e.log.Info("audio engine started",
		zap.String("backend", cfg.Backend),
		zap.Int("sample_rate", cfg.SampleRate))
	return e
}

// DeviceErr returns the device initialization error, if any. The engine
// keeps working silently when this is non-nil.
func (e *Engine) DeviceErr() error {
	return e.deviceErr
}

// Load decodes path and installs it as the current buffer, resetting
// position to 0 and pausing playback. Decoding and resampling run
// before the lock is taken, so the render thread stalls only for the
// pointer swap. On failure the session is left exactly as it was.
// Must be called from the control thread; it blocks on file I/O.
func (e *Engine) Load(path string) error {
	buf, err := decode.File(path)
	if err != nil {
		e.log.Warn("load failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("load %s: %w", path, err)
	}
	buf = resample.Buffer(buf, e.sampleRate)

	e.mu.Lock()
	e.buf = buf
	e.pos = 0
	e.playing = false
	e.currentFile = path
	e.mu.Unlock()

	e.log.Info("loaded audio file",
		zap.String("path", path),
		zap.Int("frames", buf.Frames()),
		zap.Float64("duration", buf.Duration()))
	return nil
}

// Play starts or resumes playback. No-op when nothing is loaded.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf != nil {
		e.playing = true
	}
}

// Pause halts playback, keeping the position.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
}

// Stop halts playback and resets the position to the start.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
	e.pos = 0
}

// Seek moves the position to the given time, clamped to the buffer.
// No-op when nothing is loaded.
func (e *Engine) Seek(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil {
		return
	}
	// Clamp before converting: a float64 beyond the int range would
	// otherwise convert to an implementation-defined value.
	frames := e.buf.Frames()
	f := math.Round(seconds * float64(e.buf.SampleRate))
	switch {
	case f <= 0:
		e.pos = 0
	case f >= float64(frames):
		e.pos = frames
	default:
		e.pos = int(f)
	}
}

// SetVolume stores the gain, silently clamped to [0, 1].
func (e *Engine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	e.mu.Lock()
	e.volume = float32(v)
	e.mu.Unlock()
}

// Volume returns the current gain.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return float64(e.volume)
}

// Position returns the playback position in seconds, 0 when idle.
func (e *Engine) Position() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil {
		return 0
	}
	return float64(e.pos) / float64(e.buf.SampleRate)
}

// Duration returns the loaded buffer's length in seconds, 0 when idle.
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil {
		return 0
	}
	return e.buf.Duration()
}

// IsPlaying reports whether playback is running.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// CurrentFile returns the loaded file's path, ok=false when idle.
func (e *Engine) CurrentFile() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentFile, e.currentFile != ""
}

// Render fills out with the next frames of playback. It runs on the
// device's real-time thread: a contended lock degrades to one silent
// block instead of blocking, and the silence paths never allocate.
func (e *Engine) Render(out []float32, frames int) {
	if !e.mu.TryLock() {
		zeroFill(out)
		return
	}
	defer e.mu.Unlock()

	if e.buf == nil || !e.playing {
		zeroFill(out)
		return
	}

	total := e.buf.Frames()
	if e.pos >= total {
		// End of stream: stop but keep the position at the end.
		e.playing = false
		zeroFill(out)
		return
	}

	valid := frames
	if remaining := total - e.pos; valid > remaining {
		valid = remaining
	}

	base := e.pos * audio.Channels
	n := valid * audio.Channels
	for i := 0; i < n; i++ {
		out[i] = e.buf.Samples[base+i] * e.volume
	}
	zeroFill(out[n:])

	e.pos += valid
}

// DeviceFinished handles the device-level stream-stop notification.
// Unlike the per-callback end-of-stream branch, it rewinds to the start.
func (e *Engine) DeviceFinished() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
	e.pos = 0
}

// Close releases the output device and drops the loaded buffer. Safe to
// call more than once; the device is released exactly once.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.buf = nil
		e.pos = 0
		e.playing = false
		e.currentFile = ""
		dev := e.device
		e.device = nil
		e.mu.Unlock()

		if dev != nil {
			err = dev.Close()
		}
		e.log.Info("audio engine closed")
	})
	return err
}

func zeroFill(out []float32) {
	for i := range out {
		out[i] = 0
	}
}
