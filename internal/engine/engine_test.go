// ABOUTME: Tests for the playback engine
// ABOUTME: Pins transport semantics, render protocol, and degraded mode
package engine

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxdeck/voxdeck-go/pkg/audio"
)

// writeWAV writes a 16-bit PCM WAV file with the given interleaved data.
func writeWAV(t *testing.T, path string, data []int, channels, rate int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

// monoFixture writes a mono WAV of the given length filled with a
// constant sample value and returns its path.
func monoFixture(t *testing.T, frames int, value int, rate int) string {
	t.Helper()

	data := make([]int, frames)
	for i := range data {
		data[i] = value
	}
	path := filepath.Join(t.TempDir(), "fixture.wav")
	writeWAV(t, path, data, 1, rate)
	return path
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e := New(Config{Backend: "null", SampleRate: 44100})
	t.Cleanup(func() { _ = e.Close() })
	require.NoError(t, e.DeviceErr())
	return e
}

func render(e *Engine, frames int) []float32 {
	out := make([]float32, frames*audio.Channels)
	e.Render(out, frames)
	return out
}

func TestIdleEngineDefaults(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, 0.0, e.Position())
	assert.Equal(t, 0.0, e.Duration())
	assert.False(t, e.IsPlaying())
	_, ok := e.CurrentFile()
	assert.False(t, ok)
}

func TestLoadTwoSecondMonoFile(t *testing.T) {
	e := newTestEngine(t)
	path := monoFixture(t, 88200, 16384, 44100)

	require.NoError(t, e.Load(path))

	assert.Equal(t, 2.0, e.Duration())
	assert.Equal(t, 0.0, e.Position())
	assert.False(t, e.IsPlaying())

	got, ok := e.CurrentFile()
	require.True(t, ok)
	assert.Equal(t, path, got)
}

func TestPlayWithoutBufferIsNoop(t *testing.T) {
	e := newTestEngine(t)

	e.Play()

	assert.False(t, e.IsPlaying())
}

func TestPlayPauseKeepsPosition(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 44100, 1000, 44100)))

	e.Play()
	require.True(t, e.IsPlaying())
	render(e, 4410)

	e.Pause()

	assert.False(t, e.IsPlaying())
	assert.InDelta(t, 0.1, e.Position(), 0.0001)
}

func TestStopResetsPosition(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 44100, 1000, 44100)))
	e.Seek(0.5)

	e.Stop()

	assert.False(t, e.IsPlaying())
	assert.Equal(t, 0.0, e.Position())
}

func TestSeekClamping(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 88200, 1000, 44100)))

	e.Seek(-5)
	assert.Equal(t, 0.0, e.Position())

	e.Seek(100)
	assert.Equal(t, 2.0, e.Position())

	e.Seek(0.5)
	assert.InDelta(t, 0.5, e.Position(), 0.0001)
}

func TestSeekHugeOffsetsClampWithoutOverflow(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 88200, 1000, 44100)))

	// Targets whose frame index exceeds the int range must still land
	// on the nearest end of the buffer.
	e.Seek(1e15)
	assert.Equal(t, 2.0, e.Position())

	e.Seek(-1e15)
	assert.Equal(t, 0.0, e.Position())
}

func TestSeekRoundsToNearestFrame(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 44100, 1000, 44100)))

	// 0.100009 s * 44100 = 4410.4 frames, rounds down to 4410.
	e.Seek(0.100009)
	assert.InDelta(t, float64(4410)/44100, e.Position(), 1e-9)

	// 0.100015 s * 44100 = 4410.66 frames, rounds up to 4411.
	e.Seek(0.100015)
	assert.InDelta(t, float64(4411)/44100, e.Position(), 1e-9)
}

func TestSeekWithoutBufferIsNoop(t *testing.T) {
	e := newTestEngine(t)

	e.Seek(10)

	assert.Equal(t, 0.0, e.Position())
}

func TestSetVolumeClamps(t *testing.T) {
	e := newTestEngine(t)

	e.SetVolume(1.7)
	assert.Equal(t, 1.0, e.Volume())

	e.SetVolume(-0.3)
	assert.Equal(t, 0.0, e.Volume())

	e.SetVolume(0.5)
	assert.Equal(t, 0.5, e.Volume())
}

func TestLoadFailureLeavesSessionUnchanged(t *testing.T) {
	e := newTestEngine(t)
	good := monoFixture(t, 44100, 1000, 44100)
	require.NoError(t, e.Load(good))
	e.Seek(0.25)
	e.Play()

	bad := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

	err := e.Load(bad)
	require.Error(t, err)

	got, ok := e.CurrentFile()
	require.True(t, ok)
	assert.Equal(t, good, got)
	assert.InDelta(t, 0.25, e.Position(), 0.0001)
	assert.True(t, e.IsPlaying())
}

func TestLoadFailureWithNoPriorState(t *testing.T) {
	e := newTestEngine(t)

	err := e.Load(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)

	assert.Equal(t, 0.0, e.Duration())
	_, ok := e.CurrentFile()
	assert.False(t, ok)
}

func TestRenderSilentWhenPaused(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 44100, 16384, 44100)))

	out := render(e, 256)

	for _, s := range out {
		assert.Equal(t, float32(0), s)
	}
	assert.Equal(t, 0.0, e.Position())
}

func TestRenderAppliesVolume(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 44100, 16384, 44100)))
	e.SetVolume(0.5)
	e.Play()

	out := render(e, 128)

	// 16384/32768 = 0.5 source amplitude, scaled by 0.5 volume.
	for _, s := range out {
		assert.InDelta(t, 0.25, s, 0.0001)
	}
	assert.InDelta(t, float64(128)/44100, e.Position(), 1e-9)
}

func TestRenderPartialBlockAtEndOfBuffer(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 88200, 16384, 44100)))
	e.Play()
	e.Seek(float64(88200-500) / 44100)

	out := render(e, 1024)

	// 500 real frames, then 524 frames of silence.
	for i := 0; i < 500*audio.Channels; i++ {
		assert.InDelta(t, 0.5, out[i], 0.0001, "sample %d", i)
	}
	for i := 500 * audio.Channels; i < len(out); i++ {
		assert.Equal(t, float32(0), out[i], "sample %d", i)
	}

	// The next callback observes end-of-stream and stops playback,
	// leaving the position at the end of the buffer.
	out = render(e, 1024)
	for _, s := range out {
		assert.Equal(t, float32(0), s)
	}
	assert.False(t, e.IsPlaying())
	assert.Equal(t, 2.0, e.Position())
}

func TestDeviceFinishedRewindsToStart(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 44100, 1000, 44100)))
	e.Play()
	render(e, 4410)

	e.DeviceFinished()

	assert.False(t, e.IsPlaying())
	assert.Equal(t, 0.0, e.Position())
}

func TestRenderNeverWritesBeyondRequest(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 1000, 16384, 44100)))
	e.Play()

	// Guard samples beyond the requested frame count must stay intact.
	out := make([]float32, 64*audio.Channels+4)
	for i := range out {
		out[i] = 42
	}
	e.Render(out[:64*audio.Channels], 64)

	for i := 64 * audio.Channels; i < len(out); i++ {
		assert.Equal(t, float32(42), out[i])
	}
}

func TestLoadResamplesToDeviceRate(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 22050, 1000, 22050)))

	// One second of audio stays one second at the device rate.
	assert.InDelta(t, 1.0, e.Duration(), 0.001)
}

func TestLoadReplacesBuffer(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Load(monoFixture(t, 88200, 1000, 44100)))
	e.Seek(1.5)
	e.Play()

	second := monoFixture(t, 44100, 1000, 44100)
	require.NoError(t, e.Load(second))

	assert.Equal(t, 0.0, e.Position())
	assert.False(t, e.IsPlaying())
	assert.Equal(t, 1.0, e.Duration())

	got, _ := e.CurrentFile()
	assert.Equal(t, second, got)
}

func TestUnknownBackendDegradesToSilentEngine(t *testing.T) {
	e := New(Config{Backend: "bogus"})
	defer e.Close()

	require.Error(t, e.DeviceErr())

	// The control API must stay usable.
	require.NoError(t, e.Load(monoFixture(t, 44100, 1000, 44100)))
	e.Play()
	assert.True(t, e.IsPlaying())
	e.Stop()
	assert.False(t, e.IsPlaying())
}

func TestCloseIdempotent(t *testing.T) {
	e := New(Config{Backend: "null"})

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	assert.Equal(t, 0.0, e.Duration())
	assert.False(t, e.IsPlaying())
}
