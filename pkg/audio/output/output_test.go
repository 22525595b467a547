// ABOUTME: Tests for output device backends
// ABOUTME: Covers factory dispatch, the null device, and the render reader
package output

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatch(t *testing.T) {
	dev, err := New("null", 44100)
	require.NoError(t, err)
	assert.IsType(t, &Null{}, dev)

	dev, err = New("oto", 44100)
	require.NoError(t, err)
	assert.IsType(t, &Oto{}, dev)

	dev, err = New("", 44100)
	require.NoError(t, err)
	assert.IsType(t, &Malgo{}, dev)
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("pulse", 44100)

	assert.Error(t, err)
}

func TestNullPumpInvokesRender(t *testing.T) {
	dev := NewNull()

	var gotFrames int
	err := dev.Start(func(out []float32, frames int) {
		gotFrames = frames
		for i := range out {
			out[i] = 0.5
		}
	}, nil)
	require.NoError(t, err)

	out := dev.Pump(64)

	assert.Equal(t, 64, gotFrames)
	assert.Len(t, out, 128)
	assert.Equal(t, float32(0.5), out[0])
}

func TestNullFinish(t *testing.T) {
	dev := NewNull()

	called := false
	require.NoError(t, dev.Start(func(out []float32, frames int) {}, func() { called = true }))

	dev.Finish()

	assert.True(t, called)
}

func TestNullPumpBeforeStartIsSilent(t *testing.T) {
	dev := NewNull()

	out := dev.Pump(16)

	assert.Len(t, out, 32)
	for _, s := range out {
		assert.Equal(t, float32(0), s)
	}
}

func TestNullCloseIdempotent(t *testing.T) {
	dev := NewNull()

	assert.NoError(t, dev.Close())
	assert.NoError(t, dev.Close())
}

func TestRenderReaderEncodesFloat32LE(t *testing.T) {
	r := &renderReader{
		render: func(out []float32, frames int) {
			for i := range out {
				out[i] = 0.25
			}
		},
		scratch: make([]float32, 64),
	}

	p := make([]byte, 4*channels*4) // 4 frames
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, len(p), n)

	got := math.Float32frombits(binary.LittleEndian.Uint32(p))
	assert.Equal(t, float32(0.25), got)
}

func TestRenderReaderTinyBufferIsSilence(t *testing.T) {
	r := &renderReader{render: func(out []float32, frames int) {
		t.Fatal("render must not run for sub-frame reads")
	}}

	p := []byte{0xff, 0xff, 0xff}
	n, err := r.Read(p)
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{0, 0, 0}, p)
}
