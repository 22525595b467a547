// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio's hardware data callback to drive rendering
package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"
)

const channels = 2

// Malgo output implementation using the miniaudio library. The device
// data callback pulls frames from the engine's render function; the
// miniaudio stop callback surfaces the device-level finished event.
type Malgo struct {
	sampleRate int

	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	scratch  []float32
	closed   bool
}

// NewMalgo creates a malgo-backed output at the given sample rate.
func NewMalgo(sampleRate int) *Malgo {
	return &Malgo{sampleRate: sampleRate}
}

// Start opens the default playback device and begins streaming.
func (m *Malgo) Start(render RenderFunc, finished func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("device already started")
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = channels
	deviceConfig.SampleRate = uint32(m.sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	// Preallocated so the steady-state callback never allocates.
	m.scratch = make([]float32, 8192*channels)

	onSamples := func(pOutput, _ []byte, frameCount uint32) {
		frames := int(frameCount)
		need := frames * channels
		if need > len(m.scratch) {
			m.scratch = make([]float32, need)
		}
		out := m.scratch[:need]
		render(out, frames)
		for i, s := range out {
			binary.LittleEndian.PutUint32(pOutput[i*4:], math.Float32bits(s))
		}
	}

	callbacks := malgo.DeviceCallbacks{
		Data: onSamples,
		Stop: func() {
			if finished != nil {
				finished()
			}
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	m.malgoCtx = ctx
	m.device = device
	return nil
}

// Close stops the stream and releases the device exactly once.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.device != nil {
		m.device.Uninit()
		m.device = nil
	}
	if m.malgoCtx != nil {
		err := m.malgoCtx.Uninit()
		m.malgoCtx.Free()
		m.malgoCtx = nil
		if err != nil {
			return fmt.Errorf("failed to uninit malgo context: %w", err)
		}
	}
	return nil
}
