// ABOUTME: Oto-based audio output implementation
// ABOUTME: Feeds a persistent oto player from the render callback
package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using the oto library. oto pulls bytes from
// an io.Reader, so the reader adapter invokes the render callback for
// each read. oto has no stream-stop notification of its own; finished
// fires when the device is closed.
type Oto struct {
	sampleRate int

	mu       sync.Mutex
	otoCtx   *oto.Context
	player   *oto.Player
	finished func()
	closed   bool
}

// NewOto creates an oto-backed output at the given sample rate.
func NewOto(sampleRate int) *Oto {
	return &Oto{sampleRate: sampleRate}
}

// renderReader adapts a RenderFunc to the io.Reader oto consumes.
// It never returns io.EOF; an idle engine renders silence.
type renderReader struct {
	render  RenderFunc
	scratch []float32
}

func (r *renderReader) Read(p []byte) (int, error) {
	bytesPerFrame := channels * 4
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		// Too small for a whole frame; pad with silence.
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	need := frames * channels
	if need > len(r.scratch) {
		r.scratch = make([]float32, need)
	}
	out := r.scratch[:need]
	r.render(out, frames)

	for i, s := range out {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * bytesPerFrame, nil
}

// Start opens the oto context and begins streaming.
func (o *Oto) Start(render RenderFunc, finished func()) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil {
		return fmt.Errorf("device already started")
	}

	op := &oto.NewContextOptions{
		SampleRate:   o.sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.finished = finished
	o.player = ctx.NewPlayer(&renderReader{
		render:  render,
		scratch: make([]float32, 8192*channels),
	})
	o.player.Play()
	return nil
}

// Close stops the stream and releases the player exactly once.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	var err error
	if o.player != nil {
		err = o.player.Close()
		o.player = nil
	}
	if o.otoCtx != nil {
		// oto contexts are process-wide and cannot be destroyed;
		// suspending stops the hardware stream.
		_ = o.otoCtx.Suspend()
		o.otoCtx = nil
	}
	if o.finished != nil {
		o.finished()
		o.finished = nil
	}
	if err != nil {
		return fmt.Errorf("failed to close oto player: %w", err)
	}
	return nil
}
