// ABOUTME: Null audio output implementation
// ABOUTME: Silent device used in degraded mode and in tests
package output

import "sync"

// Null is a device that produces no sound and never invokes the render
// callback on its own. It stands in when no audio hardware is available
// so the engine keeps a working, silent control surface.
type Null struct {
	mu       sync.Mutex
	render   RenderFunc
	finished func()
	started  bool
	closed   bool
}

// NewNull creates a silent output device.
func NewNull() *Null {
	return &Null{}
}

// Start records the callbacks without opening any stream.
func (n *Null) Start(render RenderFunc, finished func()) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.render = render
	n.finished = finished
	n.started = true
	return nil
}

// Pump invokes the render callback once for the given frame count and
// returns the rendered samples. Tests use it to stand in for the
// hardware clock.
func (n *Null) Pump(frames int) []float32 {
	n.mu.Lock()
	render := n.render
	n.mu.Unlock()

	out := make([]float32, frames*channels)
	if render != nil {
		render(out, frames)
	}
	return out
}

// Finish fires the device-level finished notification.
func (n *Null) Finish() {
	n.mu.Lock()
	finished := n.finished
	n.mu.Unlock()

	if finished != nil {
		finished()
	}
}

// Close marks the device closed.
func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}
