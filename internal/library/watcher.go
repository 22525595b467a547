// ABOUTME: Library directory watcher
// ABOUTME: Debounced change notifications for recording listings
package library

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces bursts of filesystem events (a recorder
// writing a file produces many) into one notification.
const DefaultDebounce = 500 * time.Millisecond

// Watcher notifies the application when the library directory changes.
type Watcher struct {
	fw  *fsnotify.Watcher
	log *zap.Logger
}

// Watch observes dir and invokes onChange, debounced, after relevant
// audio files appear, change, or disappear. The watcher stops when ctx
// is canceled or Close is called.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func(), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{fw: fw, log: logger}
	go w.run(ctx, debounce, onChange)
	return w, nil
}

func (w *Watcher) run(ctx context.Context, debounce time.Duration, onChange func()) {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			w.log.Debug("library changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			pending = true
		case <-timer.C:
			pending = false
			onChange()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
