// ABOUTME: Tests for the library directory watcher
// ABOUTME: Verifies debounced notifications and shutdown
package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchNotifiesOnCreate(t *testing.T) {
	dir := t.TempDir()
	notified := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, dir, 20*time.Millisecond, func() {
		select {
		case notified <- struct{}{}:
		default:
		}
	}, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "240101_0900.wav"), []byte("x"), 0o644))

	select {
	case <-notified:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatchMissingDir(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := Watch(ctx, filepath.Join(t.TempDir(), "absent"), 0, func() {}, nil)

	assert.Error(t, err)
}
