// ABOUTME: Watch command
// ABOUTME: Monitors the library and queues new recordings for transcription
package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voxdeck/voxdeck-go/internal/app"
	"github.com/voxdeck/voxdeck-go/internal/store"
)

func newWatchCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the library and transcribe new recordings automatically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := state.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			// Catch up on anything recorded while not watching.
			enqueueMissing(state, a)

			w, err := a.WatchLibrary(func() { enqueueMissing(state, a) })
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(state.out, "watching %s\n", state.cfg.AudioDir)
			<-ctx.Done()
			return nil
		},
	}
}

// enqueueMissing queues every listed recording without a completed
// transcript. Already-queued paths just get marked pending again.
func enqueueMissing(state *appState, a *app.App) {
	files, err := a.Files()
	if err != nil {
		state.logger.Warn("listing library failed", zap.Error(err))
		return
	}
	for _, f := range files {
		if _, err := a.Store.Get(f.Path); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			state.logger.Warn("transcript lookup failed", zap.String("path", f.Path), zap.Error(err))
			continue
		}
		if _, err := a.Transcribe(f.Path); err != nil {
			state.logger.Warn("queueing transcription failed", zap.String("path", f.Path), zap.Error(err))
		}
	}
}
