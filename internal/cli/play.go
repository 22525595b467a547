// ABOUTME: Play command
// ABOUTME: Loads a recording and streams it with a position display
package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPlayCmd(state *appState) *cobra.Command {
	var (
		volume float64
		seek   float64
	)

	cmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Play a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			path := args[0]
			if err := a.Engine.Load(path); err != nil {
				return err
			}

			// Without a device nothing drives the render callback, so
			// playback would never progress. Bail out after validating
			// the file rather than spinning on the position forever.
			if derr := a.Engine.DeviceErr(); derr != nil {
				state.logger.Warn("no audio device, not playing", zap.Error(derr))
				fmt.Fprintf(state.out, "no audio device available, skipping playback of %s\n", filepath.Base(path))
				return nil
			}
			a.Engine.SetVolume(volume)
			if seek > 0 {
				a.Engine.Seek(seek)
			}
			a.Engine.Play()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Progress in tenths of a second so the bar moves smoothly.
			total := int(a.Engine.Duration() * 10)
			bar := progressbar.NewOptions(total,
				progressbar.OptionSetDescription(filepath.Base(path)),
				progressbar.OptionSetWriter(state.out),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionClearOnFinish(),
			)

			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					a.Engine.Stop()
					fmt.Fprintln(state.out)
					return nil
				case <-ticker.C:
					_ = bar.Set(int(a.Engine.Position() * 10))
					if !a.Engine.IsPlaying() {
						_ = bar.Finish()
						fmt.Fprintln(state.out)
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().Float64Var(&volume, "volume", 1.0, "playback volume (0.0-1.0)")
	cmd.Flags().Float64Var(&seek, "seek", 0, "start position in seconds")

	return cmd
}
