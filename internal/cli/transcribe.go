// ABOUTME: Transcribe command
// ABOUTME: Runs the external transcriber on recordings and stores the text
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTranscribeCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <file>...",
		Short: "Transcribe recordings into the searchable store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var failed int
			for _, path := range args {
				if err := a.TranscribeSync(cmd.Context(), path); err != nil {
					state.logger.Warn("transcription failed", zap.String("path", path), zap.Error(err))
					failed++
					continue
				}
				fmt.Fprintf(state.out, "transcribed %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d transcriptions failed", failed, len(args))
			}
			return nil
		},
	}
}
