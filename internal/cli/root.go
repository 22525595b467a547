// ABOUTME: Cobra command tree for the voxdeck binary
// ABOUTME: Root flags build the logger and resolve configuration
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voxdeck/voxdeck-go/internal/app"
	"github.com/voxdeck/voxdeck-go/internal/config"
	"github.com/voxdeck/voxdeck-go/internal/logging"
	"github.com/voxdeck/voxdeck-go/internal/version"
)

type appState struct {
	verbose  bool
	jsonLogs bool
	backend  string
	audioDir string
	dbPath   string

	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
}

func (s *appState) openApp() (*app.App, error) {
	return app.New(s.cfg, s.logger)
}

// NewRootCmd builds the voxdeck command tree.
func NewRootCmd() *cobra.Command {
	state := &appState{out: os.Stdout}

	cmd := &cobra.Command{
		Use:           "voxdeck",
		Short:         "Play, transcribe, and search voice recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: state.verbose, JSON: state.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			state.logger = logger

			state.cfg = config.Load()
			if state.backend != "" {
				state.cfg.AudioBackend = state.backend
			}
			if state.audioDir != "" {
				state.cfg.AudioDir = state.audioDir
			}
			if state.dbPath != "" {
				state.cfg.DBPath = state.dbPath
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&state.jsonLogs, "json", false, "log in JSON format")
	cmd.PersistentFlags().StringVar(&state.backend, "backend", "", "audio backend (malgo, oto, null)")
	cmd.PersistentFlags().StringVar(&state.audioDir, "audio-dir", "", "recordings directory")
	cmd.PersistentFlags().StringVar(&state.dbPath, "db", "", "transcript database path")

	cmd.AddCommand(
		newPlayCmd(state),
		newListCmd(state),
		newTranscribeCmd(state),
		newSearchCmd(state),
		newWatchCmd(state),
		newVersionCmd(),
	)

	return cmd
}
