// ABOUTME: Exec-based transcriber shelling out to a whisper-cli binary
// ABOUTME: Writes transcript text to a temp file and reads it back
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ExecTranscriber runs a whisper.cpp style command line tool.
type ExecTranscriber struct {
	Executable string
	ModelPath  string
	Logger     *zap.Logger
}

// NewExecTranscriber creates a transcriber around the given binary.
func NewExecTranscriber(executable, modelPath string, logger *zap.Logger) (*ExecTranscriber, error) {
	if strings.TrimSpace(executable) == "" {
		return nil, errors.New("transcriber executable is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecTranscriber{Executable: executable, ModelPath: modelPath, Logger: logger}, nil
}

// Transcribe runs the external tool on audioPath and returns the text.
func (e *ExecTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", errors.New("audio path is required")
	}

	// Each run gets its own directory so concurrent transcriptions
	// cannot clobber each other's output file.
	tmpDir, err := os.MkdirTemp("", "voxdeck-")
	if err != nil {
		return "", fmt.Errorf("create transcriber workdir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outBase := filepath.Join(tmpDir, "transcript")
	txtOut := outBase + ".txt"

	args := []string{"-f", audioPath, "-nt", "-otxt", "-of", outBase}
	if e.ModelPath != "" {
		args = append([]string{"-m", e.ModelPath}, args...)
	}

	cmd := exec.CommandContext(ctx, e.Executable, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.Logger.Debug("running transcriber", zap.String("executable", e.Executable), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("transcriber failed: %w: %s", err, detail)
		}
		return "", fmt.Errorf("transcriber failed: %w", err)
	}

	text, err := os.ReadFile(txtOut)
	if err != nil {
		return "", fmt.Errorf("read transcriber output: %w", err)
	}
	return strings.TrimSpace(string(text)), nil
}
