// ABOUTME: Environment-driven application configuration
// ABOUTME: Collects audio, storage, and transcriber settings with defaults
package config

import (
	"os"
	"strconv"
)

// Config holds the application settings.
type Config struct {
	// AudioBackend selects the output device: malgo, oto, or null.
	AudioBackend string

	// SampleRate is the output device rate in Hz.
	SampleRate int

	// DBPath locates the transcript database.
	DBPath string

	// AudioDir is the recordings directory for listings and watching.
	AudioDir string

	// WhisperPath is the external transcriber binary.
	WhisperPath string

	// ModelPath is the speech model passed to the transcriber.
	ModelPath string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		AudioBackend: getenv("VOXDECK_AUDIO_BACKEND", "malgo"),
		SampleRate:   getenvInt("VOXDECK_SAMPLE_RATE", 44100),
		DBPath:       getenv("VOXDECK_DB_PATH", "transcriptions.db"),
		AudioDir:     getenv("VOXDECK_AUDIO_DIR", "."),
		WhisperPath:  getenv("VOXDECK_WHISPER_PATH", "whisper-cli"),
		ModelPath:    getenv("VOXDECK_MODEL_PATH", ""),
	}
}
