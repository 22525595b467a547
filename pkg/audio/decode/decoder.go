// ABOUTME: Decoder interface definition and format dispatch
// ABOUTME: Maps file extensions to full-file audio decoders
package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/voxdeck/voxdeck-go/pkg/audio"
)

// ErrUnsupportedFormat is returned when no decoder handles a file's extension.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder decodes a complete audio file into a stereo PCM buffer.
// Decoders read the entire file in one call; there is no streaming or
// partial decode. Mono input is upmixed to stereo.
type Decoder interface {
	Decode(path string) (*audio.Buffer, error)
}

// ForPath returns the decoder for the file's extension.
func ForPath(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return &WAVDecoder{}, nil
	case ".mp3":
		return &MP3Decoder{}, nil
	case ".flac":
		return &FLACDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Supported reports whether the file's extension has a decoder.
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}

// File decodes path with the decoder matching its extension.
func File(path string) (*audio.Buffer, error) {
	dec, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	return dec.Decode(path)
}

// interleave merges per-channel sample slices into an interleaved stereo
// buffer, upmixing mono by duplication. Other layouts are rejected.
func interleave(channels [][]float32) ([]float32, error) {
	switch len(channels) {
	case 1:
		return audio.UpmixMono(channels[0]), nil
	case 2:
		if len(channels[0]) != len(channels[1]) {
			return nil, errors.New("channel length mismatch")
		}
		out := make([]float32, len(channels[0])*2)
		for i := range channels[0] {
			out[i*2] = channels[0][i]
			out[i*2+1] = channels[1][i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", len(channels))
	}
}
