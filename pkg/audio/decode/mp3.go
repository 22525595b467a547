// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 files to stereo float32 buffers
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/voxdeck/voxdeck-go/pkg/audio"
)

// MP3Decoder decodes MPEG layer-3 files.
type MP3Decoder struct{}

// Decode reads the entire MP3 file into a stereo buffer. go-mp3 always
// emits 16-bit little-endian stereo, so no upmix is needed here.
func (d *MP3Decoder) Decode(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	numSamples := len(raw) / 2
	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = audio.SampleFromInt16(s)
	}

	return &audio.Buffer{Samples: samples, SampleRate: dec.SampleRate()}, nil
}
