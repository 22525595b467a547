// ABOUTME: WAV audio decoder
// ABOUTME: Decodes WAV files to stereo float32 buffers
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"

	"github.com/voxdeck/voxdeck-go/pkg/audio"
)

// WAVDecoder decodes RIFF/WAVE files.
type WAVDecoder struct{}

// Decode reads the entire WAV file into a stereo buffer.
func (d *WAVDecoder) Decode(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if pcm == nil || len(pcm.Data) == 0 {
		return nil, fmt.Errorf("empty wav file: %s", path)
	}

	numChans := pcm.Format.NumChannels
	if numChans < 1 || numChans > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d", numChans)
	}

	bitDepth := pcm.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(dec.BitDepth)
	}

	frames := len(pcm.Data) / numChans
	channels := make([][]float32, numChans)
	for ch := range channels {
		channels[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			channels[ch][i] = audio.SampleFromInt(pcm.Data[i*numChans+ch], bitDepth)
		}
	}

	samples, err := interleave(channels)
	if err != nil {
		return nil, err
	}

	rate := int(dec.SampleRate)
	if rate <= 0 {
		rate = pcm.Format.SampleRate
	}
	if rate <= 0 {
		return nil, fmt.Errorf("wav file has no sample rate: %s", path)
	}

	return &audio.Buffer{Samples: samples, SampleRate: rate}, nil
}
