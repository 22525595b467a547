// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC files to stereo float32 buffers
package decode

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/voxdeck/voxdeck-go/pkg/audio"
)

// FLACDecoder decodes FLAC files.
type FLACDecoder struct{}

// Decode reads the entire FLAC stream into a stereo buffer.
func (d *FLACDecoder) Decode(path string) (*audio.Buffer, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("open flac: %w", err)
	}
	defer stream.Close()

	numChans := int(stream.Info.NChannels)
	if numChans < 1 || numChans > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d", numChans)
	}
	bitDepth := int(stream.Info.BitsPerSample)

	channels := make([][]float32, numChans)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode flac: %w", err)
		}
		if len(frame.Subframes) != numChans {
			return nil, fmt.Errorf("flac frame has %d channels, expected %d", len(frame.Subframes), numChans)
		}
		for ch, sub := range frame.Subframes {
			for _, s := range sub.Samples {
				channels[ch] = append(channels[ch], audio.SampleFromInt(int(s), bitDepth))
			}
		}
	}

	samples, err := interleave(channels)
	if err != nil {
		return nil, err
	}

	rate := int(stream.Info.SampleRate)
	if rate <= 0 {
		return nil, fmt.Errorf("flac stream has no sample rate: %s", path)
	}

	return &audio.Buffer{Samples: samples, SampleRate: rate}, nil
}
