// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used to convert decoded buffers to the output device rate
package resample

import "github.com/voxdeck/voxdeck-go/pkg/audio"

// Buffer converts a decoded buffer to the target sample rate using
// linear interpolation. The input is returned unchanged when the rates
// already match. The whole buffer is converted in one pass; there is no
// streaming state to carry between calls.
func Buffer(in *audio.Buffer, outputRate int) *audio.Buffer {
	if in == nil || in.SampleRate == outputRate || in.SampleRate <= 0 || outputRate <= 0 {
		return in
	}

	inFrames := in.Frames()
	if inFrames == 0 {
		return &audio.Buffer{Samples: nil, SampleRate: outputRate}
	}

	ratio := float64(in.SampleRate) / float64(outputRate)
	outFrames := int(float64(inFrames) / ratio)
	if outFrames < 1 {
		outFrames = 1
	}

	out := make([]float32, outFrames*audio.Channels)
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= inFrames-1 {
			// Past the last interpolatable frame, hold the final sample.
			for ch := 0; ch < audio.Channels; ch++ {
				out[i*audio.Channels+ch] = in.Samples[(inFrames-1)*audio.Channels+ch]
			}
			continue
		}
		frac := float32(pos - float64(idx))
		for ch := 0; ch < audio.Channels; ch++ {
			s0 := in.Samples[idx*audio.Channels+ch]
			s1 := in.Samples[(idx+1)*audio.Channels+ch]
			out[i*audio.Channels+ch] = s0 + (s1-s0)*frac
		}
	}

	return &audio.Buffer{Samples: out, SampleRate: outputRate}
}
