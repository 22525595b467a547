// ABOUTME: Audio type definitions
// ABOUTME: Defines decoded PCM buffers and sample conversion helpers
package audio

// Channels is the channel count of every Buffer. Mono sources are
// upmixed at decode time; other layouts are rejected by the decoders.
const Channels = 2

// Buffer holds fully decoded PCM audio as interleaved stereo float32
// samples in [-1, 1]. A Buffer is never mutated after creation.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Frames returns the number of stereo frames in the buffer.
func (b *Buffer) Frames() int {
	return len(b.Samples) / Channels
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// SampleFromInt16 converts a signed 16-bit PCM sample to float32.
func SampleFromInt16(s int16) float32 {
	return float32(s) / 32768.0
}

// SampleFromInt converts a signed PCM sample of the given bit depth to float32.
func SampleFromInt(s int, bitDepth int) float32 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return float32(s) / float32(int(1)<<(bitDepth-1))
}

// UpmixMono duplicates a mono sample sequence into interleaved stereo.
func UpmixMono(mono []float32) []float32 {
	out := make([]float32, len(mono)*Channels)
	for i, s := range mono {
		out[i*2] = s
		out[i*2+1] = s
	}
	return out
}
