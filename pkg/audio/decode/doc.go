// ABOUTME: Audio decoding package for playback sources
// ABOUTME: Full-file decoders for WAV, MP3, and FLAC
// Package decode turns audio files into stereo PCM buffers.
//
// Decoders read the entire file in one call and normalize output to
// interleaved stereo float32 at the file's native sample rate. Mono
// sources are upmixed by duplication. Supported formats:
//   - WAV (go-audio/wav)
//   - MP3 (hajimehoshi/go-mp3)
//   - FLAC (mewkiz/flac)
//
// Example:
//
//	buf, err := decode.File("recording.wav")
package decode
