// ABOUTME: Transcriber capability definition
// ABOUTME: Narrow interface over the external speech-to-text step
package transcribe

import "context"

// Transcriber turns a recording into text. Implementations run outside
// the audio engine, on the control side; inference itself is external.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Func adapts a plain function to the Transcriber interface.
type Func func(ctx context.Context, audioPath string) (string, error)

func (f Func) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return f(ctx, audioPath)
}
