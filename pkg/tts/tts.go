// Package tts provides text-to-speech synthesis for assistant replies
// via a hosted voice API.
package tts

import "context"

// Synthesizer converts reply text to encoded audio.
type Synthesizer interface {
	// Synthesize returns the spoken form of text as MPEG audio bytes.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
