// Package stt provides speech-to-text transcription for recorded audio
// clips via a hosted recognition API.
package stt

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the recognizer produced an empty or
// whitespace-only transcript for the supplied audio.
var ErrNoSpeech = errors.New("no speech recognized")

// Result is a finished transcription.
type Result struct {
	Transcript string  // Whitespace-trimmed best-alternative text
	Confidence float64 // Recognizer confidence (0-1), 0 when not reported
}

// Transcriber converts a recorded audio clip to text.
type Transcriber interface {
	// Transcribe uploads the audio bytes and returns the best transcript.
	// mimeType is the clip's media type as received from the caller.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error)
}
