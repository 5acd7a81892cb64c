// Package journal records completed voice exchanges for later inspection.
// Recording is best-effort observability: the request pipeline itself is
// stateless and never fails because a recorder did.
package journal

import (
	"context"
	"time"
)

// Turn is one completed exchange: what the caller said and what the
// assistant replied, with per-stage timings.
type Turn struct {
	ID         string    `json:"id"`         // Request identifier
	Transcript string    `json:"transcript"` // User utterance (typed or recognized)
	Reply      string    `json:"reply"`      // Assistant reply text
	CreatedAt  time.Time `json:"created_at"`

	// Stage durations in milliseconds; 0 for the text path's transcription.
	TranscribeMillis int64 `json:"transcribe_ms"`
	CompleteMillis   int64 `json:"complete_ms"`
	SynthesizeMillis int64 `json:"synthesize_ms"`
}

// Recorder persists turns.
type Recorder interface {
	// Record stores one turn.
	Record(ctx context.Context, turn *Turn) error

	// List returns all recorded turns, newest first.
	List(ctx context.Context) ([]*Turn, error)

	// Close releases any resources held by the recorder.
	Close() error
}
