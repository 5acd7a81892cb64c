package journal

import (
	"context"
	"sync"
)

// MemoryRecorder keeps turns in memory. It is the default backend when no
// journal path is configured; nothing outlives the process.
type MemoryRecorder struct {
	mu    sync.RWMutex
	turns []*Turn
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record appends the turn.
func (r *MemoryRecorder) Record(_ context.Context, turn *Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = append(r.turns, turn)
	return nil
}

// List returns recorded turns newest first.
func (r *MemoryRecorder) List(_ context.Context) ([]*Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Turn, len(r.turns))
	for i, t := range r.turns {
		out[len(r.turns)-1-i] = t
	}
	return out, nil
}

// Close is a no-op for the in-memory backend.
func (r *MemoryRecorder) Close() error {
	return nil
}
