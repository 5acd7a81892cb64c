package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	id            TEXT PRIMARY KEY,
	created_at    TIMESTAMP NOT NULL,
	transcript    TEXT NOT NULL,
	reply         TEXT NOT NULL,
	transcribe_ms INTEGER NOT NULL DEFAULT 0,
	complete_ms   INTEGER NOT NULL DEFAULT 0,
	synthesize_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_turns_created_at ON turns(created_at);
`

// SQLiteRecorder persists turns to a SQLite database file.
// Use ":memory:" for an in-memory database.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (creating if needed) the database at path.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// Record stores one turn. Re-recording the same id is a no-op.
func (r *SQLiteRecorder) Record(ctx context.Context, turn *Turn) error {
	createdAt := turn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO turns
			(id, created_at, transcript, reply, transcribe_ms, complete_ms, synthesize_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		turn.ID, createdAt, turn.Transcript, turn.Reply,
		turn.TranscribeMillis, turn.CompleteMillis, turn.SynthesizeMillis,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// List returns recorded turns newest first.
func (r *SQLiteRecorder) List(ctx context.Context) ([]*Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, transcript, reply, transcribe_ms, complete_ms, synthesize_ms
		 FROM turns ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []*Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.Transcript, &t.Reply,
			&t.TranscribeMillis, &t.CompleteMillis, &t.SynthesizeMillis); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}

	return turns, nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
