// Package auditlog is a SQLite-backed processing log: one row per
// RenderMessage/ExtractPart call. It is purely observational — a disabled
// or unavailable log store degrades to a no-op, never a render failure.
package auditlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS processing_log (
	id          TEXT PRIMARY KEY,
	operation   TEXT NOT NULL,
	source_key  TEXT NOT NULL,
	message_id  TEXT,
	part_id     INTEGER,
	content_type TEXT,
	result_size INTEGER,
	duration_ms INTEGER NOT NULL,
	error       TEXT,
	created_at  TIMESTAMP NOT NULL
);
`

// Entry is one processing-log row.
type Entry struct {
	Operation   string // "render" or "extract"
	SourceKey   string
	MessageID   string
	PartID      *int
	ContentType string
	ResultSize  int
	Duration    time.Duration
	Err         error
}

// Log wraps a SQLite database handle.
type Log struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the processing_log table exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open audit log %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit log schema: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record inserts one processing-log row with a UUIDv7 primary key, time-
// ordered so log rows sort chronologically by id as well as created_at.
func (l *Log) Record(e Entry) error {
	if l == nil || l.db == nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate audit log id: %w", err)
	}

	var partID any
	if e.PartID != nil {
		partID = *e.PartID
	}
	var errText any
	if e.Err != nil {
		errText = e.Err.Error()
	}

	_, err = l.db.Exec(
		`INSERT INTO processing_log
			(id, operation, source_key, message_id, part_id, content_type, result_size, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), e.Operation, e.SourceKey, e.MessageID, partID, e.ContentType,
		e.ResultSize, e.Duration.Milliseconds(), errText, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit log row: %w", err)
	}
	return nil
}
