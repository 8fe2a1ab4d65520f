package auditlog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndNilLogAreSafe(t *testing.T) {
	var l *Log
	if err := l.Record(Entry{Operation: "render", SourceKey: "x"}); err != nil {
		t.Fatalf("nil Log.Record should be a no-op, got %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("nil Log.Close should be a no-op, got %v", err)
	}
}

func TestOpenRecordRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	partID := 3
	err = l.Record(Entry{
		Operation:   "extract",
		SourceKey:   "s3://bucket/key",
		MessageID:   "<abc@example.com>",
		PartID:      &partID,
		ContentType: "application/pdf",
		ResultSize:  1024,
		Duration:    15 * time.Millisecond,
		Err:         errors.New("boom"),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
}
