package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFSStoreFetch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "msg.eml"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewFSStore(dir)
	data, err := s.Fetch(context.Background(), "msg.eml")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("got %q, want %q", data, "hello")
	}
}

func TestFSStoreFetchMissing(t *testing.T) {
	s := NewFSStore(t.TempDir())
	_, err := s.Fetch(context.Background(), "does-not-exist.eml")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreEmptyRootUsesKeyDirectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "direct.eml")
	if err := os.WriteFile(path, []byte("direct"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewFSStore("")
	data, err := s.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "direct" {
		t.Fatalf("got %q, want %q", data, "direct")
	}
}
