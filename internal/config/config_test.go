package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	_, limits, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if limits.MaxRecursionDepth != 30 {
		t.Fatalf("expected default recursion depth 30, got %d", limits.MaxRecursionDepth)
	}
}

func TestLoadOverridesLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	content := "limits:\n  max_recursion_depth: 5\n  max_preview_length: 100\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, limits, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if limits.MaxRecursionDepth != 5 {
		t.Fatalf("expected overridden recursion depth 5, got %d", limits.MaxRecursionDepth)
	}
	if limits.MaxPreviewLength != 100 {
		t.Fatalf("expected overridden preview length 100, got %d", limits.MaxPreviewLength)
	}
}
