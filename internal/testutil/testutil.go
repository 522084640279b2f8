// Package testutil provides shared test helpers for building serving roots.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"viewmd/internal/storage"
)

// TestRoot creates a temporary directory opened as a serving root.
func TestRoot(t *testing.T) (string, *storage.Root) {
	t.Helper()
	dir := t.TempDir()
	root, err := storage.NewRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, root
}

// WriteFile creates a file (and any parent directories) under dir.
func WriteFile(t *testing.T, dir, rel string, content []byte) {
	t.Helper()
	abs := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		t.Fatal(err)
	}
}
