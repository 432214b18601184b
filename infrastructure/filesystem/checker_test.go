package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

func TestCheckerExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewChecker()

	if !c.Exists(path) {
		t.Errorf("Exists(%q) = false, want true", path)
	}
	if c.Exists(filepath.Join(dir, "missing.mp4")) {
		t.Errorf("Exists should be false for a missing file")
	}
}

func TestCheckerSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, make([]byte, 1234), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewChecker()

	size, err := c.Size(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != 1234 {
		t.Errorf("Size = %d, want 1234", size)
	}

	_, err = c.Size(filepath.Join(dir, "missing.mp4"))
	var ioErr *media.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected IOError for a missing file, got %v", err)
	}
}
