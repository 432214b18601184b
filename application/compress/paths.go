package compress

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// tempOutputPath returns a sibling scratch path for dest. It keeps the
// container extension so the engine can infer the output format, and stays
// in dest's directory so the final rename never crosses filesystems.
func tempOutputPath(dest string) string {
	dir := filepath.Dir(dest)
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(filepath.Base(dest), ext)
	return filepath.Join(dir, fmt.Sprintf(".%s_%s.part%s", stem, uuid.NewString()[:8], ext))
}

// ensureParentDir creates dest's parent directories when missing. It returns
// the topmost directory it created, so a failed operation can take back what
// it added, or "" when the parent already existed.
func ensureParentDir(dest string) (string, error) {
	dir := filepath.Dir(dest)
	if _, err := os.Stat(dir); err == nil {
		return "", nil
	}

	// walk up to the first ancestor that already exists
	top := dir
	for {
		parent := filepath.Dir(top)
		if parent == top {
			break
		}
		if _, err := os.Stat(parent); err == nil {
			break
		}
		top = parent
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &media.IOError{Op: "create output directory", Path: dir, Err: err}
	}
	return top, nil
}

// removeCreatedDirs deletes the directories ensureParentDir added for an
// operation that did not produce its output.
func removeCreatedDirs(top string) {
	if top != "" {
		os.RemoveAll(top)
	}
}

// moveIntoPlace renames a finished scratch file onto its destination.
// The scratch file is removed if the rename fails.
func moveIntoPlace(tmp, dest string) error {
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return &media.IOError{Op: "rename", Path: dest, Err: err}
	}
	return nil
}
