package filesystem

import (
	"os"

	"github.com/gabriel-melki/video-compressing/domain/media"
)

// Checker implements media.FileChecker and media.FileSizer using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Size returns the byte size of the file at path
func (c *Checker) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, &media.IOError{Op: "stat", Path: path, Err: err}
	}
	return info.Size(), nil
}

// Ensure Checker implements the filesystem ports
var (
	_ media.FileChecker = (*Checker)(nil)
	_ media.FileSizer   = (*Checker)(nil)
)
