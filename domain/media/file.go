package media

import "os"

// MediaFile is a reference to an encoded audio/video file on disk, handed
// back to callers in operation results. Exists and Size are conveniences for
// those callers; services stat files through the FileChecker and FileSizer
// ports instead, so tests can substitute the filesystem.
type MediaFile struct {
	Path string
}

// NewMediaFile creates a MediaFile reference for the given path
func NewMediaFile(path string) MediaFile {
	return MediaFile{Path: path}
}

// Exists returns true if the file is present on disk
func (f MediaFile) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// Size returns the file's current byte size
func (f MediaFile) Size() (int64, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return 0, &IOError{Op: "stat", Path: f.Path, Err: err}
	}
	return info.Size(), nil
}
