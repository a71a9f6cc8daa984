// Package fsops provides the filesystem operations used during project
// generation: directory creation, file writes, existence probes, and the
// recursive delete that backs rollback. Generation code depends on the Writer
// interface so failures can be injected in tests.
package fsops

import (
	"os"
	"path/filepath"
	"strings"

	flowerrors "github.com/mrz1836/flow/internal/errors"
)

const (
	dirPerm  = 0o750 // project directories
	filePerm = 0o644 // generated source and config files
)

// Writer defines the filesystem surface generation steps are allowed to use.
type Writer interface {
	// EnsureDir creates the directory and any missing parents. It succeeds
	// when the directory already exists.
	EnsureDir(path string) error

	// WriteFile writes content to path, creating parent directories as
	// needed and overwriting any existing file.
	WriteFile(path string, content []byte) error

	// ReadFile returns the contents of path. Steps that rewrite generated
	// files (such as Django settings) read through this.
	ReadFile(path string) ([]byte, error)

	// Exists reports whether path exists as a file or directory.
	Exists(path string) bool

	// RemoveAll recursively deletes path. A missing path is not an error.
	RemoveAll(path string) error
}

// DiskWriter implements Writer against the real filesystem.
type DiskWriter struct{}

// NewDiskWriter creates a DiskWriter.
func NewDiskWriter() *DiskWriter {
	return &DiskWriter{}
}

// EnsureDir creates the directory and any missing parents.
func (w *DiskWriter) EnsureDir(path string) error {
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return flowerrors.Wrapf(err, "create directory %s", path)
	}
	return nil
}

// WriteFile writes content to path, creating parents as needed.
func (w *DiskWriter) WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return flowerrors.Wrapf(err, "create parent of %s", path)
	}
	if err := os.WriteFile(path, content, filePerm); err != nil {
		return flowerrors.Wrapf(err, "write %s", path)
	}
	return nil
}

// ReadFile returns the contents of path.
func (w *DiskWriter) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is inside the run's target directory
	if err != nil {
		return nil, flowerrors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// Exists reports whether path exists.
func (w *DiskWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoveAll recursively deletes path.
func (w *DiskWriter) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return flowerrors.Wrapf(err, "remove %s", path)
	}
	return nil
}

// AtomicWrite writes data to path atomically using write-then-rename, so a
// crash mid-write never leaves a truncated file behind. Used for settings
// saves.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return flowerrors.Wrap(err, "create temp file")
	}

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return flowerrors.Wrap(err, "write data")
	}

	// Sync before rename so the data is on disk when the name appears.
	if err = f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return flowerrors.Wrap(err, "sync file")
	}

	if err = f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return flowerrors.Wrap(err, "close file")
	}

	if err = os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return flowerrors.Wrap(err, "rename temp file")
	}

	return nil
}

// ExpandHome replaces a leading ~ or ~/ with the current user's home
// directory. Paths without the prefix are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", flowerrors.Wrap(err, "resolve home directory")
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Ensure DiskWriter implements Writer.
var _ Writer = (*DiskWriter)(nil)
