// Package adapter contains the infrastructure adapters used by the solflat pipeline:
// filesystem access, the external compiler process, artifact output and the build cache.
package adapter

import (
	"os"
	"path/filepath"

	m "solflat.dev/pkg/solflat/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when flattening a source tree. It hides direct `os` access so the
// resolver can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// Canonical returns the absolute, cleaned form of path. It is the identity used
	// for deduplication during resolution.
	Canonical(path m.Path) (m.Path, error)

	// Dir returns the directory containing path.
	Dir(path m.Path) m.Path

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFile writes content atomically: readers either see the previous file or
	// the complete new one, never a partial write.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - reading user sources is the point of the tool
	return os.ReadFile(string(path))
}

// Canonical returns the absolute, cleaned path.
func (a *LocalSourceFSAdapter) Canonical(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(filepath.Clean(abs)), nil
}

// Dir returns the parent directory of path.
func (a *LocalSourceFSAdapter) Dir(path m.Path) m.Path {
	return m.Path(filepath.Dir(string(path)))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile writes content to a temp file next to path and renames it into place.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(string(path))+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, string(path))
}
