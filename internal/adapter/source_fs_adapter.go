// Package adapter contains the infrastructure adapters for the loctool CLI.
package adapter

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "loctool.dev/pkg/loctool/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer relies
// on when scanning and editing a source tree, so the workflow logic can be
// tested without touching the disk.
type SourceFSAdapter interface {
	// Walk traverses root in lexical order, calling fn for every entry.
	Walk(root m.Path, fn fs.WalkDirFunc) error

	// ReadFile opens, fully reads and closes the file at path.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the content of path as a whole. Readers never observe
	// a partially written file.
	WriteFile(path m.Path, content []byte) error

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over entries under root using filepath.WalkDir.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(string(root), fn)
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path comes from walking the user-selected tree
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(f)
}

// WriteFile writes content to a temporary file next to path and renames it over
// path. The original permission bits are kept when the file already exists.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	dst := string(path)
	perm := os.FileMode(0o644)

	if info, err := os.Stat(dst); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", dst)
		}

		perm = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, dst)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
