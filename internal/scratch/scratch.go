// Package scratch hands out uniquely named temporary files that the caller
// must Remove once the request that created them is done.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Dir struct {
	path string
}

func New(path string) (*Dir, error) {
	if path == "" {
		path = os.TempDir()
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("scratch dir %s: %w", path, err)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string { return d.path }

// Create opens a new empty file named <uuid><ext> inside the directory.
func (d *Dir) Create(ext string) (*File, error) {
	name := filepath.Join(d.path, uuid.NewString()+ext)
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}
	return &File{File: f}, nil
}

type File struct {
	*os.File
}

// Remove closes and deletes the file. It is safe to call more than once and
// on a nil *File; errors are swallowed.
func (f *File) Remove() {
	if f == nil || f.File == nil {
		return
	}
	_ = f.File.Close()
	_ = os.Remove(f.Name())
}
