// Package storage provides the fslw configuration store and the scratch
// space used to shuttle images to and from toolkit programs.
package storage

import (
	"fmt"
	"os"
)

// tempPattern is the name pattern for every scratch file fslw allocates.
const tempPattern = "fslw-*"

// Scratch allocates and removes temporary files in a single directory.
type Scratch struct {
	dir string // empty means os.TempDir()
}

// NewScratch returns a Scratch rooted at dir. An empty dir uses the
// system temp directory.
func NewScratch(dir string) *Scratch {
	return &Scratch{dir: dir}
}

// Dir returns the directory scratch files are created in.
func (s *Scratch) Dir() string {
	if s.dir == "" {
		return os.TempDir()
	}
	return s.dir
}

// TempFile creates a new empty file whose name ends in suffix and returns
// its path. The caller owns the file.
func (s *Scratch) TempFile(suffix string) (string, error) {
	f, err := os.CreateTemp(s.dir, tempPattern+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}

// TempPath returns a unique path ending in suffix that does not exist yet,
// for programs that insist on creating their own output files.
func (s *Scratch) TempPath(suffix string) (string, error) {
	path, err := s.TempFile(suffix)
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to release temp name: %w", err)
	}
	return path, nil
}

// Remove deletes path. There is no existence check and no retry.
func (s *Scratch) Remove(path string) error {
	return os.Remove(path)
}
