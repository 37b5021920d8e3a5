package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScratchTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewScratch(dir)

	path, err := s.TempFile(".nii.gz")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".nii.gz"))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "fslw-"))

	_, err = os.Stat(path)
	assert.NoError(t, err, "temp file should exist")

	other, err := s.TempFile(".nii.gz")
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}

func TestScratchTempPath(t *testing.T) {
	s := NewScratch(t.TempDir())

	path, err := s.TempPath("")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temp path must not exist yet")
}

func TestScratchRemove(t *testing.T) {
	s := NewScratch(t.TempDir())

	path, err := s.TempFile(".nii")
	require.NoError(t, err)

	require.NoError(t, s.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// No existence check: removing twice fails.
	assert.Error(t, s.Remove(path))
}

func TestScratchDir(t *testing.T) {
	assert.Equal(t, os.TempDir(), NewScratch("").Dir())
	assert.Equal(t, "/scratch", NewScratch("/scratch").Dir())
}
