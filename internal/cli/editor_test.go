package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEditor(t *testing.T) {
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "vim")
	assert.Equal(t, "code --wait", getEditor())

	t.Setenv("VISUAL", "")
	assert.Equal(t, "vim", getEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "", getEditor())
}

func TestEditInEditorNoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	_, err := EditInEditor([]byte("fsldir: /opt/fsl\n"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EDITOR not set")
}

func TestEditInEditorUnchanged(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	content := []byte("fsldir: /opt/fsl\n")
	result, err := EditInEditor(content, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, content, result)
}

func TestEditInEditorNonZeroExit(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditInEditor([]byte("x"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor exited with status 1")
	assert.Equal(t, 1, ExitCode(err))
}

func TestEditInEditorContentModified(t *testing.T) {
	// A script in a directory with a space checks quoting of the command.
	dir := filepath.Join(t.TempDir(), "my editors")
	require.NoError(t, os.MkdirAll(dir, 0755))
	script := filepath.Join(dir, "edit.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'backend: pnifti' > \"$1\"\n"), 0755))

	t.Setenv("VISUAL", "'"+script+"'")

	result, err := EditInEditor([]byte("backend: nifti\n"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "backend: pnifti\n", string(result))
}

func TestRunEditorEmptyCommand(t *testing.T) {
	err := runEditor("", "/tmp/test.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty editor command")
}

func TestRunEditorUnbalancedQuote(t *testing.T) {
	err := runEditor("'vim", "/tmp/test.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid editor command")
}

func TestRunEditorNonExistentCommand(t *testing.T) {
	err := runEditor("nonexistent-editor-command-12345", "/tmp/test.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run editor")
}
