package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/shell"
	"github.com/jacksmith/fslw/internal/storage"
	"github.com/jacksmith/fslw/internal/toolkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installStubs creates an FSL root whose bin holds the given scripts.
func installStubs(t *testing.T, scripts map[string]string) string {
	t.Helper()
	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	for name, body := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"+body), 0755))
	}
	return root
}

func newShellToolkit(t *testing.T, root string) (*Toolkit, *fakeCodec) {
	t.Helper()
	cfg := &storage.Config{FSLDir: root}
	noEnv := func(string) (string, bool) { return "", false }
	codec := &fakeCodec{}
	tk := New(cfg,
		WithRunner(shell.Sh{}),
		WithLocator(toolkit.NewLocator(cfg, toolkit.WithLookupEnv(noEnv))),
		WithBridge(imageio.NewBridge(cfg, storage.NewScratch(t.TempDir()), imageio.WithCodec(codec))),
	)
	return tk, codec
}

func TestShellBET(t *testing.T) {
	root := installStubs(t, map[string]string{
		"bet2": `cp "$1" "$2.nii.gz"` + "\n",
	})
	tk, codec := newShellToolkit(t, root)

	dir := t.TempDir()
	in := filepath.Join(dir, "t1 scan.nii.gz")
	require.NoError(t, os.WriteFile(in, []byte("voxels"), 0644))
	out := filepath.Join(dir, "brain")

	res, err := tk.BET(context.Background(), imageio.Path(in), BETOptions{
		Output: Output{Out: out, ReturnImage: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.NotNil(t, res.Image)
	assert.Equal(t, []string{out + ".nii.gz"}, codec.reads)

	data, err := os.ReadFile(out + ".nii.gz")
	require.NoError(t, err)
	assert.Equal(t, "voxels", string(data))
}

func TestShellStatsEnvironment(t *testing.T) {
	root := installStubs(t, map[string]string{
		"fslstats": `echo "$FSLOUTPUTTYPE $FSLSETUP"` + "\n",
	})
	conf := filepath.Join(root, "etc", "fslconf")
	require.NoError(t, os.MkdirAll(conf, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(conf, "fsl.sh"), []byte("FSLSETUP=sourced; export FSLSETUP\n"), 0644))

	tk, _ := newShellToolkit(t, root)
	require.NoError(t, tk.Config().SetOutputType("NIFTI"))

	v, err := tk.Stats(context.Background(), imageio.Path("in.nii"), StatsOptions{Opts: "-m"})
	require.NoError(t, err)
	assert.Equal(t, "NIFTI sourced", v.Raw)
	assert.False(t, v.Numeric)
}

func TestShellExitCode(t *testing.T) {
	root := installStubs(t, map[string]string{
		"fslorient": "echo 'Image Exception' >&2\nexit 1\n",
	})
	tk, _ := newShellToolkit(t, root)

	res, err := tk.Orient(context.Background(), imageio.Path("missing.nii.gz"), OrientOptions{Opts: "-getorient"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "Image Exception\n", res.Stderr)
	assert.Error(t, res.Err())
}

func TestShellMissingProgram(t *testing.T) {
	tk, _ := newShellToolkit(t, installStubs(t, nil))

	res, err := tk.Stats(context.Background(), imageio.Path("in.nii.gz"), StatsOptions{Opts: "-m"})
	require.NoError(t, err)
	assert.Equal(t, 127, res.ExitCode)
}
