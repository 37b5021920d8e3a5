package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		outputType OutputType
		want       string
	}{
		{OutputNiftiGz, ".nii.gz"},
		{OutputNifti, ".nii"},
		{OutputNiftiPair, ".hdr"},
		{OutputNiftiPairGz, ".hdr.gz"},
		{OutputAnalyze, ".hdr"},
		{OutputAnalyzeGz, ".hdr.gz"},
	}

	for _, tt := range tests {
		t.Run(string(tt.outputType), func(t *testing.T) {
			got, err := Extension(tt.outputType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown output type fails", func(t *testing.T) {
		_, err := Extension("MINC")
		require.Error(t, err)

		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "outputtype", cfgErr.Setting)
	})

	t.Run("lower case name is not recognised", func(t *testing.T) {
		_, err := Extension("nifti_gz")
		assert.Error(t, err)
	})
}

func TestParseOutputType(t *testing.T) {
	for _, name := range OutputTypes() {
		got, err := ParseOutputType(name)
		require.NoError(t, err)
		assert.Equal(t, OutputType(name), got)
	}

	_, err := ParseOutputType("")
	assert.Error(t, err)

	_, err = ParseOutputType("NIFTI2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NIFTI_GZ")
}

func TestOutputTypes(t *testing.T) {
	assert.Equal(t, []string{
		"ANALYZE", "ANALYZE_GZ", "NIFTI", "NIFTI_GZ", "NIFTI_PAIR", "NIFTI_PAIR_GZ",
	}, OutputTypes())
}

func TestTrimImageExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/out.nii.gz", "/tmp/out"},
		{"/tmp/out.nii", "/tmp/out"},
		{"/tmp/out.hdr", "/tmp/out"},
		{"/tmp/out.hdr.gz", "/tmp/out"},
		{"/tmp/out.img", "/tmp/out"},
		{"/tmp/out", "/tmp/out"},
		{"/data/sub.01/t1.NII.GZ", "/data/sub.01/t1"},
		{"/data/sub.01/t1", "/data/sub.01/t1"},
		{"/tmp/out.mat", "/tmp/out.mat"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimImageExt(tt.in), tt.in)
	}
}

func TestImageFiles(t *testing.T) {
	assert.Equal(t, []string{"/tmp/out.nii.gz"}, ImageFiles("/tmp/out", ".nii.gz"))
	assert.Equal(t, []string{"/tmp/out.nii"}, ImageFiles("/tmp/out", ".nii"))
	assert.Equal(t, []string{"/tmp/out.hdr", "/tmp/out.img"}, ImageFiles("/tmp/out", ".hdr"))
	assert.Equal(t, []string{"/tmp/out.hdr.gz", "/tmp/out.img.gz"}, ImageFiles("/tmp/out", ".hdr.gz"))
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{in: "nifti", want: BackendNifti},
		{in: "NIFTI", want: BackendNifti},
		{in: "nifti1", want: BackendNifti},
		{in: "Nifti1", want: BackendNifti},
		{in: "pnifti", want: BackendParallel},
		{in: " PNifti ", want: BackendParallel},
		{in: "ants", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				var cfgErr *ConfigurationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
