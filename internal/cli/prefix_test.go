package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchProgram(t *testing.T) {
	programs := []string{"bet", "bet2", "fast", "flirt", "fnirt", "fslorient", "fslreorient2std", "fslstats"}

	tests := []struct {
		name     string
		prefix   string
		want     string
		errorMsg string
	}{
		{name: "exact match beats longer name", prefix: "bet", want: "bet"},
		{name: "exact match case insensitive", prefix: "FLIRT", want: "flirt"},
		{name: "unique prefix", prefix: "fa", want: "fast"},
		{name: "unique longer prefix", prefix: "fslo", want: "fslorient"},
		{name: "ambiguous prefix", prefix: "fsl", errorMsg: "ambiguous program"},
		{name: "ambiguous single letter", prefix: "f", errorMsg: "ambiguous program"},
		{name: "no match", prefix: "melodic", errorMsg: "unknown program"},
		{name: "empty prefix is ambiguous", prefix: "", errorMsg: "ambiguous program"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchProgram(tt.prefix, programs)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatchProgramNoPrograms(t *testing.T) {
	_, err := MatchProgram("bet", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown program")
}
