package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jacksmith/fslw/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 2}
	assert.Equal(t, "exited with status 2", err.Error())

	toolErr := &model.ToolError{Command: "bet2 a b", ExitCode: 2}
	err = &ExitError{Code: 2, Err: toolErr}
	assert.Equal(t, toolErr.Error(), err.Error())

	var target *model.ToolError
	assert.True(t, errors.As(err, &target))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 3, ExitCode(&ExitError{Code: 3}))
	assert.Equal(t, 127, ExitCode(fmt.Errorf("running: %w", &ExitError{Code: 127})))
	assert.Equal(t, 1, ExitCode(&ExitError{}))
}

func TestFormatError(t *testing.T) {
	// nil error
	assert.Equal(t, "", FormatError(nil))

	// Simple error
	assert.Equal(t, "error: something went wrong", FormatError(errors.New("something went wrong")))

	// Typed error
	err := &model.UsageError{Operation: "bet", Message: "no output"}
	assert.Equal(t, "error: bet: no output", FormatError(err))
}
