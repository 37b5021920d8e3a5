// Package shell runs toolkit command strings through /bin/sh.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result is the outcome of one command string.
type Result struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes a shell command string. A non-zero exit is reported in
// Result.ExitCode, not as an error; an error means the command could not
// be run at all.
type Runner interface {
	Run(ctx context.Context, command string) (*Result, error)
}

// Sh runs commands with `sh -c`, capturing stdout and stderr as text.
type Sh struct {
	// Path is the shell binary. Empty means "sh" from PATH.
	Path string
}

// Run executes command and waits for it to finish. There is no timeout;
// the call returns early only if ctx is cancelled.
func (s Sh) Run(ctx context.Context, command string) (*Result, error) {
	shell := s.Path
	if shell == "" {
		shell = "sh"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := &Result{Command: command}
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", shell, err)
	}

	return res, nil
}
