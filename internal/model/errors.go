package model

import "fmt"

// ConfigurationError indicates the toolkit or the imaging layer cannot be
// set up from the environment and configuration.
type ConfigurationError struct {
	Setting string // "fsldir", "outputtype", "backend", ...
	Value   string // the offending value, if any
	Message string // what went wrong
}

func (e *ConfigurationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Setting, e.Value, e.Message)
	}
	if e.Setting != "" {
		return fmt.Sprintf("%s: %s", e.Setting, e.Message)
	}
	return e.Message
}

// UsageError indicates a wrapper was called with arguments that cannot be
// honoured. It is returned before any child process starts.
type UsageError struct {
	Operation string // wrapper name, e.g. "bet"
	Message   string // what went wrong
}

func (e *UsageError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	}
	return e.Message
}

// ToolError describes a toolkit program that exited non-zero. Wrappers
// never return it themselves; callers obtain one from a result when they
// want the exit status as an error.
type ToolError struct {
	Command  string
	ExitCode int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("command exited with status %d: %s", e.ExitCode, e.Command)
}
