package ops

import (
	"context"

	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/model"
)

// BET programs.
const (
	BETCommand  = "bet2"
	BETWrapper  = "bet"
	betHelpFlag = "-h"
)

// BETOptions configures BET.
type BETOptions struct {
	Output
	Opts    string // extra options for bet, spliced verbatim
	Command string // BETCommand (default) or BETWrapper
	Verbose bool
}

// BET extracts the brain from in.
func (t *Toolkit) BET(ctx context.Context, in imageio.Input, opts BETOptions) (*Result, error) {
	program := opts.Command
	if program == "" {
		program = BETCommand
	}
	if program != BETCommand && program != BETWrapper {
		return nil, &model.UsageError{
			Operation: "bet",
			Message:   "command must be " + BETCommand + " or " + BETWrapper + ", not " + program,
		}
	}

	s, err := t.begin(program, opts.Verbose)
	if err != nil {
		return nil, err
	}
	defer s.close()

	stem, tempOut, err := s.outputStem(opts.Output)
	if err != nil {
		return nil, err
	}
	file, err := s.input(in)
	if err != nil {
		return nil, err
	}

	res, err := s.run(ctx, s.command(program, quote(file), quote(stem), opts.Opts))
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, res, opts.Output, stem+s.ext, tempOut)
}
