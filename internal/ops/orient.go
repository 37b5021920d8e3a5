package ops

import (
	"context"
	"strings"

	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/model"
)

// OrientOptions configures Orient.
type OrientOptions struct {
	// ReturnImage reloads the modified image. It cannot be combined with
	// a -get query, which leaves the image unchanged.
	ReturnImage bool
	Reorient    bool
	Opts        string // fslorient operation, e.g. "-getorient" or "-swaporient"
	Verbose     bool
}

// Orient runs fslorient on in. Setters modify the file in place; getters
// answer on Result.Stdout. An in-memory input is modified in its temp
// copy, so ReturnImage is the only way to see a change to it.
func (t *Toolkit) Orient(ctx context.Context, in imageio.Input, opts OrientOptions) (*Result, error) {
	s, err := t.begin("fslorient", opts.Verbose)
	if err != nil {
		return nil, err
	}
	defer s.close()

	if opts.ReturnImage && strings.Contains(opts.Opts, "-get") {
		return nil, &model.UsageError{
			Operation: s.op,
			Message:   "a -get query does not change the image; do not request it back",
		}
	}

	file, err := s.input(in)
	if err != nil {
		return nil, err
	}
	_, isPath := in.(imageio.Path)

	res, err := s.run(ctx, s.command("fslorient", opts.Opts, quote(file)))
	if err != nil {
		return nil, err
	}

	out := Output{ReturnImage: opts.ReturnImage, Reorient: opts.Reorient}
	result, err := s.finish(ctx, res, out, file, false)
	if err != nil {
		return nil, err
	}
	if !isPath {
		result.OutputFile = ""
	}
	return result, nil
}

// Reorient2Std runs fslreorient2std, rewriting in to match the standard
// template orientation.
func (t *Toolkit) Reorient2Std(ctx context.Context, in imageio.Input, out Output, verbose bool) (*Result, error) {
	s, err := t.begin("fslreorient2std", verbose)
	if err != nil {
		return nil, err
	}
	defer s.close()

	stem, tempOut, err := s.outputStem(out)
	if err != nil {
		return nil, err
	}
	file, err := s.input(in)
	if err != nil {
		return nil, err
	}

	res, err := s.run(ctx, s.command("fslreorient2std", quote(file), quote(stem)))
	if err != nil {
		return nil, err
	}

	// The result is already in standard orientation.
	out.Reorient = false
	return s.finish(ctx, res, out, stem+s.ext, tempOut)
}
