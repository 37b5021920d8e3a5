package ops

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/model"
)

// BiasCorrectOptions configures BiasCorrect.
type BiasCorrectOptions struct {
	Output
	Opts    string // extra options for fast, spliced verbatim
	Verbose bool

	// KeepSeg keeps the <out>_seg segmentation fast writes alongside the
	// corrected image. By default it is removed.
	KeepSeg bool
}

// BiasCorrect runs fast in bias-field-only mode on in. fast writes the
// corrected volume as <out>_restore; it is renamed to <out>.
func (t *Toolkit) BiasCorrect(ctx context.Context, in imageio.Input, opts BiasCorrectOptions) (*Result, error) {
	s, err := t.begin("fast", opts.Verbose)
	if err != nil {
		return nil, err
	}
	defer s.close()

	stem, tempOut, err := s.outputStem(opts.Output)
	if err != nil {
		return nil, err
	}
	if tempOut {
		s.ownImage(stem + "_seg")
		s.ownImage(stem + "_restore")
	}
	file, err := s.input(in)
	if err != nil {
		return nil, err
	}

	command := s.command("fast", opts.Opts, "-B", "--nopve", quote("--out="+stem), quote(file))
	res, err := s.run(ctx, command)
	if err != nil {
		return nil, err
	}

	out := stem + s.ext
	if res.ExitCode == 0 {
		if !opts.KeepSeg {
			for _, seg := range model.ImageFiles(stem+"_seg", s.ext) {
				if err := os.Remove(seg); err != nil && !os.IsNotExist(err) {
					return nil, fmt.Errorf("failed to remove segmentation %s: %w", seg, err)
				}
			}
		}
		restored := model.ImageFiles(stem+"_restore", s.ext)
		for i, dst := range model.ImageFiles(stem, s.ext) {
			if err := os.Rename(restored[i], dst); err != nil {
				return nil, fmt.Errorf("failed to rename %s: %w", restored[i], err)
			}
		}
	}

	return s.finish(ctx, res, opts.Output, out, tempOut)
}
