package ops

import (
	"context"
	"strconv"

	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/model"
	"github.com/mitchellh/go-homedir"
)

// DefaultDOF is the FLIRT degrees of freedom used when none is given.
const DefaultDOF = 6

// affineDOF is the FLIRT degrees of freedom of the affine pre-registration.
const affineDOF = 12

// FLIRTOptions configures FLIRT.
type FLIRTOptions struct {
	Output
	Omat    string // output affine matrix; a temp file when empty
	DOF     int    // degrees of freedom; DefaultDOF when zero
	Opts    string // extra options for flirt, spliced verbatim
	Verbose bool
}

// FLIRT registers in to ref with flirt.
func (t *Toolkit) FLIRT(ctx context.Context, in, ref imageio.Input, opts FLIRTOptions) (*Result, error) {
	s, err := t.begin("flirt", opts.Verbose)
	if err != nil {
		return nil, err
	}
	defer s.close()

	stem, tempOut, err := s.outputStem(opts.Output)
	if err != nil {
		return nil, err
	}
	inFile, err := s.input(in)
	if err != nil {
		return nil, err
	}
	refFile, err := s.input(ref)
	if err != nil {
		return nil, err
	}

	omat := opts.Omat
	if omat == "" {
		if omat, err = s.tempPath(".mat"); err != nil {
			return nil, err
		}
	} else if omat, err = homedir.Expand(omat); err != nil {
		return nil, err
	}

	dof := opts.DOF
	if dof == 0 {
		dof = DefaultDOF
	}

	command := s.command("flirt",
		"-in", quote(inFile),
		"-ref", quote(refFile),
		"-out", quote(stem),
		"-omat", quote(omat),
		"-dof", strconv.Itoa(dof),
		opts.Opts,
	)
	res, err := s.run(ctx, command)
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, res, opts.Output, stem+s.ext, tempOut)
}

// FNIRTOptions configures FNIRT.
type FNIRTOptions struct {
	Output
	Opts    string // extra options for fnirt, spliced verbatim
	Verbose bool
}

// FNIRT registers in to ref nonlinearly with fnirt, writing the warped
// image with --iout.
func (t *Toolkit) FNIRT(ctx context.Context, in, ref imageio.Input, opts FNIRTOptions) (*Result, error) {
	s, err := t.begin("fnirt", opts.Verbose)
	if err != nil {
		return nil, err
	}
	defer s.close()

	stem, tempOut, err := s.outputStem(opts.Output)
	if err != nil {
		return nil, err
	}
	inFile, err := s.input(in)
	if err != nil {
		return nil, err
	}
	refFile, err := s.input(ref)
	if err != nil {
		return nil, err
	}

	command := s.command("fnirt",
		quote("--in="+inFile),
		quote("--ref="+refFile),
		quote("--iout="+stem),
		opts.Opts,
	)
	res, err := s.run(ctx, command)
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, res, opts.Output, stem+s.ext, tempOut)
}

// AffineOptions configures FNIRTWithAffine.
type AffineOptions struct {
	Output           // final fnirt output
	FlirtOmat string // affine matrix; a temp file when empty
	FlirtOut  string // affine-registered image; a temp file when empty
	FlirtOpts string // extra options for flirt
	Opts      string // extra options for fnirt
	Verbose   bool
}

// FNIRTWithAffine runs a 12 DOF flirt of in to ref, then fnirt of the
// flirt output to ref. The flirt stage never loads its image, whatever
// opts.ReturnImage says; its output file is handed to fnirt unchanged.
// Nothing is rolled back: if fnirt fails, the flirt output stays on disk.
// If flirt itself exits non-zero its result is returned and fnirt is not run.
func (t *Toolkit) FNIRTWithAffine(ctx context.Context, in, ref imageio.Input, opts AffineOptions) (*Result, error) {
	s, err := t.begin("fnirt", opts.Verbose)
	if err != nil {
		return nil, err
	}
	defer s.close()

	if opts.Out == "" && !opts.ReturnImage {
		return nil, &model.UsageError{
			Operation: s.op,
			Message:   "no output file given and image not requested; set one of them",
		}
	}

	inFile, err := s.input(in)
	if err != nil {
		return nil, err
	}
	refFile, err := s.input(ref)
	if err != nil {
		return nil, err
	}

	omat := opts.FlirtOmat
	if omat == "" {
		if omat, err = s.tempPath(".mat"); err != nil {
			return nil, err
		}
	}

	flirtOut := opts.FlirtOut
	tempFlirtOut := flirtOut == ""
	if tempFlirtOut {
		if flirtOut, err = t.bridge.Scratch().TempPath(""); err != nil {
			return nil, err
		}
	}

	affine, err := t.FLIRT(ctx, imageio.Path(inFile), imageio.Path(refFile), FLIRTOptions{
		Output:  Output{Out: flirtOut, ReturnImage: false},
		Omat:    omat,
		DOF:     affineDOF,
		Opts:    opts.FlirtOpts,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}
	if affine.ExitCode != 0 {
		return affine, nil
	}

	result, err := t.FNIRT(ctx, imageio.Path(affine.OutputFile), imageio.Path(refFile), FNIRTOptions{
		Output:  opts.Output,
		Opts:    opts.Opts,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	if tempFlirtOut && result.ExitCode == 0 {
		s.release(affine.OutputFile)
	}
	return result, nil
}
