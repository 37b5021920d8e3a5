// Package ops wraps individual FSL programs: it builds their command lines,
// runs them, and optionally loads the images they produce.
package ops

import (
	"context"
	"strings"

	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/model"
	"github.com/jacksmith/fslw/internal/shell"
	"github.com/jacksmith/fslw/internal/storage"
	"github.com/jacksmith/fslw/internal/toolkit"
	"github.com/kballard/go-shellquote"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
)

// Toolkit runs FSL programs using one configuration. It is not safe for
// concurrent use because the configuration it shares is not.
type Toolkit struct {
	cfg     *storage.Config
	locator *toolkit.Locator
	runner  shell.Runner
	bridge  *imageio.Bridge
	log     logrus.FieldLogger
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithRunner replaces the default `sh -c` runner.
func WithRunner(r shell.Runner) Option {
	return func(t *Toolkit) { t.runner = r }
}

// WithLocator replaces the default locator.
func WithLocator(l *toolkit.Locator) Option {
	return func(t *Toolkit) { t.locator = l }
}

// WithBridge replaces the default image bridge.
func WithBridge(b *imageio.Bridge) Option {
	return func(t *Toolkit) { t.bridge = b }
}

// WithLogger sets the logger verbose commands are written to.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Toolkit) { t.log = log }
}

// New returns a Toolkit reading cfg. Without options it locates FSL from
// the process environment, runs commands with sh, uses the system temp
// directory, and logs to stderr.
func New(cfg *storage.Config, opts ...Option) *Toolkit {
	t := &Toolkit{
		cfg:    cfg,
		runner: shell.Sh{},
		log:    logrus.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.locator == nil {
		t.locator = toolkit.NewLocator(cfg)
	}
	if t.bridge == nil {
		t.bridge = imageio.NewBridge(cfg, storage.NewScratch(""), imageio.WithBridgeLogger(t.log))
	}
	return t
}

// Config returns the configuration shared by the toolkit's components.
func (t *Toolkit) Config() *storage.Config {
	return t.cfg
}

// Locator returns the locator used to build command prefixes.
func (t *Toolkit) Locator() *toolkit.Locator {
	return t.locator
}

// Bridge returns the image bridge.
func (t *Toolkit) Bridge() *imageio.Bridge {
	return t.bridge
}

// Have reports whether FSL can be located.
func (t *Toolkit) Have() bool {
	return t.locator.Have()
}

// Output says where a wrapper should leave its result.
type Output struct {
	// Out is the output file. Any image suffix is replaced by the one the
	// configured output type produces. When empty, ReturnImage must be set
	// and a temp file is used and removed after loading.
	Out string

	// ReturnImage loads the result into Result.Image.
	ReturnImage bool

	// Reorient passes the result through fslreorient2std before loading.
	Reorient bool
}

// Result is what a wrapper reports. A non-zero ExitCode is not an error:
// the wrapper skips post-processing and loading and leaves Image nil.
type Result struct {
	Command    string
	ExitCode   int
	Stdout     string
	Stderr     string
	OutputFile string        // result on disk; empty if it was a temp file
	Image      imageio.Image // set when ReturnImage and ExitCode == 0
}

// Err returns a *model.ToolError when the program exited non-zero.
func (r *Result) Err() error {
	if r.ExitCode == 0 {
		return nil
	}
	return &model.ToolError{Command: r.Command, ExitCode: r.ExitCode}
}

// session tracks one wrapper invocation: the resolved prefix and extension
// and the temp files it owns.
type session struct {
	tk      *Toolkit
	op      string
	verbose bool
	prefix  string
	ext     string
	temps   []string
}

// begin resolves everything that can fail with a ConfigurationError.
func (t *Toolkit) begin(op string, verbose bool) (*session, error) {
	prefix, err := t.locator.CommandPrefix(true)
	if err != nil {
		return nil, err
	}
	ext, err := t.locator.Extension()
	if err != nil {
		return nil, err
	}
	return &session{tk: t, op: op, verbose: verbose, prefix: prefix, ext: ext}, nil
}

// input materializes in, remembering temp files for release.
func (s *session) input(in imageio.Input) (string, error) {
	path, owned, err := s.tk.bridge.Materialize(in)
	if err != nil {
		return "", err
	}
	if owned {
		s.temps = append(s.temps, path)
	}
	return path, nil
}

// outputStem returns the stem programs should write to and whether it is
// a temp allocation owned by this call.
func (s *session) outputStem(out Output) (string, bool, error) {
	if out.Out == "" {
		if !out.ReturnImage {
			return "", false, &model.UsageError{
				Operation: s.op,
				Message:   "no output file given and image not requested; set one of them",
			}
		}
		stem, err := s.tk.bridge.Scratch().TempPath("")
		if err != nil {
			return "", false, err
		}
		return stem, true, nil
	}

	expanded, err := homedir.Expand(out.Out)
	if err != nil {
		return "", false, err
	}
	return model.TrimImageExt(expanded), false, nil
}

// tempPath allocates a scratch path released with the session.
func (s *session) tempPath(suffix string) (string, error) {
	path, err := s.tk.bridge.Scratch().TempPath(suffix)
	if err != nil {
		return "", err
	}
	s.temps = append(s.temps, path)
	return path, nil
}

// command joins the prefixed program with its non-empty arguments.
func (s *session) command(program string, args ...string) string {
	parts := []string{s.prefix + program}
	for _, a := range args {
		if strings.TrimSpace(a) != "" {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, " ")
}

// run executes command, logging it first when verbose.
func (s *session) run(ctx context.Context, command string) (*shell.Result, error) {
	if s.verbose {
		s.tk.log.WithFields(logrus.Fields{"op": s.op, "cmd": command}).Info("running")
	}
	return s.tk.runner.Run(ctx, command)
}

// ownImage marks the image stem+ext, with any paired data file, for
// release with the session.
func (s *session) ownImage(stem string) {
	s.temps = append(s.temps, model.ImageFiles(stem, s.ext)...)
}

// finish builds the Result, loading file when requested. tempOut marks
// file as a temp allocation; it is released with the session whatever the
// outcome and never reported as OutputFile.
func (s *session) finish(ctx context.Context, res *shell.Result, out Output, file string, tempOut bool) (*Result, error) {
	result := &Result{
		Command:    res.Command,
		ExitCode:   res.ExitCode,
		Stdout:     res.Stdout,
		Stderr:     res.Stderr,
		OutputFile: file,
	}
	if tempOut {
		s.ownImage(model.TrimImageExt(file))
		result.OutputFile = ""
	}
	if res.ExitCode != 0 || !out.ReturnImage {
		return result, nil
	}

	loadPath := file
	if out.Reorient {
		rres, reoriented, err := s.reorient(ctx, file)
		if err != nil {
			return nil, err
		}
		if rres.ExitCode != 0 {
			result.Command = rres.Command
			result.ExitCode = rres.ExitCode
			result.Stdout = rres.Stdout
			result.Stderr = rres.Stderr
			return result, nil
		}
		loadPath = reoriented
	}

	img, err := s.tk.bridge.Load(loadPath)
	if err != nil {
		return nil, err
	}
	result.Image = img
	return result, nil
}

// reorient writes a standard-orientation copy of file to a temp file
// owned by the session and returns the run result and the copy's path.
func (s *session) reorient(ctx context.Context, file string) (*shell.Result, string, error) {
	stem, err := s.tk.bridge.Scratch().TempPath("")
	if err != nil {
		return nil, "", err
	}
	s.ownImage(stem)
	res, err := s.run(ctx, s.command("fslreorient2std", quote(file), quote(stem)))
	if err != nil {
		return nil, "", err
	}
	if res.ExitCode != 0 {
		return res, "", nil
	}
	return res, stem + s.ext, nil
}

// release removes one file, logging rather than failing on error.
func (s *session) release(path string) {
	if err := s.tk.bridge.Release(path); err != nil {
		s.tk.log.WithFields(logrus.Fields{"op": s.op, "path": path}).WithError(err).Debug("failed to remove temp file")
	}
}

// close releases every temp file the session owns.
func (s *session) close() {
	for _, path := range s.temps {
		s.release(path)
	}
	s.temps = nil
}

// quote shell-quotes a single argument.
func quote(arg string) string {
	return shellquote.Join(arg)
}
