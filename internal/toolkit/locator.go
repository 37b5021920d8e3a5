// Package toolkit locates the FSL installation and builds the shell
// fragment that puts its programs on the path.
package toolkit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jacksmith/fslw/internal/model"
	"github.com/jacksmith/fslw/internal/storage"
	"github.com/kballard/go-shellquote"
)

// Environment variables consulted before the configuration.
const (
	EnvFSLDir     = "FSLDIR"
	EnvOutputType = "FSLOUTPUTTYPE"
)

// setupScript is sourced, relative to the root, when present.
const setupScript = "etc/fslconf/fsl.sh"

// DefaultFallbacks are the conventional install locations, in search order.
var DefaultFallbacks = []string{
	"/usr/local/fsl",
	"/usr/share/fsl/5.0",
	"/usr/share/fsl/5.1",
}

// Source records where the install root was found.
type Source int

const (
	SourceEnv Source = iota
	SourceConfig
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceEnv:
		return "env"
	case SourceConfig:
		return "config"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Locator resolves the FSL install root and output type from the
// environment, then the configuration, then defaults.
type Locator struct {
	cfg       *storage.Config
	lookupEnv func(string) (string, bool)
	exists    func(string) bool
	fallbacks []string
}

// Option configures a Locator.
type Option func(*Locator)

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(l *Locator) { l.lookupEnv = fn }
}

// WithExists replaces the filesystem existence check.
func WithExists(fn func(string) bool) Option {
	return func(l *Locator) { l.exists = fn }
}

// WithFallbacks replaces DefaultFallbacks.
func WithFallbacks(paths ...string) Option {
	return func(l *Locator) { l.fallbacks = paths }
}

// NewLocator returns a Locator reading and updating cfg.
func NewLocator(cfg *storage.Config, opts ...Option) *Locator {
	l := &Locator{
		cfg:       cfg,
		lookupEnv: os.LookupEnv,
		exists:    pathExists,
		fallbacks: DefaultFallbacks,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Config returns the configuration the locator reads and updates.
func (l *Locator) Config() *storage.Config {
	return l.cfg
}

// Dir reports FSLDIR, else the configured root, without validating either.
func (l *Locator) Dir() string {
	if dir, ok := l.lookupEnv(EnvFSLDir); ok {
		return dir
	}
	return l.cfg.FSLDir
}

// ResolveRoot finds the install root. FSLDIR wins when exported. A
// configured root must exist; a wrong override is an error even when a
// fallback location would work. Otherwise the first existing fallback is
// used and stored in the configuration so later calls skip the scan.
func (l *Locator) ResolveRoot() (string, Source, error) {
	if dir, ok := l.lookupEnv(EnvFSLDir); ok {
		if dir == "" {
			return "", SourceEnv, &model.ConfigurationError{
				Setting: "fsldir",
				Message: EnvFSLDir + " is set but empty",
			}
		}
		return dir, SourceEnv, nil
	}

	if dir := l.cfg.FSLDir; dir != "" {
		if !l.exists(dir) {
			return "", SourceConfig, &model.ConfigurationError{
				Setting: "fsldir",
				Value:   dir,
				Message: "configured FSL directory does not exist",
			}
		}
		return dir, SourceConfig, nil
	}

	for _, dir := range l.fallbacks {
		if l.exists(dir) {
			l.cfg.SetFSLDir(dir)
			return dir, SourceFallback, nil
		}
	}

	return "", SourceFallback, &model.ConfigurationError{
		Setting: "fsldir",
		Message: "cannot find FSL; set " + EnvFSLDir + " or configure fsldir",
	}
}

// OutputType resolves FSLOUTPUTTYPE, then the configured type, then
// NIFTI_GZ. The default is stored in the configuration.
func (l *Locator) OutputType() (model.OutputType, error) {
	if name, ok := l.lookupEnv(EnvOutputType); ok && name != "" {
		return model.ParseOutputType(name)
	}
	if l.cfg.OutputType != "" {
		return model.ParseOutputType(l.cfg.OutputType)
	}
	if err := l.cfg.SetOutputType(string(model.DefaultOutputType)); err != nil {
		return "", err
	}
	return model.DefaultOutputType, nil
}

// Extension returns the suffix for the resolved output type.
func (l *Locator) Extension() (string, error) {
	t, err := l.OutputType()
	if err != nil {
		return "", err
	}
	return model.Extension(t)
}

// CommandPrefix returns the shell fragment placed directly before a
// program name. It is empty when FSLDIR is exported, since the caller's
// environment already carries the toolkit. Otherwise it exports FSLDIR,
// extends PATH, sources the setup script when present, exports the output
// type, and ends with the configured prefix followed by the binary
// directory.
// With addBin false, programs are assumed to live directly under the root.
func (l *Locator) CommandPrefix(addBin bool) (string, error) {
	root, src, err := l.ResolveRoot()
	if err != nil {
		return "", err
	}
	if src == SourceEnv {
		return "", nil
	}

	outputType, err := l.OutputType()
	if err != nil {
		return "", err
	}

	bin, binDir := "bin", "bin/"
	if !addBin {
		bin, binDir = "", ""
	}

	var b strings.Builder
	b.WriteString("FSLDIR=" + shellquote.Join(root) + "; ")
	b.WriteString("PATH=${FSLDIR}/" + bin + ":${PATH}; ")
	b.WriteString("export PATH FSLDIR; ")
	if l.exists(filepath.Join(root, setupScript)) {
		b.WriteString(`. "${FSLDIR}/` + setupScript + `"; `)
	}
	b.WriteString("FSLOUTPUTTYPE=" + string(outputType) + "; export FSLOUTPUTTYPE; ")
	b.WriteString(l.cfg.Prefix)
	b.WriteString("${FSLDIR}/" + binDir)
	return b.String(), nil
}

// Have reports whether the toolkit can be located.
func (l *Locator) Have() bool {
	_, err := l.CommandPrefix(true)
	return err == nil
}
