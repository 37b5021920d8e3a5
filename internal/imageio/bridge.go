package imageio

import (
	"io"

	"github.com/jacksmith/fslw/internal/model"
	"github.com/jacksmith/fslw/internal/storage"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// materializeSuffix is the suffix of temp files holding in-memory inputs.
const materializeSuffix = ".nii.gz"

// Bridge converts wrapper inputs to files and loads results back with the
// configured backend.
type Bridge struct {
	cfg     *storage.Config
	scratch *storage.Scratch
	codecs  map[model.Backend]Codec
	log     logrus.FieldLogger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithCodec registers c for its backend, replacing any existing codec.
func WithCodec(c Codec) BridgeOption {
	return func(b *Bridge) { b.codecs[c.Backend()] = c }
}

// WithBridgeLogger sets the logger for backend defaulting and cleanup.
func WithBridgeLogger(log logrus.FieldLogger) BridgeOption {
	return func(b *Bridge) { b.log = log }
}

// NewBridge returns a Bridge with both library codecs registered.
func NewBridge(cfg *storage.Config, scratch *storage.Scratch, opts ...BridgeOption) *Bridge {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &Bridge{
		cfg:     cfg,
		scratch: scratch,
		codecs: map[model.Backend]Codec{
			model.BackendNifti:    NiftiCodec{},
			model.BackendParallel: ParallelCodec{},
		},
		log: discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Scratch returns the scratch space temp files are allocated in.
func (b *Bridge) Scratch() *storage.Scratch {
	return b.scratch
}

// Backend returns the configured backend. When none is configured the
// default is stored in the configuration so later loads agree.
func (b *Bridge) Backend() (model.Backend, error) {
	if b.cfg.Backend == "" {
		if err := b.cfg.SetBackend(string(model.DefaultBackend)); err != nil {
			return "", err
		}
		b.log.WithField("backend", model.DefaultBackend).Debug("no backend configured, using default")
		return model.DefaultBackend, nil
	}
	return model.ParseBackend(b.cfg.Backend)
}

// Materialize returns a file path for in. Paths are home-expanded and
// returned with owned=false. Images are written by their own backend to a
// new temp file, returned with owned=true; the caller must Release it.
func (b *Bridge) Materialize(in Input) (path string, owned bool, err error) {
	switch v := in.(type) {
	case Path:
		expanded, err := homedir.Expand(string(v))
		if err != nil {
			return "", false, errors.Wrapf(err, "failed to expand %s", v)
		}
		return expanded, false, nil

	case Image:
		codec, ok := b.codecs[v.Backend()]
		if !ok {
			return "", false, &model.ConfigurationError{
				Setting: "backend",
				Value:   string(v.Backend()),
				Message: "no codec registered",
			}
		}

		path, err := b.scratch.TempFile(materializeSuffix)
		if err != nil {
			return "", false, err
		}
		if err := codec.Write(v, path); err != nil {
			b.scratch.Remove(path)
			return "", false, errors.Wrap(err, "failed to write image to temp file")
		}
		return path, true, nil

	default:
		return "", false, &model.UsageError{
			Message: "image input must be a Path or an in-memory image",
		}
	}
}

// Load reads path with the configured backend.
func (b *Bridge) Load(path string) (Image, error) {
	backend, err := b.Backend()
	if err != nil {
		return nil, err
	}

	codec, ok := b.codecs[backend]
	if !ok {
		return nil, &model.ConfigurationError{
			Setting: "backend",
			Value:   string(backend),
			Message: "no codec registered",
		}
	}

	img, err := codec.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return img, nil
}

// Release deletes a temp file returned by Materialize. The file must exist.
func (b *Bridge) Release(path string) error {
	b.log.WithField("path", path).Debug("removing temp file")
	return b.scratch.Remove(path)
}
