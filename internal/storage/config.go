package storage

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/fslw/internal/model"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// userConfigFile is the default user configuration file, relative to $HOME.
const userConfigFile = "~/.fslw.yaml"

// Config holds the settings every toolkit call reads. A zero Config has
// everything unset. It is built once at startup and passed to the
// components that need it; it is not safe for concurrent mutation.
type Config struct {
	// FSLDir overrides the FSL install root when FSLDIR is not exported.
	FSLDir string `yaml:"fsldir,omitempty"`

	// OutputType is the FSLOUTPUTTYPE exported to toolkit programs.
	OutputType string `yaml:"outputtype,omitempty"`

	// Prefix is spliced verbatim in front of every program name.
	Prefix string `yaml:"prefix,omitempty"`

	// Backend selects the imaging library used to load results.
	Backend string `yaml:"backend,omitempty"`
}

// DefaultConfigPath returns the home-expanded default config file path.
func DefaultConfigPath() (string, error) {
	return homedir.Expand(userConfigFile)
}

// LoadConfig loads the yaml file at path if it exists, otherwise returns an
// empty Config. An empty path means DefaultConfigPath. Values are validated
// the same way the setters validate them.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = userConfigFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates yaml config data.
func ParseConfig(data []byte) (*Config, error) {
	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{}
	cfg.SetFSLDir(raw.FSLDir)
	cfg.SetPrefix(raw.Prefix)
	if raw.OutputType != "" {
		if err := cfg.SetOutputType(raw.OutputType); err != nil {
			return nil, err
		}
	}
	if raw.Backend != "" {
		if err := cfg.SetBackend(raw.Backend); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as yaml. Only `fslw config` writes the
// file; values resolved while running programs are never persisted.
func SaveConfig(path string, cfg *Config) error {
	if path == "" {
		path = userConfigFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Set assigns the setting named key, validating it like the setters do.
func (c *Config) Set(key, value string) error {
	switch key {
	case "fsldir":
		c.SetFSLDir(value)
	case "outputtype":
		return c.SetOutputType(value)
	case "prefix":
		c.SetPrefix(value)
	case "backend":
		return c.SetBackend(value)
	default:
		return &model.ConfigurationError{Setting: "setting", Value: key, Message: "expected one of " + strings.Join(Keys(), ", ")}
	}
	return nil
}

// Keys lists the settings Set accepts.
func Keys() []string {
	return []string{"fsldir", "outputtype", "prefix", "backend"}
}

// SetFSLDir sets the install root override. Existence is checked when the
// root is resolved, not here.
func (c *Config) SetFSLDir(dir string) {
	c.FSLDir = dir
}

// SetOutputType sets the output type after validating it.
func (c *Config) SetOutputType(name string) error {
	t, err := model.ParseOutputType(name)
	if err != nil {
		return err
	}
	c.OutputType = string(t)
	return nil
}

// SetPrefix sets the raw command prefix.
func (c *Config) SetPrefix(prefix string) {
	c.Prefix = prefix
}

// SetBackend sets the imaging backend, normalising case and aliases.
func (c *Config) SetBackend(name string) error {
	b, err := model.ParseBackend(name)
	if err != nil {
		return err
	}
	c.Backend = string(b)
	return nil
}
