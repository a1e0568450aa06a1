// Package config loads the optional YAML settings of the nlox driver.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// EnvVar names a config file when no --config flag is given.
	EnvVar = "NLOX_CONFIG"
	// DefaultFile is looked up in the working directory last.
	DefaultFile = ".nlox.yaml"
)

// ColorMode controls colourised diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds the driver settings. Fields missing from the file keep their
// defaults.
type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path string `yaml:"-"`

	Prompt    string    `yaml:"prompt"`
	Color     ColorMode `yaml:"color"`
	Verbosity int       `yaml:"verbosity"`
	Excerpt   bool      `yaml:"excerpt"`
}

func Default() *Config {
	return &Config{
		Prompt:  "> ",
		Color:   ColorAuto,
		Excerpt: true,
	}
}

// Load reads the config at path on top of the defaults. Unknown keys are
// rejected. An empty file yields the defaults.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: resolve %s", path)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "config: parse %s", abs)
	}
	cfg.Path = abs

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", abs)
	}
	return cfg, nil
}

// Resolve finds the config to use: flagPath if set, then $NLOX_CONFIG, then
// DefaultFile in dir. Only the default file may be absent.
func Resolve(flagPath, dir string) (*Config, error) {
	if flagPath != "" {
		return Load(flagPath)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return Load(env)
	}

	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			if glog.V(3) {
				glog.V(3).Infof("config: no %s in %s, using defaults", DefaultFile, dir)
			}
			return Default(), nil
		}
		return nil, errors.Wrap(err, "config")
	}
	return Load(path)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var result *multierror.Error
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		result = multierror.Append(result, errors.Errorf("unknown color mode %q (want auto, always or never)", c.Color))
	}
	if c.Verbosity < 0 {
		result = multierror.Append(result, errors.Errorf("verbosity must not be negative, got %d", c.Verbosity))
	}
	return result.ErrorOrNil()
}

// UseColor decides whether diagnostics are colourised on a terminal
// (tty true) or elsewhere.
func (c *Config) UseColor(tty bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return tty
}
