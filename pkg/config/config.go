// Package config loads front-end settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"sabaka/pkg/compiler"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "sabaka.toml"

// Config mirrors the on-disk file. Both encodings share the same keys:
//
//	log-level = "warn"
//
//	[parser]
//	max-depth = 1000
//
//	[checker]
//	legacy-scope-exit = false
//	skip-control-flow = false
type Config struct {
	LogLevel string  `toml:"log-level" yaml:"log-level" default:"warn"`
	Parser   Parser  `toml:"parser" yaml:"parser"`
	Checker  Checker `toml:"checker" yaml:"checker"`
}

type Parser struct {
	// MaxDepth bounds statement and expression nesting; 0 disables the limit.
	MaxDepth int `toml:"max-depth" yaml:"max-depth" default:"1000"`
}

type Checker struct {
	LegacyScopeExit bool `toml:"legacy-scope-exit" yaml:"legacy-scope-exit"`
	SkipControlFlow bool `toml:"skip-control-flow" yaml:"skip-control-flow"`
}

func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Parser:   Parser{MaxDepth: compiler.DefaultMaxDepth},
	}
}

// Load reads path, choosing the decoder from its extension. Keys missing
// from the file keep their defaults: yaml decodes over Default() and go-toml
// fills absent keys from the default tags, which must agree with Default.
func Load(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(buff, cfg)
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(buff, cfg)
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find loads DefaultFile from dir if it exists and returns the defaults
// otherwise.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(path)
}

func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max-depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. "silent" maps to panic so nothing below a crash is
// reported.
func (c *Config) Level() (logrus.Level, error) {
	if strings.EqualFold(c.LogLevel, "silent") {
		return logrus.PanicLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}

// Options converts the file settings into pipeline options.
func (c *Config) Options() compiler.Options {
	opts := compiler.DefaultOptions()
	opts.MaxDepth = c.Parser.MaxDepth
	opts.LegacyScopeExit = c.Checker.LegacyScopeExit
	opts.SkipControlFlow = c.Checker.SkipControlFlow
	return opts
}
