// Package config loads project-level depdoc settings.
//
// Settings come from, in increasing priority: built-in defaults, an optional
// .depdoc.toml (or .depdoc.yaml / .depdoc.json) in the project directory,
// and DEPDOC_* environment variables such as DEPDOC_STRICT_MISSING=false.
// Command-line flags are applied on top by the CLI.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
)

const (
	// FileName is the config file written by Save.
	FileName = ".depdoc.toml"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "DEPDOC"

	configName = ".depdoc"
)

// Line ending names accepted for Newline.
const (
	NewlineLF   = "lf"
	NewlineCRLF = "crlf"
)

// Config holds the effective settings for one project.
type Config struct {
	// Manifest is the manifest filename inside the project directory.
	Manifest string `mapstructure:"manifest" toml:"manifest"`

	// Managers restricts which adapters run. Empty means all supported.
	Managers []string `mapstructure:"managers" toml:"managers"`

	Strict Strict `mapstructure:"strict" toml:"strict"`

	// Newline is the line ending of written manifests: "lf" or "crlf".
	Newline string `mapstructure:"newline" toml:"newline"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" toml:"-"`
}

// Strict selects which discrepancy kinds fail validation.
type Strict struct {
	Version bool `mapstructure:"version" toml:"version"`
	Missing bool `mapstructure:"missing" toml:"missing"`
	Extra   bool `mapstructure:"extra" toml:"extra"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Manifest: "DEPENDENCIES.md",
		Managers: []string{},
		Strict:   Strict{Version: true, Missing: true, Extra: true},
		Newline:  NewlineLF,
	}
}

// Load reads the configuration for the project in dir.
// A missing config file is not an error; defaults and environment
// overrides still apply.
func Load(dir string) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("managers", d.Managers)
	v.SetDefault("strict.version", d.Strict.Version)
	v.SetDefault("strict.missing", d.Strict.Missing)
	v.SetDefault("strict.extra", d.Strict.Extra)
	v.SetDefault("newline", d.Newline)

	v.SetConfigName(configName)
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config in %s", dir)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := errors.ValidateManifestFilename(c.Manifest); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "manifest")
	}
	for _, name := range c.Managers {
		m, ok := deps.LookupManager(name)
		if !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "managers: unknown package manager %q (known: %v)", name, deps.KnownManagers())
		}
		if !deps.IsSupported(m) {
			return errors.New(errors.ErrCodeInvalidConfig, "managers: %s has no adapter (supported: %v)", m, deps.SupportedManagers())
		}
	}
	if _, err := c.NewlineSequence(); err != nil {
		return err
	}
	return nil
}

// NewlineSequence returns the line ending selected by Newline.
func (c *Config) NewlineSequence() (string, error) {
	switch strings.ToLower(c.Newline) {
	case "", NewlineLF:
		return "\n", nil
	case NewlineCRLF:
		return "\r\n", nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "newline: want %q or %q, got %q", NewlineLF, NewlineCRLF, c.Newline)
	}
}

// ManifestPath returns the manifest location inside dir.
func (c *Config) ManifestPath(dir string) string {
	return filepath.Join(dir, c.Manifest)
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// Save writes the configuration to FileName in dir.
func (c *Config) Save(dir string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileSystem, err, "create %s", path)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeFileSystem, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFileSystem, err, "close %s", path)
	}
	return nil
}
