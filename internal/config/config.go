// Package config loads the optional minic.json project file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	semver "github.com/Masterminds/semver/v3"

	"github.com/you-not-fish/minic/internal/diag"
)

// FileName is the project file looked up in the working directory.
const FileName = "minic.json"

// LanguageVersion is the MiniC language version this front end implements.
const LanguageVersion = "1.0.0"

// Config holds the project settings. Zero fields are filled from Default
// by Load.
type Config struct {
	// Language is a semver constraint on LanguageVersion, e.g. "^1.0".
	Language string `json:"language"`

	// Color is auto, always or never.
	Color string `json:"color"`

	// Trace enables phase tracing on stderr.
	Trace bool `json:"trace"`

	// Workers bounds the number of files checked concurrently.
	Workers int `json:"workers"`

	// WatchDebounce is a time.ParseDuration string.
	WatchDebounce string `json:"watch_debounce"`
}

// Default returns the settings used when no project file exists.
func Default() *Config {
	return &Config{
		Language:      "^1.0",
		Color:         string(diag.ColorAuto),
		Workers:       runtime.GOMAXPROCS(0),
		WatchDebounce: "200ms",
	}
}

// Load reads the project file at path. An empty path means FileName in
// the working directory, and a missing file there yields Default.
// The result is validated.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a project file from r, applies defaults for missing keys
// and validates the result. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{Workers: -1}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}

	def := Default()
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.Color == "" {
		cfg.Color = def.Color
	}
	if cfg.Workers == -1 {
		cfg.Workers = def.Workers
	}
	if cfg.WatchDebounce == "" {
		cfg.WatchDebounce = def.WatchDebounce
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := diag.ParseColorMode(c.Color); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if d, err := time.ParseDuration(c.WatchDebounce); err != nil {
		return fmt.Errorf("invalid watch_debounce: %w", err)
	} else if d < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", d)
	}
	return c.CheckLanguage()
}

// CheckLanguage reports an error if the Language constraint does not
// admit LanguageVersion.
func (c *Config) CheckLanguage() error {
	con, err := semver.NewConstraint(c.Language)
	if err != nil {
		return fmt.Errorf("invalid language constraint %q: %w", c.Language, err)
	}
	v := semver.MustParse(LanguageVersion)
	if ok, errs := con.Validate(v); !ok {
		msg := fmt.Sprintf("language %q does not admit MiniC %s", c.Language, LanguageVersion)
		if len(errs) > 0 {
			msg += ": " + errs[0].Error()
		}
		return errors.New(msg)
	}
	return nil
}

// ColorMode returns the parsed Color setting.
func (c *Config) ColorMode() diag.ColorMode {
	m, err := diag.ParseColorMode(c.Color)
	if err != nil {
		return diag.ColorAuto
	}
	return m
}

// Debounce returns the parsed WatchDebounce setting.
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
