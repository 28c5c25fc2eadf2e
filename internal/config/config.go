package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/airy"
)

const (
	DefaultInner   = 1.0
	DefaultOuter   = 2.0
	DefaultPIn     = 100.0
	DefaultPOut    = 0.0
	DefaultSamples = 21
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Vessel VesselConfig `yaml:"vessel"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

type VesselConfig struct {
	Inner float64 `yaml:"inner"`
	Outer float64 `yaml:"outer"`
	PIn   float64 `yaml:"p_in"`
	POut  float64 `yaml:"p_out"`
}

type OutputConfig struct {
	Format  string `yaml:"format"`
	Samples int    `yaml:"samples"`
	PNG     string `yaml:"png,omitempty"`
	Chart   bool   `yaml:"chart"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Vessel: VesselConfig{
			Inner: DefaultInner,
			Outer: DefaultOuter,
			PIn:   DefaultPIn,
			POut:  DefaultPOut,
		},
		Output: OutputConfig{
			Format:  "text",
			Samples: DefaultSamples,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads path over the defaults, so a partial file keeps the other values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var (
	formats    = map[string]bool{"text": true, "latex": true, "json": true, "yaml": true}
	levels     = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	logFormats = map[string]bool{"text": true, "json": true}
)

// Validate checks option values only; vessel geometry is checked by the solver.
func (c *Config) Validate() error {
	if !formats[c.Output.Format] {
		return fmt.Errorf("output.format %q: %w", c.Output.Format, ErrInvalidConfig)
	}
	if c.Output.Samples < 2 || c.Output.Samples > airy.MaxSamples {
		return fmt.Errorf("output.samples must be in [2, %d], got %d: %w", airy.MaxSamples, c.Output.Samples, ErrInvalidConfig)
	}
	if !levels[c.Log.Level] {
		return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalidConfig)
	}
	if !logFormats[c.Log.Format] {
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalidConfig)
	}
	return nil
}
