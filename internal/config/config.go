// Package config loads and validates the analysis configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full analysis configuration.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Model       ModelConfig       `yaml:"model"`
	Output      OutputConfig      `yaml:"output"`
}

// InputConfig describes the CSV source layout.
type InputConfig struct {
	Path        string `yaml:"path"`
	DateColumn  string `yaml:"date_column"`
	PriceColumn string `yaml:"price_column"`
	DateFormat  string `yaml:"date_format"`
	Sentinel    string `yaml:"sentinel"` // token marking missing observations
}

// DiagnosticsConfig controls the hypothesis tests.
type DiagnosticsConfig struct {
	LjungBoxLag int `yaml:"ljung_box_lag"`
	ACFLags     int `yaml:"acf_lags"`
}

// ModelConfig controls the GARCH estimation.
type ModelConfig struct {
	MinObservations int `yaml:"min_observations"`
}

// OutputConfig controls report artifacts.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Charts bool   `yaml:"charts"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Input: InputConfig{
			Path:        "data/usdjpy.csv",
			DateColumn:  "DATE",
			PriceColumn: "DEXJPUS",
			DateFormat:  "2006-01-02",
			Sentinel:    ".",
		},
		Diagnostics: DiagnosticsConfig{
			LjungBoxLag: 12,
			ACFLags:     20,
		},
		Model: ModelConfig{
			MinObservations: 30,
		},
		Output: OutputConfig{
			Dir:    "out/reports",
			Charts: true,
		},
	}
}

// Load reads a YAML configuration file, layered over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for internally inconsistent values.
func (c Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path must not be empty")
	}
	if c.Input.DateColumn == "" || c.Input.PriceColumn == "" {
		return fmt.Errorf("input column names must not be empty")
	}
	if c.Input.DateFormat == "" {
		return fmt.Errorf("input.date_format must not be empty")
	}
	if c.Diagnostics.LjungBoxLag < 1 {
		return fmt.Errorf("diagnostics.ljung_box_lag must be >= 1, got %d", c.Diagnostics.LjungBoxLag)
	}
	if c.Diagnostics.ACFLags < 1 {
		return fmt.Errorf("diagnostics.acf_lags must be >= 1, got %d", c.Diagnostics.ACFLags)
	}
	if c.Model.MinObservations < 3 {
		return fmt.Errorf("model.min_observations must be >= 3, got %d", c.Model.MinObservations)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	return nil
}
