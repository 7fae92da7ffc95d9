package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete pipeline configuration file
type Config struct {
	Settings `yaml:",inline"`
	Logging  LoggingConfig `yaml:"logging"`
}

// Settings holds the named values read by the hyperspectral analysis pipeline
type Settings struct {
	// Paths
	FilePath   string `yaml:"file_path" json:"file_path"`
	DataKey    string `yaml:"data_key" json:"data_key"`
	GTFilePath string `yaml:"gt_file_path" json:"gt_file_path"`
	GTDataKey  string `yaml:"gt_data_key" json:"gt_data_key"`
	OutputDir  string `yaml:"output_dir" json:"output_dir"`

	// Analysis
	CorrelationThreshold float64 `yaml:"correlation_threshold" json:"correlation_threshold"`

	// Classification
	KNNNeighbors int     `yaml:"knn_neighbors" json:"knn_neighbors"`
	TestSize     float64 `yaml:"test_size" json:"test_size"`
	RandomState  int64   `yaml:"random_state" json:"random_state"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the built-in settings for the Indian Pines scene
func Default() Settings {
	return Settings{
		FilePath:             "Data/Indian_pines_corrected.mat",
		DataKey:              "indian_pines_corrected",
		GTFilePath:           "Data/Indian_pines_gt.mat",
		GTDataKey:            "indian_pines_gt",
		OutputDir:            "results",
		CorrelationThreshold: 0.95,
		KNNNeighbors:         5,
		TestSize:             0.2,
		RandomState:          42,
	}
}

// DefaultConfig returns the default settings with info-level text logging to stderr
func DefaultConfig() Config {
	return Config{
		Settings: Default(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads and parses the configuration file.
// Keys missing from the file keep their default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty file decodes to io.EOF and leaves the defaults untouched.
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate performs validation of every configuration section
func (c *Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate checks that every setting is present and within its domain
func (s *Settings) Validate() error {
	required := []struct {
		key, value string
	}{
		{"file_path", s.FilePath},
		{"data_key", s.DataKey},
		{"gt_file_path", s.GTFilePath},
		{"gt_data_key", s.GTDataKey},
		{"output_dir", s.OutputDir},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s cannot be empty", r.key)
		}
	}

	// Negated comparisons also reject NaN.
	if !(s.CorrelationThreshold >= 0 && s.CorrelationThreshold <= 1) {
		return fmt.Errorf("correlation_threshold must be between 0 and 1, got %f", s.CorrelationThreshold)
	}

	if s.KNNNeighbors < 1 {
		return fmt.Errorf("knn_neighbors must be at least 1, got %d", s.KNNNeighbors)
	}

	if !(s.TestSize > 0 && s.TestSize < 1) {
		return fmt.Errorf("test_size must be between 0 and 1 (exclusive), got %f", s.TestSize)
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// CheckPaths verifies the file-system expectations of the settings: both input
// files exist and output_dir, if present, is a directory. All problems are reported.
func (s *Settings) CheckPaths() error {
	var errs []error

	for _, in := range []struct{ key, path string }{
		{"file_path", s.FilePath},
		{"gt_file_path", s.GTFilePath},
	} {
		info, err := os.Stat(in.path)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s %s: %w", in.key, in.path, err))
		case info.IsDir():
			errs = append(errs, fmt.Errorf("%s %s is a directory", in.key, in.path))
		}
	}

	// A missing output_dir is fine; the writer creates it.
	if info, err := os.Stat(s.OutputDir); err == nil && !info.IsDir() {
		errs = append(errs, fmt.Errorf("output_dir %s is not a directory", s.OutputDir))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, fmt.Errorf("output_dir %s: %w", s.OutputDir, err))
	}

	return errors.Join(errs...)
}

// OutputPath returns name joined onto the output directory
func (s *Settings) OutputPath(name string) string {
	return filepath.Join(s.OutputDir, name)
}
