package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the complete configuration for the rotatefix CLI.
// Values are layered from defaults, an optional config file, environment
// variables, and command-line flags.
type Config struct {
	// Global settings
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir" json:"models_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose   bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Root directory processed when no argument is given.
	DefaultRoot string `mapstructure:"default_root" yaml:"default_root" json:"default_root"`

	// Detection settings
	Detect DetectConfig `mapstructure:"detect" yaml:"detect" json:"detect"`

	// Batch processing settings
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Output settings
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// DetectConfig contains detector settings.
type DetectConfig struct {
	FaceCascadePath string  `mapstructure:"face_cascade_path" yaml:"face_cascade_path" json:"face_cascade_path"`
	ObjectModelPath string  `mapstructure:"object_model_path" yaml:"object_model_path" json:"object_model_path"`
	Confidence      float64 `mapstructure:"confidence" yaml:"confidence" json:"confidence"`
	FaceQuality     float64 `mapstructure:"face_quality" yaml:"face_quality" json:"face_quality"`
	DisableObject   bool    `mapstructure:"disable_object" yaml:"disable_object" json:"disable_object"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers      int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	ShowProgress bool `mapstructure:"show_progress" yaml:"show_progress" json:"show_progress"`
	Quiet        bool `mapstructure:"quiet" yaml:"quiet" json:"quiet"`
	DryRun       bool `mapstructure:"dry_run" yaml:"dry_run" json:"dry_run"`
}

// OutputConfig contains summary output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// DefaultRootDir returns the scanned-photos directory processed when the CLI
// argument is omitted.
func DefaultRootDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures", "Scanned")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0, got %d", c.Batch.Workers)
	}
	if c.Detect.Confidence < 0 || c.Detect.Confidence > 1 {
		return fmt.Errorf("detect.confidence must be in [0,1], got %v", c.Detect.Confidence)
	}
	if c.Detect.FaceQuality < 0 {
		return fmt.Errorf("detect.face_quality must be >= 0, got %v", c.Detect.FaceQuality)
	}
	switch c.Output.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("output.format must be one of text, json; got %q", c.Output.Format)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}
