// Package config provides configuration management for the data quality pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingInput             = errors.New("pipeline.input.file or pipeline.input.url is required")
	ErrInputFileAndURL          = errors.New("pipeline.input.file and pipeline.input.url are mutually exclusive")
	ErrMissingCleanedPath       = errors.New("pipeline.output.cleaned_path is required")
	ErrMissingReportPath        = errors.New("pipeline.output.report_path is required")
	ErrInvalidRecordLimit       = errors.New("pipeline.record_limit must be non-negative")
	ErrNoRequiredFields         = errors.New("validation.required_fields must not be empty")
	ErrMinLengthMissingField    = errors.New("validation.min_lengths entry is missing a field name")
	ErrInvalidMinLength         = errors.New("validation.min_lengths min must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Cleaning   CleaningConfig   `yaml:"cleaning"`
	Validation ValidationConfig `yaml:"validation"`
	Retry      RetryPolicy      `yaml:"retry"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// PipelineConfig contains input/output settings for one run.
type PipelineConfig struct {
	Input       InputConfig  `yaml:"input"`
	Output      OutputConfig `yaml:"output"`
	RecordLimit int          `yaml:"record_limit"`
}

// InputConfig points at the raw record set: a local file or an HTTP(S) URL.
type InputConfig struct {
	File string `yaml:"file"`
	URL  string `yaml:"url"`
}

// IsLocalFile returns true if this input uses a local file.
func (i *InputConfig) IsLocalFile() bool {
	return i.File != ""
}

// GetSource returns the file path if local, or URL if remote.
func (i *InputConfig) GetSource() string {
	if i.IsLocalFile() {
		return i.File
	}

	return i.URL
}

// OutputConfig defines where the run's artifacts go.
type OutputConfig struct {
	CleanedPath string `yaml:"cleaned_path"`
	ReportPath  string `yaml:"report_path"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// CleaningConfig toggles the text cleaning stages.
type CleaningConfig struct {
	RemoveHTML         bool `yaml:"remove_html"`
	NormalizeUnicode   bool `yaml:"normalize_unicode"`
	HandleSpecial      bool `yaml:"handle_special"`
	CollapseWhitespace bool `yaml:"collapse_whitespace"`
	ReplaceControl     bool `yaml:"replace_control"`
	KeepPrintableOnly  bool `yaml:"keep_printable_only"`
	ReplaceCurlyQuotes bool `yaml:"replace_curly_quotes"`
}

// MinLengthRule sets the minimum trimmed length for one field. Rules apply
// in listed order.
type MinLengthRule struct {
	Field string `yaml:"field"`
	Min   int    `yaml:"min"`
}

// ValidationConfig defines the record validation rules.
type ValidationConfig struct {
	RequiredFields []string        `yaml:"required_fields"`
	MinLengths     []MinLengthRule `yaml:"min_lengths"`
}

// RetryPolicy defines retry behavior for remote input sources.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used for keys a YAML file omits:
// every cleaning stage on (printable filtering off), the default validation
// rules, and a modest retry policy.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Output: OutputConfig{
				CleanedPath: "cleaned_output.json",
				ReportPath:  "quality_report.txt",
				PrettyPrint: true,
			},
		},
		Cleaning: CleaningConfig{
			RemoveHTML:         true,
			NormalizeUnicode:   true,
			HandleSpecial:      true,
			CollapseWhitespace: true,
			ReplaceControl:     true,
			KeepPrintableOnly:  false,
			ReplaceCurlyQuotes: true,
		},
		Validation: ValidationConfig{
			RequiredFields: []string{"title", "content", "url"},
			MinLengths: []MinLengthRule{
				{Field: "title", Min: 1},
				{Field: "content", Min: 1},
			},
		},
		Retry: RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Omitted keys keep their
// defaults, so a file only needs to name what it changes.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pipeline.Input.File == "" && c.Pipeline.Input.URL == "" {
		return ErrMissingInput
	}

	if c.Pipeline.Input.File != "" && c.Pipeline.Input.URL != "" {
		return ErrInputFileAndURL
	}

	if c.Pipeline.Output.CleanedPath == "" {
		return ErrMissingCleanedPath
	}

	if c.Pipeline.Output.ReportPath == "" {
		return ErrMissingReportPath
	}

	if c.Pipeline.RecordLimit < 0 {
		return ErrInvalidRecordLimit
	}

	// Validate validation rules
	if len(c.Validation.RequiredFields) == 0 {
		return ErrNoRequiredFields
	}

	for i, rule := range c.Validation.MinLengths {
		if rule.Field == "" {
			return fmt.Errorf("%w: min_lengths[%d]", ErrMinLengthMissingField, i)
		}

		if rule.Min < 1 {
			return fmt.Errorf("%w: min_lengths[%d]", ErrInvalidMinLength, i)
		}
	}

	// Validate retry policy
	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Cleaned: %s, Report: %s, RequiredFields: %d}",
		c.Pipeline.Input.GetSource(),
		c.Pipeline.Output.CleanedPath,
		c.Pipeline.Output.ReportPath,
		len(c.Validation.RequiredFields),
	)
}
