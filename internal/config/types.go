package config

import (
	"time"

	"github.com/nibzard/tasklist/internal/appdir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultStoreFile      = appdir.DefaultStoreFile
	DefaultTickIntervalMS = 250
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Store
	StoreFile    string `toml:"store_file"`
	RequireStore bool   `toml:"require_store"` // Missing store file is an error instead of an empty list

	// Tasks
	AllowBlank bool `toml:"allow_blank"` // Accept empty or whitespace-only task text

	// UI
	TickIntervalMS int `toml:"tick_interval_ms"`

	// Logging configuration
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
	// Config files that were read, in load order (computed)
	Files []string `toml:"-"`
}

// TickInterval returns the UI refresh interval.
func (c *Config) TickInterval() time.Duration {
	if c.TickIntervalMS <= 0 {
		return DefaultTickIntervalMS * time.Millisecond
	}
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}
