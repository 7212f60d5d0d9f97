package config

import (
	"strings"

	"github.com/sdejongh/desktidy/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Organize    OrganizeConfig    `yaml:"organize"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Categories adds extension mappings to the built-in table,
	// e.g. "md: Documents". Built-in extensions cannot be reassigned.
	Categories map[string]string `yaml:"categories"`
}

// OrganizeConfig holds organization settings
type OrganizeConfig struct {
	// DuplicatesFolder is the shared folder receiving redundant copies
	DuplicatesFolder string `yaml:"duplicates_folder"`
}

// PerformanceConfig holds performance settings
type PerformanceConfig struct {
	// BufferSize is the read buffer size for hashing and verification
	BufferSize int `yaml:"buffer_size"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show the fingerprint progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr in verbose mode)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Organize: OrganizeConfig{
			DuplicatesFolder: "Duplicates",
		},
		Performance: PerformanceConfig{
			BufferSize: 65536,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Organize.DuplicatesFolder == "" {
		return &models.ValidationError{
			Field:   "organize.duplicates_folder",
			Message: "must not be empty",
		}
	}
	if strings.ContainsAny(c.Organize.DuplicatesFolder, `/\`) {
		return &models.ValidationError{
			Field:   "organize.duplicates_folder",
			Message: "must be a plain folder name without path separators",
		}
	}

	if c.Performance.BufferSize < 1024 {
		return &models.ValidationError{
			Field:   "performance.buffer_size",
			Message: "must be at least 1024 bytes",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	for ext, name := range c.Categories {
		if strings.TrimPrefix(strings.TrimSpace(ext), ".") == "" {
			return &models.ValidationError{
				Field:   "categories",
				Message: "extension must not be empty",
			}
		}
		if _, ok := models.ParseCategory(name); !ok {
			return &models.ValidationError{
				Field:   "categories." + ext,
				Message: "unknown category: " + name,
			}
		}
	}

	return nil
}
