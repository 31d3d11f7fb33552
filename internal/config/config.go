// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	AiResultPath  string `json:"ai_result,omitempty"`  // Path to AI-result JSON file
	LineItemsPath string `json:"line_items,omitempty"` // Path to line-items JSON file

	// Submission context
	Trade        string  `json:"trade,omitempty"`
	Subtrade     string  `json:"subtrade,omitempty"`
	RegionKey    string  `json:"region_key,omitempty"`
	ProjectValue float64 `json:"project_value,omitempty"`

	// Limits
	MaxFindings int `json:"max_findings,omitempty"` // Maximum preview findings to surface

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxFindings < 0 {
		return fmt.Errorf("config error: 'max_findings' must be non-negative")
	}
	if c.ProjectValue < 0 {
		return fmt.Errorf("config error: 'project_value' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.AiResultPath != "" {
		if _, err := os.Stat(c.AiResultPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: AI result file not found: %s", c.AiResultPath)
		}
	}
	if c.LineItemsPath != "" {
		if _, err := os.Stat(c.LineItemsPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: line items file not found: %s", c.LineItemsPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.AiResultPath == "" {
		result.AiResultPath = defaults.AiResultPath
	}
	if result.LineItemsPath == "" {
		result.LineItemsPath = defaults.LineItemsPath
	}
	if result.Trade == "" {
		result.Trade = defaults.Trade
	}
	if result.Subtrade == "" {
		result.Subtrade = defaults.Subtrade
	}
	if result.RegionKey == "" {
		result.RegionKey = defaults.RegionKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.MaxFindings == 0 {
		result.MaxFindings = defaults.MaxFindings
	}
	if result.ProjectValue == 0 {
		result.ProjectValue = defaults.ProjectValue
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
