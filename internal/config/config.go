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
	// Paths
	Resume     string `json:"resume,omitempty"`     // Path to resume text file
	Job        string `json:"job,omitempty"`        // Path to job posting text file
	JobURL     string `json:"job_url,omitempty"`    // URL to fetch job posting from
	Vocabulary string `json:"vocabulary,omitempty"` // Path to custom skill vocabulary JSON
	Feedback   string `json:"feedback,omitempty"`   // Path to custom feedback table JSON

	// Scoring
	HardWeight float64 `json:"hard_weight,omitempty"` // Weight of the skill overlap score
	SoftWeight float64 `json:"soft_weight,omitempty"` // Weight of the semantic similarity score

	// Embedding provider
	EmbeddingProvider string `json:"embedding_provider,omitempty"` // "gemini", "openai" or "lexical"
	EmbeddingModel    string `json:"embedding_model,omitempty"`    // Provider model override
	APIKey            string `json:"api_key,omitempty"`            // Embedding provider API key

	// Behavior
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA job pages
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
	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.HardWeight < 0 {
		return fmt.Errorf("config error: 'hard_weight' must be non-negative")
	}
	if c.SoftWeight < 0 {
		return fmt.Errorf("config error: 'soft_weight' must be non-negative")
	}

	switch c.EmbeddingProvider {
	case "", "gemini", "openai", "lexical":
	default:
		return fmt.Errorf("config error: unknown 'embedding_provider': %s", c.EmbeddingProvider)
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	if c.Vocabulary != "" {
		if _, err := os.Stat(c.Vocabulary); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.Vocabulary)
		}
	}

	if c.Feedback != "" {
		if _, err := os.Stat(c.Feedback); os.IsNotExist(err) {
			return fmt.Errorf("config error: feedback file not found: %s", c.Feedback)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Vocabulary == "" {
		result.Vocabulary = defaults.Vocabulary
	}
	if result.Feedback == "" {
		result.Feedback = defaults.Feedback
	}
	if result.EmbeddingProvider == "" {
		result.EmbeddingProvider = defaults.EmbeddingProvider
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Float fields: use default if zero, falling back to the standard blend
	if result.HardWeight == 0 && result.SoftWeight == 0 {
		result.HardWeight = defaults.HardWeight
		result.SoftWeight = defaults.SoftWeight
		if result.HardWeight == 0 && result.SoftWeight == 0 {
			result.HardWeight = 0.7
			result.SoftWeight = 0.3
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
