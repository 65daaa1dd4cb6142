// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DomainsFile string `json:"domains_file,omitempty"` // Path to CSV file of domains to crawl

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Crawl behavior
	MaxConcurrentDomains int     `json:"max_concurrent_domains,omitempty" validate:"gte=0"` // Domains crawled in parallel
	RequestsPerSecond    float64 `json:"requests_per_second,omitempty" validate:"gte=0"`    // Global fetch rate limit
	FetchTimeoutSeconds  int     `json:"fetch_timeout_seconds,omitempty" validate:"gte=0"`  // Per-page fetch timeout
	UserAgent            string  `json:"user_agent,omitempty"`                              // User-Agent header for fetches

	// Server
	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"` // HTTP API port

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

var validate = validator.New()

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

// FromEnv builds a Config from environment variables. Used as the defaults
// layer under config files and CLI flags.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DomainsFile: os.Getenv("DOMAINS_FILE"),
		UserAgent:   os.Getenv("CRAWLER_USER_AGENT"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("config error: field '%s' failed rule '%s'", errs[0].Field(), errs[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.DomainsFile != "" {
		if _, err := os.Stat(c.DomainsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: domains file not found: %s", c.DomainsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DomainsFile == "" {
		result.DomainsFile = defaults.DomainsFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}

	// Numeric fields: use default if zero
	if result.MaxConcurrentDomains == 0 {
		result.MaxConcurrentDomains = defaults.MaxConcurrentDomains
	}
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
