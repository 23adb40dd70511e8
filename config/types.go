package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Places  PlacesConfig  `mapstructure:"places"`
	Search  SearchConfig  `mapstructure:"search"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Details DetailsConfig `mapstructure:"details"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PlacesConfig holds the places API connection details
type PlacesConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Sensor   bool          `mapstructure:"sensor"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds the defaults applied to every search
type SearchConfig struct {
	Radius    int           `mapstructure:"radius"`
	Types     []string      `mapstructure:"types"`
	Exclude   []string      `mapstructure:"exclude"`
	MaxPages  int           `mapstructure:"max_pages"`
	PageDelay time.Duration `mapstructure:"page_delay"`
}

// RetryConfig controls which API statuses are retried and how often
type RetryConfig struct {
	Statuses []string      `mapstructure:"statuses"`
	Max      int           `mapstructure:"max"`
	Delay    time.Duration `mapstructure:"delay"`
}

// DetailsConfig controls batch details lookups
type DetailsConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// FilterConfig contains the default filter and named presets. Preset names
// are case-insensitive.
type FilterConfig struct {
	Default string            `mapstructure:"default_expression"`
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
