package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/s0up4200/goplaces/places"
	"github.com/spf13/viper"
)

// placeholderAPIKey is the value shipped in the example config
const placeholderAPIKey = "your-api-key-here"

// APIKeyEnv is the environment variable that overrides places.api_key
const APIKeyEnv = "GOPLACES_API_KEY"

// Load loads the configuration. An explicit configPath must exist; without
// one the standard locations are searched and a missing file leaves the
// defaults and environment in effect.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if err := v.BindEnv("places.api_key", APIKeyEnv); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".goplaces"))
		}

		v.AddConfigPath("/etc/goplaces/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("places.base_url", places.DefaultBaseURL)
	v.SetDefault("places.sensor", false)
	v.SetDefault("places.timeout", places.DefaultTimeout)

	v.SetDefault("search.radius", 1000)
	v.SetDefault("search.max_pages", 0)
	v.SetDefault("search.page_delay", places.DefaultPageDelay)

	v.SetDefault("retry.max", 0)
	v.SetDefault("retry.delay", places.DefaultRetryDelay)

	v.SetDefault("details.concurrency", places.DefaultDetailsConcurrency)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Places.APIKey == "" || cfg.Places.APIKey == placeholderAPIKey {
		return fmt.Errorf("places.api_key must be set to a valid API key (or %s)", APIKeyEnv)
	}
	if cfg.Places.BaseURL == "" {
		return fmt.Errorf("places.base_url is required")
	}
	if cfg.Places.Timeout < 0 {
		return fmt.Errorf("places.timeout must not be negative")
	}

	if cfg.Search.Radius < 0 || cfg.Search.Radius > places.MaxRadius {
		return fmt.Errorf("search.radius must be between 0 and %d", places.MaxRadius)
	}
	if cfg.Search.MaxPages < 0 {
		return fmt.Errorf("search.max_pages must not be negative")
	}
	if cfg.Search.PageDelay < 0 {
		return fmt.Errorf("search.page_delay must not be negative")
	}

	if cfg.Retry.Max < 0 {
		return fmt.Errorf("retry.max must not be negative")
	}
	if cfg.Retry.Delay < 0 {
		return fmt.Errorf("retry.delay must not be negative")
	}
	for _, s := range cfg.Retry.Statuses {
		status := places.Status(strings.ToUpper(s))
		if !status.IsKnown() {
			return fmt.Errorf("invalid retry status: %s", s)
		}
		if status == places.StatusOK || status == places.StatusZeroResults {
			return fmt.Errorf("retry status %s is not an error and cannot be retried", s)
		}
	}

	if cfg.Details.Concurrency < 1 || cfg.Details.Concurrency > places.MaxDetailsConcurrency {
		return fmt.Errorf("details.concurrency must be between 1 and %d", places.MaxDetailsConcurrency)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset %q has an empty expression", name)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// RetryPolicy returns the configured retry policy
func (c *Config) RetryPolicy() places.RetryPolicy {
	statuses := make([]places.Status, 0, len(c.Retry.Statuses))
	for _, s := range c.Retry.Statuses {
		statuses = append(statuses, places.Status(strings.ToUpper(s)))
	}

	return places.RetryPolicy{
		MaxRetries: c.Retry.Max,
		Delay:      c.Retry.Delay,
		Statuses:   statuses,
	}
}

// SearchDefaults returns the options every search starts from
func (c *Config) SearchDefaults() places.SearchOptions {
	return places.SearchOptions{
		Radius:   c.Search.Radius,
		Types:    c.Search.Types,
		Exclude:  c.Search.Exclude,
		Language: c.Places.Language,
		MaxPages: c.Search.MaxPages,
	}
}

// ClientOptions returns the places client options described by the config
func (c *Config) ClientOptions() []places.Option {
	return []places.Option{
		places.WithBaseURL(c.Places.BaseURL),
		places.WithTimeout(c.Places.Timeout),
		places.WithSensor(c.Places.Sensor),
		places.WithDefaults(c.SearchDefaults()),
		places.WithRetryPolicy(c.RetryPolicy()),
		places.WithPageDelay(c.Search.PageDelay),
	}
}
