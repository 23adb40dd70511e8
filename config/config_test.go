package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/s0up4200/goplaces/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validConfig() *Config {
	return &Config{
		Places:  PlacesConfig{APIKey: "key", BaseURL: places.DefaultBaseURL},
		Search:  SearchConfig{Radius: 1000},
		Details: DetailsConfig{Concurrency: 4},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	path := writeConfig(t, `
places:
  api_key: file-key
  language: fr
search:
  radius: 500
  types: [restaurant, cafe]
  exclude: [bar]
  page_delay: 3s
retry:
  statuses: [over_query_limit, UNKNOWN_ERROR]
  max: 2
filter:
  default_expression: Rating >= 4.0
  presets:
    Cheap: PriceLevel <= 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Places.APIKey)
	assert.Equal(t, places.DefaultBaseURL, cfg.Places.BaseURL)
	assert.Equal(t, places.DefaultTimeout, cfg.Places.Timeout)
	assert.Equal(t, 500, cfg.Search.Radius)
	assert.Equal(t, []string{"restaurant", "cafe"}, cfg.Search.Types)
	assert.Equal(t, 3*time.Second, cfg.Search.PageDelay)
	assert.Equal(t, places.DefaultRetryDelay, cfg.Retry.Delay)
	assert.Equal(t, places.DefaultDetailsConcurrency, cfg.Details.Concurrency)
	assert.Equal(t, "Rating >= 4.0", cfg.Filter.Default)
	assert.Equal(t, "PriceLevel <= 1", cfg.Filter.Presets["cheap"])
	assert.Equal(t, "info", cfg.Logging.Level)

	policy := cfg.RetryPolicy()
	assert.Equal(t, 2, policy.MaxRetries)
	assert.Equal(t, []places.Status{places.StatusOverQueryLimit, places.StatusUnknownError}, policy.Statuses)

	defaults := cfg.SearchDefaults()
	assert.Equal(t, 500, defaults.Radius)
	assert.Equal(t, "fr", defaults.Language)
	assert.Equal(t, []string{"bar"}, defaults.Exclude)

	client, err := places.NewClient(cfg.Places.APIKey, zerolog.Nop(), cfg.ClientOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 500, client.Defaults().Radius)
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-key")

	path := writeConfig(t, "places:\n  api_key: your-api-key-here\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Places.APIKey)
}

func TestLoadExampleConfig(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-key")

	cfg, err := Load(filepath.Join("..", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Search.Radius)
	assert.Equal(t, places.DefaultPageDelay, cfg.Search.PageDelay)
	assert.Empty(t, cfg.Retry.Statuses)
	assert.Len(t, cfg.Filter.Presets, 4)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing api key",
			content: "search:\n  radius: 10\n",
			errMsg:  "places.api_key",
		},
		{
			name:    "placeholder api key",
			content: "places:\n  api_key: your-api-key-here\n",
			errMsg:  "places.api_key",
		},
		{
			name:    "unknown key",
			content: "places:\n  api_key: k\n  apikey: typo\n",
			errMsg:  "apikey",
		},
		{
			name:    "unknown retry status",
			content: "places:\n  api_key: k\nretry:\n  statuses: [SLOW_DOWN]\n",
			errMsg:  "invalid retry status",
		},
		{
			name:    "invalid duration",
			content: "places:\n  api_key: k\nretry:\n  delay: soon\n",
			errMsg:  "unmarshaling",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "radius above maximum",
			mutate:  func(cfg *Config) { cfg.Search.Radius = places.MaxRadius + 1 },
			wantErr: "search.radius",
		},
		{
			name:    "negative max pages",
			mutate:  func(cfg *Config) { cfg.Search.MaxPages = -1 },
			wantErr: "search.max_pages",
		},
		{
			name:    "negative page delay",
			mutate:  func(cfg *Config) { cfg.Search.PageDelay = -time.Second },
			wantErr: "search.page_delay",
		},
		{
			name:    "negative retries",
			mutate:  func(cfg *Config) { cfg.Retry.Max = -1 },
			wantErr: "retry.max",
		},
		{
			name:    "ok is not retryable",
			mutate:  func(cfg *Config) { cfg.Retry.Statuses = []string{"OK"} },
			wantErr: "cannot be retried",
		},
		{
			name:    "concurrency out of range",
			mutate:  func(cfg *Config) { cfg.Details.Concurrency = places.MaxDetailsConcurrency + 1 },
			wantErr: "details.concurrency",
		},
		{
			name:    "empty preset",
			mutate:  func(cfg *Config) { cfg.Filter.Presets = map[string]string{"cheap": " "} },
			wantErr: "empty expression",
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "trace" },
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid log format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should mention %q", err, tt.wantErr)
		})
	}
}
