package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/goplaces/config"
	"github.com/s0up4200/goplaces/filter"
	"github.com/s0up4200/goplaces/places"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    places.Location
		wantErr bool
	}{
		{name: "valid", input: "-33.8670522,151.1957362", want: places.Location{Lat: -33.8670522, Lng: 151.1957362}},
		{name: "spaces", input: " 48.85 , 2.35 ", want: places.Location{Lat: 48.85, Lng: 2.35}},
		{name: "missing comma", input: "48.85", wantErr: true},
		{name: "bad latitude", input: "north,2.35", wantErr: true},
		{name: "bad longitude", input: "48.85,east", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLocation(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchFlagsOptions(t *testing.T) {
	flags := searchFlags{
		radius:  300,
		rankBy:  "DISTANCE",
		types:   []string{"cafe"},
		exclude: []string{"bar"},
		keyword: "espresso",
	}

	opts := flags.searchOptions()
	assert.Equal(t, 300, opts.Radius)
	assert.Equal(t, places.RankByDistance, opts.RankBy)
	assert.Equal(t, []string{"cafe"}, opts.Types)
	assert.Equal(t, []string{"bar"}, opts.Exclude)
	assert.Equal(t, "espresso", opts.Keyword)
	assert.Nil(t, opts.Location)
}

func TestResolveFilter(t *testing.T) {
	m := filter.NewManager()
	require.NoError(t, m.RegisterFilter("cheap", `PriceLevel <= 1`))

	f, err := resolveFilter(m, `Rating > 4.0`, "cheap", "")
	require.NoError(t, err)
	assert.Equal(t, `Rating > 4.0`, f.Expression())

	f, err = resolveFilter(m, "", "Cheap", `Rating > 1.0`)
	require.NoError(t, err)
	assert.Equal(t, `PriceLevel <= 1`, f.Expression())

	f, err = resolveFilter(m, "", "", `Rating > 1.0`)
	require.NoError(t, err)
	assert.Equal(t, `Rating > 1.0`, f.Expression())

	f, err = resolveFilter(m, "", "", "")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = resolveFilter(m, "", "missing", "")
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)

	_, err = resolveFilter(m, "Rating >", "", "")
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer

	log := setupLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)

	buf.Reset()
	log = setupLogger(config.LoggingConfig{Level: "debug", Format: "console", Color: true}, &buf)
	log.Debug().Msg("console line")
	assert.Contains(t, buf.String(), "console line")
	// Buffers are not terminals, so no escape codes.
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}

func TestIsNewer(t *testing.T) {
	current := semver.MustParse("1.2.3")

	assert.True(t, isNewer("v1.3.0", current))
	assert.True(t, isNewer("1.2.4", current))
	assert.False(t, isNewer("1.2.3", current))
	assert.False(t, isNewer("v1.0.0", current))
	assert.False(t, isNewer("not-a-version", current))
}

// runCLI executes the root command against a fake places API
func runCLI(t *testing.T, handler http.HandlerFunc, args ...string) string {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`
places:
  api_key: cli-key
  base_url: %s
search:
  radius: 800
  page_delay: 0s
filter:
  presets:
    good: Rating >= 4.0
logging:
  level: error
`, server.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	t.Setenv(config.APIKeyEnv, "")
	search = searchFlags{}
	presetFlags.location, presetFlags.radius, presetFlags.types, presetFlags.keyword = "", 0, nil, ""
	jsonOutput = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestNearbyCommand(t *testing.T) {
	var query []string
	out := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		query = append(query, r.URL.RawQuery)
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "800", r.URL.Query().Get("radius"))
		assert.Equal(t, "cli-key", r.URL.Query().Get("key"))

		writeJSON(w, map[string]any{
			"status": "OK",
			"results": []any{
				map[string]any{"reference": "r1", "name": "Good Cafe", "rating": 4.5, "types": []string{"cafe"},
					"geometry": map[string]any{"location": map[string]any{"lat": 1.0, "lng": 2.0}}},
				map[string]any{"reference": "r2", "name": "Poor Cafe", "rating": 2.5, "types": []string{"cafe"},
					"geometry": map[string]any{"location": map[string]any{"lat": 1.0, "lng": 2.0}}},
				map[string]any{"reference": "r3", "name": "Loud Bar", "rating": 4.9, "types": []string{"bar"},
					"geometry": map[string]any{"location": map[string]any{"lat": 1.0, "lng": 2.0}}},
			},
		})
	}, "nearby", "-l", "1,2", "--exclude", "bar", "--preset", "good", "--json")

	require.Len(t, query, 1)

	var spots []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &spots))
	require.Len(t, spots, 1)
	assert.Equal(t, "Good Cafe", spots[0]["name"])
}

func TestSpotCommand(t *testing.T) {
	out := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "ref-42", r.URL.Query().Get("reference"))

		writeJSON(w, map[string]any{
			"status": "OK",
			"result": map[string]any{
				"reference":         "ref-42",
				"name":              "Answer Diner",
				"formatted_address": "42 Galaxy Way",
				"geometry":          map[string]any{"location": map[string]any{"lat": 4.2, "lng": 42.0}},
			},
		})
	}, "spot", "ref-42")

	assert.Contains(t, out, "Answer Diner")
	assert.Contains(t, out, "Address: 42 Galaxy Way")
}

func TestPresetsCommand(t *testing.T) {
	out := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}, "presets")

	assert.Equal(t, "good: Rating >= 4.0\n", out)
}

func TestPresetsCommandWithLocation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "cafe", r.URL.Query().Get("types"))

		writeJSON(w, map[string]any{
			"status": "OK",
			"results": []any{
				map[string]any{"reference": "r1", "name": "Good Cafe", "rating": 4.5, "types": []string{"cafe"}},
				map[string]any{"reference": "r2", "name": "Poor Cafe", "rating": 2.5, "types": []string{"cafe"}},
			},
		})
	}

	out := runCLI(t, handler, "presets", "-l", "1,2", "--types", "cafe")
	assert.Contains(t, out, "good: 1 of 2 spots")
	assert.Contains(t, out, "  Good Cafe")
	assert.NotContains(t, out, "Poor Cafe")

	out = runCLI(t, handler, "presets", "GOOD", "-l", "1,2", "--types", "cafe", "--json")
	var result map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, map[string][]string{"good": {"Good Cafe"}}, result)
}
