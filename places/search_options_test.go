package places

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchOptionsValidateNearby(t *testing.T) {
	here := &Location{Lat: 48.8584, Lng: 2.2945}

	tests := []struct {
		name      string
		opts      SearchOptions
		wantField string
	}{
		{
			name: "radius search",
			opts: SearchOptions{Location: here, Radius: 1000},
		},
		{
			name:      "missing location",
			opts:      SearchOptions{Radius: 1000},
			wantField: "Location",
		},
		{
			name:      "missing radius",
			opts:      SearchOptions{Location: here},
			wantField: "Radius",
		},
		{
			name:      "radius above maximum",
			opts:      SearchOptions{Location: here, Radius: MaxRadius + 1},
			wantField: "Radius",
		},
		{
			name:      "negative radius",
			opts:      SearchOptions{Location: here, Radius: -5},
			wantField: "Radius",
		},
		{
			name: "distance ranking with types",
			opts: SearchOptions{Location: here, RankBy: RankByDistance, Types: []string{"cafe"}},
		},
		{
			name:      "distance ranking with radius",
			opts:      SearchOptions{Location: here, RankBy: RankByDistance, Radius: 500, Keyword: "coffee"},
			wantField: "Radius",
		},
		{
			name:      "distance ranking without keyword name or types",
			opts:      SearchOptions{Location: here, RankBy: RankByDistance},
			wantField: "RankBy",
		},
		{
			name:      "unknown rank by",
			opts:      SearchOptions{Location: here, Radius: 100, RankBy: RankBy("popularity")},
			wantField: "RankBy",
		},
		{
			name:      "latitude out of range",
			opts:      SearchOptions{Location: &Location{Lat: 91, Lng: 0}, Radius: 100},
			wantField: "Location.Lat",
		},
		{
			name:      "empty type",
			opts:      SearchOptions{Location: here, Radius: 100, Types: []string{"cafe", ""}},
			wantField: "Types[1]",
		},
		{
			name:      "negative max pages",
			opts:      SearchOptions{Location: here, Radius: 100, MaxPages: -1},
			wantField: "MaxPages",
		},
		{
			name:      "negative retry count",
			opts:      SearchOptions{Location: here, Radius: 100, Retry: &RetryPolicy{MaxRetries: -1}},
			wantField: "Retry.MaxRetries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validateNearby()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOptions))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSearchOptionsValidateQuery(t *testing.T) {
	assert.NoError(t, SearchOptions{}.validateQuery("pizza in new york"))
	assert.ErrorIs(t, SearchOptions{}.validateQuery("  "), ErrInvalidOptions)

	// Ranking rules only apply once a location is given.
	err := SearchOptions{Location: &Location{Lat: 1, Lng: 1}}.validateQuery("pizza")
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestSearchOptionsValidateRadar(t *testing.T) {
	here := &Location{Lat: 1, Lng: 1}

	assert.NoError(t, SearchOptions{Location: here, Radius: 5000}.validateRadar())
	assert.ErrorIs(t, SearchOptions{Location: here}.validateRadar(), ErrInvalidOptions)
	assert.ErrorIs(t, SearchOptions{Location: here, Radius: 10, RankBy: RankByDistance}.validateRadar(), ErrInvalidOptions)
}

func TestSearchOptionsMerge(t *testing.T) {
	defaults := SearchOptions{
		Radius:   1000,
		Types:    []string{"food"},
		Language: "en",
		Retry:    &RetryPolicy{MaxRetries: 1, Delay: time.Second},
	}

	t.Run("override wins per field", func(t *testing.T) {
		merged := defaults.Merge(SearchOptions{Radius: 200, Keyword: "vegan"})
		assert.Equal(t, 200, merged.Radius)
		assert.Equal(t, []string{"food"}, merged.Types)
		assert.Equal(t, "vegan", merged.Keyword)
		assert.Equal(t, "en", merged.Language)
		assert.Equal(t, 1, merged.Retry.MaxRetries)
	})

	t.Run("merged slices do not alias the inputs", func(t *testing.T) {
		merged := defaults.Merge(SearchOptions{})
		merged.Types[0] = "bar"
		assert.Equal(t, []string{"food"}, defaults.Types)
	})

	t.Run("empty override fields inherit", func(t *testing.T) {
		base := SearchOptions{Radius: 1000, Exclude: []string{"bar"}, MaxPages: 2}
		merged := base.Merge(SearchOptions{Exclude: []string{}, MaxPages: 0})
		assert.Equal(t, []string{"bar"}, merged.Exclude)
		assert.Equal(t, 2, merged.MaxPages)
	})

	t.Run("distance ranking drops an inherited radius", func(t *testing.T) {
		merged := defaults.Merge(SearchOptions{RankBy: RankByDistance})
		assert.Equal(t, 0, merged.Radius)
		assert.NoError(t, merged.Merge(SearchOptions{Location: &Location{Lat: 1, Lng: 2}}).validateNearby())
	})
}

func TestSearchOptionsSearchValues(t *testing.T) {
	opts := SearchOptions{
		Location: &Location{Lat: -33.8670522, Lng: 151.1957362},
		Radius:   500,
		Types:    []string{"food", "cafe"},
		Exclude:  []string{"bar"},
		Keyword:  "flat white",
		Language: "en",
		Retry:    &RetryPolicy{MaxRetries: 2},
	}

	params := opts.searchValues()
	assert.Equal(t, "-33.8670522,151.1957362", params.Get("location"))
	assert.Equal(t, "500", params.Get("radius"))
	assert.Equal(t, "food|cafe", params.Get("types"))
	assert.Equal(t, "flat white", params.Get("keyword"))
	assert.Equal(t, "en", params.Get("language"))
	assert.False(t, params.Has("exclude"))
	assert.False(t, params.Has("rankby"))
	assert.False(t, params.Has("retry"))
}

func TestSearchOptionsExcluded(t *testing.T) {
	opts := SearchOptions{Exclude: []string{"bar", "night_club"}}
	assert.True(t, opts.excluded([]string{"restaurant", "bar"}))
	assert.False(t, opts.excluded([]string{"restaurant", "bar_and_grill"}))
	assert.False(t, SearchOptions{}.excluded([]string{"bar"}))
}
