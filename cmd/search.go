package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/goplaces/filter"
	"github.com/s0up4200/goplaces/format"
	"github.com/s0up4200/goplaces/places"
)

// searchFlags are shared by every search command
type searchFlags struct {
	location string
	radius   int
	rankBy   string
	types    []string
	exclude  []string
	keyword  string
	name     string
	language string
	maxPages int

	filterExpr  string
	preset      string
	details     bool
	concurrency int
}

var search searchFlags

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Search for spots around a location",
	Long: `Search for spots around a location. Results are ranked by prominence
within --radius, or by distance when --rankby distance is given together with
a keyword, name or types.`,
	Example: `  goplaces nearby --location -33.8670522,151.1957362 --radius 500 --types food
  goplaces nearby -l 48.8584,2.2945 --rankby distance --keyword coffee --exclude bar`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseLocation(search.location)
		if err != nil {
			return err
		}
		return runSearch(cmd, &loc, func(ctx context.Context, opts places.SearchOptions) ([]*places.Spot, error) {
			return placesClient.SearchNearby(ctx, loc.Lat, loc.Lng, opts)
		})
	},
}

var queryCmd = &cobra.Command{
	Use:     "query <text>",
	Short:   "Search for spots matching a free text query",
	Example: `  goplaces query "pizza in new york" --exclude meal_takeaway`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		var origin *places.Location
		if search.location != "" {
			loc, err := parseLocation(search.location)
			if err != nil {
				return err
			}
			origin = &loc
		}

		return runSearch(cmd, origin, func(ctx context.Context, opts places.SearchOptions) ([]*places.Spot, error) {
			opts.Location = origin
			return placesClient.SearchByQuery(ctx, text, opts)
		})
	},
}

var pageCmd = &cobra.Command{
	Use:   "page <token>",
	Short: "Continue a search from a next page token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, nil, func(ctx context.Context, opts places.SearchOptions) ([]*places.Spot, error) {
			return placesClient.SearchByPageToken(ctx, args[0], opts)
		})
	},
}

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Return up to 200 spots around a location in one request",
	Long: `Radar search returns up to 200 spots in a single unpaginated request.
Without --keyword, --name or --types every known spot type is searched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseLocation(search.location)
		if err != nil {
			return err
		}
		return runSearch(cmd, &loc, func(ctx context.Context, opts places.SearchOptions) ([]*places.Spot, error) {
			return placesClient.SearchRadar(ctx, loc.Lat, loc.Lng, opts)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{nearbyCmd, queryCmd, pageCmd, radarCmd} {
		addSearchFlags(c)
		rootCmd.AddCommand(c)
	}

	_ = nearbyCmd.MarkFlagRequired("location")
	_ = radarCmd.MarkFlagRequired("location")
}

func addSearchFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.StringVarP(&search.location, "location", "l", "", "search center as lat,lng")
	flags.IntVarP(&search.radius, "radius", "r", 0, "search radius in meters (default from config)")
	flags.StringVar(&search.rankBy, "rankby", "", "result ordering: prominence or distance")
	flags.StringSliceVarP(&search.types, "types", "t", nil, "restrict results to these types")
	flags.StringSliceVarP(&search.exclude, "exclude", "x", nil, "drop results tagged with any of these types")
	flags.StringVarP(&search.keyword, "keyword", "k", "", "term matched against all content")
	flags.StringVar(&search.name, "name", "", "term matched against spot names")
	flags.StringVar(&search.language, "language", "", "result language code")
	flags.IntVar(&search.maxPages, "max-pages", 0, "stop after this many pages (0 follows every page)")
	flags.StringVarP(&search.filterExpr, "filter", "f", "", "filter expression applied to results")
	flags.StringVarP(&search.preset, "preset", "p", "", "use a filter preset from config")
	flags.BoolVar(&search.details, "details", false, "fetch the details of every result")
	flags.IntVar(&search.concurrency, "concurrency", 0, "concurrent details requests (default from config)")
}

// searchOptions turns the flags into per-call options. Unset flags leave
// the configured defaults in place.
func (f searchFlags) searchOptions() places.SearchOptions {
	return places.SearchOptions{
		Radius:   f.radius,
		RankBy:   places.RankBy(strings.ToLower(f.rankBy)),
		Types:    f.types,
		Exclude:  f.exclude,
		Keyword:  f.keyword,
		Name:     f.name,
		Language: f.language,
		MaxPages: f.maxPages,
	}
}

// resolveFilter picks the filter to apply: --filter, then --preset, then the
// configured default. A nil filter keeps every spot.
func resolveFilter(m *filter.Manager, expression, preset, fallback string) (filter.CompiledFilter, error) {
	switch {
	case expression != "":
		f, err := m.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	case preset != "":
		f, ok := m.GetFilter(strings.ToLower(preset))
		if !ok {
			return nil, fmt.Errorf("%w: preset '%s' not found in config", filter.ErrUnknownFilter, preset)
		}
		return f, nil
	case fallback != "":
		f, err := m.Compile(fallback)
		if err != nil {
			return nil, fmt.Errorf("invalid default filter expression: %w", err)
		}
		return f, nil
	}
	return nil, nil
}

type searchFunc func(ctx context.Context, opts places.SearchOptions) ([]*places.Spot, error)

// runSearch performs a search, filters the spots, optionally expands their
// details and prints them
func runSearch(cmd *cobra.Command, origin *places.Location, fn searchFunc) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	spotFilter, err := resolveFilter(filters, search.filterExpr, search.preset, cfg.Filter.Default)
	if err != nil {
		return err
	}

	logger.Info().Str("command", cmd.Name()).Msg("Searching spots")

	spots, err := fn(ctx, search.searchOptions())
	if err != nil {
		return err
	}

	if search.details {
		concurrency := search.concurrency
		if concurrency <= 0 {
			concurrency = cfg.Details.Concurrency
		}
		spots, err = placesClient.FetchDetailsAll(ctx, spots, concurrency)
		if err != nil {
			return err
		}
	}

	if spotFilter != nil {
		total := len(spots)
		spots, err = filters.Apply(ctx, spotFilter, spots)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("filter", spotFilter.Expression()).
			Int("total", total).
			Int("matched", len(spots)).
			Msg("Applied filter")
	}

	options := format.Options{
		ShowDetails: search.details,
		ShowTypes:   true,
		Origin:      origin,
	}
	return printResult(cmd.OutOrStdout(), spots, func() string {
		return formatter.FormatSpotList(spots, options)
	})
}

// parseLocation parses a "lat,lng" pair
func parseLocation(s string) (places.Location, error) {
	latStr, lngStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return places.Location{}, fmt.Errorf("invalid location %q: expected lat,lng", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return places.Location{}, fmt.Errorf("invalid latitude %q: %w", latStr, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return places.Location{}, fmt.Errorf("invalid longitude %q: %w", lngStr, err)
	}

	return places.Location{Lat: lat, Lng: lng}, nil
}
