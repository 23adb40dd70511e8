package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/goplaces/places"
)

var presetFlags struct {
	location string
	radius   int
	types    []string
	keyword  string
}

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List filter presets, or count the spots each preset keeps",
	Long: `Without --location, list the filter presets from the config file.

With --location, run one nearby search and report which spots every preset
(or only the named one) keeps.`,
	Example: `  goplaces presets
  goplaces presets -l 48.8584,2.2945 --types cafe
  goplaces presets good -l 48.8584,2.2945`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresets,
}

func init() {
	flags := presetsCmd.Flags()
	flags.StringVarP(&presetFlags.location, "location", "l", "", "search center as lat,lng")
	flags.IntVarP(&presetFlags.radius, "radius", "r", 0, "search radius in meters (default from config)")
	flags.StringSliceVarP(&presetFlags.types, "types", "t", nil, "restrict results to these types")
	flags.StringVarP(&presetFlags.keyword, "keyword", "k", "", "term matched against all content")

	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	if presetFlags.location == "" {
		if len(args) > 0 {
			return fmt.Errorf("a preset name needs --location")
		}
		return listPresets(cmd)
	}

	loc, err := parseLocation(presetFlags.location)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	spots, err := placesClient.SearchNearby(ctx, loc.Lat, loc.Lng, places.SearchOptions{
		Radius:  presetFlags.radius,
		Types:   presetFlags.types,
		Keyword: presetFlags.keyword,
	})
	if err != nil {
		return err
	}

	var matches map[string][]*places.Spot
	if len(args) == 1 {
		name := strings.ToLower(args[0])
		kept, err := filters.EvaluateFilter(ctx, name, spots)
		if err != nil {
			return err
		}
		matches = map[string][]*places.Spot{name: kept}
	} else {
		matches, err = filters.EvaluateAll(ctx, spots)
		if err != nil {
			return err
		}
	}

	logger.Debug().
		Int("spots", len(spots)).
		Int("presets", len(matches)).
		Msg("Evaluated presets")

	result := make(map[string][]string, len(matches))
	for name, kept := range matches {
		names := make([]string, 0, len(kept))
		for _, s := range kept {
			names = append(names, s.Name)
		}
		result[name] = names
	}

	return printResult(cmd.OutOrStdout(), result, func() string {
		var sb strings.Builder
		for _, name := range filters.ListFilters() {
			kept, ok := result[name]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "%s: %d of %d spots\n", name, len(kept), len(spots))
			for _, n := range kept {
				fmt.Fprintf(&sb, "  %s\n", n)
			}
		}
		return strings.TrimRight(sb.String(), "\n")
	})
}

// listPresets prints every registered preset with its expression
func listPresets(cmd *cobra.Command) error {
	names := filters.ListFilters()

	result := make(map[string]string, len(names))
	for _, name := range names {
		if f, ok := filters.GetFilter(name); ok {
			result[name] = f.Expression()
		}
	}

	return printResult(cmd.OutOrStdout(), result, func() string {
		if len(names) == 0 {
			return "No presets configured"
		}
		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "%s: %s\n", name, result[name])
		}
		return strings.TrimRight(sb.String(), "\n")
	})
}
