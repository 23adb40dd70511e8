package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/goplaces/config"
	"github.com/s0up4200/goplaces/filter"
	"github.com/s0up4200/goplaces/format"
	"github.com/s0up4200/goplaces/places"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	placesClient *places.Client
	filters      *filter.Manager
	formatter    = format.NewConsoleFormatter()

	jsonOutput bool

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "goplaces",
	Short: "Search the Google Places API from the command line",
	Long: `goplaces searches for spots with the Google Places web service.

Spots can be found around a location, by free text query, by a page token
handed out by a previous search, or with a radar search. Results can be
narrowed with filter expressions and expanded with their details.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion stamps the build information
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// initializeApp loads the configuration and builds the places client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	placesClient, err = places.NewClient(cfg.Places.APIKey, logger, cfg.ClientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create places client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Int("presets", len(cfg.Filter.Presets)).
		Int("radius", cfg.Search.Radius).
		Msg("Initialized places client")

	return nil
}

// skipInit replaces initializeApp for commands that need no configuration
func skipInit(*cobra.Command, []string) error {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// isTerminal reports whether out is an interactive terminal
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printResult writes v as JSON or as the console text produced by render
func printResult(w io.Writer, v any, render func() string) error {
	if jsonOutput {
		return format.WriteJSON(w, v)
	}
	_, err := fmt.Fprintln(w, render())
	return err
}
