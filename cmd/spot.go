package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/goplaces/places"
)

var (
	spotLanguage  string
	photoMaxWidth int
)

var spotCmd = &cobra.Command{
	Use:   "spot <reference>",
	Short: "Show the details of a spot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spot, err := placesClient.Find(cmd.Context(), args[0], places.SearchOptions{Language: spotLanguage})
		if errors.Is(err, places.ErrNotFound) {
			return fmt.Errorf("no spot found for reference %s", args[0])
		}
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), spot, func() string {
			return formatter.FormatSpotDetails(spot)
		})
	},
}

var photoCmd = &cobra.Command{
	Use:   "photo <photo-reference>",
	Short: "Print the image URL of a spot photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := placesClient.PhotoURL(cmd.Context(), args[0], photoMaxWidth)
		if err != nil {
			return err
		}

		result := map[string]string{"photo_reference": args[0], "url": url}
		return printResult(cmd.OutOrStdout(), result, func() string {
			return url
		})
	},
}

func init() {
	spotCmd.Flags().StringVar(&spotLanguage, "language", "", "result language code")
	photoCmd.Flags().IntVar(&photoMaxWidth, "max-width", 400, "maximum image width in pixels (1-1600)")

	rootCmd.AddCommand(spotCmd)
	rootCmd.AddCommand(photoCmd)
}
