package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/s0up4200/goplaces/places"
)

// Options controls how much of each spot is printed
type Options struct {
	ShowDetails bool
	ShowTypes   bool
	ShowPhotos  bool
	// Origin, when set, adds the distance of each spot from it
	Origin *places.Location
}

// ConsoleFormatter provides console output formatting for spots
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatSpotList formats a list of spots as a tree
func (f *ConsoleFormatter) FormatSpotList(spots []*places.Spot, options Options) string {
	if len(spots) == 0 {
		return "No spots found"
	}

	var sb strings.Builder

	sb.WriteString("\nSpot")
	if len(spots) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(spots))

	for i, spot := range spots {
		isLast := i == len(spots)-1
		f.formatSpot(&sb, spot, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatSpotDetails formats a single detailed spot
func (f *ConsoleFormatter) FormatSpotDetails(spot *places.Spot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n", spot.Name)
	f.writeSummary(&sb, spot, "  ", Options{ShowTypes: true, ShowPhotos: true})

	if spot.Details == nil {
		sb.WriteString("\n")
		return sb.String()
	}
	f.writeDetails(&sb, spot.Details, "  ")

	sb.WriteString("\n")
	return sb.String()
}

// formatSpot formats a single spot entry
func (f *ConsoleFormatter) formatSpot(sb *strings.Builder, spot *places.Spot, isLast bool, options Options) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	fmt.Fprintf(sb, "%s── %s\n", prefix, spot.Name)

	indent := "│   "
	if isLast {
		indent = "    "
	}

	f.writeSummary(sb, spot, indent, options)

	if options.ShowDetails && spot.Details != nil {
		f.writeDetails(sb, spot.Details, indent)
	}
}

func (f *ConsoleFormatter) writeSummary(sb *strings.Builder, spot *places.Spot, indent string, options Options) {
	if spot.Vicinity != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, spot.Vicinity)
	}

	var parts []string
	if spot.Rating > 0 {
		rating := fmt.Sprintf("Rating: %.1f", spot.Rating)
		if spot.UserRatingsTotal > 0 {
			rating += fmt.Sprintf(" (%d)", spot.UserRatingsTotal)
		}
		parts = append(parts, rating)
	}
	if spot.PriceLevel != nil {
		parts = append(parts, "Price: "+priceLevel(*spot.PriceLevel))
	}
	if spot.OpenNow != nil {
		if *spot.OpenNow {
			parts = append(parts, "Open now")
		} else {
			parts = append(parts, "Closed now")
		}
	}
	if spot.BusinessStatus != "" && spot.BusinessStatus != "OPERATIONAL" {
		parts = append(parts, statusLabel(spot.BusinessStatus))
	}
	if options.Origin != nil {
		parts = append(parts, "Distance: "+formatDistance(*options.Origin, spot.Location))
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))
	}

	if options.ShowTypes && len(spot.Types) > 0 {
		fmt.Fprintf(sb, "%sTypes: %s\n", indent, strings.Join(spot.Types, ", "))
	}

	fmt.Fprintf(sb, "%sLocation: %s\n", indent, spot.Location)
	fmt.Fprintf(sb, "%sReference: %s\n", indent, spot.Reference)

	if options.ShowPhotos && len(spot.Photos) > 0 {
		fmt.Fprintf(sb, "%sPhotos: %d\n", indent, len(spot.Photos))
		for _, p := range spot.Photos {
			fmt.Fprintf(sb, "%s  - %s (%dx%d)\n", indent, p.Reference, p.Width, p.Height)
		}
	}
}

func (f *ConsoleFormatter) writeDetails(sb *strings.Builder, d *places.SpotDetails, indent string) {
	if d.FormattedAddress != "" {
		fmt.Fprintf(sb, "%sAddress: %s\n", indent, d.FormattedAddress)
	}
	if d.FormattedPhoneNumber != "" {
		fmt.Fprintf(sb, "%sPhone: %s\n", indent, d.FormattedPhoneNumber)
	}
	if d.Website != "" {
		fmt.Fprintf(sb, "%sWebsite: %s\n", indent, d.Website)
	}
	if d.URL != "" {
		fmt.Fprintf(sb, "%sMaps: %s\n", indent, d.URL)
	}

	if len(d.WeekdayText) > 0 {
		fmt.Fprintf(sb, "%sHours:\n", indent)
		for _, line := range d.WeekdayText {
			fmt.Fprintf(sb, "%s  %s\n", indent, line)
		}
	} else if len(d.Periods) == 1 && d.Periods[0].AlwaysOpen() {
		fmt.Fprintf(sb, "%sHours: open 24 hours\n", indent)
	}

	if len(d.Reviews) > 0 {
		fmt.Fprintf(sb, "%sReviews (%d):\n", indent, len(d.Reviews))
		for _, r := range d.Reviews {
			review := fmt.Sprintf("  - %s: %.0f/5", r.AuthorName, r.Rating)
			if !r.Time.IsZero() {
				review += fmt.Sprintf(" on %s", r.Time.Format("2006-01-02"))
			}
			fmt.Fprintf(sb, "%s%s\n", indent, review)
			if text := truncate(r.Text, 120); text != "" {
				fmt.Fprintf(sb, "%s    %s\n", indent, text)
			}
		}
	}

	if len(d.Events) > 0 {
		fmt.Fprintf(sb, "%sEvents (%d):\n", indent, len(d.Events))
		for _, e := range d.Events {
			fmt.Fprintf(sb, "%s  - %s (%s)\n", indent, e.Summary, e.StartTime.Format(time.DateTime))
		}
	}
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func priceLevel(level int) string {
	if level <= 0 {
		return "free"
	}
	return strings.Repeat("$", min(level, 4))
}

func statusLabel(status string) string {
	switch status {
	case "CLOSED_TEMPORARILY":
		return "Temporarily closed"
	case "CLOSED_PERMANENTLY":
		return "Permanently closed"
	default:
		return strings.ToLower(strings.ReplaceAll(status, "_", " "))
	}
}

func formatDistance(from, to places.Location) string {
	meters := from.DistanceTo(to)
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
