package places

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"
)

// Location is a latitude/longitude pair
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the location as the API's "lat,lng" pair
func (l Location) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// earthRadius is the mean earth radius in meters
const earthRadius = 6371000.0

// DistanceTo returns the great-circle distance to other in meters
func (l Location) DistanceTo(other Location) float64 {
	lat1 := l.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (other.Lng - l.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadius * math.Asin(math.Sqrt(h))
}

// DetailsFetcher loads the detailed form of the spot identified by reference
type DetailsFetcher func(ctx context.Context, reference string) (*Spot, error)

// Spot is a place returned by the API. A Spot from a search is in summary
// form (Details is nil); FetchDetails returns its detailed form.
type Spot struct {
	PlaceID          string       `json:"place_id"`
	Reference        string       `json:"reference"`
	Name             string       `json:"name"`
	Location         Location     `json:"location"`
	Vicinity         string       `json:"vicinity,omitempty"`
	Types            []string     `json:"types,omitempty"`
	Rating           float64      `json:"rating,omitempty"`
	UserRatingsTotal int          `json:"user_ratings_total,omitempty"`
	PriceLevel       *int         `json:"price_level,omitempty"`
	OpenNow          *bool        `json:"open_now,omitempty"`
	BusinessStatus   string       `json:"business_status,omitempty"`
	Icon             string       `json:"icon,omitempty"`
	Photos           []Photo      `json:"photos,omitempty"`
	NextPageToken    string       `json:"next_page_token,omitempty"`
	Details          *SpotDetails `json:"details,omitempty"`

	loader *detailsLoader
}

// SpotDetails holds the fields only available from the details endpoint
type SpotDetails struct {
	FormattedAddress         string             `json:"formatted_address,omitempty"`
	FormattedPhoneNumber     string             `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string             `json:"international_phone_number,omitempty"`
	Website                  string             `json:"website,omitempty"`
	URL                      string             `json:"url,omitempty"`
	UTCOffset                *int               `json:"utc_offset,omitempty"`
	AddressComponents        []AddressComponent `json:"address_components,omitempty"`
	Periods                  []Period           `json:"periods,omitempty"`
	WeekdayText              []string           `json:"weekday_text,omitempty"`
	Reviews                  []Review           `json:"reviews,omitempty"`
	Events                   []Event            `json:"events,omitempty"`
}

// Review is a user review of a detailed spot
type Review struct {
	AuthorName string    `json:"author_name"`
	AuthorURL  string    `json:"author_url,omitempty"`
	Language   string    `json:"language,omitempty"`
	Rating     float64   `json:"rating"`
	Text       string    `json:"text"`
	Time       time.Time `json:"time"`
	Aspects    []Aspect  `json:"aspects,omitempty"`
}

// Aspect is a rating of one aspect of a spot (food, service, ...)
type Aspect struct {
	Type   string `json:"type"`
	Rating int    `json:"rating"`
}

// Event is an event attached to a spot
type Event struct {
	ID        string    `json:"event_id"`
	StartTime time.Time `json:"start_time"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url,omitempty"`
}

// DayTime is a weekday and a "hhmm" time of day
type DayTime struct {
	Day  time.Weekday `json:"day"`
	Time string       `json:"time"`
}

// Period is an opening period. Close is nil for the always-open marker.
type Period struct {
	Open  DayTime  `json:"open"`
	Close *DayTime `json:"close,omitempty"`
}

// AlwaysOpen reports whether the period is the API's "open 24/7" marker
func (p Period) AlwaysOpen() bool {
	return p.Close == nil && p.Open.Day == time.Sunday && p.Open.Time == "0000"
}

// Photo is a reference to a spot photo; see Client.PhotoURL
type Photo struct {
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	Reference        string   `json:"photo_reference"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

// IsDetailed reports whether the spot carries its details
func (s *Spot) IsDetailed() bool {
	return s.Details != nil
}

// HasType checks if the spot is tagged with the given type
func (s *Spot) HasType(t string) bool {
	return slices.Contains(s.Types, t)
}

// FetchDetails returns the detailed form of the spot. A detailed spot returns
// itself. For a summary spot the details request is issued once; later calls
// return the same detailed instance. The summary spot is never modified, and
// a failed fetch is not remembered.
func (s *Spot) FetchDetails(ctx context.Context) (*Spot, error) {
	if s.IsDetailed() {
		return s, nil
	}
	if s.loader == nil {
		return nil, fmt.Errorf("spot %q has no details fetcher", s.Reference)
	}
	return s.loader.load(ctx, s)
}

// detailsLoader memoises the detailed form of one summary spot. The one-slot
// channel serialises fetches; waiting for it honours the caller's context.
type detailsLoader struct {
	fetch DetailsFetcher

	sem      chan struct{}
	detailed *Spot
}

func newDetailsLoader(fetch DetailsFetcher) *detailsLoader {
	if fetch == nil {
		return nil
	}
	return &detailsLoader{fetch: fetch, sem: make(chan struct{}, 1)}
}

func (l *detailsLoader) load(ctx context.Context, summary *Spot) (*Spot, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-l.sem }()

	if l.detailed != nil {
		return l.detailed, nil
	}

	fetched, err := l.fetch(ctx, summary.Reference)
	if err != nil {
		return nil, err
	}

	l.detailed = summary.merge(fetched)
	return l.detailed, nil
}

// merge returns a copy of the summary spot carrying the fetched details
func (s *Spot) merge(fetched *Spot) *Spot {
	merged := *s
	merged.loader = nil
	merged.Types = slices.Clone(s.Types)
	merged.Photos = slices.Clone(s.Photos)
	merged.Details = fetched.Details

	if len(fetched.Photos) > 0 {
		merged.Photos = slices.Clone(fetched.Photos)
	}
	if fetched.Rating != 0 {
		merged.Rating = fetched.Rating
	}
	if fetched.UserRatingsTotal != 0 {
		merged.UserRatingsTotal = fetched.UserRatingsTotal
	}
	if fetched.PriceLevel != nil {
		merged.PriceLevel = fetched.PriceLevel
	}
	if fetched.OpenNow != nil {
		merged.OpenNow = fetched.OpenNow
	}
	if merged.PlaceID == "" {
		merged.PlaceID = fetched.PlaceID
	}

	return &merged
}

// newSpot converts a decoded result into a summary spot
func newSpot(r placeResult, pageToken string, fetch DetailsFetcher) *Spot {
	spot := &Spot{
		PlaceID:          r.PlaceID,
		Reference:        r.Reference,
		Name:             r.Name,
		Location:         Location{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Vicinity:         r.Vicinity,
		Types:            r.Types,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		PriceLevel:       r.PriceLevel,
		BusinessStatus:   r.BusinessStatus,
		Icon:             r.Icon,
		NextPageToken:    pageToken,
		loader:           newDetailsLoader(fetch),
	}

	if spot.Reference == "" {
		spot.Reference = r.PlaceID
	}
	if spot.BusinessStatus == "" && r.PermanentlyClosed {
		spot.BusinessStatus = "CLOSED_PERMANENTLY"
	}
	if r.OpeningHours != nil {
		spot.OpenNow = r.OpeningHours.OpenNow
	}

	for _, p := range r.Photos {
		spot.Photos = append(spot.Photos, Photo{
			Width:            p.Width,
			Height:           p.Height,
			Reference:        p.PhotoReference,
			HTMLAttributions: p.HTMLAttributions,
		})
	}

	return spot
}

// newDetailedSpot converts a details result into a detailed spot
func newDetailedSpot(r placeResult) *Spot {
	spot := newSpot(r, "", nil)

	details := &SpotDetails{
		FormattedAddress:         r.FormattedAddress,
		FormattedPhoneNumber:     r.FormattedPhoneNumber,
		InternationalPhoneNumber: r.InternationalPhoneNumber,
		Website:                  r.Website,
		URL:                      r.URL,
		UTCOffset:                r.UTCOffset,
		AddressComponents:        r.AddressComponents,
	}

	if r.OpeningHours != nil {
		details.WeekdayText = r.OpeningHours.WeekdayText
		for _, p := range r.OpeningHours.Periods {
			details.Periods = append(details.Periods, newPeriod(p))
		}
	}

	for _, rv := range r.Reviews {
		review := Review{
			AuthorName: rv.AuthorName,
			AuthorURL:  rv.AuthorURL,
			Language:   rv.Language,
			Rating:     rv.Rating,
			Text:       rv.Text,
			Time:       unixTime(rv.Time),
		}
		for _, a := range rv.Aspects {
			review.Aspects = append(review.Aspects, Aspect{Type: a.Type, Rating: a.Rating})
		}
		details.Reviews = append(details.Reviews, review)
	}

	for _, e := range r.Events {
		details.Events = append(details.Events, Event{
			ID:        e.EventID,
			StartTime: unixTime(e.StartTime),
			Summary:   e.Summary,
			URL:       e.URL,
		})
	}

	spot.Details = details
	return spot
}

func newPeriod(p periodResult) Period {
	period := Period{
		Open: DayTime{Day: time.Weekday(p.Open.Day), Time: p.Open.Time},
	}
	if p.Close != nil {
		period.Close = &DayTime{Day: time.Weekday(p.Close.Day), Time: p.Close.Time}
	}
	return period
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
