package places

// envelope is the decoded body shared by every places endpoint
type envelope struct {
	Status           Status        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	HTMLAttributions []string      `json:"html_attributions,omitempty"`
	Results          []placeResult `json:"results,omitempty"`
	Result           *placeResult  `json:"result,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
}

// placeResult is a single result as returned by search and details endpoints
type placeResult struct {
	PlaceID                  string             `json:"place_id"`
	Reference                string             `json:"reference"`
	ID                       string             `json:"id,omitempty"`
	Name                     string             `json:"name"`
	Icon                     string             `json:"icon,omitempty"`
	Vicinity                 string             `json:"vicinity,omitempty"`
	FormattedAddress         string             `json:"formatted_address,omitempty"`
	FormattedPhoneNumber     string             `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string             `json:"international_phone_number,omitempty"`
	Website                  string             `json:"website,omitempty"`
	URL                      string             `json:"url,omitempty"`
	UTCOffset                *int               `json:"utc_offset,omitempty"`
	Geometry                 geometry           `json:"geometry"`
	Types                    []string           `json:"types,omitempty"`
	Rating                   float64            `json:"rating,omitempty"`
	UserRatingsTotal         int                `json:"user_ratings_total,omitempty"`
	PriceLevel               *int               `json:"price_level,omitempty"`
	BusinessStatus           string             `json:"business_status,omitempty"`
	PermanentlyClosed        bool               `json:"permanently_closed,omitempty"`
	OpeningHours             *openingHours      `json:"opening_hours,omitempty"`
	AddressComponents        []AddressComponent `json:"address_components,omitempty"`
	Reviews                  []reviewResult     `json:"reviews,omitempty"`
	Events                   []eventResult      `json:"events,omitempty"`
	Photos                   []photoResult      `json:"photos,omitempty"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type openingHours struct {
	OpenNow     *bool          `json:"open_now,omitempty"`
	Periods     []periodResult `json:"periods,omitempty"`
	WeekdayText []string       `json:"weekday_text,omitempty"`
}

type periodResult struct {
	Open  dayTimeResult  `json:"open"`
	Close *dayTimeResult `json:"close,omitempty"`
}

type dayTimeResult struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

type reviewResult struct {
	AuthorName string         `json:"author_name"`
	AuthorURL  string         `json:"author_url,omitempty"`
	Language   string         `json:"language,omitempty"`
	Rating     float64        `json:"rating"`
	Text       string         `json:"text"`
	Time       int64          `json:"time"`
	Aspects    []aspectResult `json:"aspects,omitempty"`
}

type aspectResult struct {
	Type   string `json:"type"`
	Rating int    `json:"rating"`
}

type eventResult struct {
	EventID   string `json:"event_id"`
	StartTime int64  `json:"start_time"`
	Summary   string `json:"summary"`
	URL       string `json:"url,omitempty"`
}

type photoResult struct {
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	PhotoReference   string   `json:"photo_reference"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

// AddressComponent is one part of a detailed spot's address
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}
