package places

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRadius is the largest radius in meters the API accepts
const MaxRadius = 50000

// RankBy is the ordering requested from nearby searches
type RankBy string

const (
	// RankByProminence orders results by importance (the API default)
	RankByProminence RankBy = "prominence"
	// RankByDistance orders results by distance; radius must not be set
	RankByDistance RankBy = "distance"
)

// typesSeparator joins array-valued options on the wire
const typesSeparator = "|"

// SearchOptions are the per-call options of a search. Zero fields are unset.
type SearchOptions struct {
	Location *Location

	Radius   int      `validate:"gte=0,lte=50000"`
	RankBy   RankBy   `validate:"omitempty,oneof=prominence distance"`
	Types    []string `validate:"omitempty,dive,required"`
	Exclude  []string `validate:"omitempty,dive,required"`
	Keyword  string
	Name     string
	Language string `validate:"omitempty,max=16"`

	// Retry overrides the client retry policy when set
	Retry *RetryPolicy

	// MaxPages bounds pagination; zero follows every page the API offers
	MaxPages int `validate:"gte=0"`
}

// locationRules holds the coordinate bounds checked on Location
type locationRules struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lng float64 `validate:"gte=-180,lte=180"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Merge returns o with every non-zero field of override applied on top
// of it. Zero fields of override inherit from o, so a per-call override cannot
// clear inherited Types, Exclude or MaxPages back to empty.
func (o SearchOptions) Merge(override SearchOptions) SearchOptions {
	merged := o
	merged.Types = slices.Clone(o.Types)
	merged.Exclude = slices.Clone(o.Exclude)

	if override.Location != nil {
		loc := *override.Location
		merged.Location = &loc
	}
	if override.Radius != 0 {
		merged.Radius = override.Radius
	}
	if override.RankBy != "" {
		merged.RankBy = override.RankBy
		// An inherited radius cannot be combined with distance ranking.
		if override.RankBy == RankByDistance && override.Radius == 0 {
			merged.Radius = 0
		}
	}
	if len(override.Types) > 0 {
		merged.Types = slices.Clone(override.Types)
	}
	if len(override.Exclude) > 0 {
		merged.Exclude = slices.Clone(override.Exclude)
	}
	if override.Keyword != "" {
		merged.Keyword = override.Keyword
	}
	if override.Name != "" {
		merged.Name = override.Name
	}
	if override.Language != "" {
		merged.Language = override.Language
	}
	if override.Retry != nil {
		retry := *override.Retry
		merged.Retry = &retry
	}
	if override.MaxPages != 0 {
		merged.MaxPages = override.MaxPages
	}

	return merged
}

// validateFields runs the struct tag checks
func (o SearchOptions) validateFields() error {
	if err := validate.Struct(o); err != nil {
		return toValidationError(err, "")
	}
	if o.Location != nil {
		if err := validate.Struct(locationRules{Lat: o.Location.Lat, Lng: o.Location.Lng}); err != nil {
			return toValidationError(err, "Location.")
		}
	}
	if o.Retry != nil {
		if o.Retry.MaxRetries < 0 {
			return &ValidationError{Field: "Retry.MaxRetries", Reason: "must not be negative"}
		}
		if o.Retry.Delay < 0 {
			return &ValidationError{Field: "Retry.Delay", Reason: "must not be negative"}
		}
	}
	return nil
}

// validateNearby checks the location, radius and rank-by rules of a
// coordinate search
func (o SearchOptions) validateNearby() error {
	if err := o.validateFields(); err != nil {
		return err
	}
	if o.Location == nil {
		return &ValidationError{Field: "Location", Reason: "is required"}
	}
	return o.validateRanking()
}

func (o SearchOptions) validateRanking() error {
	if o.RankBy == RankByDistance {
		if o.Radius != 0 {
			return &ValidationError{Field: "Radius", Reason: "must not be set when ranking by distance"}
		}
		if o.Keyword == "" && o.Name == "" && len(o.Types) == 0 {
			return &ValidationError{Field: "RankBy", Reason: "ranking by distance requires one of keyword, name or types"}
		}
		return nil
	}
	if o.Radius == 0 {
		return &ValidationError{Field: "Radius", Reason: "is required unless ranking by distance"}
	}
	return nil
}

// validateQuery checks a text search; location is optional there
func (o SearchOptions) validateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return &ValidationError{Field: "Query", Reason: "is required"}
	}
	if err := o.validateFields(); err != nil {
		return err
	}
	if o.Location != nil {
		return o.validateRanking()
	}
	return nil
}

// validateRadar checks a radar search
func (o SearchOptions) validateRadar() error {
	if err := o.validateFields(); err != nil {
		return err
	}
	if o.Location == nil {
		return &ValidationError{Field: "Location", Reason: "is required"}
	}
	if o.RankBy != "" {
		return &ValidationError{Field: "RankBy", Reason: "is not supported by radar search"}
	}
	if o.Radius == 0 {
		return &ValidationError{Field: "Radius", Reason: "is required"}
	}
	return nil
}

// searchValues renders the options sent with a nearby, text or radar search.
// Exclude and Retry are client side and never sent.
func (o SearchOptions) searchValues() url.Values {
	params := url.Values{}
	if o.Location != nil {
		params.Set("location", o.Location.String())
	}
	if o.Radius > 0 {
		params.Set("radius", strconv.Itoa(o.Radius))
	}
	if o.RankBy != "" {
		params.Set("rankby", string(o.RankBy))
	}
	if len(o.Types) > 0 {
		params.Set("types", strings.Join(o.Types, typesSeparator))
	}
	if o.Keyword != "" {
		params.Set("keyword", o.Keyword)
	}
	if o.Name != "" {
		params.Set("name", o.Name)
	}
	if o.Language != "" {
		params.Set("language", o.Language)
	}
	return params
}

// excluded reports whether any of types is in the exclude set
func (o SearchOptions) excluded(types []string) bool {
	for _, t := range types {
		if slices.Contains(o.Exclude, t) {
			return true
		}
	}
	return false
}

func toValidationError(err error, prefix string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		return &ValidationError{
			Field:  prefix + field,
			Reason: fmt.Sprintf("failed %q check (value %v)", fe.Tag(), fe.Value()),
			Err:    err,
		}
	}
	return &ValidationError{Field: "SearchOptions", Reason: err.Error(), Err: err}
}
