package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the base URL of the places web service
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// DefaultTimeout is the default HTTP timeout
	DefaultTimeout = 30 * time.Second
)

// Client represents a places API client
type Client struct {
	baseURL    string
	apiKey     string
	sensor     bool
	httpClient *http.Client
	defaults   SearchOptions
	retry      RetryPolicy
	pageDelay  time.Duration
	sleep      Sleeper
	logger     zerolog.Logger
}

// NewClient creates a new places client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retry:     DefaultRetryPolicy(),
		pageDelay: DefaultPageDelay,
		sleep:     SleepContext,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if client.retry.MaxRetries < 0 {
		return nil, fmt.Errorf("%w: retry max must not be negative", ErrInvalidConfig)
	}

	return client, nil
}

// Defaults returns the options every call starts from
func (c *Client) Defaults() SearchOptions {
	return c.defaults.Merge(SearchOptions{})
}

// SearchNearby searches for spots around lat,lng
func (c *Client) SearchNearby(ctx context.Context, lat, lng float64, opts SearchOptions) ([]*Spot, error) {
	opts = c.defaults.Merge(opts)
	opts.Location = &Location{Lat: lat, Lng: lng}

	if err := opts.validateNearby(); err != nil {
		return nil, err
	}

	return c.newListing(EndpointNearby, opts, true).run(ctx, opts.searchValues())
}

// SearchByQuery searches for spots matching a free text query
func (c *Client) SearchByQuery(ctx context.Context, query string, opts SearchOptions) ([]*Spot, error) {
	opts = c.defaults.Merge(opts)

	if err := opts.validateQuery(query); err != nil {
		return nil, err
	}

	params := opts.searchValues()
	params.Set("query", query)

	return c.newListing(EndpointText, opts, true).run(ctx, params)
}

// SearchByPageToken fetches the page a previous search handed out a token for,
// then follows any further pages
func (c *Client) SearchByPageToken(ctx context.Context, pageToken string, opts SearchOptions) ([]*Spot, error) {
	if strings.TrimSpace(pageToken) == "" {
		return nil, &ValidationError{Field: "PageToken", Reason: "is required"}
	}

	opts = c.defaults.Merge(opts)
	if err := opts.validateFields(); err != nil {
		return nil, err
	}

	return c.newListing(EndpointNearby, opts, true).run(ctx, url.Values{"pagetoken": {pageToken}})
}

// SearchRadar returns up to 200 spots around lat,lng in a single request.
// When no keyword, name or types are given, DefaultRadarTypes is searched.
func (c *Client) SearchRadar(ctx context.Context, lat, lng float64, opts SearchOptions) ([]*Spot, error) {
	opts = c.defaults.Merge(opts)
	opts.Location = &Location{Lat: lat, Lng: lng}

	if err := opts.validateRadar(); err != nil {
		return nil, err
	}
	if opts.Keyword == "" && opts.Name == "" && len(opts.Types) == 0 {
		opts.Types = DefaultRadarTypes()
	}

	return c.newListing(EndpointRadar, opts, false).run(ctx, opts.searchValues())
}

// Find looks up the detailed form of the spot with the given reference
func (c *Client) Find(ctx context.Context, reference string, opts SearchOptions) (*Spot, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, &ValidationError{Field: "Reference", Reason: "is required"}
	}

	opts = c.defaults.Merge(opts)
	if err := opts.validateFields(); err != nil {
		return nil, err
	}

	params := url.Values{"reference": {reference}}
	if opts.Language != "" {
		params.Set("language", opts.Language)
	}

	retry := c.retryFor(opts)
	env, err := retry.Execute(ctx, func(ctx context.Context) (*envelope, error) {
		return c.do(ctx, EndpointDetails, params)
	}, c.sleep, c.logger)
	if err != nil {
		return nil, err
	}

	if env.Status.Classify(retry.Statuses) != OutcomeOK {
		return nil, &APIStatusError{Endpoint: EndpointDetails, Status: env.Status, Message: env.ErrorMessage}
	}
	if env.Result == nil {
		return nil, &MalformedResponseError{Endpoint: EndpointDetails, Reason: "missing result field"}
	}

	spot := newDetailedSpot(*env.Result)
	if spot.Reference == "" {
		spot.Reference = reference
	}
	return spot, nil
}

// PhotoURL resolves the image URL of a photo reference. The photo endpoint
// answers with a redirect whose target is returned without being followed.
func (c *Client) PhotoURL(ctx context.Context, photoReference string, maxWidth int) (string, error) {
	if strings.TrimSpace(photoReference) == "" {
		return "", &ValidationError{Field: "PhotoReference", Reason: "is required"}
	}
	if maxWidth < 1 || maxWidth > 1600 {
		return "", &ValidationError{Field: "MaxWidth", Reason: "must be between 1 and 1600"}
	}

	params := url.Values{
		"maxwidth":       {strconv.Itoa(maxWidth)},
		"photoreference": {photoReference},
	}
	requestURL := c.url(EndpointPhoto) + "?" + c.query(params).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", &TransportError{Endpoint: EndpointPhoto, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	noRedirect := *c.httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noRedirect.Do(req)
	if err != nil {
		return "", &TransportError{Endpoint: EndpointPhoto, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return "", &TransportError{
			Endpoint:   EndpointPhoto,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("expected redirect, got %s", resp.Status),
		}
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", &MalformedResponseError{Endpoint: EndpointPhoto, Reason: "redirect without location header"}
	}

	return location, nil
}

// retryFor returns the retry policy of a call
func (c *Client) retryFor(opts SearchOptions) RetryPolicy {
	if opts.Retry != nil {
		return *opts.Retry
	}
	return c.retry
}

// detailsFetcher binds the details lookup handed to summary spots. Only the
// language and retry policy of the originating call are carried over.
func (c *Client) detailsFetcher(opts SearchOptions) DetailsFetcher {
	carried := SearchOptions{Language: opts.Language, Retry: opts.Retry}
	return func(ctx context.Context, reference string) (*Spot, error) {
		return c.Find(ctx, reference, carried)
	}
}
