package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Endpoint is a places web service endpoint
type Endpoint string

const (
	// EndpointNearby searches around a location
	EndpointNearby Endpoint = "nearbysearch"
	// EndpointText searches by free text
	EndpointText Endpoint = "textsearch"
	// EndpointDetails looks up one spot by reference
	EndpointDetails Endpoint = "details"
	// EndpointRadar returns up to 200 unpaginated results
	EndpointRadar Endpoint = "radarsearch"
	// EndpointPhoto redirects to a photo's image URL
	EndpointPhoto Endpoint = "photo"
)

// url returns the JSON URL of the endpoint
func (c *Client) url(endpoint Endpoint) string {
	if endpoint == EndpointPhoto {
		return fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	}
	return fmt.Sprintf("%s/%s/json", c.baseURL, endpoint)
}

// query returns a copy of params with the sensor flag and the API key added.
// The key is set last so it can never be overridden by params.
func (c *Client) query(params url.Values) url.Values {
	q := make(url.Values, len(params)+2)
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	q.Set("sensor", strconv.FormatBool(c.sensor))
	q.Set("key", c.apiKey)
	return q
}

// do performs one GET against endpoint and decodes the response envelope
func (c *Client) do(ctx context.Context, endpoint Endpoint, params url.Values) (*envelope, error) {
	requestURL := c.url(endpoint) + "?" + c.query(params).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", string(endpoint)).
		Str("params", params.Encode()).
		Msg("Making places API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %s", resp.Status),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &MalformedResponseError{Endpoint: endpoint, Reason: "failed to decode body", Err: err}
	}
	if env.Status == "" {
		return nil, &MalformedResponseError{Endpoint: endpoint, Reason: "missing status field"}
	}

	c.logger.Debug().
		Str("endpoint", string(endpoint)).
		Str("status", string(env.Status)).
		Int("results", len(env.Results)).
		Bool("next_page", env.NextPageToken != "").
		Msg("Places API response")

	return &env, nil
}
