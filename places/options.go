package places

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL, mainly for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithSensor sets the sensor flag sent with every request.
func WithSensor(sensor bool) Option {
	return func(c *Client) {
		c.sensor = sensor
	}
}

// WithDefaults sets the options every call starts from.
func WithDefaults(defaults SearchOptions) Option {
	return func(c *Client) {
		c.defaults = defaults
	}
}

// WithRetryPolicy sets the retry policy used when a call does not set one.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.retry = policy
	}
}

// WithPageDelay sets the wait before requesting the next page.
func WithPageDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.pageDelay = delay
		}
	}
}

// WithSleeper replaces the blocking wait used by retries and pagination.
func WithSleeper(sleep Sleeper) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}
