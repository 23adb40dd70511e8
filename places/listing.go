package places

import (
	"context"
	"net/url"
)

// listing assembles the results of one search across its pages
type listing struct {
	client   *Client
	endpoint Endpoint
	opts     SearchOptions
	retry    RetryPolicy
	paginate bool
}

func (c *Client) newListing(endpoint Endpoint, opts SearchOptions, paginate bool) *listing {
	return &listing{
		client:   c,
		endpoint: endpoint,
		opts:     opts,
		retry:    c.retryFor(opts),
		paginate: paginate,
	}
}

// run issues the first request with params and follows next page tokens
// until the API stops issuing them or MaxPages is reached. Any failing page
// aborts the whole listing; no partial result is returned.
func (l *listing) run(ctx context.Context, params url.Values) ([]*Spot, error) {
	c := l.client
	fetch := c.detailsFetcher(l.opts)
	spots := make([]*Spot, 0)

	for page := 1; ; page++ {
		env, err := l.retry.Execute(ctx, func(ctx context.Context) (*envelope, error) {
			return c.do(ctx, l.endpoint, params)
		}, c.sleep, c.logger)
		if err != nil {
			return nil, err
		}

		switch env.Status.Classify(l.retry.Statuses) {
		case OutcomeOK:
		case OutcomeZeroResults:
			return spots, nil
		default:
			return nil, &APIStatusError{Endpoint: l.endpoint, Status: env.Status, Message: env.ErrorMessage}
		}

		token := ""
		if l.paginate {
			token = env.NextPageToken
		}

		kept := 0
		for _, r := range env.Results {
			if l.opts.excluded(r.Types) {
				continue
			}
			spots = append(spots, newSpot(r, token, fetch))
			kept++
		}

		c.logger.Debug().
			Str("endpoint", string(l.endpoint)).
			Int("page", page).
			Int("count", len(env.Results)).
			Int("kept", kept).
			Int("total", len(spots)).
			Msg("Retrieved spots page")

		if token == "" || (l.opts.MaxPages > 0 && page >= l.opts.MaxPages) {
			return spots, nil
		}

		// A fresh token is rejected with INVALID_REQUEST until it becomes valid.
		if err := c.sleep(ctx, c.pageDelay); err != nil {
			return nil, err
		}
		params = url.Values{"pagetoken": {token}}
	}
}
