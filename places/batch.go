package places

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultDetailsConcurrency is the number of concurrent details requests
	DefaultDetailsConcurrency = 4
	// MaxDetailsConcurrency caps concurrent details requests
	MaxDetailsConcurrency = 16
)

// FetchDetailsAll returns the detailed form of every spot, in order. Up to
// concurrency details requests run at once; the first failure cancels the
// rest and is returned with no partial result.
func (c *Client) FetchDetailsAll(ctx context.Context, spots []*Spot, concurrency int) ([]*Spot, error) {
	if len(spots) == 0 {
		return []*Spot{}, nil
	}
	if concurrency <= 0 {
		concurrency = DefaultDetailsConcurrency
	}
	concurrency = min(concurrency, MaxDetailsConcurrency)

	detailed := make([]*Spot, len(spots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, spot := range spots {
		if spot == nil {
			continue
		}

		g.Go(func() error {
			d, err := spot.FetchDetails(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch details of %q: %w", spot.Name, err)
			}
			// Each goroutine owns its own index.
			detailed[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("spots", len(spots)).
		Int("concurrency", concurrency).
		Msg("Fetched spot details")

	return detailed, nil
}
