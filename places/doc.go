// Package places provides a client for the Google Places web service.
//
// The package turns simple search calls into HTTP GET requests against the
// places API and decodes the JSON responses into typed spots, reviews, events,
// opening-hour periods and photos.
//
// # Architecture
//
//   - Client: entry point holding the API key, defaults and HTTP transport
//   - SearchOptions: typed per-call options merged over client defaults
//   - RetryPolicy: bounded retries for configured API statuses
//   - Listing: page-token driven result assembly with type exclusion
//   - Spot: summary result with a lazily fetched, memoised detailed form
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := places.NewClient("your-api-key", logger,
//		places.WithRetryPolicy(places.RetryPolicy{
//			MaxRetries: 2,
//			Delay:      5 * time.Second,
//			Statuses:   []places.Status{places.StatusOverQueryLimit},
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	spots, err := client.SearchNearby(ctx, 48.8566, 2.3522, places.SearchOptions{
//		Radius:  500,
//		Types:   []string{"restaurant"},
//		Exclude: []string{"lodging"},
//	})
//
//	detailed, err := spots[0].FetchDetails(ctx)
//
// # Error Handling
//
//   - ErrInvalidConfig: client construction failed
//   - ErrInvalidOptions: search options rejected before any request
//   - ErrNotFound: a details lookup found nothing
//   - TransportError: network failure or non-2xx HTTP status
//   - MalformedResponseError: undecodable body or missing status
//   - APIStatusError: a non-retryable (or exhausted) API status
//
// ZERO_RESULTS is not an error for searches; it yields an empty slice.
package places
