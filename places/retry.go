package places

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultRetryDelay is the wait between two attempts when none is configured
	DefaultRetryDelay = 5 * time.Second

	// DefaultPageDelay is the wait before a next page token becomes valid
	DefaultPageDelay = 2 * time.Second
)

// Sleeper blocks for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper backed by a timer
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy bounds how often a request is reissued for a retryable status.
// The zero value performs exactly one attempt. A zero Delay waits
// DefaultRetryDelay between attempts.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
	Statuses   []Status
}

// DefaultRetryPolicy returns the conservative default: nothing is retried
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 0,
		Delay:      DefaultRetryDelay,
	}
}

// IsZero reports whether the policy has no field set
func (p RetryPolicy) IsZero() bool {
	return p.MaxRetries == 0 && p.Delay == 0 && len(p.Statuses) == 0
}

// wait returns the delay between two attempts
func (p RetryPolicy) wait() time.Duration {
	if p.Delay <= 0 {
		return DefaultRetryDelay
	}
	return p.Delay
}

// attemptFunc performs one request
type attemptFunc func(ctx context.Context) (*envelope, error)

// Execute calls fn, sleeping Delay and calling again while the returned
// status is retryable and fewer than MaxRetries retries were made. The last
// envelope is returned as-is; deciding whether its status is an error is left
// to the caller. Errors from fn are returned immediately.
func (p RetryPolicy) Execute(ctx context.Context, fn attemptFunc, sleep Sleeper, logger zerolog.Logger) (*envelope, error) {
	if sleep == nil {
		sleep = SleepContext
	}
	delay := p.wait()

	for attempt := 0; ; attempt++ {
		env, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		if env.Status.Classify(p.Statuses) != OutcomeRetryable || attempt >= p.MaxRetries {
			return env, nil
		}

		logger.Warn().
			Str("status", string(env.Status)).
			Int("attempt", attempt+1).
			Int("max_retries", p.MaxRetries).
			Dur("delay", delay).
			Msg("Retrying places request")

		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}
