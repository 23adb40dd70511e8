package places

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleeper records requested waits without blocking
type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func scriptedAttempts(statuses ...Status) (attemptFunc, *int) {
	calls := 0
	return func(context.Context) (*envelope, error) {
		i := min(calls, len(statuses)-1)
		calls++
		return &envelope{Status: statuses[i]}, nil
	}, &calls
}

func TestRetryPolicyExecute(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("retryable status is attempted max+1 times", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 3, Delay: 5 * time.Second, Statuses: []Status{StatusOverQueryLimit}}
		fn, calls := scriptedAttempts(StatusOverQueryLimit)
		sleeper := &recordingSleeper{}

		env, err := policy.Execute(context.Background(), fn, sleeper.sleep, logger)
		require.NoError(t, err)
		assert.Equal(t, StatusOverQueryLimit, env.Status)
		assert.Equal(t, 4, *calls)
		assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second, 5 * time.Second}, sleeper.waits)
	})

	t.Run("unset delay waits the default", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 2, Statuses: []Status{StatusOverQueryLimit}}
		fn, calls := scriptedAttempts(StatusOverQueryLimit)
		sleeper := &recordingSleeper{}

		_, err := policy.Execute(context.Background(), fn, sleeper.sleep, logger)
		require.NoError(t, err)
		assert.Equal(t, 3, *calls)
		assert.Equal(t, []time.Duration{DefaultRetryDelay, DefaultRetryDelay}, sleeper.waits)
	})

	t.Run("stops at first non retryable status", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 5, Delay: time.Second, Statuses: []Status{StatusOverQueryLimit}}
		fn, calls := scriptedAttempts(StatusOverQueryLimit, StatusOK)
		sleeper := &recordingSleeper{}

		env, err := policy.Execute(context.Background(), fn, sleeper.sleep, logger)
		require.NoError(t, err)
		assert.Equal(t, StatusOK, env.Status)
		assert.Equal(t, 2, *calls)
		assert.Len(t, sleeper.waits, 1)
	})

	t.Run("zero max retries makes one attempt", func(t *testing.T) {
		policy := RetryPolicy{Delay: time.Second, Statuses: []Status{StatusOverQueryLimit}}
		fn, calls := scriptedAttempts(StatusOverQueryLimit)
		sleeper := &recordingSleeper{}

		_, err := policy.Execute(context.Background(), fn, sleeper.sleep, logger)
		require.NoError(t, err)
		assert.Equal(t, 1, *calls)
		assert.Empty(t, sleeper.waits)
	})

	t.Run("unlisted status is not retried", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 3, Delay: time.Second, Statuses: []Status{StatusOverQueryLimit}}
		fn, calls := scriptedAttempts(StatusRequestDenied)
		sleeper := &recordingSleeper{}

		env, err := policy.Execute(context.Background(), fn, sleeper.sleep, logger)
		require.NoError(t, err)
		assert.Equal(t, StatusRequestDenied, env.Status)
		assert.Equal(t, 1, *calls)
		assert.Empty(t, sleeper.waits)
	})

	t.Run("transport errors are not retried", func(t *testing.T) {
		policy := RetryPolicy{MaxRetries: 3, Delay: time.Second, Statuses: []Status{StatusOverQueryLimit}}
		calls := 0
		boom := &TransportError{Endpoint: EndpointNearby, Err: errors.New("connection refused")}
		fn := func(context.Context) (*envelope, error) {
			calls++
			return nil, boom
		}
		sleeper := &recordingSleeper{}

		env, err := policy.Execute(context.Background(), fn, sleeper.sleep, logger)
		assert.Nil(t, env)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
		assert.Empty(t, sleeper.waits)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		policy := RetryPolicy{MaxRetries: 3, Delay: time.Second, Statuses: []Status{StatusOverQueryLimit}}
		fn, calls := scriptedAttempts(StatusOverQueryLimit)
		sleeper := &recordingSleeper{}

		_, err := policy.Execute(ctx, fn, sleeper.sleep, logger)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, *calls)
	})
}

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	assert.Equal(t, 0, policy.MaxRetries)
	assert.Equal(t, 5*time.Second, policy.Delay)
	assert.Empty(t, policy.Statuses)
	assert.False(t, policy.IsZero())
	assert.True(t, RetryPolicy{}.IsZero())
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}
