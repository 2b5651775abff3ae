package jitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialBackoffBounds(t *testing.T) {
	base := 10 * time.Millisecond
	max := 50 * time.Millisecond

	d := ExponentialBackoff(base, max, 0, 0)
	assert.Equal(t, base, d)

	d = ExponentialBackoff(base, max, 10, 0)
	assert.Equal(t, max, d)

	d = ExponentialBackoff(base, max, 1, DefaultJitter)
	assert.GreaterOrEqual(t, d, 20*time.Millisecond)
	assert.LessOrEqual(t, d, 30*time.Millisecond)
}

func TestRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), Backoff{Base: time.Millisecond, Max: time.Millisecond, Attempts: 5}, nil, nil,
		func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryNonRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Retry(context.Background(), Backoff{Base: time.Millisecond, Max: time.Millisecond, Attempts: 5},
		func(err error) bool { return !errors.Is(err, permanent) },
		nil,
		func(ctx context.Context) error {
			calls++
			return permanent
		})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryReportsAttempts(t *testing.T) {
	var attempts []int
	err := Retry(context.Background(), Backoff{Base: time.Millisecond, Max: time.Millisecond, Attempts: 3}, nil,
		func(attempt int, wait time.Duration, err error) { attempts = append(attempts, attempt) },
		func(ctx context.Context) error { return errors.New("always") })

	assert.Error(t, err)
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, Backoff{Base: time.Hour, Max: time.Hour, Attempts: 3}, nil, nil,
		func(ctx context.Context) error { return errors.New("transient") })

	assert.ErrorIs(t, err, context.Canceled)
}
