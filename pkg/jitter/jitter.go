// Package jitter содержит экспоненциальный backoff со случайной добавкой и повтор операций на его основе.
package jitter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Backoff описывает параметры повторов.
type Backoff struct {
	Base     time.Duration
	Max      time.Duration
	Attempts int
	Factor   float64
}

// Duration возвращает d с джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	jitter := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(jitter)
}

// ExponentialBackoff удваивает base attempt раз (не больше max) и добавляет джиттер.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}
	return Duration(backoff, jitterFactor)
}

// Retry вызывает fn до b.Attempts раз. Повтор выполняется, только если retryable(err) == true.
// onRetry (может быть nil) вызывается перед каждой паузой.
// Возвращает последнюю ошибку fn либо ошибку контекста.
func Retry(
	ctx context.Context,
	b Backoff,
	retryable func(error) bool,
	onRetry func(attempt int, wait time.Duration, err error),
	fn func(ctx context.Context) error,
) error {
	attempts := b.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		if attempt == attempts-1 || (retryable != nil && !retryable(err)) {
			return err
		}

		wait := ExponentialBackoff(b.Base, b.Max, attempt, b.Factor)
		if onRetry != nil {
			onRetry(attempt+1, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	return err
}
