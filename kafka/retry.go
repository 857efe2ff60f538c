package kafka

import (
	"context"
	"time"
)

// RetryPolicy retries a fallible operation a bounded number of times
// with a configurable backoff between attempts. The zero value retries
// nothing; use DefaultRunRetryPolicy or build one explicitly.
type RetryPolicy struct {
	// MaxAttempts is the total number of invocations, including the first
	MaxAttempts int

	// Backoff maps a 1-based attempt number to the delay before the
	// next attempt. nil means no delay.
	Backoff func(attempt int) time.Duration

	// RetryIf decides whether an error is worth another attempt.
	// nil means every error is retried until MaxAttempts.
	RetryIf func(err error) bool

	// OnRetry, if set, is called after each failed attempt that will
	// be retried. Useful for logging and state bookkeeping.
	OnRetry func(attempt int, err error)
}

// LinearBackoff returns a backoff function growing linearly with the
// attempt number: attempt 1 waits base, attempt 2 waits 2*base, and so on.
func LinearBackoff(base time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// DefaultRunRetryPolicy is the consumer run-loop startup policy:
// three attempts with linearly increasing backoff.
func DefaultRunRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultRunAttempts,
		Backoff:     LinearBackoff(DefaultRunBackoff),
	}
}

// Do invokes op until it succeeds, the policy is exhausted, RetryIf
// rejects the error, or ctx is canceled. It returns nil on success and
// the last error otherwise.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if p.RetryIf != nil && !p.RetryIf(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, lastErr)
		}
		if err := sleepContext(ctx, p.delay(attempt)); err != nil {
			return lastErr
		}
	}
	return lastErr
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(attempt)
}

// sleepContext waits for d or until ctx is canceled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
