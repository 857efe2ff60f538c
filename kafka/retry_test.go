package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearBackoff(t *testing.T) {
	t.Parallel()

	backoff := LinearBackoff(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, backoff(1))
	assert.Equal(t, 200*time.Millisecond, backoff(2))
	assert.Equal(t, 300*time.Millisecond, backoff(3))
}

func TestRetryPolicyDo(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()
		calls := 0
		policy := RetryPolicy{MaxAttempts: 3}
		err := policy.Do(context.Background(), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("fails twice then succeeds", func(t *testing.T) {
		t.Parallel()
		calls := 0
		policy := RetryPolicy{
			MaxAttempts: 3,
			Backoff:     LinearBackoff(time.Millisecond),
		}
		err := policy.Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("boom")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhaustion returns last error", func(t *testing.T) {
		t.Parallel()
		calls := 0
		last := errors.New("attempt 3")
		policy := RetryPolicy{
			MaxAttempts: 3,
			Backoff:     LinearBackoff(time.Millisecond),
		}
		err := policy.Do(context.Background(), func() error {
			calls++
			if calls == 3 {
				return last
			}
			return errors.New("earlier")
		})
		assert.Equal(t, 3, calls)
		assert.Equal(t, last, err)
	})

	t.Run("RetryIf rejects error", func(t *testing.T) {
		t.Parallel()
		calls := 0
		fatal := errors.New("fatal")
		policy := RetryPolicy{
			MaxAttempts: 5,
			RetryIf:     func(err error) bool { return !errors.Is(err, fatal) },
		}
		err := policy.Do(context.Background(), func() error {
			calls++
			return fatal
		})
		assert.Equal(t, 1, calls)
		assert.Equal(t, fatal, err)
	})

	t.Run("OnRetry invoked between attempts", func(t *testing.T) {
		t.Parallel()
		var retries []int
		policy := RetryPolicy{
			MaxAttempts: 3,
			OnRetry:     func(attempt int, err error) { retries = append(retries, attempt) },
		}
		_ = policy.Do(context.Background(), func() error { return errors.New("boom") })
		assert.Equal(t, []int{1, 2}, retries)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		boom := errors.New("boom")
		policy := RetryPolicy{
			MaxAttempts: 10,
			Backoff:     func(int) time.Duration { return time.Hour },
		}
		err := policy.Do(ctx, func() error {
			calls++
			cancel()
			return boom
		})
		assert.Equal(t, 1, calls)
		assert.Equal(t, boom, err)
	})

	t.Run("zero value runs once", func(t *testing.T) {
		t.Parallel()
		calls := 0
		var policy RetryPolicy
		err := policy.Do(context.Background(), func() error {
			calls++
			return errors.New("boom")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestDefaultRunRetryPolicy(t *testing.T) {
	t.Parallel()

	policy := DefaultRunRetryPolicy()
	assert.Equal(t, DefaultRunAttempts, policy.MaxAttempts)
	require.NotNil(t, policy.Backoff)
	assert.Equal(t, DefaultRunBackoff, policy.Backoff(1))
	assert.Equal(t, 2*DefaultRunBackoff, policy.Backoff(2))
}
