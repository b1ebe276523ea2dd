package retry

// Retry with exponential backoff and full jitter
// Only TransientError values (rate limits, 5xx) are retried
// A server-provided retry-after delay takes precedence over jitter

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

type Options struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// TransientError marks a delivery failure worth another attempt.
type TransientError struct {
	Code       int
	RetryAfter time.Duration
	Err        error
}

func (e *TransientError) Error() string {
	if e == nil {
		return "transient error: <nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("transient error (%d)", e.Code)
	}
	return fmt.Sprintf("transient error (%d): %v", e.Code, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsRetryableCode reports whether a status code signals a temporary condition.
func IsRetryableCode(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var te *TransientError
	return errors.As(err, &te)
}

func clamp(d, max time.Duration) time.Duration {
	if max > 0 && d > max {
		return max
	}
	return d
}

// FullJitterSleep picks a delay in [0, min(maxDelay, baseDelay*2^attempt)].
func FullJitterSleep(attempt int, baseDelay, maxDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if baseDelay <= 0 {
		return 0
	}
	maxForAttempt := baseDelay << attempt
	if maxForAttempt <= 0 {
		// shifted past int64
		maxForAttempt = maxDelay
	}
	maxForAttempt = clamp(maxForAttempt, maxDelay)
	if maxForAttempt <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(maxForAttempt) + 1))
}

func Do(ctx context.Context, opts Options, fn func() error) error {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 300 * time.Millisecond
	}

	totalAttempts := 1 + opts.MaxRetries
	var lastErr error

	for attempt := 0; attempt < totalAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == totalAttempts-1 {
			return lastErr
		}

		sleep := FullJitterSleep(attempt, opts.BaseDelay, opts.MaxDelay)

		var te *TransientError
		if errors.As(err, &te) && te.RetryAfter > 0 {
			sleep = clamp(te.RetryAfter, opts.MaxDelay)
		}

		t := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return lastErr
}
