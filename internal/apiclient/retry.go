package apiclient

import (
	"context"
	"time"

	"jobmatch/internal/observability"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// WithRetry runs op up to maxAttempts times. After failed attempt n it waits
// baseDelay*n before trying again. Non-positive arguments fall back to the
// defaults. The last error is returned once attempts run out.
func WithRetry[T any](ctx context.Context, logger *observability.Logger, maxAttempts int, baseDelay time.Duration, op func(context.Context) (T, error)) (T, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if logger == nil {
		logger = observability.NewNopLogger()
	}

	var zero T
	for attempt := 1; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if attempt >= maxAttempts {
			return zero, err
		}

		delay := baseDelay * time.Duration(attempt)
		logger.Warn(ctx, "attempt failed, retrying",
			observability.Field{Key: "attempt", Value: attempt},
			observability.Field{Key: "max_attempts", Value: maxAttempts},
			observability.Field{Key: "delay", Value: delay.String()},
			observability.Field{Key: "error", Value: err.Error()},
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
