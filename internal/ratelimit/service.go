package ratelimit

import (
	"context"
	"time"

	"jobmatch/internal/observability"
)

const window = time.Minute

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// WindowCounter records hits in a sliding window. *redis.Client implements it.
type WindowCounter interface {
	IsEnabled() bool
	SlidingWindowHit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, time.Time, error)
}

// Service limits requests per client key within a one minute window
type Service struct {
	counter WindowCounter
	limit   int
	logger  *observability.Logger
	now     func() time.Time
}

// NewService creates a rate limiting service. A nil or disabled counter, or a
// non-positive limit, disables limiting.
func NewService(counter WindowCounter, limit int, logger *observability.Logger) *Service {
	return &Service{
		counter: counter,
		limit:   limit,
		logger:  logger,
		now:     time.Now,
	}
}

// Enabled reports whether requests are counted at all.
func (s *Service) Enabled() bool {
	return s != nil && s.limit > 0 && s.counter != nil && s.counter.IsEnabled()
}

// CheckRateLimit records a request for key. Counter failures are returned to
// the caller, which decides whether to fail open.
func (s *Service) CheckRateLimit(ctx context.Context, key string) (RateLimitResult, error) {
	now := s.now()
	count, oldest, err := s.counter.SlidingWindowHit(ctx, "rl:"+key, now, window)
	if err != nil {
		return RateLimitResult{}, err
	}

	resetAt := oldest.Add(window)
	if int(count) > s.limit {
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return RateLimitResult{
			Allowed:      false,
			Limit:        s.limit,
			Remaining:    0,
			ResetAt:      resetAt,
			RetryAfterMs: int(retryAfter.Milliseconds()),
		}, nil
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count),
		ResetAt:   resetAt,
	}, nil
}
