package ratelimit

import (
	"strconv"

	"jobmatch/internal/apierrors"
	"jobmatch/internal/observability"

	"github.com/gin-gonic/gin"
)

// Middleware limits requests per client IP. Requests pass through untouched
// when limiting is disabled or the counter is unreachable.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() {
			c.Next()
			return
		}

		clientIP := observability.GetRealClientIP(c)
		ctx := observability.WithFields(c.Request.Context(),
			observability.Field{Key: "rate_limit_key", Value: clientIP},
			observability.Field{Key: "rate_limit_rpm", Value: s.limit},
		)

		result, err := s.CheckRateLimit(ctx, clientIP)
		if err != nil {
			s.logger.Warn(ctx, "rate limit check failed, allowing request",
				observability.Field{Key: "error", Value: err.Error()},
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := (result.RetryAfterMs + 999) / 1000
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			s.logger.Warn(ctx, "rate limit exceeded",
				observability.Field{Key: "limit", Value: result.Limit},
				observability.Field{Key: "retry_after_ms", Value: result.RetryAfterMs},
			)
			apierrors.TooManyRequests(c, "Too many requests. Please try again later.")
			return
		}

		c.Next()
	}
}
