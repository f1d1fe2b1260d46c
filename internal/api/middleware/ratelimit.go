package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityreporter/city-reporter-api/internal/api/metrics"
)

// SubmissionLimiter abstracts the per-user counter store (Redis).
type SubmissionLimiter interface {
	// Allow increments the caller's daily counter and reports whether the
	// submission is within limit. retryAfter is the seconds until the
	// window resets, meaningful only when allowed is false.
	Allow(ctx context.Context, userID string) (allowed bool, retryAfter int64, err error)
}

type rateLimitedResponse struct {
	Message    string `json:"message"`
	RetryAfter int64  `json:"retry_after"`
}

// LimitSubmissions caps report creation per authenticated user per day.
// Limiter failures let the request through; the limiter protects capacity,
// it is not an authorization control.
func LimitSubmissions(limiter SubmissionLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserID).(string)
			if !ok {
				// RequireAuth runs first; this is unreachable on wired routes.
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), userID)
			if err != nil {
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, rateLimitedResponse{
					Message:    "daily report limit reached",
					RetryAfter: retryAfter,
				})
			}
			return next(c)
		}
	}
}
