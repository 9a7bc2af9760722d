package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
)

// AttemptLimiter is the budget check backing the auth rate limit, satisfied
// by the Redis login limiter.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthRateLimit throttles the credential endpoints (signup, login) per client
// IP. The limiter fails open: if Redis is unreachable the request proceeds,
// because the limiter is abuse protection, not a correctness requirement.
func AuthRateLimit(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("login limiter unavailable, failing open")
				return next(c)
			}
			if !ok {
				metrics.LoginThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, try again later")
			}
			return next(c)
		}
	}
}
