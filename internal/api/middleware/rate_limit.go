package middleware

import (
	"time"

	"github.com/SafeMPC/pox-signer/internal/api/httperrors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const defaultRateLimitExpiresIn = 3 * time.Minute

type RateLimitConfig struct {
	Skipper middleware.Skipper
	// Limit is the sustained rate per client, Burst the bucket size.
	Limit rate.Limit
	Burst int
	// ExpiresIn drops limiters of clients not seen for that long.
	ExpiresIn time.Duration
}

// RateLimit limits requests per client IP (echo's RealIP).
func RateLimit(limit float64, burst int) echo.MiddlewareFunc {
	return RateLimitWithConfig(RateLimitConfig{
		Limit: rate.Limit(limit),
		Burst: burst,
	})
}

// RateLimitWithConfig wraps echo's rate limiter with an in-memory store and answers
// denied requests with ErrTooManyRequests.
func RateLimitWithConfig(config RateLimitConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	if config.ExpiresIn <= 0 {
		config.ExpiresIn = defaultRateLimitExpiresIn
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: config.Skipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      config.Limit,
			Burst:     config.Burst,
			ExpiresIn: config.ExpiresIn,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			c.Response().Header().Set("Retry-After", "1")
			return httperrors.ErrTooManyRequests
		},
	})
}
