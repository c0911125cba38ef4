package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "kanban-today.com/kanban-today/internal/errors"
	"kanban-today.com/kanban-today/internal/limiter"
)

// RateLimiter allows limit requests per client IP in every window. When the
// store is unreachable the request goes through.
func RateLimiter(store limiter.Store, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := store.Allow(c.Request().Context(), c.RealIP(), limit, window)
			if err != nil {
				log.Printf("rate limiter: %v", err)
				return next(c)
			}

			if !allowed {
				return echo.NewHTTPError(apperrors.ErrRateLimited.StatusCode, apperrors.ErrRateLimited.Message)
			}

			return next(c)
		}
	}
}
