package limiter

import (
	"context"
	"time"
)

// Store counts requests per key inside fixed windows.
type Store interface {
	// Allow records one hit for key and reports whether it stays within
	// limit for the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
