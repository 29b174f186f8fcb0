package ratelimit

import (
	"context"
	"time"
)

type Limiter interface {
	// Allow consumes one attempt for key. When the attempt is refused, retryAfter
	// tells how long until the oldest attempt leaves the window.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
