package cache

import (
	"context"
	"errors"
	"time"
)

// CrawlResultTTL is the default lifetime of a memoized crawl result.
const CrawlResultTTL = 30 * time.Minute

// ErrMiss is returned by GetJSON when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the cache contract the orchestrator depends on. Implementations
// must be safe for concurrent use.
type Store interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePattern(ctx context.Context, prefix string) (int, error)
	Ping(ctx context.Context) error
	Close() error
}
