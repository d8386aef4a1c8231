package providers

import (
	"context"
	"errors"
)

// ErrCacheMiss distinguishes an absent key from a cache backend
// failure. Misses are routine; failures mean the shared cache is
// degraded and worth logging.
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider defines the interface for shared cache operations
// (the HTTP response cache, backed by Redis in production)
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
