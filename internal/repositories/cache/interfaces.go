package cacherepo

import (
	"context"
	"time"
)

// Cache is the key/value surface shared by the session store and the IPB
// read cache. A missing key is reported as an empty result, never an error.
type Cache interface {
	Get(ctx context.Context, key string) CacheResponse[string]
	// GetEx reads the key and resets its expiration in one round trip.
	GetEx(ctx context.Context, key string, expiration time.Duration) CacheResponse[string]
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) CacheResponse[string]
	Del(ctx context.Context, keys ...string) CacheResponse[int64]
	// SetIfEqual stores value only while guardKey still holds guard, an absent
	// guardKey reading as "". The result reports whether the value was stored.
	SetIfEqual(ctx context.Context, key string, value interface{}, expiration time.Duration, guardKey string, guard string) CacheResponse[bool]
}

type CacheResponse[T any] interface {
	Err() error
	Result() (T, error)
}
