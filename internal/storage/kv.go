package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that a key is absent. Callers that model "missing is
// not an error" are expected to check for it with errors.Is.
var ErrNotFound = errors.New("storage: key not found")

// ErrUnavailable reports a backend failure (as opposed to a missing key).
var ErrUnavailable = errors.New("storage: backend unavailable")

// KV is the minimal key-value surface the engine's caches are built on.
// A zero TTL means the value does not expire.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
