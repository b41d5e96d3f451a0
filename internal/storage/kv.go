package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// KV is the key-value persistence boundary. The distributor record list is
// kept under a single key as a JSON array; backends only need string keys
// and opaque byte values. A zero ttl means the value does not expire.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
