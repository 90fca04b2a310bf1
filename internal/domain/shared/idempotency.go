package shared

import (
	"context"
	"time"
)

// IdempotencyStore reserves client-supplied request keys so a retried
// mutation is rejected instead of being applied twice.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false when the key was already claimed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release drops a reservation so the request can be retried after a failure.
	Release(ctx context.Context, key string) error
	Close() error
}

// DefaultIdempotencyTTL is how long a request key stays reserved
const DefaultIdempotencyTTL = 24 * time.Hour
