package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied idempotency keys so a retried
// submission is not recorded twice
type IdempotencyStore interface {
	// Claim records key for ttl. It returns false when the key is already held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsClaimed reports whether key is currently held
	IsClaimed(ctx context.Context, key string) (bool, error)

	// Release forgets key, so a failed submission can be retried with it
	Release(ctx context.Context, key string) error

	// Close releases the store's resources
	Close() error
}
