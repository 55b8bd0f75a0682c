package locker

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when another holder owns the lock.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes work per key across processes.
type Locker interface {
	// Acquire takes the lock for key and returns a release func.
	// It returns ErrNotAcquired when the lock is held elsewhere.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}
