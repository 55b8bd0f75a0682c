package postgre

import (
	"context"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/lib/pq"
)

type retryPolicy struct {
	attempts int
	base     time.Duration
	max      time.Duration
}

var defaultRetryPolicy = retryPolicy{attempts: 3, base: time.Second, max: 10 * time.Second}

// withRetry runs fn until it succeeds, fails with a permanent error or the
// attempts run out. The delay doubles after each transient failure.
func (r *implRepository) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := max(r.retry.attempts, 1)
	delay := r.retry.base

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil || !isTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		r.l.Warnf(ctx, "%s: transient failure (retry %d/%d): %v", r.dsn(op), i+1, attempts-1, err)
		if r.m != nil {
			r.m.RecordRetry(op)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if r.retry.max > 0 && delay > r.retry.max {
			delay = r.retry.max
		}
	}
	return err
}

// isTransient reports whether err is worth retrying: lost connections,
// serialization failures, deadlocks and server shutdowns.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Class() {
	case "08", "53", "57":
		return true
	}
	switch pqErr.Code {
	case "40001", "40P01":
		return true
	}
	return false
}
