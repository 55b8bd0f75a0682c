package availability

import (
	"context"
	"errors"

	"study-planner/internal/model"
)

// ErrUnavailable wraps failures of the underlying calendar.
var ErrUnavailable = errors.New("availability source unavailable")

// Provider returns the free time windows of a user inside a range.
type Provider interface {
	FreeWindows(ctx context.Context, userID string, rng model.TimeWindow) ([]model.TimeWindow, error)
}
