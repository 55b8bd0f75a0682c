package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/pkg/locker"
)

const (
	passLockPrefix  = "pass:"
	learnLockPrefix = "learn:"
)

// lock takes the per-user lock for prefix and returns its release func.
func (uc *implUseCase) lock(ctx context.Context, prefix, userID string) (func(), error) {
	release, err := uc.locker.Acquire(ctx, prefix+userID, uc.cfg.LockTTL)
	if errors.Is(err, locker.ErrNotAcquired) {
		return nil, planner.ErrPassInProgress
	}
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.lock: %s%s: %v", prefix, userID, err)
		return nil, err
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.l.Warnf(ctx, "planner.usecase.lock: release %s%s: %v", prefix, userID, err)
		}
	}, nil
}

// publish sends an event. Failures are logged and counted, never returned.
func (uc *implUseCase) publish(ctx context.Context, event model.PlannerEvent) {
	err := uc.publisher.Publish(ctx, event)
	uc.metrics.RecordEvent(string(event.Kind), err == nil)
	if err != nil {
		uc.l.Warnf(ctx, "planner.usecase.publish: %s for user=%s: %v", event.Kind, event.UserID, err)
	}
}

// stampConflicts fills the fields the detector leaves to the caller.
func stampConflicts(conflicts []model.Conflict, userID string, now time.Time) []model.Conflict {
	out := make([]model.Conflict, len(conflicts))
	for i, c := range conflicts {
		c.UserID = userID
		c.DetectedAt = now
		out[i] = c
	}
	return out
}

func validateRange(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return planner.ErrInvalidRange
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
