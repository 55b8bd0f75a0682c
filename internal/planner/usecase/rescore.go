package usecase

import (
	"context"
	"fmt"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

// Rescore recomputes the priority of every schedulable obligation and stores it.
func (uc *implUseCase) Rescore(ctx context.Context, sc model.Scope) (planner.RescoreOutput, error) {
	if sc.UserID == "" {
		return planner.RescoreOutput{}, planner.ErrMissingUser
	}

	now := uc.now()
	snap, err := uc.loadSnapshot(ctx, sc.UserID, now)
	if err != nil {
		return planner.RescoreOutput{}, err
	}

	scored := uc.scorer.ScoreAll(snap.pending, snap.courses, snap.profile, snap.preferences, now)
	if err := uc.savePriorities(ctx, sc.UserID, scored); err != nil {
		return planner.RescoreOutput{}, err
	}

	uc.l.Infof(ctx, "Rescore: user=%s obligations=%d", sc.UserID, len(scored))
	return planner.RescoreOutput{Obligations: scored}, nil
}

func (uc *implUseCase) savePriorities(ctx context.Context, userID string, scored []model.Obligation) error {
	if len(scored) == 0 {
		return nil
	}
	priorities := make(map[string]model.Priority, len(scored))
	for _, o := range scored {
		priorities[o.ID] = o.Priority
	}
	if err := uc.repo.UpdatePriorities(ctx, userID, priorities); err != nil {
		uc.l.Errorf(ctx, "planner.usecase.savePriorities.UpdatePriorities: %v", err)
		return fmt.Errorf("update priorities: %w", err)
	}
	return nil
}
