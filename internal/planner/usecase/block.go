package usecase

import (
	"context"
	"fmt"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/internal/planner/repository"
)

// UpdateBlockStatus records progress on a block. Scheduled blocks may start,
// finish or be skipped; in-progress blocks may finish or be skipped. A skipped
// block frees its time and effort for the next pass.
func (uc *implUseCase) UpdateBlockStatus(ctx context.Context, sc model.Scope, input planner.UpdateBlockStatusInput) (model.ScheduledBlock, error) {
	if sc.UserID == "" {
		return model.ScheduledBlock{}, planner.ErrMissingUser
	}
	if !input.Status.Valid() {
		return model.ScheduledBlock{}, planner.ErrInvalidBlockStatus
	}
	if input.ID == "" {
		return model.ScheduledBlock{}, planner.ErrBlockNotFound
	}

	current, err := uc.repo.GetOneBlock(ctx, sc.UserID, input.ID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.UpdateBlockStatus.GetOneBlock: %v", err)
		return model.ScheduledBlock{}, fmt.Errorf("get block: %w", err)
	}
	if current.ID == "" {
		return model.ScheduledBlock{}, planner.ErrBlockNotFound
	}
	if current.Status == input.Status {
		return current, nil
	}
	if !current.Status.CanMoveTo(input.Status) {
		return model.ScheduledBlock{}, fmt.Errorf("%w: %s to %s", planner.ErrBlockTransition, current.Status, input.Status)
	}

	updated, err := uc.repo.UpdateBlockStatus(ctx, repository.UpdateBlockStatusOptions{
		UserID: sc.UserID,
		ID:     input.ID,
		From:   current.Status,
		Status: input.Status,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.UpdateBlockStatus.UpdateBlockStatus: %v", err)
		return model.ScheduledBlock{}, fmt.Errorf("update block: %w", err)
	}
	if updated.ID == "" {
		// changed concurrently
		return model.ScheduledBlock{}, planner.ErrBlockTransition
	}

	uc.l.Infof(ctx, "UpdateBlockStatus: user=%s block=%s %s->%s", sc.UserID, updated.ID, current.Status, updated.Status)
	return updated, nil
}
