package usecase

import (
	"context"
	"fmt"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/internal/planner/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func (uc *implUseCase) ListObligations(ctx context.Context, sc model.Scope, input planner.ListObligationsInput) (planner.ListObligationsOutput, error) {
	if sc.UserID == "" {
		return planner.ListObligationsOutput{}, planner.ErrMissingUser
	}
	if err := validateRange(input.DueFrom, input.DueTo); err != nil {
		return planner.ListObligationsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	offset := max(input.Offset, 0)

	opt := repository.ListObligationsOptions{
		UserID:   sc.UserID,
		Category: input.Category,
		CourseID: input.CourseID,
		DueFrom:  input.DueFrom,
		DueTo:    input.DueTo,
		Limit:    limit,
		Offset:   offset,
	}
	if input.Status != "" {
		opt.Statuses = []model.ObligationStatus{input.Status}
	}

	obligations, err := uc.repo.ListObligations(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.ListObligations.ListObligations: %v", err)
		return planner.ListObligationsOutput{}, fmt.Errorf("list obligations: %w", err)
	}
	return planner.ListObligationsOutput{Obligations: obligations, Limit: limit, Offset: offset}, nil
}

// CompleteObligation marks an active obligation completed. A positive
// ActualHours is later folded into the completion ratio by LearnProfile.
func (uc *implUseCase) CompleteObligation(ctx context.Context, sc model.Scope, input planner.CompleteObligationInput) (model.Obligation, error) {
	if sc.UserID == "" {
		return model.Obligation{}, planner.ErrMissingUser
	}
	if input.ActualHours < 0 {
		return model.Obligation{}, planner.ErrInvalidActualHours
	}
	if _, err := uc.activeObligation(ctx, sc.UserID, input.ID); err != nil {
		return model.Obligation{}, err
	}

	now := uc.now()
	updated, err := uc.repo.UpdateObligationStatus(ctx, repository.UpdateObligationStatusOptions{
		UserID:      sc.UserID,
		ID:          input.ID,
		Status:      model.StatusCompleted,
		ActualHours: input.ActualHours,
		CompletedAt: &now,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.CompleteObligation.UpdateObligationStatus: %v", err)
		return model.Obligation{}, fmt.Errorf("complete obligation: %w", err)
	}
	if updated.ID == "" {
		return model.Obligation{}, planner.ErrObligationNotFound
	}

	uc.l.Infof(ctx, "CompleteObligation: user=%s obligation=%s actual_hours=%.2f", sc.UserID, updated.ID, updated.ActualHours)
	return updated, nil
}

// SnoozeObligation hides an active obligation from passes until input.Until.
func (uc *implUseCase) SnoozeObligation(ctx context.Context, sc model.Scope, input planner.SnoozeObligationInput) (model.Obligation, error) {
	if sc.UserID == "" {
		return model.Obligation{}, planner.ErrMissingUser
	}
	if !input.Until.After(uc.now()) {
		return model.Obligation{}, planner.ErrInvalidSnooze
	}
	if _, err := uc.activeObligation(ctx, sc.UserID, input.ID); err != nil {
		return model.Obligation{}, err
	}

	until := input.Until
	updated, err := uc.repo.UpdateObligationStatus(ctx, repository.UpdateObligationStatusOptions{
		UserID:       sc.UserID,
		ID:           input.ID,
		Status:       model.StatusSnoozed,
		SnoozedUntil: &until,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.SnoozeObligation.UpdateObligationStatus: %v", err)
		return model.Obligation{}, fmt.Errorf("snooze obligation: %w", err)
	}
	if updated.ID == "" {
		return model.Obligation{}, planner.ErrObligationNotFound
	}

	uc.l.Infof(ctx, "SnoozeObligation: user=%s obligation=%s until=%s", sc.UserID, updated.ID, until.Format(time.RFC3339))
	return updated, nil
}

// CancelObligation drops an active obligation from future passes. Its
// scheduled blocks are replaced by the next pass.
func (uc *implUseCase) CancelObligation(ctx context.Context, sc model.Scope, input planner.CancelObligationInput) (model.Obligation, error) {
	if sc.UserID == "" {
		return model.Obligation{}, planner.ErrMissingUser
	}
	if _, err := uc.activeObligation(ctx, sc.UserID, input.ID); err != nil {
		return model.Obligation{}, err
	}

	updated, err := uc.repo.UpdateObligationStatus(ctx, repository.UpdateObligationStatusOptions{
		UserID: sc.UserID,
		ID:     input.ID,
		Status: model.StatusCancelled,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.CancelObligation.UpdateObligationStatus: %v", err)
		return model.Obligation{}, fmt.Errorf("cancel obligation: %w", err)
	}
	if updated.ID == "" {
		return model.Obligation{}, planner.ErrObligationNotFound
	}

	uc.l.Infof(ctx, "CancelObligation: user=%s obligation=%s", sc.UserID, updated.ID)
	return updated, nil
}

// activeObligation loads id and checks it can still change state.
func (uc *implUseCase) activeObligation(ctx context.Context, userID, id string) (model.Obligation, error) {
	if id == "" {
		return model.Obligation{}, planner.ErrObligationNotFound
	}
	o, err := uc.repo.GetOneObligation(ctx, repository.GetOneObligationOptions{UserID: userID, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.activeObligation.GetOneObligation: %v", err)
		return model.Obligation{}, fmt.Errorf("get obligation: %w", err)
	}
	if o.ID == "" {
		return model.Obligation{}, planner.ErrObligationNotFound
	}
	if o.Status == model.StatusCompleted || o.Status == model.StatusCancelled {
		return model.Obligation{}, planner.ErrObligationNotActive
	}
	return o, nil
}
