package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/internal/planner/repository"
)

// LogSession records one observed work session. Hour of day and day of week
// are derived in the planner's time zone.
func (uc *implUseCase) LogSession(ctx context.Context, sc model.Scope, input planner.LogSessionInput) (model.ProductivityLogEntry, error) {
	if sc.UserID == "" {
		return model.ProductivityLogEntry{}, planner.ErrMissingUser
	}
	if input.StartedAt.IsZero() {
		return model.ProductivityLogEntry{}, planner.ErrInvalidSession
	}
	if input.EndedAt != nil && !input.EndedAt.After(input.StartedAt) {
		return model.ProductivityLogEntry{}, planner.ErrInvalidSession
	}
	if r := input.FocusRating; r != nil && (*r < 1 || *r > 5) {
		return model.ProductivityLogEntry{}, planner.ErrInvalidRating
	}

	if input.ObligationID != "" {
		o, err := uc.repo.GetOneObligation(ctx, repository.GetOneObligationOptions{UserID: sc.UserID, ID: input.ObligationID})
		if err != nil {
			uc.l.Errorf(ctx, "planner.usecase.LogSession.GetOneObligation: %v", err)
			return model.ProductivityLogEntry{}, fmt.Errorf("get obligation: %w", err)
		}
		if o.ID == "" {
			return model.ProductivityLogEntry{}, planner.ErrObligationNotFound
		}
	}

	entry := model.NewProductivityLogEntry(uuid.NewString(), input.ObligationID, input.StartedAt,
		input.EndedAt, input.FocusRating, uc.cfg.Builder.Location)
	entry.UserID = sc.UserID
	entry.Notes = input.Notes

	created, err := uc.repo.CreateLogEntry(ctx, entry)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.LogSession.CreateLogEntry: %v", err)
		return model.ProductivityLogEntry{}, fmt.Errorf("create log entry: %w", err)
	}
	return created, nil
}

// LearnProfile folds every unconsumed log entry and every completion newer
// than the profile into it. The entries are marked consumed in the same
// write as the profile, so each one is learned from exactly once.
func (uc *implUseCase) LearnProfile(ctx context.Context, sc model.Scope) (planner.LearnProfileOutput, error) {
	if sc.UserID == "" {
		return planner.LearnProfileOutput{}, planner.ErrMissingUser
	}

	unlock, err := uc.lock(ctx, learnLockPrefix, sc.UserID)
	if err != nil {
		return planner.LearnProfileOutput{}, err
	}
	defer unlock()

	profile, err := uc.loadProfile(ctx, sc.UserID)
	if err != nil {
		return planner.LearnProfileOutput{}, err
	}

	entries, err := uc.repo.ListUnconsumedLogs(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.LearnProfile.ListUnconsumedLogs: %v", err)
		return planner.LearnProfileOutput{}, fmt.Errorf("list log entries: %w", err)
	}
	completions, err := uc.repo.ListCompletions(ctx, sc.UserID, profile.CompletionsThrough)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.LearnProfile.ListCompletions: %v", err)
		return planner.LearnProfileOutput{}, fmt.Errorf("list completions: %w", err)
	}

	out := planner.LearnProfileOutput{
		Profile:         profile,
		EntriesConsumed: len(entries),
		Completions:     len(completions),
	}
	if len(entries) == 0 && len(completions) == 0 {
		return out, nil
	}

	updated := uc.learner.Update(profile, entries, completions, uc.now())
	updated.UserID = sc.UserID
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if err := uc.repo.SaveProfile(ctx, updated, ids); err != nil {
		uc.l.Errorf(ctx, "planner.usecase.LearnProfile.SaveProfile: %v", err)
		return planner.LearnProfileOutput{}, fmt.Errorf("save profile: %w", err)
	}
	uc.metrics.RecordProfileUpdate(sc.UserID, updated.DataPoints)

	uc.l.Infof(ctx, "LearnProfile: user=%s entries=%d completions=%d data_points=%d ratio=%.2f",
		sc.UserID, len(entries), len(completions), updated.DataPoints, updated.AvgTaskCompletionRatio)
	out.Profile = updated
	return out, nil
}

// GetProfile returns the stored profile, or the cold-start profile for a new user.
func (uc *implUseCase) GetProfile(ctx context.Context, sc model.Scope) (model.ProductivityProfile, error) {
	if sc.UserID == "" {
		return model.ProductivityProfile{}, planner.ErrMissingUser
	}
	return uc.loadProfile(ctx, sc.UserID)
}
