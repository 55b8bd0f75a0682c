package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"study-planner/internal/engine/detector"
	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/internal/planner/repository"
)

// DetectConflicts runs duplicate, cycle and overlap detection outside a pass
// and records the conflicts that are neither open nor resolved yet.
func (uc *implUseCase) DetectConflicts(ctx context.Context, sc model.Scope) (planner.DetectConflictsOutput, error) {
	if sc.UserID == "" {
		return planner.DetectConflictsOutput{}, planner.ErrMissingUser
	}

	now := uc.now()
	snap, err := uc.loadSnapshot(ctx, sc.UserID, now)
	if err != nil {
		return planner.DetectConflictsOutput{}, err
	}

	blocks, err := uc.repo.ListBlocks(ctx, repository.ListBlocksOptions{UserID: sc.UserID, From: now})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.DetectConflicts.ListBlocks: %v", err)
		return planner.DetectConflictsOutput{}, fmt.Errorf("list blocks: %w", err)
	}
	active := slices.DeleteFunc(blocks, func(b model.ScheduledBlock) bool { return b.Status == model.BlockSkipped })

	resolved, err := uc.resolvedKeys(ctx, sc.UserID)
	if err != nil {
		return planner.DetectConflictsOutput{}, err
	}
	report := settle(uc.detector.Detect(snap.pending), resolved)
	detected := append(slices.Clone(report.Conflicts), dropResolved(uc.detector.Overlaps(active), resolved)...)
	detected = stampConflicts(detected, sc.UserID, now)

	created, err := uc.repo.CreateConflicts(ctx, detected)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.DetectConflicts.CreateConflicts: %v", err)
		return planner.DetectConflictsOutput{}, fmt.Errorf("record conflicts: %w", err)
	}
	for _, c := range created {
		uc.metrics.RecordConflict(string(c.Kind))
	}

	uc.l.Infof(ctx, "DetectConflicts: user=%s detected=%d created=%d", sc.UserID, len(detected), len(created))
	return planner.DetectConflictsOutput{
		Conflicts: detected,
		Created:   len(created),
		Excluded:  report.ExcludedIDs(),
	}, nil
}

func (uc *implUseCase) ListConflicts(ctx context.Context, sc model.Scope, input planner.ListConflictsInput) (planner.ListConflictsOutput, error) {
	if sc.UserID == "" {
		return planner.ListConflictsOutput{}, planner.ErrMissingUser
	}
	conflicts, err := uc.repo.ListConflicts(ctx, repository.ListConflictsOptions{
		UserID:          sc.UserID,
		IncludeResolved: input.IncludeResolved,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.ListConflicts.ListConflicts: %v", err)
		return planner.ListConflictsOutput{}, fmt.Errorf("list conflicts: %w", err)
	}
	return planner.ListConflictsOutput{Conflicts: conflicts}, nil
}

// ResolveConflict records an external decision on an open conflict.
func (uc *implUseCase) ResolveConflict(ctx context.Context, sc model.Scope, input planner.ResolveConflictInput) (model.Conflict, error) {
	if sc.UserID == "" {
		return model.Conflict{}, planner.ErrMissingUser
	}
	resolution := strings.TrimSpace(input.Resolution)
	if resolution == "" {
		return model.Conflict{}, planner.ErrEmptyResolution
	}
	if input.ID == "" {
		return model.Conflict{}, planner.ErrConflictNotFound
	}

	current, err := uc.repo.GetOneConflict(ctx, sc.UserID, input.ID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.ResolveConflict.GetOneConflict: %v", err)
		return model.Conflict{}, fmt.Errorf("get conflict: %w", err)
	}
	if current.ID == "" {
		return model.Conflict{}, planner.ErrConflictNotFound
	}
	if current.Resolved {
		return model.Conflict{}, planner.ErrConflictResolved
	}

	resolved, err := uc.repo.ResolveConflict(ctx, repository.ResolveConflictOptions{
		UserID:     sc.UserID,
		ID:         input.ID,
		Resolution: resolution,
		ResolvedAt: uc.now(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.ResolveConflict.ResolveConflict: %v", err)
		return model.Conflict{}, fmt.Errorf("resolve conflict: %w", err)
	}
	if resolved.ID == "" {
		// resolved concurrently
		return model.Conflict{}, planner.ErrConflictResolved
	}

	uc.l.Infof(ctx, "ResolveConflict: user=%s conflict=%s kind=%s", sc.UserID, resolved.ID, resolved.Kind)
	return resolved, nil
}

// resolvedKeys returns the keys of the conflicts the user already decided on.
func (uc *implUseCase) resolvedKeys(ctx context.Context, userID string) (map[string]struct{}, error) {
	conflicts, err := uc.repo.ListConflicts(ctx, repository.ListConflictsOptions{
		UserID:          userID,
		IncludeResolved: true,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.resolvedKeys.ListConflicts: %v", err)
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	keys := map[string]struct{}{}
	for _, c := range conflicts {
		if c.Resolved {
			keys[c.Key()] = struct{}{}
		}
	}
	return keys, nil
}

// settle removes already resolved conflicts from report. A resolved duplicate
// no longer excludes its side B. Cycle members stay excluded while the cycle
// exists, since no order of work satisfies it.
func settle(report detector.Report, resolved map[string]struct{}) detector.Report {
	out := detector.Report{Excluded: map[string]model.ConflictKind{}}
	for _, c := range report.Conflicts {
		if c.Kind == model.ConflictDependencyCycle {
			out.Excluded[c.ObligationA] = model.ConflictDependencyCycle
			out.Excluded[c.ObligationB] = model.ConflictDependencyCycle
		}
	}
	for _, c := range report.Conflicts {
		if _, done := resolved[c.Key()]; done {
			continue
		}
		out.Conflicts = append(out.Conflicts, c)
		if c.Kind != model.ConflictDuplicate {
			continue
		}
		if _, ok := out.Excluded[c.ObligationB]; !ok {
			out.Excluded[c.ObligationB] = model.ConflictDuplicate
		}
	}
	return out
}

func dropResolved(conflicts []model.Conflict, resolved map[string]struct{}) []model.Conflict {
	return slices.DeleteFunc(conflicts, func(c model.Conflict) bool {
		_, done := resolved[c.Key()]
		return done
	})
}
