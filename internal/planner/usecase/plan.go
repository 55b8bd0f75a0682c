package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"study-planner/internal/engine/builder"
	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/internal/planner/repository"
)

// Plan runs one scheduling pass for the caller. At most one pass per user runs
// at a time; a concurrent call fails with planner.ErrPassInProgress.
func (uc *implUseCase) Plan(ctx context.Context, sc model.Scope, input planner.PlanInput) (planner.PlanOutput, error) {
	if sc.UserID == "" {
		return planner.PlanOutput{}, planner.ErrMissingUser
	}
	if err := validateRange(input.From, input.To); err != nil {
		return planner.PlanOutput{}, err
	}

	unlock, err := uc.lock(ctx, passLockPrefix, sc.UserID)
	if err != nil {
		return planner.PlanOutput{}, err
	}
	defer unlock()

	started := time.Now()
	out, err := uc.plan(ctx, sc.UserID, input)
	uc.metrics.RecordPass(sc.UserID, input.DryRun, len(out.Blocks), out.ScheduledHours, time.Since(started), err)
	if err != nil {
		return planner.PlanOutput{}, err
	}

	uc.l.Infof(ctx, "Plan: user=%s blocks=%d hours=%.2f/%.2f warnings=%d conflicts=%d replaced=%d dry_run=%t",
		sc.UserID, len(out.Blocks), out.ScheduledHours, out.AvailableHours, len(out.Warnings),
		len(out.Conflicts), out.Replaced, out.DryRun)
	return out, nil
}

func (uc *implUseCase) plan(ctx context.Context, userID string, input planner.PlanInput) (planner.PlanOutput, error) {
	now := uc.now()
	out := planner.PlanOutput{DryRun: input.DryRun}

	// Step 1: read the snapshot
	snap, err := uc.loadSnapshot(ctx, userID, now)
	if err != nil {
		return planner.PlanOutput{}, err
	}
	bounds := uc.builder.Bounds(now, model.TimeWindow{Start: input.From, End: input.To})

	kept, err := uc.keptBlocks(ctx, userID, bounds, now, snap.pending)
	if err != nil {
		return planner.PlanOutput{}, err
	}

	var free []model.TimeWindow
	if !bounds.Empty() {
		free, err = uc.avail.FreeWindows(ctx, userID, bounds)
		if err != nil {
			uc.l.Errorf(ctx, "planner.usecase.Plan.FreeWindows: %v", err)
			return planner.PlanOutput{}, fmt.Errorf("free windows: %w", err)
		}
	}

	// Step 2: detect structural problems and record them
	resolved, err := uc.resolvedKeys(ctx, userID)
	if err != nil {
		return planner.PlanOutput{}, err
	}
	report := settle(uc.detector.Detect(snap.pending), resolved)
	detected := append(slices.Clone(report.Conflicts), dropResolved(uc.detector.Overlaps(kept), resolved)...)
	detected = stampConflicts(detected, userID, now)
	if input.DryRun {
		out.Conflicts = detected
	} else {
		created, err := uc.repo.CreateConflicts(ctx, detected)
		if err != nil {
			uc.l.Errorf(ctx, "planner.usecase.Plan.CreateConflicts: %v", err)
			return planner.PlanOutput{}, fmt.Errorf("record conflicts: %w", err)
		}
		for _, c := range created {
			uc.metrics.RecordConflict(string(c.Kind))
		}
		out.Conflicts = created
	}

	eligible := make([]model.Obligation, 0, len(snap.pending))
	for _, o := range snap.pending {
		if kind, ok := report.Excluded[o.ID]; ok {
			out.Warnings = append(out.Warnings, builder.Excluded(o, kind))
			continue
		}
		eligible = append(eligible, o)
	}
	out.Excluded = report.ExcludedIDs()

	// Step 3: score
	scored := uc.scorer.ScoreAll(eligible, snap.courses, snap.profile, snap.preferences, now)
	if !input.DryRun {
		if err := uc.savePriorities(ctx, userID, scored); err != nil {
			return planner.PlanOutput{}, err
		}
	}

	// Step 4: build
	built, err := uc.builder.Build(builder.Input{
		Obligations: scored,
		FreeWindows: free,
		Existing:    kept,
		Profile:     snap.profile,
		Preferences: snap.preferences,
		Now:         now,
		Range:       bounds,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.Plan.Build: user=%s: %v", userID, err)
		return planner.PlanOutput{}, fmt.Errorf("build schedule: %w", err)
	}
	out.Blocks = built.Blocks
	out.ScheduledHours = round2(built.ScheduledHours)
	out.AvailableHours = round2(built.AvailableHours)
	out.Warnings = append(out.Warnings, built.Warnings...)
	for _, w := range out.Warnings {
		uc.metrics.RecordWarning(string(w.Kind))
	}

	if input.DryRun {
		return out, nil
	}

	// Step 5: replace the future schedule and announce it
	replaced, err := uc.repo.ReplaceFutureBlocks(ctx, repository.ReplaceFutureBlocksOptions{
		UserID: userID,
		From:   bounds.Start,
		To:     bounds.End,
		Blocks: built.Blocks,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.Plan.ReplaceFutureBlocks: %v", err)
		return planner.PlanOutput{}, fmt.Errorf("replace schedule: %w", err)
	}
	out.Replaced = replaced

	uc.publish(ctx, model.PlannerEvent{
		Kind:       model.EventScheduleUpdated,
		UserID:     userID,
		Blocks:     len(out.Blocks),
		Hours:      out.ScheduledHours,
		Warnings:   len(out.Warnings),
		OccurredAt: now,
	})
	return out, nil
}

// keptBlocks returns the blocks that stay on the calendar during a pass over
// bounds: everything overlapping bounds plus the blocks already spent on
// pending obligations, minus skipped blocks, stale scheduled blocks and the
// scheduled blocks the pass is about to replace.
func (uc *implUseCase) keptBlocks(
	ctx context.Context,
	userID string,
	bounds model.TimeWindow,
	now time.Time,
	pending []model.Obligation,
) ([]model.ScheduledBlock, error) {
	var candidates []model.ScheduledBlock
	if !bounds.Empty() {
		inRange, err := uc.repo.ListBlocks(ctx, repository.ListBlocksOptions{
			UserID: userID,
			From:   bounds.Start,
			To:     bounds.End,
		})
		if err != nil {
			uc.l.Errorf(ctx, "planner.usecase.keptBlocks.ListBlocks: %v", err)
			return nil, fmt.Errorf("list blocks: %w", err)
		}
		candidates = inRange
	}

	if len(pending) > 0 {
		ids := make([]string, len(pending))
		for i, o := range pending {
			ids[i] = o.ID
		}
		spent, err := uc.repo.ListBlocks(ctx, repository.ListBlocksOptions{
			UserID:        userID,
			ObligationIDs: ids,
		})
		if err != nil {
			uc.l.Errorf(ctx, "planner.usecase.keptBlocks.ListBlocks: %v", err)
			return nil, fmt.Errorf("list blocks: %w", err)
		}
		candidates = append(candidates, spent...)
	}

	seen := make(map[string]struct{}, len(candidates))
	kept := make([]model.ScheduledBlock, 0, len(candidates))
	for _, b := range candidates {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}

		switch {
		case b.Status == model.BlockSkipped:
			continue
		case b.Status == model.BlockScheduled && !b.End.After(now):
			continue
		case replaceable(b, bounds):
			continue
		}
		kept = append(kept, b)
	}
	slices.SortFunc(kept, func(a, b model.ScheduledBlock) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return kept, nil
}

// replaceable reports whether a pass over bounds deletes b before inserting its own blocks.
func replaceable(b model.ScheduledBlock, bounds model.TimeWindow) bool {
	return b.Status == model.BlockScheduled && !b.Start.Before(bounds.Start) && b.Start.Before(bounds.End)
}
