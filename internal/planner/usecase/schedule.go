package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/internal/planner/repository"
	"study-planner/pkg/datemath"
)

// GetSchedule renders the stored schedule over a range with free time and
// deadline warnings. It never writes.
func (uc *implUseCase) GetSchedule(ctx context.Context, sc model.Scope, input planner.ScheduleInput) (planner.ScheduleView, error) {
	if sc.UserID == "" {
		return planner.ScheduleView{}, planner.ErrMissingUser
	}
	if err := validateRange(input.From, input.To); err != nil {
		return planner.ScheduleView{}, err
	}

	now := uc.now()
	rng := model.TimeWindow{Start: input.From, End: input.To}
	if rng.Start.IsZero() {
		rng.Start = datemath.StartOfDay(now, uc.cfg.Builder.Location)
	}
	if rng.End.IsZero() {
		rng.End = rng.Start.AddDate(0, 0, uc.cfg.ScheduleViewDays)
	}
	if rng.Empty() {
		return planner.ScheduleView{}, planner.ErrInvalidRange
	}

	view := planner.ScheduleView{From: rng.Start, To: rng.End}

	blocks, err := uc.repo.ListBlocks(ctx, repository.ListBlocksOptions{UserID: sc.UserID, From: rng.Start, To: rng.End})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.GetSchedule.ListBlocks: %v", err)
		return planner.ScheduleView{}, fmt.Errorf("list blocks: %w", err)
	}
	view.Blocks = slices.DeleteFunc(blocks, func(b model.ScheduledBlock) bool { return b.Status == model.BlockSkipped })
	var scheduled time.Duration
	for _, b := range view.Blocks {
		scheduled += model.TimeWindow{Start: b.Start, End: b.End}.Clip(rng).Duration()
	}
	view.TotalScheduledHours = round2(scheduled.Hours())

	free, err := uc.avail.FreeWindows(ctx, sc.UserID, rng)
	if err != nil {
		uc.l.Warnf(ctx, "planner.usecase.GetSchedule.FreeWindows: %v", err)
		view.Warnings = append(view.Warnings, "free time unavailable: calendar could not be read")
	} else {
		var total time.Duration
		for _, w := range free {
			total += w.Duration()
		}
		view.FreeHours = round2(max(0, (total - scheduled).Hours()))
	}

	obligations, err := uc.repo.ListObligations(ctx, repository.ListObligationsOptions{
		UserID:   sc.UserID,
		Statuses: []model.ObligationStatus{model.StatusPending, model.StatusInProgress, model.StatusSnoozed},
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.GetSchedule.ListObligations: %v", err)
		return planner.ScheduleView{}, fmt.Errorf("list obligations: %w", err)
	}
	prefs, err := uc.repo.GetPreferences(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.GetSchedule.GetPreferences: %v", err)
		return planner.ScheduleView{}, fmt.Errorf("get preferences: %w", err)
	}
	warnDeadlines := prefs.Notifications[model.NotifyDeadlineWarnings]

	thresholds := slices.Sorted(slices.Values(uc.cfg.DeadlineWarningHours))
	slices.SortStableFunc(obligations, func(a, b model.Obligation) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	for _, o := range obligations {
		if o.IsOverdue(now) {
			view.Warnings = append(view.Warnings, fmt.Sprintf("%q is overdue (due %s)", o.Title, o.DueDate.Format(time.RFC3339)))
			continue
		}
		if !warnDeadlines {
			continue
		}
		left := o.HoursUntilDue(now)
		for _, t := range thresholds {
			if left <= float64(t) {
				view.DueSoon = append(view.DueSoon, planner.DueSoon{
					ObligationID:   o.ID,
					Title:          o.Title,
					DueDate:        o.DueDate,
					HoursLeft:      round2(left),
					ThresholdHours: t,
				})
				break
			}
		}
	}

	open, err := uc.repo.ListConflicts(ctx, repository.ListConflictsOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Warnf(ctx, "planner.usecase.GetSchedule.ListConflicts: %v", err)
	} else if len(open) > 0 {
		view.Warnings = append(view.Warnings, fmt.Sprintf("%d unresolved conflict(s) need a decision", len(open)))
	}

	return view, nil
}
