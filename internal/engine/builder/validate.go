package builder

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"study-planner/internal/model"
	"study-planner/pkg/datemath"
)

func blockID(obligationID string, start time.Time) string {
	name := obligationID + "|" + start.UTC().Format(time.RFC3339Nano)
	return uuid.NewSHA1(blockNamespace, []byte(name)).String()
}

func shortfall(o model.Obligation, missing, total time.Duration, limit time.Time, none bool) Warning {
	hours := math.Round(missing.Hours()*100) / 100
	msg := fmt.Sprintf("%.2fh of %.2fh for %q could not be placed before %s",
		hours, total.Hours(), o.Title, limit.Format(time.RFC3339))
	if none {
		msg = fmt.Sprintf("no free slot for %q before %s (due %s minus buffer); %.2fh unscheduled",
			o.Title, limit.Format(time.RFC3339), o.DueDate.Format(time.RFC3339), hours)
	}
	return Warning{
		ObligationID:   o.ID,
		Title:          o.Title,
		Kind:           WarningShortfall,
		ShortfallHours: hours,
		Message:        msg,
	}
}

// validate re-checks the output guarantees on the finished block set.
// blocks must be sorted by start.
func (b Builder) validate(in Input, bounds model.TimeWindow, limits map[string]time.Time, blocks []model.ScheduledBlock) error {
	for i, blk := range blocks {
		if !blk.End.After(blk.Start) {
			return fmt.Errorf("%w: block %s has non-positive duration", ErrInvariantViolation, blk.ID)
		}
		if blk.Start.Before(bounds.Start) || blk.End.After(bounds.End) {
			return fmt.Errorf("%w: block %s outside [%s, %s)", ErrInvariantViolation, blk.ID,
				bounds.Start.Format(time.RFC3339), bounds.End.Format(time.RFC3339))
		}
		if limit, ok := limits[blk.ObligationID]; !ok || blk.End.After(limit) {
			return fmt.Errorf("%w: block %s ends after the deadline limit of %s", ErrInvariantViolation, blk.ID, blk.ObligationID)
		}
		if i > 0 && blocks[i-1].End.After(blk.Start) {
			return fmt.Errorf("%w: blocks %s and %s overlap", ErrInvariantViolation, blocks[i-1].ID, blk.ID)
		}
	}

	existing := make([]model.ScheduledBlock, 0, len(in.Existing))
	for _, e := range in.Existing {
		if e.Status != model.BlockSkipped {
			existing = append(existing, e)
		}
	}
	slices.SortFunc(existing, func(x, y model.ScheduledBlock) int { return x.Start.Compare(y.Start) })
	j := 0
	for _, blk := range blocks {
		for j < len(existing) && !existing[j].End.After(blk.Start) {
			j++
		}
		for k := j; k < len(existing) && existing[k].Start.Before(blk.End); k++ {
			if existing[k].Overlaps(blk) {
				return fmt.Errorf("%w: block %s overlaps existing block %s", ErrInvariantViolation, blk.ID, existing[k].ID)
			}
		}
	}

	perDay := map[int64]time.Duration{}
	for _, blk := range blocks {
		perDay[datemath.StartOfDay(blk.Start, b.cfg.Location).Unix()] += blk.Duration()
	}
	for _, e := range existing {
		for _, span := range datemath.SplitDays(e.Start, e.End, b.cfg.Location) {
			key := datemath.StartOfDay(span.Start, b.cfg.Location).Unix()
			if _, ok := perDay[key]; ok {
				perDay[key] += span.Duration()
			}
		}
	}
	for key, total := range perDay {
		if total > b.cfg.MaxDailyDeepWork {
			return fmt.Errorf("%w: %s of work on %s exceeds the daily cap of %s", ErrInvariantViolation,
				total, time.Unix(key, 0).In(b.cfg.Location).Format(time.DateOnly), b.cfg.MaxDailyDeepWork)
		}
	}
	return nil
}
