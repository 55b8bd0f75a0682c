package builder

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"study-planner/internal/engine/scorer"
	"study-planner/internal/model"
	"study-planner/pkg/datemath"
)

var blockNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("study-planner/scheduled-block"))

// Builder places work blocks for prioritized obligations into free time.
type Builder struct {
	cfg Config
}

// New returns a Builder using cfg, with unset values defaulted.
func New(cfg Config) Builder {
	def := DefaultConfig()
	if cfg.MaxDailyDeepWork <= 0 {
		cfg.MaxDailyDeepWork = def.MaxDailyDeepWork
	}
	if cfg.HorizonDays <= 0 {
		cfg.HorizonDays = def.HorizonDays
	}
	if cfg.MinBlock <= 0 {
		cfg.MinBlock = def.MinBlock
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	return Builder{cfg: cfg}
}

// Bounds returns the interval a build over in may place blocks in.
func (b Builder) Bounds(now time.Time, rng model.TimeWindow) model.TimeWindow {
	horizonEnd := datemath.StartOfDay(now, b.cfg.Location).AddDate(0, 0, b.cfg.HorizonDays)
	bounds := model.TimeWindow{Start: now, End: horizonEnd}
	if !rng.Start.IsZero() && rng.Start.After(bounds.Start) {
		bounds.Start = rng.Start
	}
	if !rng.End.IsZero() && rng.End.Before(bounds.End) {
		bounds.End = rng.End
	}
	return bounds
}

// Build greedily places blocks for obligations in priority order. Recoverable
// conditions are returned as warnings; only an internal invariant violation
// fails the build.
func (b Builder) Build(in Input) (Output, error) {
	bounds := b.Bounds(in.Now, in.Range)
	days := b.carve(in, bounds)

	var out Output
	for _, d := range days {
		for _, s := range d.slots {
			out.AvailableHours += s.length().Hours()
		}
	}

	byKey := make(map[int64]*day, len(days))
	for _, d := range days {
		byKey[d.key.Unix()] = d
	}
	committed := map[string]time.Duration{}
	for _, e := range in.Existing {
		if e.Status == model.BlockSkipped {
			continue
		}
		committed[e.ObligationID] += e.Duration()
		for _, span := range datemath.SplitDays(e.Start, e.End, b.cfg.Location) {
			if d, ok := byKey[datemath.StartOfDay(span.Start, b.cfg.Location).Unix()]; ok {
				d.used += span.Duration()
			}
		}
	}

	obligations := make([]model.Obligation, 0, len(in.Obligations))
	for _, o := range in.Obligations {
		if o.Schedulable(in.Now) {
			obligations = append(obligations, o)
		}
	}
	scorer.Sort(obligations)

	ratio := 1.0
	if b.cfg.ScaleByCompletionRatio && in.Profile.AvgTaskCompletionRatio > 0 {
		ratio = in.Profile.AvgTaskCompletionRatio
	}

	limits := make(map[string]time.Time, len(obligations))
	for _, o := range obligations {
		limit := o.DueDate.Add(-in.Preferences.Buffer(o.Category))
		limits[o.ID] = limit

		need := time.Duration(o.Effort() * ratio * float64(time.Hour)).Round(time.Minute)
		need -= committed[o.ID]
		if need <= 0 {
			continue
		}
		total := need

		blocks := b.place(o, limit, &need, days, in.Profile)
		out.Blocks = append(out.Blocks, blocks...)

		if need > 0 {
			out.Warnings = append(out.Warnings, shortfall(o, need, total, limit, len(blocks) == 0))
		}
	}

	slices.SortFunc(out.Blocks, func(x, y model.ScheduledBlock) int {
		if c := x.Start.Compare(y.Start); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})
	for _, blk := range out.Blocks {
		out.ScheduledHours += blk.Hours()
	}

	if err := b.validate(in, bounds, limits, out.Blocks); err != nil {
		return Output{}, err
	}
	return out, nil
}

// place walks the days in order and fills slots for one obligation until its
// remaining effort is covered, the deadline limit is reached or slots run out.
func (b Builder) place(o model.Obligation, limit time.Time, need *time.Duration, days []*day, profile model.ProductivityProfile) []model.ScheduledBlock {
	brk := profile.BreakLength()
	var blocks []model.ScheduledBlock
	for _, d := range days {
		if *need <= 0 || !d.key.Before(limit) {
			break
		}
		capLeft := b.cfg.MaxDailyDeepWork - d.used
		if capLeft < b.cfg.MinBlock {
			continue
		}

		dirty := false
		for _, s := range d.slots {
			if *need <= 0 || capLeft < b.cfg.MinBlock {
				break
			}
			if s.used || !s.start.Before(limit) {
				continue
			}
			avail := s.length()
			if s.end.After(limit) {
				avail = limit.Sub(s.start)
			}
			dur := min(avail, max(*need, b.cfg.MinBlock), capLeft)
			if dur < b.cfg.MinBlock {
				continue
			}

			blocks = append(blocks, model.ScheduledBlock{
				ID:              blockID(o.ID, s.start),
				UserID:          o.UserID,
				ObligationID:    o.ID,
				ObligationTitle: o.Title,
				Start:           s.start,
				End:             s.start.Add(dur),
				Status:          model.BlockScheduled,
			})
			*need -= dur
			capLeft -= dur
			d.used += dur

			rest := s.start.Add(dur + brk)
			if s.end.Sub(rest) >= b.cfg.MinBlock {
				s.start = rest
				s.peak = profile.IsPeakHour(rest.In(b.cfg.Location).Hour())
				dirty = true
			} else {
				s.used = true
			}
		}
		if dirty {
			sortSlots(d.slots)
		}
	}
	return blocks
}

// Config returns the effective configuration.
func (b Builder) Config() Config {
	return b.cfg
}
