package builder

import (
	"cmp"
	"slices"
	"time"

	"study-planner/internal/model"
	"study-planner/pkg/datemath"
)

type slot struct {
	start time.Time
	end   time.Time
	peak  bool
	used  bool
}

func (s *slot) length() time.Duration {
	return s.end.Sub(s.start)
}

// day groups the slots of one local calendar day.
type day struct {
	key   time.Time
	slots []*slot
	used  time.Duration
}

// sortSlots puts peak slots first, then orders by start.
func sortSlots(slots []*slot) {
	slices.SortStableFunc(slots, func(a, b *slot) int {
		if a.peak != b.peak {
			if a.peak {
				return -1
			}
			return 1
		}
		return a.start.Compare(b.start)
	})
}

// carve turns free windows into candidate slots grouped by day, ascending.
// Sleep hours, avoid hours and the padded existing blocks are removed first.
func (b Builder) carve(in Input, bounds model.TimeWindow) []*day {
	loc := b.cfg.Location
	blockLen := in.Profile.BlockLength()
	brk := in.Profile.BreakLength()

	busy := make([]model.TimeWindow, 0, len(in.Existing))
	for _, e := range in.Existing {
		if e.Status == model.BlockSkipped {
			continue
		}
		busy = append(busy, model.TimeWindow{Start: e.Start.Add(-brk), End: e.End.Add(brk)})
	}
	busy = merge(busy)

	free := make([]model.TimeWindow, 0, len(in.FreeWindows))
	for _, w := range in.FreeWindows {
		if c := w.Clip(bounds); !c.Empty() {
			free = append(free, c)
		}
	}
	free = merge(free)

	byKey := map[int64]*day{}
	var days []*day
	for _, w := range free {
		for _, span := range datemath.SplitDays(w.Start, w.End, loc) {
			for _, run := range b.allowedRuns(span, in.Profile, in.Preferences) {
				for _, piece := range subtract(run, busy) {
					for _, s := range b.cut(piece, blockLen, brk, in.Profile) {
						k := datemath.StartOfDay(s.start, loc)
						d, ok := byKey[k.Unix()]
						if !ok {
							d = &day{key: k}
							byKey[k.Unix()] = d
							days = append(days, d)
						}
						d.slots = append(d.slots, s)
					}
				}
			}
		}
	}

	slices.SortFunc(days, func(x, y *day) int { return x.key.Compare(y.key) })
	for _, d := range days {
		sortSlots(d.slots)
	}
	return days
}

// allowedRuns splits a single-day span into maximal runs of hours that are
// neither sleep nor avoid hours.
func (b Builder) allowedRuns(span datemath.Span, profile model.ProductivityProfile, prefs model.UserPreferences) []model.TimeWindow {
	loc := b.cfg.Location
	var runs []model.TimeWindow
	for cur := span.Start; cur.Before(span.End); {
		next := datemath.NextHour(cur, loc)
		if next.After(span.End) {
			next = span.End
		}
		h := cur.In(loc).Hour()
		if !prefs.InSleep(h) && !profile.IsAvoidHour(h) {
			if n := len(runs); n > 0 && runs[n-1].End.Equal(cur) {
				runs[n-1].End = next
			} else {
				runs = append(runs, model.TimeWindow{Start: cur, End: next})
			}
		}
		cur = next
	}
	return runs
}

// cut slices a free piece into slots of the preferred length separated by the
// break. A shorter trailing slot is kept when it is at least the minimum block.
func (b Builder) cut(piece model.TimeWindow, blockLen, brk time.Duration, profile model.ProductivityProfile) []*slot {
	var out []*slot
	for cur := piece.Start; piece.End.Sub(cur) >= b.cfg.MinBlock; {
		end := cur.Add(blockLen)
		if end.After(piece.End) {
			end = piece.End
		}
		out = append(out, &slot{
			start: cur,
			end:   end,
			peak:  profile.IsPeakHour(cur.In(b.cfg.Location).Hour()),
		})
		cur = end.Add(brk)
	}
	return out
}

// merge sorts windows and joins the ones that touch or overlap.
func merge(windows []model.TimeWindow) []model.TimeWindow {
	if len(windows) == 0 {
		return nil
	}
	sorted := slices.Clone(windows)
	slices.SortFunc(sorted, func(a, b model.TimeWindow) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End.UnixNano(), b.End.UnixNano())
	})
	out := []model.TimeWindow{sorted[0]}
	for _, w := range sorted[1:] {
		last := &out[len(out)-1]
		if !w.Start.After(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		out = append(out, w)
	}
	return out
}

// subtract removes the sorted, merged busy windows from w.
func subtract(w model.TimeWindow, busy []model.TimeWindow) []model.TimeWindow {
	var out []model.TimeWindow
	cur := w.Start
	for _, bz := range busy {
		if !bz.End.After(cur) {
			continue
		}
		if !bz.Start.Before(w.End) {
			break
		}
		if bz.Start.After(cur) {
			out = append(out, model.TimeWindow{Start: cur, End: bz.Start})
		}
		if bz.End.After(cur) {
			cur = bz.End
		}
	}
	if cur.Before(w.End) {
		out = append(out, model.TimeWindow{Start: cur, End: w.End})
	}
	return out
}
