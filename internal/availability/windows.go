package availability

import (
	"slices"

	"study-planner/internal/model"
)

// Complement returns the parts of rng not covered by busy, sorted by start.
// busy may be unsorted and overlapping.
func Complement(rng model.TimeWindow, busy []model.TimeWindow) []model.TimeWindow {
	if rng.Empty() {
		return nil
	}
	sorted := slices.Clone(busy)
	slices.SortFunc(sorted, func(a, b model.TimeWindow) int { return a.Start.Compare(b.Start) })

	var free []model.TimeWindow
	cur := rng.Start
	for _, b := range sorted {
		if !b.End.After(cur) {
			continue
		}
		if !b.Start.Before(rng.End) {
			break
		}
		if b.Start.After(cur) {
			free = append(free, model.TimeWindow{Start: cur, End: b.Start})
		}
		cur = b.End
	}
	if cur.Before(rng.End) {
		free = append(free, model.TimeWindow{Start: cur, End: rng.End})
	}
	return free
}
