package availability

import (
	"context"

	"study-planner/internal/model"
)

// Static treats the whole range as free. Sleep and avoid hours are removed by
// the schedule builder, so this suits users without a connected calendar.
type Static struct {
	Busy []model.TimeWindow
}

// FreeWindows implements Provider.
func (s Static) FreeWindows(_ context.Context, _ string, rng model.TimeWindow) ([]model.TimeWindow, error) {
	return Complement(rng, s.Busy), nil
}
