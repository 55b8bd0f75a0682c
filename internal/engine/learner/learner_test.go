package learner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/internal/model"
)

var base = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // Monday

func rating(v int) *int { return &v }

func entry(i, hour, r int) model.ProductivityLogEntry {
	start := base.AddDate(0, 0, i/24).Add(time.Duration(hour) * time.Hour)
	return model.NewProductivityLogEntry(fmt.Sprintf("e%03d", i), "o1", start, nil, rating(r), time.UTC)
}

func TestUpdateMovingAverage(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()

	out := l.Update(p, []model.ProductivityLogEntry{entry(0, 9, 5)}, nil, base)

	// first observation has alpha 1 and replaces the neutral value
	assert.InDelta(t, 1.0, out.ProductivityByHour[9], 1e-9)
	assert.InDelta(t, 1.0, out.ProductivityByDay[0], 1e-9)
	assert.Equal(t, 1, out.DataPoints)
	assert.Equal(t, base, out.LastUpdated)

	out = l.Update(out, []model.ProductivityLogEntry{entry(1, 9, 1)}, nil, base)
	// alpha 1/2: 1.0 + 0.5*(0.2-1.0)
	assert.InDelta(t, 0.6, out.ProductivityByHour[9], 1e-9)
	assert.Equal(t, 2, out.DataPoints)
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()

	_ = l.Update(p, []model.ProductivityLogEntry{entry(0, 9, 5)}, nil, base)

	assert.Empty(t, p.ProductivityByHour)
	assert.Zero(t, p.DataPoints)
}

func TestUpdateSkipsUnratedEntries(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()
	unrated := entry(0, 9, 3)
	unrated.FocusRating = nil
	bad := entry(1, 10, 9)

	out := l.Update(p, []model.ProductivityLogEntry{unrated, bad}, nil, base)

	assert.Zero(t, out.DataPoints)
	assert.True(t, out.LastUpdated.IsZero())
}

func TestAlphaStabilizes(t *testing.T) {
	l := New(DefaultConfig())
	assert.InDelta(t, 1.0, l.alpha(0), 1e-9)
	assert.InDelta(t, 0.1, l.alpha(9), 1e-9)
	assert.InDelta(t, 0.05, l.alpha(19), 1e-9)
	assert.InDelta(t, 0.05, l.alpha(500), 1e-9)
}

func TestColdStartKeepsDefaults(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()

	var entries []model.ProductivityLogEntry
	for i := 0; i < 10; i++ {
		entries = append(entries, entry(i, 20, 5))
	}
	out := l.Update(p, entries, nil, base)

	require.Equal(t, 10, out.DataPoints)
	assert.Equal(t, p.PeakHours, out.PeakHours, "defaults are kept until the threshold is exceeded")
	assert.Equal(t, p.AvoidHours, out.AvoidHours)
}

func TestPeaksRecomputedAboveThreshold(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()

	// hours 6..9 rated 1, 10..11 rated 3, 12..17 rated 5
	var entries []model.ProductivityLogEntry
	for i, h := 0, 6; h < 18; i, h = i+1, h+1 {
		r := 3
		switch {
		case h < 10:
			r = 1
		case h >= 12:
			r = 5
		}
		entries = append(entries, entry(i*24, h, r))
	}
	out := l.Update(p, entries, nil, base)

	require.Equal(t, 12, out.DataPoints)
	// later observations move less, so 17 ranks last among the rated-5 hours
	assert.Equal(t, []int{12, 13, 14, 15, 16}, out.PeakHours)
	assert.Equal(t, []int{6, 7, 8, 9}, out.AvoidHours)
}

func TestRankHoursFewObservations(t *testing.T) {
	l := New(DefaultConfig())
	peaks, avoid := l.rankHours(map[int]float64{8: 0.9, 9: 0.8, 12: model.NeutralMultiplier, 22: 0.1})

	assert.Equal(t, []int{8, 9}, peaks)
	assert.Equal(t, []int{22}, avoid)
}

func TestWorstHourIsNeverAPeak(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()

	var entries []model.ProductivityLogEntry
	for i := 0; i < 6; i++ {
		entries = append(entries, entry(i*24, 9, 5), entry(i*24+1, 22, 1))
	}
	out := l.Update(p, entries, nil, base)

	require.Equal(t, 12, out.DataPoints)
	assert.Equal(t, []int{9}, out.PeakHours)
	assert.Equal(t, []int{22}, out.AvoidHours)
}

func TestCompletionRatio(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()

	out := l.Update(p, nil, []model.Completion{
		{ObligationID: "a", EstimatedHours: 1, ActualHours: 10, CompletedAt: base},
		{ObligationID: "b", EstimatedHours: 0, ActualHours: 2, CompletedAt: base},
	}, base)

	// clamped to 3.0, alpha 1 on the first sample
	assert.InDelta(t, 3.0, out.AvgTaskCompletionRatio, 1e-9)
	assert.Equal(t, 1, out.CompletionSamples)
	assert.Zero(t, out.DataPoints, "completions do not count as focus data points")

	out = l.Update(out, nil, []model.Completion{
		{ObligationID: "c", EstimatedHours: 10, ActualHours: 1, CompletedAt: base.Add(time.Hour)},
	}, base)
	// 3.0 + 0.5*(0.2-3.0)
	assert.InDelta(t, 1.6, out.AvgTaskCompletionRatio, 1e-9)
}

func TestUpdateIsOrderIndependentWithinBatch(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()
	a, b, c := entry(0, 9, 5), entry(1, 10, 2), entry(2, 9, 1)

	x := l.Update(p, []model.ProductivityLogEntry{a, b, c}, nil, base)
	y := l.Update(p, []model.ProductivityLogEntry{c, a, b}, nil, base)

	assert.Equal(t, x, y)
}

func TestCompletionCursor(t *testing.T) {
	l := New(DefaultConfig())
	p := model.DefaultProductivityProfile()

	out := l.Update(p, nil, []model.Completion{
		{ObligationID: "b", EstimatedHours: 1, ActualHours: 1, CompletedAt: base.Add(2 * time.Hour)},
		{ObligationID: "a", EstimatedHours: 1, ActualHours: 1, CompletedAt: base.Add(time.Hour)},
	}, base.Add(5*time.Hour))

	assert.Equal(t, base.Add(2*time.Hour), out.CompletionsThrough)
	assert.Equal(t, base.Add(5*time.Hour), out.LastUpdated)
}
