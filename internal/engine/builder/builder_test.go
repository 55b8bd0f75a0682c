package builder

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/internal/engine/detector"
	"study-planner/internal/engine/scorer"
	"study-planner/internal/model"
)

// Monday 2025-03-03, 07:00 UTC.
var now = time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)

func at(dayOffset, hour, minute int) time.Time {
	return time.Date(2025, 3, 3+dayOffset, hour, minute, 0, 0, time.UTC)
}

func window(from, to time.Time) model.TimeWindow {
	return model.TimeWindow{Start: from, End: to}
}

func pending(id string, cat model.Category, hours float64, dueAt time.Time) model.Obligation {
	return model.Obligation{
		ID:             id,
		UserID:         "u1",
		Title:          "Obligation " + id,
		DueDate:        dueAt,
		Category:       cat,
		Source:         model.SourceManual,
		SourceID:       id,
		EstimatedHours: hours,
		Status:         model.StatusPending,
	}
}

func input(obligations []model.Obligation, windows ...model.TimeWindow) Input {
	scored := scorer.New(scorer.DefaultConfig()).ScoreAll(obligations, nil,
		model.DefaultProductivityProfile(), model.DefaultUserPreferences(), now)
	return Input{
		Obligations: scored,
		FreeWindows: windows,
		Profile:     model.DefaultProductivityProfile(),
		Preferences: model.DefaultUserPreferences(),
		Now:         now,
	}
}

func hoursFor(blocks []model.ScheduledBlock, obligationID string) float64 {
	var total float64
	for _, b := range blocks {
		if b.ObligationID == obligationID {
			total += b.Hours()
		}
	}
	return total
}

func TestBuildTwoBlocksInPeakWindow(t *testing.T) {
	b := New(DefaultConfig())
	o := pending("essay", model.CategoryAssignment, 3, at(5, 17, 0))

	out, err := b.Build(input([]model.Obligation{o}, window(at(0, 9, 0), at(0, 13, 0))))

	require.NoError(t, err)
	require.Len(t, out.Blocks, 2)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, at(0, 9, 0), out.Blocks[0].Start)
	assert.Equal(t, at(0, 10, 30), out.Blocks[0].End)
	assert.Equal(t, at(0, 10, 45), out.Blocks[1].Start, "separated by the 15 minute break")
	assert.Equal(t, at(0, 12, 15), out.Blocks[1].End)
	assert.InDelta(t, 3.0, out.ScheduledHours, 1e-9)
	assert.Equal(t, model.BlockScheduled, out.Blocks[0].Status)
	assert.Equal(t, "u1", out.Blocks[0].UserID)
}

func TestBuildShortfallBeforeDeadline(t *testing.T) {
	b := New(DefaultConfig())
	urgent := pending("quiz", model.CategoryQuiz, 3, now.Add(2*time.Hour))
	other := pending("reading", model.CategoryReading, 1, at(3, 12, 0))

	out, err := b.Build(input([]model.Obligation{urgent, other}, window(at(0, 9, 0), at(0, 12, 0))))

	require.NoError(t, err)
	assert.Zero(t, hoursFor(out.Blocks, "quiz"))
	assert.InDelta(t, 1.0, hoursFor(out.Blocks, "reading"), 1e-9)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, "quiz", out.Warnings[0].ObligationID)
	assert.Equal(t, WarningShortfall, out.Warnings[0].Kind)
	assert.InDelta(t, 3.0, out.Warnings[0].ShortfallHours, 1e-9)
	assert.Contains(t, out.Warnings[0].Message, "no free slot")
}

func TestBuildPartialShortfall(t *testing.T) {
	b := New(DefaultConfig())
	o := pending("project", model.CategoryReading, 4, at(0, 23, 0))

	out, err := b.Build(input([]model.Obligation{o}, window(at(0, 9, 0), at(0, 11, 0))))

	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.InDelta(t, 1.5, hoursFor(out.Blocks, "project"), 1e-9, "the 15 minute tail after the break is too short")
	assert.InDelta(t, 2.5, out.Warnings[0].ShortfallHours, 1e-9)
	assert.Contains(t, out.Warnings[0].Message, "could not be placed")
}

func TestBuildDeterministic(t *testing.T) {
	b := New(DefaultConfig())
	obligations := []model.Obligation{
		pending("a", model.CategoryExam, 5, at(6, 9, 0)),
		pending("b", model.CategoryProject, 8, at(9, 9, 0)),
		pending("c", model.CategoryLab, 2, at(2, 18, 0)),
	}
	windows := []model.TimeWindow{window(at(0, 8, 0), at(0, 22, 0)), window(at(1, 8, 0), at(1, 22, 0)), window(at(2, 8, 0), at(4, 22, 0))}

	first, err := b.Build(input(obligations, windows...))
	require.NoError(t, err)

	reversed := []model.Obligation{obligations[2], obligations[1], obligations[0]}
	second, err := b.Build(input(reversed, windows[2], windows[0], windows[1]))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Blocks)
}

func TestBuildRespectsDailyCap(t *testing.T) {
	b := New(DefaultConfig())
	o := pending("thesis", model.CategoryProject, 14, at(10, 9, 0))

	out, err := b.Build(input([]model.Obligation{o}, window(at(0, 7, 0), at(4, 23, 0))))

	require.NoError(t, err)
	perDay := map[int]float64{}
	for _, blk := range out.Blocks {
		perDay[blk.Start.Day()] += blk.Hours()
	}
	for d, h := range perDay {
		assert.LessOrEqual(t, h, 6.0, "day %d", d)
	}
	assert.InDelta(t, 14.0, out.ScheduledHours, 1e-9)
	assert.Empty(t, out.Warnings)
	assert.InDelta(t, 6.0, perDay[3], 1e-9)
}

func TestBuildSkipsSleepAndAvoidHours(t *testing.T) {
	b := New(DefaultConfig())
	o := pending("late", model.CategoryAssignment, 2, at(3, 12, 0))

	out, err := b.Build(input([]model.Obligation{o},
		window(at(0, 12, 30), at(0, 15, 0)), // avoid hours 13 and 14
		window(at(0, 22, 0), at(1, 8, 0)),   // avoid 22, sleep 23-8
	))

	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, at(0, 12, 30), out.Blocks[0].Start)
	assert.Equal(t, at(0, 13, 0), out.Blocks[0].End)
	require.Len(t, out.Warnings, 1)
	assert.InDelta(t, 1.5, out.Warnings[0].ShortfallHours, 1e-9)
}

func TestBuildAvoidsExistingBlocks(t *testing.T) {
	b := New(DefaultConfig())
	existing := model.ScheduledBlock{
		ID: "keep", ObligationID: "other", Start: at(0, 9, 0), End: at(0, 10, 0), Status: model.BlockInProgress,
	}
	o := pending("x", model.CategoryAssignment, 1.5, at(4, 12, 0))
	in := input([]model.Obligation{o}, window(at(0, 9, 0), at(0, 12, 0)))
	in.Existing = []model.ScheduledBlock{existing}

	out, err := b.Build(in)

	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, at(0, 10, 15), out.Blocks[0].Start, "existing block padded by the break")
	assert.False(t, out.Blocks[0].Overlaps(existing))
}

func TestBuildSubtractsCommittedEffort(t *testing.T) {
	b := New(DefaultConfig())
	o := pending("x", model.CategoryAssignment, 3, at(4, 12, 0))
	in := input([]model.Obligation{o}, window(at(1, 9, 0), at(1, 18, 0)))
	in.Existing = []model.ScheduledBlock{
		{ID: "done", ObligationID: "x", Start: at(0, 5, 0), End: at(0, 6, 0), Status: model.BlockCompleted},
		{ID: "skip", ObligationID: "x", Start: at(0, 4, 0), End: at(0, 5, 0), Status: model.BlockSkipped},
	}

	out, err := b.Build(in)

	require.NoError(t, err)
	assert.InDelta(t, 2.0, hoursFor(out.Blocks, "x"), 1e-9)
}

func TestBuildCompletionRatio(t *testing.T) {
	tests := []struct {
		name  string
		scale bool
		want  float64
	}{
		{name: "estimated hours by default", scale: false, want: 2.0},
		{name: "scaled when enabled", scale: true, want: 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ScaleByCompletionRatio = tt.scale
			b := New(cfg)
			o := pending("x", model.CategoryAssignment, 2, at(4, 12, 0))
			in := input([]model.Obligation{o}, window(at(1, 9, 0), at(1, 18, 0)))
			in.Profile.AvgTaskCompletionRatio = 1.5

			out, err := b.Build(in)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, hoursFor(out.Blocks, "x"), 1e-9)
			assert.Empty(t, out.Warnings)
		})
	}
}

func TestBuildIgnoresSnoozedAndCompleted(t *testing.T) {
	b := New(DefaultConfig())
	until := now.Add(48 * time.Hour)
	snoozed := pending("s", model.CategoryAssignment, 1, at(4, 12, 0))
	snoozed.Status = model.StatusSnoozed
	snoozed.SnoozedUntil = &until
	done := pending("d", model.CategoryAssignment, 1, at(4, 12, 0))
	done.Status = model.StatusCompleted

	out, err := b.Build(input([]model.Obligation{snoozed, done}, window(at(0, 9, 0), at(0, 18, 0))))

	require.NoError(t, err)
	assert.Empty(t, out.Blocks)
	assert.Empty(t, out.Warnings)
}

func TestBuildPrefersPeakSlotsWithinDay(t *testing.T) {
	b := New(DefaultConfig())
	o := pending("x", model.CategoryAssignment, 1.5, at(4, 12, 0))

	out, err := b.Build(input([]model.Obligation{o}, window(at(0, 11, 0), at(0, 17, 0))))

	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, 15, out.Blocks[0].Start.Hour(), "11:00 is not a peak hour, 15:00 is")
}

func TestBuildScheduleNeverStartsBeforeNow(t *testing.T) {
	b := New(DefaultConfig())
	o := pending("x", model.CategoryAssignment, 1, at(4, 12, 0))
	in := input([]model.Obligation{o}, window(at(-1, 9, 0), at(0, 9, 0)))
	in.Now = at(0, 8, 10)

	out, err := b.Build(in)

	require.NoError(t, err)
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, at(0, 8, 10), out.Blocks[0].Start)
	assert.Equal(t, at(0, 9, 0), out.Blocks[0].End)
	require.Len(t, out.Warnings, 1)
	assert.InDelta(t, 10.0/60, out.Warnings[0].ShortfallHours, 0.01)
}

func TestAcyclicRemainderIsScheduled(t *testing.T) {
	a := pending("a", model.CategoryAssignment, 1, at(4, 12, 0))
	bb := pending("b", model.CategoryAssignment, 1, at(4, 12, 0))
	c := pending("c", model.CategoryAssignment, 1, at(4, 12, 0))
	free := pending("free", model.CategoryAssignment, 1, at(4, 12, 0))
	a.Dependencies = []string{"b"}
	bb.Dependencies = []string{"c"}
	c.Dependencies = []string{"a"}
	a.Title, bb.Title, c.Title, free.Title = "Alpha", "Beta", "Gamma", "Delta"

	report := detector.New(detector.DefaultConfig()).Detect([]model.Obligation{a, bb, c, free})
	require.NotEmpty(t, report.Conflicts)

	var eligible []model.Obligation
	for _, o := range []model.Obligation{a, bb, c, free} {
		if _, skip := report.Excluded[o.ID]; !skip {
			eligible = append(eligible, o)
		}
	}

	out, err := New(DefaultConfig()).Build(input(eligible, window(at(0, 9, 0), at(0, 12, 0))))

	require.NoError(t, err)
	assert.InDelta(t, 1.0, hoursFor(out.Blocks, "free"), 1e-9)
	assert.Len(t, out.Blocks, 1)
}

func TestBuildRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cats := model.Categories
	b := New(DefaultConfig())
	prefs := model.DefaultUserPreferences()

	for round := 0; round < 25; round++ {
		var obligations []model.Obligation
		for i := 0; i < 1+rng.Intn(12); i++ {
			o := pending(string(rune('a'+i)), cats[rng.Intn(len(cats))], 0.5+rng.Float64()*8,
				now.Add(time.Duration(rng.Intn(24*14))*time.Hour))
			obligations = append(obligations, o)
		}
		var windows []model.TimeWindow
		for d := 0; d < 14; d++ {
			start := at(d, 6+rng.Intn(6), 15*rng.Intn(4))
			windows = append(windows, window(start, start.Add(time.Duration(2+rng.Intn(12))*time.Hour)))
		}

		out, err := b.Build(input(obligations, windows...))
		require.NoError(t, err)

		due := map[string]model.Obligation{}
		for _, o := range obligations {
			due[o.ID] = o
		}
		perDay := map[string]float64{}
		for i, blk := range out.Blocks {
			o := due[blk.ObligationID]
			assert.False(t, blk.Start.Before(now))
			assert.False(t, blk.End.After(o.DueDate.Add(-prefs.Buffer(o.Category))))
			if i > 0 {
				assert.False(t, out.Blocks[i-1].Overlaps(blk))
			}
			perDay[blk.Start.Format(time.DateOnly)] += blk.Hours()
		}
		for d, h := range perDay {
			assert.LessOrEqual(t, h, 6.0+1e-9, "day %s", d)
		}
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	b := New(DefaultConfig())
	in := Input{Now: now}
	bounds := b.Bounds(now, model.TimeWindow{})
	limits := map[string]time.Time{"x": at(5, 0, 0)}
	blocks := []model.ScheduledBlock{
		{ID: "1", ObligationID: "x", Start: at(0, 9, 0), End: at(0, 10, 0)},
		{ID: "2", ObligationID: "x", Start: at(0, 9, 30), End: at(0, 11, 0)},
	}

	err := b.validate(in, bounds, limits, blocks)

	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestValidateRejectsNegativeDuration(t *testing.T) {
	b := New(DefaultConfig())
	bounds := b.Bounds(now, model.TimeWindow{})
	limits := map[string]time.Time{"x": at(5, 0, 0)}
	blocks := []model.ScheduledBlock{{ID: "1", ObligationID: "x", Start: at(0, 10, 0), End: at(0, 9, 0)}}

	assert.ErrorIs(t, b.validate(Input{Now: now}, bounds, limits, blocks), ErrInvariantViolation)
}

func TestBlockIDIsStable(t *testing.T) {
	assert.Equal(t, blockID("x", at(0, 9, 0)), blockID("x", at(0, 9, 0).In(time.FixedZone("X", 3600))))
	assert.NotEqual(t, blockID("x", at(0, 9, 0)), blockID("y", at(0, 9, 0)))
}

func TestExcludedWarning(t *testing.T) {
	w := Excluded(pending("x", model.CategoryExam, 1, now), model.ConflictDependencyCycle)
	assert.Equal(t, WarningExcluded, w.Kind)
	assert.Contains(t, w.Message, "dependency_cycle")
}
