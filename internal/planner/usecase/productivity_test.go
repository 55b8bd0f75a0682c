package usecase

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

func intPtr(v int) *int { return &v }

func TestLogSession_Validation(t *testing.T) {
	end := testNow.Add(-time.Hour)
	tests := []struct {
		name  string
		input planner.LogSessionInput
		want  error
	}{
		{name: "missing start", input: planner.LogSessionInput{}, want: planner.ErrInvalidSession},
		{name: "ends before start", input: planner.LogSessionInput{StartedAt: testNow, EndedAt: &end}, want: planner.ErrInvalidSession},
		{name: "rating too high", input: planner.LogSessionInput{StartedAt: testNow, FocusRating: intPtr(6)}, want: planner.ErrInvalidRating},
		{name: "rating too low", input: planner.LogSessionInput{StartedAt: testNow, FocusRating: intPtr(0)}, want: planner.ErrInvalidRating},
		{name: "unknown obligation", input: planner.LogSessionInput{StartedAt: testNow, ObligationID: "nope"}, want: planner.ErrObligationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if _, err := f.uc.LogSession(context.Background(), scope, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLogSessionAndLearnProfile(t *testing.T) {
	f := newFixture()
	start := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC) // Wednesday
	end := start.Add(time.Hour)

	entry, err := f.uc.LogSession(context.Background(), scope, planner.LogSessionInput{
		StartedAt:   start,
		EndedAt:     &end,
		FocusRating: intPtr(5),
		Notes:       "library",
	})
	if err != nil {
		t.Fatalf("LogSession() error = %v", err)
	}
	if entry.ID == "" || entry.UserID != "u1" || entry.HourOfDay != 10 || entry.DayOfWeek != 2 {
		t.Errorf("entry = %+v", entry)
	}

	completedAt := testNow.Add(-time.Hour)
	f.repo.add(model.Obligation{
		ID: "done", Title: "Essay", DueDate: testNow, Status: model.StatusCompleted,
		EstimatedHours: 2, ActualHours: 3, CompletedAt: &completedAt,
	})

	out, err := f.uc.LearnProfile(context.Background(), scope)
	if err != nil {
		t.Fatalf("LearnProfile() error = %v", err)
	}
	if out.EntriesConsumed != 1 || out.Completions != 1 {
		t.Errorf("consumed %d entries and %d completions, want 1 and 1", out.EntriesConsumed, out.Completions)
	}
	if out.Profile.DataPoints != 1 || math.Abs(out.Profile.ProductivityByHour[10]-1) > 1e-9 {
		t.Errorf("profile = %+v", out.Profile)
	}
	if math.Abs(out.Profile.AvgTaskCompletionRatio-1.5) > 1e-9 {
		t.Errorf("completion ratio = %v, want 1.5", out.Profile.AvgTaskCompletionRatio)
	}
	if !f.repo.consumed[entry.ID] {
		t.Error("entry not marked consumed")
	}
	if f.repo.profile.UserID != "u1" || !f.repo.profile.LastUpdated.Equal(testNow) {
		t.Errorf("stored profile = %+v", f.repo.profile)
	}

	// nothing new: nothing is consumed twice
	again, err := f.uc.LearnProfile(context.Background(), scope)
	if err != nil {
		t.Fatalf("LearnProfile() error = %v", err)
	}
	if again.EntriesConsumed != 0 || again.Completions != 0 || again.Profile.DataPoints != 1 {
		t.Errorf("second run = %+v", again)
	}
}

func TestLearnProfile_LateCompletionIsNotLost(t *testing.T) {
	f := newFixture()
	first := testNow.Add(-time.Hour)
	f.repo.add(model.Obligation{
		ID: "early", Title: "Lab report", DueDate: testNow, Status: model.StatusCompleted,
		EstimatedHours: 2, ActualHours: 2, CompletedAt: &first,
	})
	if _, err := f.uc.LearnProfile(context.Background(), scope); err != nil {
		t.Fatalf("LearnProfile() error = %v", err)
	}
	if !f.repo.profile.CompletionsThrough.Equal(first) {
		t.Fatalf("cursor = %v, want %v", f.repo.profile.CompletionsThrough, first)
	}

	// committed after the first run read completions, stamped before it finished
	late := testNow.Add(-30 * time.Minute)
	f.repo.add(model.Obligation{
		ID: "late", Title: "Problem set", DueDate: testNow, Status: model.StatusCompleted,
		EstimatedHours: 1, ActualHours: 2, CompletedAt: &late,
	})
	out, err := f.uc.LearnProfile(context.Background(), scope)
	if err != nil {
		t.Fatalf("LearnProfile() error = %v", err)
	}
	if out.Completions != 1 || out.Profile.CompletionSamples != 2 {
		t.Errorf("completions=%d samples=%d, want 1 and 2", out.Completions, out.Profile.CompletionSamples)
	}
	if !out.Profile.CompletionsThrough.Equal(late) {
		t.Errorf("cursor = %v, want %v", out.Profile.CompletionsThrough, late)
	}
}

func TestGetProfile_ColdStart(t *testing.T) {
	f := newFixture()
	p, err := f.uc.GetProfile(context.Background(), scope)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	def := model.DefaultProductivityProfile()
	if p.UserID != "u1" || p.AvgTaskCompletionRatio != 1 || len(p.PeakHours) != len(def.PeakHours) {
		t.Errorf("profile = %+v", p)
	}
}

func TestGetProfile_ConfiguredColdStart(t *testing.T) {
	f := newFixture()
	f.uc.cfg.DefaultBlockMinutes = 50
	f.uc.cfg.DefaultPeakHours = []int{6, 7}
	f.uc.cfg.DefaultAvoidHours = []int{12}

	p, err := f.uc.GetProfile(context.Background(), scope)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if p.PreferredBlockMinutes != 50 {
		t.Errorf("block minutes = %d, want 50", p.PreferredBlockMinutes)
	}
	if !slices.Equal(p.PeakHours, []int{6, 7}) || !slices.Equal(p.AvoidHours, []int{12}) {
		t.Errorf("peak=%v avoid=%v, want [6 7] / [12]", p.PeakHours, p.AvoidHours)
	}

	// a stored profile keeps its own hours
	stored := model.DefaultProductivityProfile()
	stored.UserID = "u1"
	stored.DataPoints = 12
	f.repo.profile = stored
	p, err = f.uc.GetProfile(context.Background(), scope)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if !slices.Equal(p.PeakHours, stored.PeakHours) {
		t.Errorf("stored peak hours overwritten: %v", p.PeakHours)
	}
}

func TestUpdatePreferences(t *testing.T) {
	f := newFixture()

	got, err := f.uc.UpdatePreferences(context.Background(), scope, planner.UpdatePreferencesInput{
		SleepStartHour: intPtr(22),
		BufferHours:    map[model.Category]float64{model.CategoryExam: 48},
		Notifications:  map[string]bool{model.NotifyWeeklyPlan: false},
	})
	if err != nil {
		t.Fatalf("UpdatePreferences() error = %v", err)
	}
	if got.SleepStartHour != 22 || got.SleepEndHour != 8 {
		t.Errorf("sleep = %d-%d, want 22-8", got.SleepStartHour, got.SleepEndHour)
	}
	if got.BufferHours[model.CategoryExam] != 48 || got.BufferHours[model.CategoryProject] != 12 {
		t.Errorf("buffers = %v", got.BufferHours)
	}
	if got.Notifications[model.NotifyWeeklyPlan] || !got.Notifications[model.NotifyMorningDigest] {
		t.Errorf("notifications = %v", got.Notifications)
	}
	if f.repo.prefs == nil || f.repo.prefs.SleepStartHour != 22 {
		t.Error("preferences not stored")
	}

	invalid := []planner.UpdatePreferencesInput{
		{SleepEndHour: intPtr(24)},
		{BufferHours: map[model.Category]float64{model.CategoryQuiz: -1}},
		{CategoryWeightOverrides: map[model.Category]float64{"chores": 0.5}},
		{CategoryWeightOverrides: map[model.Category]float64{model.CategoryLab: 1.5}},
		{Notifications: map[string]bool{"sms": true}},
	}
	for i, in := range invalid {
		if _, err := f.uc.UpdatePreferences(context.Background(), scope, in); !errors.Is(err, planner.ErrInvalidPreferences) {
			t.Errorf("case %d: error = %v, want ErrInvalidPreferences", i, err)
		}
	}
}

func TestGetPreferences(t *testing.T) {
	f := newFixture()

	got, err := f.uc.GetPreferences(context.Background(), scope)
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	def := model.DefaultUserPreferences()
	if got.SleepStartHour != def.SleepStartHour || got.SleepEndHour != def.SleepEndHour {
		t.Errorf("sleep = %d-%d, want defaults", got.SleepStartHour, got.SleepEndHour)
	}

	if _, err := f.uc.GetPreferences(context.Background(), model.Scope{}); !errors.Is(err, planner.ErrMissingUser) {
		t.Errorf("error = %v, want ErrMissingUser", err)
	}
}
