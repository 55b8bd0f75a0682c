package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

func TestGetSchedule(t *testing.T) {
	f := newFixture()
	f.repo.add(model.Obligation{ID: "soon", Title: "Quiz 4", DueDate: testNow.Add(3 * time.Hour)})
	f.repo.add(model.Obligation{ID: "late", Title: "Lab report", DueDate: testNow.Add(-time.Hour)})
	f.repo.add(model.Obligation{ID: "far", Title: "Project", DueDate: testNow.Add(5 * 24 * time.Hour)})
	f.repo.blocks = []model.ScheduledBlock{
		{ID: "b1", UserID: "u1", ObligationID: "soon", Start: testNow.Add(time.Hour), End: testNow.Add(150 * time.Minute), Status: model.BlockScheduled},
		{ID: "b2", UserID: "u1", ObligationID: "far", Start: testNow.Add(4 * time.Hour), End: testNow.Add(5 * time.Hour), Status: model.BlockSkipped},
	}

	view, err := f.uc.GetSchedule(context.Background(), scope, planner.ScheduleInput{})
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}
	wantFrom := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if !view.From.Equal(wantFrom) || !view.To.Equal(wantFrom.AddDate(0, 0, 7)) {
		t.Errorf("range = [%s, %s)", view.From, view.To)
	}
	if len(view.Blocks) != 1 || view.TotalScheduledHours != 1.5 {
		t.Errorf("blocks = %d, hours = %v", len(view.Blocks), view.TotalScheduledHours)
	}
	if math.Abs(view.FreeHours-(168-1.5)) > 0.01 {
		t.Errorf("FreeHours = %v, want 166.5", view.FreeHours)
	}
	if len(view.DueSoon) != 1 || view.DueSoon[0].ObligationID != "soon" || view.DueSoon[0].ThresholdHours != 4 {
		t.Errorf("DueSoon = %+v", view.DueSoon)
	}
	if len(view.Warnings) != 1 || !strings.Contains(view.Warnings[0], "overdue") {
		t.Errorf("Warnings = %v", view.Warnings)
	}
}

func TestGetSchedule_AvailabilityFailureIsAWarning(t *testing.T) {
	f := newFixture()
	f.uc.avail = failingAvailability{}

	view, err := f.uc.GetSchedule(context.Background(), scope, planner.ScheduleInput{})
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}
	if view.FreeHours != 0 || len(view.Warnings) != 1 {
		t.Errorf("view = %+v", view)
	}
}

func TestGetSchedule_InvalidRange(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetSchedule(context.Background(), scope, planner.ScheduleInput{From: testNow, To: testNow})
	if !errors.Is(err, planner.ErrInvalidRange) {
		t.Errorf("error = %v, want ErrInvalidRange", err)
	}
}
