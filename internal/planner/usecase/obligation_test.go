package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

func TestCompleteObligation(t *testing.T) {
	tests := []struct {
		name  string
		input planner.CompleteObligationInput
		want  error
	}{
		{name: "completes", input: planner.CompleteObligationInput{ID: "o1", ActualHours: 3}},
		{name: "untracked hours", input: planner.CompleteObligationInput{ID: "o1"}},
		{name: "negative hours", input: planner.CompleteObligationInput{ID: "o1", ActualHours: -1}, want: planner.ErrInvalidActualHours},
		{name: "unknown", input: planner.CompleteObligationInput{ID: "nope"}, want: planner.ErrObligationNotFound},
		{name: "already done", input: planner.CompleteObligationInput{ID: "done"}, want: planner.ErrObligationNotActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.add(model.Obligation{ID: "o1", Title: "Essay", DueDate: testNow.Add(time.Hour), EstimatedHours: 2})
			f.repo.add(model.Obligation{ID: "done", Title: "Old", DueDate: testNow, Status: model.StatusCompleted})

			got, err := f.uc.CompleteObligation(context.Background(), scope, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				return
			}
			if got.Status != model.StatusCompleted || got.CompletedAt == nil || !got.CompletedAt.Equal(testNow) {
				t.Errorf("got %+v", got)
			}
			if got.ActualHours != tt.input.ActualHours {
				t.Errorf("ActualHours = %v, want %v", got.ActualHours, tt.input.ActualHours)
			}
		})
	}
}

func TestSnoozeObligation(t *testing.T) {
	f := newFixture()
	f.repo.add(model.Obligation{ID: "o1", Title: "Essay", DueDate: testNow.Add(72 * time.Hour)})

	if _, err := f.uc.SnoozeObligation(context.Background(), scope, planner.SnoozeObligationInput{ID: "o1", Until: testNow}); !errors.Is(err, planner.ErrInvalidSnooze) {
		t.Fatalf("error = %v, want ErrInvalidSnooze", err)
	}

	until := testNow.Add(24 * time.Hour)
	got, err := f.uc.SnoozeObligation(context.Background(), scope, planner.SnoozeObligationInput{ID: "o1", Until: until})
	if err != nil {
		t.Fatalf("SnoozeObligation() error = %v", err)
	}
	if got.Status != model.StatusSnoozed || got.SnoozedUntil == nil || !got.SnoozedUntil.Equal(until) {
		t.Errorf("got %+v", got)
	}

	out, err := f.uc.Plan(context.Background(), scope, planner.PlanInput{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(out.Blocks) != 0 {
		t.Errorf("snoozed obligation was scheduled: %d blocks", len(out.Blocks))
	}
}

func TestListObligations(t *testing.T) {
	f := newFixture()
	for i, id := range []string{"a", "b", "c"} {
		f.repo.add(model.Obligation{ID: id, Title: id, DueDate: testNow.Add(time.Duration(i+1) * time.Hour)})
	}
	f.repo.add(model.Obligation{ID: "d", Title: "d", DueDate: testNow, Status: model.StatusCompleted})

	out, err := f.uc.ListObligations(context.Background(), scope, planner.ListObligationsInput{Status: model.StatusPending, Limit: 2})
	if err != nil {
		t.Fatalf("ListObligations() error = %v", err)
	}
	if len(out.Obligations) != 2 || out.Obligations[0].ID != "a" || out.Limit != 2 {
		t.Errorf("out = %+v", out)
	}

	all, err := f.uc.ListObligations(context.Background(), scope, planner.ListObligationsInput{Limit: 1000})
	if err != nil {
		t.Fatalf("ListObligations() error = %v", err)
	}
	if all.Limit != maxListLimit || len(all.Obligations) != 4 {
		t.Errorf("limit = %d, obligations = %d", all.Limit, len(all.Obligations))
	}
}

func TestCancelObligation(t *testing.T) {
	f := newFixture()
	f.repo.add(model.Obligation{ID: "o1", Title: "Essay", DueDate: testNow.Add(72 * time.Hour), EstimatedHours: 2})
	f.repo.add(model.Obligation{ID: "o2", Title: "Lab", DueDate: testNow.Add(72 * time.Hour), EstimatedHours: 1})
	f.repo.add(model.Obligation{ID: "done", Title: "Old", DueDate: testNow, Status: model.StatusCompleted})

	if _, err := f.uc.Plan(context.Background(), scope, planner.PlanInput{}); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	got, err := f.uc.CancelObligation(context.Background(), scope, planner.CancelObligationInput{ID: "o1"})
	if err != nil {
		t.Fatalf("CancelObligation() error = %v", err)
	}
	if got.Status != model.StatusCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}

	if _, err := f.uc.CancelObligation(context.Background(), scope, planner.CancelObligationInput{ID: "o1"}); !errors.Is(err, planner.ErrObligationNotActive) {
		t.Errorf("second cancel error = %v, want ErrObligationNotActive", err)
	}
	if _, err := f.uc.CancelObligation(context.Background(), scope, planner.CancelObligationInput{ID: "done"}); !errors.Is(err, planner.ErrObligationNotActive) {
		t.Errorf("completed cancel error = %v, want ErrObligationNotActive", err)
	}
	if _, err := f.uc.CancelObligation(context.Background(), scope, planner.CancelObligationInput{ID: "nope"}); !errors.Is(err, planner.ErrObligationNotFound) {
		t.Errorf("unknown cancel error = %v, want ErrObligationNotFound", err)
	}

	out, err := f.uc.Plan(context.Background(), scope, planner.PlanInput{})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(out.Blocks) == 0 {
		t.Fatal("no blocks for the remaining obligation")
	}
	for _, b := range out.Blocks {
		if b.ObligationID == "o1" {
			t.Errorf("cancelled obligation still scheduled: %+v", b)
		}
	}
}
