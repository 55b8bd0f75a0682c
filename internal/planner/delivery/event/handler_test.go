package event

import (
	"context"
	"errors"
	"testing"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/pkg/eventbus"
	"study-planner/pkg/log"
)

type stubUseCase struct {
	planner.UseCase
	calls []model.Scope
	err   error
}

func (s *stubUseCase) Plan(_ context.Context, sc model.Scope, in planner.PlanInput) (planner.PlanOutput, error) {
	s.calls = append(s.calls, sc)
	if in.DryRun {
		return planner.PlanOutput{}, errors.New("unexpected dry run")
	}
	return planner.PlanOutput{}, s.err
}

type stubSubscriber struct {
	kinds []model.EventKind
}

func (s *stubSubscriber) Subscribe(kind model.EventKind, _ eventbus.Handler) error {
	s.kinds = append(s.kinds, kind)
	return nil
}

func TestHandleObligationsSynced(t *testing.T) {
	tests := []struct {
		name      string
		event     model.PlannerEvent
		ucErr     error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "plans for the event user",
			event:     model.PlannerEvent{Kind: model.EventObligationsSynced, UserID: "u1", Obligations: 3},
			wantCalls: 1,
		},
		{
			name:  "event without user is dropped",
			event: model.PlannerEvent{Kind: model.EventObligationsSynced},
		},
		{
			name:      "pass in progress is redelivered",
			event:     model.PlannerEvent{Kind: model.EventObligationsSynced, UserID: "u1"},
			ucErr:     planner.ErrPassInProgress,
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name:      "storage failure is redelivered",
			event:     model.PlannerEvent{Kind: model.EventObligationsSynced, UserID: "u1"},
			ucErr:     errors.New("connection reset"),
			wantCalls: 1,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.ucErr}
			h := New(log.NewNop(), uc)

			err := h.HandleObligationsSynced(context.Background(), tt.event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(uc.calls) != tt.wantCalls {
				t.Fatalf("Plan calls = %d, want %d", len(uc.calls), tt.wantCalls)
			}
			if tt.wantCalls > 0 && uc.calls[0].UserID != tt.event.UserID {
				t.Errorf("scope user = %q, want %q", uc.calls[0].UserID, tt.event.UserID)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	sub := &stubSubscriber{}
	if err := New(log.NewNop(), &stubUseCase{}).Register(sub); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if len(sub.kinds) != 1 || sub.kinds[0] != model.EventObligationsSynced {
		t.Errorf("subscribed kinds = %v", sub.kinds)
	}
}
