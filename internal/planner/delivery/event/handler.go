package event

import (
	"context"
	"errors"
	"fmt"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/pkg/eventbus"
	"study-planner/pkg/log"
)

// Handler re-plans a user's schedule when their obligations change.
type Handler struct {
	l  log.Logger
	uc planner.UseCase
}

// New creates a new event handler for the planner domain.
func New(l log.Logger, uc planner.UseCase) *Handler {
	return &Handler{l: l, uc: uc}
}

// Register subscribes the handler to the events it consumes.
func (h *Handler) Register(sub eventbus.Subscriber) error {
	if err := sub.Subscribe(model.EventObligationsSynced, h.HandleObligationsSynced); err != nil {
		return fmt.Errorf("subscribe %s: %w", model.EventObligationsSynced, err)
	}
	return nil
}

// HandleObligationsSynced runs a committed pass for the event's user.
// A pass already running for the user is retried through redelivery.
func (h *Handler) HandleObligationsSynced(ctx context.Context, e model.PlannerEvent) error {
	if e.UserID == "" {
		h.l.Warnf(ctx, "planner.event.HandleObligationsSynced: event without user, dropping")
		return nil
	}
	ctx = context.WithValue(ctx, log.UserIDKey{}, e.UserID)

	out, err := h.uc.Plan(ctx, model.Scope{UserID: e.UserID}, planner.PlanInput{})
	if err != nil {
		if errors.Is(err, planner.ErrPassInProgress) {
			h.l.Infof(ctx, "planner.event.HandleObligationsSynced: pass in progress for user=%s, retrying later", e.UserID)
			return err
		}
		h.l.Errorf(ctx, "planner.event.HandleObligationsSynced.Plan: %v", err)
		return err
	}

	h.l.Infof(ctx, "HandleObligationsSynced: user=%s source=%s obligations=%d blocks=%d warnings=%d",
		e.UserID, e.Source, e.Obligations, len(out.Blocks), len(out.Warnings))
	return nil
}
