package eventbus

import (
	"context"

	"study-planner/internal/model"
)

// Publisher abstracts event publishing for testability.
type Publisher interface {
	Publish(ctx context.Context, event model.PlannerEvent) error
}

// Subscriber abstracts event subscription for testability.
type Subscriber interface {
	Subscribe(kind model.EventKind, handler Handler) error
}

// Handler processes one event. A returned error naks the message so it is redelivered.
type Handler func(ctx context.Context, event model.PlannerEvent) error

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, model.PlannerEvent) error { return nil }
