package model

import "time"

// EventKind names a planner event published on the bus.
type EventKind string

const (
	EventScheduleUpdated   EventKind = "schedule.updated"
	EventObligationsSynced EventKind = "obligations.synced"
)

// PlannerEvent is the payload published after a planning pass or an ingestion.
// Source and Obligations are set for syncs, Blocks and Hours for passes.
type PlannerEvent struct {
	Kind        EventKind `json:"kind"`
	UserID      string    `json:"user_id"`
	Source      Source    `json:"source,omitempty"`
	Blocks      int       `json:"blocks,omitempty"`
	Hours       float64   `json:"hours,omitempty"`
	Obligations int       `json:"obligations,omitempty"`
	Warnings    int       `json:"warnings,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
