package model

import (
	"fmt"
	"time"
)

// Conflict is a detected problem between two obligations.
// Schedule overlaps also carry the two block ids.
type Conflict struct {
	ID          string
	UserID      string
	ObligationA string
	ObligationB string
	BlockA      string
	BlockB      string
	Kind        ConflictKind
	Detail      string
	Resolved    bool
	Resolution  string
	DetectedAt  time.Time
	ResolvedAt  *time.Time
}

// Key identifies a conflict independently of its storage id.
func (c Conflict) Key() string {
	if c.Kind == ConflictScheduleOverlap {
		return fmt.Sprintf("%s:%s:%s", c.Kind, c.BlockA, c.BlockB)
	}
	return fmt.Sprintf("%s:%s:%s", c.Kind, c.ObligationA, c.ObligationB)
}

// SyncState is the cursor of one ingestion source.
type SyncState struct {
	UserID    string
	Source    Source
	LastSync  *time.Time
	SyncToken string
	PageToken string
	Metadata  map[string]any
}
