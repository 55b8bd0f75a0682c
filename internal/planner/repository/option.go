package repository

import (
	"time"

	"study-planner/internal/model"
)

// ListObligationsOptions holds filter and pagination parameters for obligations.
// All non-empty fields are applied as AND conditions.
type ListObligationsOptions struct {
	UserID   string
	Statuses []model.ObligationStatus
	Category model.Category
	CourseID string
	DueFrom  time.Time
	DueTo    time.Time
	Limit    int
	Offset   int
	OrderBy  string
}

// GetOneObligationOptions holds filter parameters for fetching a single obligation.
type GetOneObligationOptions struct {
	UserID   string
	ID       string
	Source   model.Source
	SourceID string
}

// UpsertObligationOptions holds the normalized fields of an ingested obligation.
type UpsertObligationOptions struct {
	UserID         string
	Source         model.Source
	SourceID       string
	Title          string
	Description    string
	CourseID       string
	CourseName     string
	DueDate        time.Time
	Category       model.Category
	EstimatedHours float64
	Dependencies   []string
}

// UpdateObligationStatusOptions moves an obligation to a new status.
type UpdateObligationStatusOptions struct {
	UserID       string
	ID           string
	Status       model.ObligationStatus
	ActualHours  float64
	CompletedAt  *time.Time
	SnoozedUntil *time.Time
}

// ListBlocksOptions selects blocks of a user. Zero From/To leave that side open;
// a non-empty ObligationIDs restricts to those obligations.
type ListBlocksOptions struct {
	UserID        string
	From          time.Time
	To            time.Time
	Statuses      []model.BlockStatus
	ObligationIDs []string
}

// UpdateBlockStatusOptions is a compare-and-set of one block's status.
type UpdateBlockStatusOptions struct {
	UserID string
	ID     string
	From   model.BlockStatus
	Status model.BlockStatus
}

// ReplaceFutureBlocksOptions holds the new schedule of one user for [From, To).
type ReplaceFutureBlocksOptions struct {
	UserID string
	From   time.Time
	To     time.Time
	Blocks []model.ScheduledBlock
}

type ListConflictsOptions struct {
	UserID          string
	IncludeResolved bool
}

type ResolveConflictOptions struct {
	UserID     string
	ID         string
	Resolution string
	ResolvedAt time.Time
}
