package planner

import (
	"time"

	"study-planner/internal/engine/builder"
	"study-planner/internal/model"
)

// --- UseCase Inputs ---

// PlanInput narrows a scheduling pass. Zero From/To mean now to the horizon end.
type PlanInput struct {
	From   time.Time
	To     time.Time
	DryRun bool
}

// IngestInput is one batch of obligations reported by a single source.
type IngestInput struct {
	Source      model.Source
	Obligations []IngestObligation
	// Cursor fields are stored as the source's sync state when non-empty.
	SyncToken string
	PageToken string
	Metadata  map[string]any
}

// IngestObligation is an obligation as normalized by a source adapter.
type IngestObligation struct {
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

type ListObligationsInput struct {
	Status   model.ObligationStatus
	Category model.Category
	CourseID string
	DueFrom  time.Time
	DueTo    time.Time
	Limit    int
	Offset   int
}

type CompleteObligationInput struct {
	ID          string
	ActualHours float64
}

type SnoozeObligationInput struct {
	ID    string
	Until time.Time
}

type CancelObligationInput struct {
	ID string
}

// UpdateBlockStatusInput records what happened to a scheduled block.
type UpdateBlockStatusInput struct {
	ID     string
	Status model.BlockStatus
}

// UpsertCourseInput creates a course, or updates it when ID is set.
// A nil DifficultyEstimate means the configured default difficulty.
type UpsertCourseInput struct {
	ID                 string
	Name               string
	Code               string
	DifficultyEstimate *float64
	CreditHours        int
}

type ListConflictsInput struct {
	IncludeResolved bool
}

type ResolveConflictInput struct {
	ID         string
	Resolution string
}

// LogSessionInput records one observed work session.
type LogSessionInput struct {
	ObligationID string
	StartedAt    time.Time
	EndedAt      *time.Time
	FocusRating  *int
	Notes        string
}

// ScheduleInput selects the schedule view range. Zero values mean today to seven days out.
type ScheduleInput struct {
	From time.Time
	To   time.Time
}

// UpdatePreferencesInput holds a partial preferences update. Nil fields are left unchanged.
type UpdatePreferencesInput struct {
	SleepStartHour          *int
	SleepEndHour            *int
	BufferHours             map[model.Category]float64
	Notifications           map[string]bool
	CategoryWeightOverrides map[model.Category]float64
}

// --- UseCase Outputs ---

// PlanOutput is the complete picture of one scheduling pass, including the
// recoverable conditions it ran into.
type PlanOutput struct {
	Blocks         []model.ScheduledBlock
	Warnings       []builder.Warning
	Conflicts      []model.Conflict // newly recorded; every detected one on a dry run
	Excluded       []string
	ScheduledHours float64
	AvailableHours float64
	Replaced       int // future blocks removed before inserting the new set
	DryRun         bool
}

type RescoreOutput struct {
	Obligations []model.Obligation
}

type DetectConflictsOutput struct {
	Conflicts []model.Conflict
	Created   int
	Excluded  []string
}

type ListConflictsOutput struct {
	Conflicts []model.Conflict
}

// IngestOutput reports what a batch changed.
type IngestOutput struct {
	Upserted   []model.Obligation
	Rejected   []Rejection
	Duplicates []model.Conflict
}

// Rejection names an ingested item that failed validation.
type Rejection struct {
	SourceID string
	Reason   string
}

type ListObligationsOutput struct {
	Obligations []model.Obligation
	Limit       int
	Offset      int
}

type LearnProfileOutput struct {
	Profile         model.ProductivityProfile
	EntriesConsumed int
	Completions     int
}

// ScheduleView is the human-facing schedule over a range.
type ScheduleView struct {
	From                time.Time
	To                  time.Time
	Blocks              []model.ScheduledBlock
	TotalScheduledHours float64
	FreeHours           float64
	Warnings            []string
	DueSoon             []DueSoon
}

// DueSoon flags a pending obligation inside one of the deadline warning thresholds.
type DueSoon struct {
	ObligationID   string
	Title          string
	DueDate        time.Time
	HoursLeft      float64
	ThresholdHours int
}
