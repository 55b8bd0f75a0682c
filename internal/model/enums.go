package model

// Category is the kind of academic or work obligation.
type Category string

const (
	CategoryExam       Category = "exam"
	CategoryAssignment Category = "assignment"
	CategoryReading    Category = "reading"
	CategoryProject    Category = "project"
	CategoryQuiz       Category = "quiz"
	CategoryLab        Category = "lab"
	CategoryDiscussion Category = "discussion"
	CategoryOther      Category = "other"
)

// Categories lists every category in canonical order.
var Categories = []Category{
	CategoryExam,
	CategoryProject,
	CategoryAssignment,
	CategoryQuiz,
	CategoryLab,
	CategoryReading,
	CategoryDiscussion,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryExam, CategoryAssignment, CategoryReading, CategoryProject,
		CategoryQuiz, CategoryLab, CategoryDiscussion, CategoryOther:
		return true
	}
	return false
}

// Source is the system an obligation was ingested from.
type Source string

const (
	SourceCalendar Source = "calendar"
	SourceGmail    Source = "gmail"
	SourceOutlook  Source = "outlook"
	SourceSyllabus Source = "syllabus"
	SourceManual   Source = "manual"
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceCalendar, SourceGmail, SourceOutlook, SourceSyllabus, SourceManual:
		return true
	}
	return false
}

// Rank orders sources by how much their data is trusted. Higher wins when
// two sources report the same obligation.
func (s Source) Rank() int {
	switch s {
	case SourceManual:
		return 5
	case SourceSyllabus:
		return 4
	case SourceCalendar:
		return 3
	case SourceOutlook:
		return 2
	case SourceGmail:
		return 1
	}
	return 0
}

// ObligationStatus is the lifecycle state of an obligation.
type ObligationStatus string

const (
	StatusPending    ObligationStatus = "pending"
	StatusInProgress ObligationStatus = "in_progress"
	StatusCompleted  ObligationStatus = "completed"
	StatusCancelled  ObligationStatus = "cancelled"
	StatusSnoozed    ObligationStatus = "snoozed"
)

// Valid reports whether s is a known status.
func (s ObligationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusSnoozed:
		return true
	}
	return false
}

// BlockStatus is the state of a scheduled block.
type BlockStatus string

const (
	BlockScheduled  BlockStatus = "scheduled"
	BlockInProgress BlockStatus = "in_progress"
	BlockCompleted  BlockStatus = "completed"
	BlockSkipped    BlockStatus = "skipped"
)

// Valid reports whether s is a known block status.
func (s BlockStatus) Valid() bool {
	switch s {
	case BlockScheduled, BlockInProgress, BlockCompleted, BlockSkipped:
		return true
	}
	return false
}

// CanMoveTo reports whether a block in state s may change to next.
// Completed and skipped are final.
func (s BlockStatus) CanMoveTo(next BlockStatus) bool {
	switch s {
	case BlockScheduled:
		return next == BlockInProgress || next == BlockCompleted || next == BlockSkipped
	case BlockInProgress:
		return next == BlockCompleted || next == BlockSkipped
	}
	return false
}

// ConflictKind classifies a detected conflict.
type ConflictKind string

const (
	ConflictDuplicate       ConflictKind = "duplicate"
	ConflictScheduleOverlap ConflictKind = "schedule_overlap"
	ConflictDependencyCycle ConflictKind = "dependency_cycle"
)
