package model

import "time"

// DefaultEstimatedHours is substituted when an obligation carries no effort estimate.
const DefaultEstimatedHours = 1.0

// Obligation is a trackable unit of work with a deadline.
type Obligation struct {
	ID             string
	UserID         string
	Title          string
	Description    string
	CourseID       string // weak reference, empty when unknown
	CourseName     string // denormalized for display
	DueDate        time.Time
	Category       Category
	Source         Source
	SourceID       string // unique per Source
	EstimatedHours float64
	ActualHours    float64 // zero until completed
	Status         ObligationStatus
	Dependencies   []string // ids of obligations this one depends on
	Priority       Priority
	CreatedAt      time.Time
	CompletedAt    *time.Time
	SnoozedUntil   *time.Time
}

// Priority holds the score components computed for an obligation.
type Priority struct {
	Urgency    float64
	Difficulty float64
	Importance float64
	Score      float64
	Reasoning  string
}

// Effort returns the estimated hours, defaulting when the estimate is missing.
func (o Obligation) Effort() float64 {
	if o.EstimatedHours <= 0 {
		return DefaultEstimatedHours
	}
	return o.EstimatedHours
}

// Schedulable reports whether the obligation belongs in the pending set at now.
// Snoozed obligations come back once the snooze has expired.
func (o Obligation) Schedulable(now time.Time) bool {
	switch o.Status {
	case StatusPending:
		return o.SnoozedUntil == nil || !o.SnoozedUntil.After(now)
	case StatusSnoozed:
		return o.SnoozedUntil != nil && !o.SnoozedUntil.After(now)
	}
	return false
}

// IsOverdue reports whether the due date has passed at now.
func (o Obligation) IsOverdue(now time.Time) bool {
	return o.DueDate.Before(now)
}

// HoursUntilDue returns the signed number of hours until the deadline.
func (o Obligation) HoursUntilDue(now time.Time) float64 {
	return o.DueDate.Sub(now).Hours()
}

// Course is an academic course that obligations may reference.
type Course struct {
	ID                 string
	UserID             string
	Name               string
	Code               string
	DifficultyEstimate float64 // [0,1]
	CreditHours        int
	CreatedAt          time.Time
}

// Completion is the effort feedback of one completed obligation.
type Completion struct {
	ObligationID   string
	EstimatedHours float64
	ActualHours    float64
	CompletedAt    time.Time
}
