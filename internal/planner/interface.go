package planner

import (
	"context"

	"study-planner/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Scheduling
	Plan(ctx context.Context, sc model.Scope, input PlanInput) (PlanOutput, error)
	Rescore(ctx context.Context, sc model.Scope) (RescoreOutput, error)
	GetSchedule(ctx context.Context, sc model.Scope, input ScheduleInput) (ScheduleView, error)
	UpdateBlockStatus(ctx context.Context, sc model.Scope, input UpdateBlockStatusInput) (model.ScheduledBlock, error)

	// Conflicts
	DetectConflicts(ctx context.Context, sc model.Scope) (DetectConflictsOutput, error)
	ListConflicts(ctx context.Context, sc model.Scope, input ListConflictsInput) (ListConflictsOutput, error)
	ResolveConflict(ctx context.Context, sc model.Scope, input ResolveConflictInput) (model.Conflict, error)

	// Obligations
	Ingest(ctx context.Context, sc model.Scope, input IngestInput) (IngestOutput, error)
	ListObligations(ctx context.Context, sc model.Scope, input ListObligationsInput) (ListObligationsOutput, error)
	CompleteObligation(ctx context.Context, sc model.Scope, input CompleteObligationInput) (model.Obligation, error)
	SnoozeObligation(ctx context.Context, sc model.Scope, input SnoozeObligationInput) (model.Obligation, error)
	CancelObligation(ctx context.Context, sc model.Scope, input CancelObligationInput) (model.Obligation, error)

	// Courses
	ListCourses(ctx context.Context, sc model.Scope) ([]model.Course, error)
	UpsertCourse(ctx context.Context, sc model.Scope, input UpsertCourseInput) (model.Course, error)

	// Productivity
	LogSession(ctx context.Context, sc model.Scope, input LogSessionInput) (model.ProductivityLogEntry, error)
	LearnProfile(ctx context.Context, sc model.Scope) (LearnProfileOutput, error)
	GetProfile(ctx context.Context, sc model.Scope) (model.ProductivityProfile, error)

	// Preferences
	GetPreferences(ctx context.Context, sc model.Scope) (model.UserPreferences, error)
	UpdatePreferences(ctx context.Context, sc model.Scope, input UpdatePreferencesInput) (model.UserPreferences, error)
}
