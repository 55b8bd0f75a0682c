package repository

import (
	"context"
	"time"

	"study-planner/internal/model"
)

// Repository is the composed interface for the planner data store.
type Repository interface {
	ObligationRepository
	CourseRepository
	ProfileRepository
	LogRepository
	BlockRepository
	SyncStateRepository
	ConflictRepository
	PreferencesRepository
}

// ObligationRepository defines data access for obligations.
type ObligationRepository interface {
	ListObligations(ctx context.Context, opt ListObligationsOptions) ([]model.Obligation, error)
	GetOneObligation(ctx context.Context, opt GetOneObligationOptions) (model.Obligation, error)
	// UpsertObligation inserts or updates by (user, source, source id). Transient
	// storage failures are retried with bounded exponential backoff.
	UpsertObligation(ctx context.Context, opt UpsertObligationOptions) (model.Obligation, error)
	UpdatePriorities(ctx context.Context, userID string, priorities map[string]model.Priority) error
	UpdateObligationStatus(ctx context.Context, opt UpdateObligationStatusOptions) (model.Obligation, error)
	ListCompletions(ctx context.Context, userID string, since time.Time) ([]model.Completion, error)
}

// CourseRepository defines data access for courses.
type CourseRepository interface {
	ListCourses(ctx context.Context, userID string) ([]model.Course, error)
	// UpsertCourse inserts or updates course by id. Returns a zero-value course
	// when the id belongs to another user.
	UpsertCourse(ctx context.Context, course model.Course) (model.Course, error)
}

// ProfileRepository stores the per-user productivity profile singleton.
type ProfileRepository interface {
	// GetProfile returns a zero-value profile (UserID == "") when none is stored.
	GetProfile(ctx context.Context, userID string) (model.ProductivityProfile, error)
	// SaveProfile stores profile and marks the log entries it folded in as
	// consumed, in one transaction.
	SaveProfile(ctx context.Context, profile model.ProductivityProfile, consumedLogIDs []string) error
}

// LogRepository stores productivity log entries. Entries are consumed by the
// learner exactly once.
type LogRepository interface {
	CreateLogEntry(ctx context.Context, entry model.ProductivityLogEntry) (model.ProductivityLogEntry, error)
	ListUnconsumedLogs(ctx context.Context, userID string) ([]model.ProductivityLogEntry, error)
}

// BlockRepository stores scheduled blocks.
type BlockRepository interface {
	ListBlocks(ctx context.Context, opt ListBlocksOptions) ([]model.ScheduledBlock, error)
	// GetOneBlock returns a zero-value block (ID == "") when none matches.
	GetOneBlock(ctx context.Context, userID, id string) (model.ScheduledBlock, error)
	// UpdateBlockStatus moves a block from opt.From to opt.Status. Returns a
	// zero-value block when the block is missing or no longer in opt.From.
	UpdateBlockStatus(ctx context.Context, opt UpdateBlockStatusOptions) (model.ScheduledBlock, error)
	// ReplaceFutureBlocks deletes the scheduled and skipped blocks that start
	// inside [opt.From, opt.To) and inserts opt.Blocks in one transaction. It
	// returns the number of deleted blocks.
	ReplaceFutureBlocks(ctx context.Context, opt ReplaceFutureBlocksOptions) (int, error)
}

// SyncStateRepository stores per-source ingestion cursors.
type SyncStateRepository interface {
	// GetSyncState returns a zero-value state (UserID == "") when none is stored.
	GetSyncState(ctx context.Context, userID string, source model.Source) (model.SyncState, error)
	SaveSyncState(ctx context.Context, state model.SyncState) error
}

// ConflictRepository stores detected conflicts.
type ConflictRepository interface {
	// CreateConflicts stores conflicts whose key has no unresolved record yet and
	// returns only the newly stored ones.
	CreateConflicts(ctx context.Context, conflicts []model.Conflict) ([]model.Conflict, error)
	ListConflicts(ctx context.Context, opt ListConflictsOptions) ([]model.Conflict, error)
	GetOneConflict(ctx context.Context, userID, id string) (model.Conflict, error)
	ResolveConflict(ctx context.Context, opt ResolveConflictOptions) (model.Conflict, error)
}

// PreferencesRepository stores user preferences as key/value pairs.
type PreferencesRepository interface {
	// GetPreferences returns the defaults overlaid with the stored keys.
	GetPreferences(ctx context.Context, userID string) (model.UserPreferences, error)
	SavePreferences(ctx context.Context, userID string, prefs model.UserPreferences) error
}
