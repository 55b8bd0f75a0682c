package planner

import "errors"

var (
	ErrMissingUser         = errors.New("user id is required")
	ErrInvalidRange        = errors.New("range end must be after range start")
	ErrPassInProgress      = errors.New("a scheduling pass is already running for this user")
	ErrObligationNotFound  = errors.New("obligation not found")
	ErrConflictNotFound    = errors.New("conflict not found")
	ErrConflictResolved    = errors.New("conflict already resolved")
	ErrEmptyResolution     = errors.New("resolution is required")
	ErrInvalidSource       = errors.New("invalid source")
	ErrInvalidSession      = errors.New("session must end after it starts")
	ErrInvalidRating       = errors.New("focus rating must be between 1 and 5")
	ErrInvalidActualHours  = errors.New("actual hours must not be negative")
	ErrInvalidSnooze       = errors.New("snooze must end in the future")
	ErrInvalidPreferences  = errors.New("invalid preferences")
	ErrObligationNotActive = errors.New("obligation is already completed or cancelled")
	ErrBlockNotFound       = errors.New("scheduled block not found")
	ErrInvalidBlockStatus  = errors.New("invalid block status")
	ErrBlockTransition     = errors.New("block status cannot change that way")
	ErrCourseNotFound      = errors.New("course not found")
	ErrInvalidCourse       = errors.New("invalid course")
)
