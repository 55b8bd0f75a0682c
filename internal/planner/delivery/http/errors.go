package http

import (
	"errors"
	"net/http"

	"study-planner/internal/planner"
	"study-planner/pkg/response"
)

var (
	errInvalidID     = response.NewHTTPError(http.StatusBadRequest, "id is required")
	errInvalidStatus = response.NewHTTPError(http.StatusBadRequest, "invalid status")
	errInvalidCat    = response.NewHTTPError(http.StatusBadRequest, "invalid category")
)

// mapError translates use-case errors into HTTP errors. Unknown errors are
// rendered as a generic 500.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, planner.ErrMissingUser):
		return response.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, planner.ErrInvalidRange),
		errors.Is(err, planner.ErrEmptyResolution),
		errors.Is(err, planner.ErrInvalidSource),
		errors.Is(err, planner.ErrInvalidSession),
		errors.Is(err, planner.ErrInvalidRating),
		errors.Is(err, planner.ErrInvalidActualHours),
		errors.Is(err, planner.ErrInvalidSnooze),
		errors.Is(err, planner.ErrInvalidPreferences),
		errors.Is(err, planner.ErrInvalidBlockStatus),
		errors.Is(err, planner.ErrInvalidCourse):
		return response.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrObligationNotFound),
		errors.Is(err, planner.ErrConflictNotFound),
		errors.Is(err, planner.ErrBlockNotFound),
		errors.Is(err, planner.ErrCourseNotFound):
		return response.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, planner.ErrPassInProgress),
		errors.Is(err, planner.ErrConflictResolved),
		errors.Is(err, planner.ErrObligationNotActive),
		errors.Is(err, planner.ErrBlockTransition):
		return response.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return response.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
