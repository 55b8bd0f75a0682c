package http

import (
	"github.com/gin-gonic/gin"

	"study-planner/internal/middleware"
	"study-planner/internal/planner"
	"study-planner/pkg/response"
)

// Plan godoc
// @Summary     Run a scheduling pass
// @Description Scores pending obligations, detects conflicts and replaces future scheduled blocks.
// @Description A dry run computes the same result without writing anything.
// @Tags        Planner
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string  true  "Caller user ID"
// @Param       body      body   planReq false "Pass range and dry run flag"
// @Success     200 {object} planResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     409 {object} response.Resp "Pass already in progress"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/plan [POST]
func (h *handler) Plan(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPlanReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Plan(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Plan: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newPlanResp(output))
}

// Rescore godoc
// @Summary     Recompute priorities
// @Description Recomputes and stores the priority of every pending obligation without touching the schedule.
// @Tags        Planner
// @Produce     json
// @Param       X-User-ID header string true "Caller user ID"
// @Success     200 {object} rescoreResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     409 {object} response.Resp "Pass already in progress"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/rescore [POST]
func (h *handler) Rescore(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Rescore(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.Rescore: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, rescoreResp{Obligations: newObligationResps(output.Obligations)})
}

// GetSchedule godoc
// @Summary     Get the schedule view
// @Description Returns scheduled blocks grouped by day with free hours and deadline warnings.
// @Tags        Planner
// @Produce     json
// @Param       X-User-ID header string true  "Caller user ID"
// @Param       from      query  string false "Range start, RFC3339 (default: start of today)"
// @Param       to        query  string false "Range end, RFC3339 (default: seven days after from)"
// @Success     200 {object} scheduleResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/schedule [GET]
func (h *handler) GetSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processScheduleReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	view, err := h.uc.GetSchedule(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.GetSchedule: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newScheduleResp(view))
}

// ListObligations godoc
// @Summary     List obligations
// @Tags        Obligations
// @Produce     json
// @Param       X-User-ID header string true  "Caller user ID"
// @Param       status    query  string false "Filter by status"
// @Param       category  query  string false "Filter by category"
// @Param       course_id query  string false "Filter by course"
// @Param       due_from  query  string false "Due on or after, RFC3339"
// @Param       due_to    query  string false "Due before, RFC3339"
// @Param       limit     query  int    false "Page size (default: 50, max: 200)"
// @Param       offset    query  int    false "Page offset (default: 0)"
// @Success     200 {object} listObligationsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/obligations [GET]
func (h *handler) ListObligations(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListObligationsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ListObligations(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListObligations: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, listObligationsResp{
		Obligations: newObligationResps(output.Obligations),
		Limit:       output.Limit,
		Offset:      output.Offset,
	})
}

// Ingest godoc
// @Summary     Ingest obligations from a source
// @Description Upserts a batch of obligations keyed by (source, source_id) and advances the source's sync cursor.
// @Tags        Obligations
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    true "Caller user ID"
// @Param       body      body   ingestReq true "Obligation batch"
// @Success     200 {object} ingestResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/obligations/ingest [POST]
func (h *handler) Ingest(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processIngestReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Ingest(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Ingest: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newIngestResp(output))
}

// CompleteObligation godoc
// @Summary     Complete an obligation
// @Tags        Obligations
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string      true  "Caller user ID"
// @Param       id        path   string      true  "Obligation ID"
// @Param       body      body   completeReq false "Actual hours spent"
// @Success     200 {object} obligationResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Obligation is not active"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/obligations/{id}/complete [POST]
func (h *handler) CompleteObligation(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCompleteReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	o, err := h.uc.CompleteObligation(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CompleteObligation: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newObligationResp(o))
}

// SnoozeObligation godoc
// @Summary     Snooze an obligation
// @Description Hides the obligation from scheduling passes until the given instant.
// @Tags        Obligations
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    true "Caller user ID"
// @Param       id        path   string    true "Obligation ID"
// @Param       body      body   snoozeReq true "Snooze end"
// @Success     200 {object} obligationResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Obligation is not active"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/obligations/{id}/snooze [POST]
func (h *handler) SnoozeObligation(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSnoozeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	o, err := h.uc.SnoozeObligation(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SnoozeObligation: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newObligationResp(o))
}

// CancelObligation godoc
// @Summary     Cancel an obligation
// @Description Drops the obligation from future passes. Its scheduled blocks are replaced on the next plan.
// @Tags        Obligations
// @Produce     json
// @Param       X-User-ID header string true "Caller user ID"
// @Param       id        path   string true "Obligation ID"
// @Success     200 {object} obligationResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Obligation is not active"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/obligations/{id}/cancel [POST]
func (h *handler) CancelObligation(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		response.Error(c, errInvalidID, nil)
		return
	}

	o, err := h.uc.CancelObligation(ctx, middleware.GetScope(c), planner.CancelObligationInput{ID: id})
	if err != nil {
		h.l.Errorf(ctx, "uc.CancelObligation: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newObligationResp(o))
}

// UpdateBlockStatus godoc
// @Summary     Update a block's status
// @Description Moves a scheduled block to in_progress, completed or skipped. Completed and skipped are final.
// @Tags        Schedule
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string               true "Caller user ID"
// @Param       id        path   string               true "Block ID"
// @Param       body      body   updateBlockStatusReq true "New status"
// @Success     200 {object} blockResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Transition not allowed"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/blocks/{id} [PATCH]
func (h *handler) UpdateBlockStatus(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateBlockStatusReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	b, err := h.uc.UpdateBlockStatus(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateBlockStatus: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newBlockResp(b))
}

// ListCourses godoc
// @Summary     List courses
// @Tags        Courses
// @Produce     json
// @Param       X-User-ID header string true "Caller user ID"
// @Success     200 {object} []courseResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/courses [GET]
func (h *handler) ListCourses(c *gin.Context) {
	ctx := c.Request.Context()

	courses, err := h.uc.ListCourses(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.ListCourses: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newCourseResps(courses))
}

// UpsertCourse godoc
// @Summary     Create or update a course
// @Description POST creates a course. PUT /courses/{id} replaces the named course.
// @Tags        Courses
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string          true  "Caller user ID"
// @Param       id        path   string          false "Course ID (PUT only)"
// @Param       body      body   upsertCourseReq true  "Course"
// @Success     200 {object} courseResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/courses [POST]
// @Router      /api/v1/planner/courses/{id} [PUT]
func (h *handler) UpsertCourse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpsertCourseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	course, err := h.uc.UpsertCourse(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.UpsertCourse: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newCourseResp(course))
}

// ListConflicts godoc
// @Summary     List conflicts
// @Tags        Conflicts
// @Produce     json
// @Param       X-User-ID        header string true  "Caller user ID"
// @Param       include_resolved query  bool   false "Include resolved conflicts"
// @Success     200 {object} []conflictResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/conflicts [GET]
func (h *handler) ListConflicts(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListConflictsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ListConflicts(ctx, middleware.GetScope(c), planner.ListConflictsInput{
		IncludeResolved: req.IncludeResolved,
	})
	if err != nil {
		h.l.Errorf(ctx, "uc.ListConflicts: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newConflictResps(output.Conflicts))
}

// DetectConflicts godoc
// @Summary     Detect conflicts
// @Description Runs conflict detection over pending obligations and future blocks and records new conflicts.
// @Tags        Conflicts
// @Produce     json
// @Param       X-User-ID header string true "Caller user ID"
// @Success     200 {object} detectConflictsResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/conflicts/detect [POST]
func (h *handler) DetectConflicts(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.DetectConflicts(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.DetectConflicts: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	excluded := output.Excluded
	if excluded == nil {
		excluded = []string{}
	}
	response.OK(c, detectConflictsResp{
		Conflicts: newConflictResps(output.Conflicts),
		Created:   output.Created,
		Excluded:  excluded,
	})
}

// ResolveConflict godoc
// @Summary     Resolve a conflict
// @Tags        Conflicts
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string     true "Caller user ID"
// @Param       id        path   string     true "Conflict ID"
// @Param       body      body   resolveReq true "Resolution note"
// @Success     200 {object} conflictResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict already resolved"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/conflicts/{id}/resolve [POST]
func (h *handler) ResolveConflict(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processResolveReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	cf, err := h.uc.ResolveConflict(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveConflict: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newConflictResp(cf))
}

// LogSession godoc
// @Summary     Log a work session
// @Tags        Productivity
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string        true "Caller user ID"
// @Param       body      body   logSessionReq true "Session"
// @Success     200 {object} logEntryResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Obligation not found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/sessions [POST]
func (h *handler) LogSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processLogSessionReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	entry, err := h.uc.LogSession(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.LogSession: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newLogEntryResp(entry))
}

// GetProfile godoc
// @Summary     Get the productivity profile
// @Tags        Productivity
// @Produce     json
// @Param       X-User-ID header string true "Caller user ID"
// @Success     200 {object} profileResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/profile [GET]
func (h *handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.uc.GetProfile(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.GetProfile: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newProfileResp(p))
}

// LearnProfile godoc
// @Summary     Update the productivity profile
// @Description Folds unconsumed session logs and recent completions into the profile.
// @Tags        Productivity
// @Produce     json
// @Param       X-User-ID header string true "Caller user ID"
// @Success     200 {object} learnResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     409 {object} response.Resp "Update already in progress"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/profile/learn [POST]
func (h *handler) LearnProfile(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.LearnProfile(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.LearnProfile: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, learnResp{
		Profile:         newProfileResp(output.Profile),
		EntriesConsumed: output.EntriesConsumed,
		Completions:     output.Completions,
	})
}

// GetPreferences godoc
// @Summary     Get preferences
// @Tags        Preferences
// @Produce     json
// @Param       X-User-ID header string true "Caller user ID"
// @Success     200 {object} preferencesResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/preferences [GET]
func (h *handler) GetPreferences(c *gin.Context) {
	ctx := c.Request.Context()

	prefs, err := h.uc.GetPreferences(ctx, middleware.GetScope(c))
	if err != nil {
		h.l.Errorf(ctx, "uc.GetPreferences: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newPreferencesResp(prefs))
}

// UpdatePreferences godoc
// @Summary     Update preferences
// @Description Applies a partial update. Omitted fields keep their stored value.
// @Tags        Preferences
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string               true "Caller user ID"
// @Param       body      body   updatePreferencesReq true "Partial preferences"
// @Success     200 {object} preferencesResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planner/preferences [PATCH]
func (h *handler) UpdatePreferences(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdatePreferencesReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	prefs, err := h.uc.UpdatePreferences(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdatePreferences: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newPreferencesResp(prefs))
}
