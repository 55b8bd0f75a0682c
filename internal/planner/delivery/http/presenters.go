package http

import (
	"strings"
	"time"

	"study-planner/internal/engine/builder"
	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/pkg/response"
)

// --- Request DTOs ---

type planReq struct {
	From   *time.Time `json:"from"`
	To     *time.Time `json:"to"`
	DryRun bool       `json:"dry_run"`
}

func (r planReq) toInput() planner.PlanInput {
	var in planner.PlanInput
	if r.From != nil {
		in.From = *r.From
	}
	if r.To != nil {
		in.To = *r.To
	}
	in.DryRun = r.DryRun
	return in
}

// ---

type scheduleReq struct {
	From time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to"   time_format:"2006-01-02T15:04:05Z07:00"`
}

func (r scheduleReq) toInput() planner.ScheduleInput {
	return planner.ScheduleInput{From: r.From, To: r.To}
}

// ---

type ingestObligationReq struct {
	SourceID       string    `json:"source_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CourseID       string    `json:"course_id"`
	CourseName     string    `json:"course_name"`
	DueDate        time.Time `json:"due_date"`
	Category       string    `json:"category"`
	EstimatedHours float64   `json:"estimated_hours"`
	Dependencies   []string  `json:"dependencies"`
}

type ingestReq struct {
	Source      string                `json:"source"      binding:"required"`
	Obligations []ingestObligationReq `json:"obligations" binding:"max=500"`
	SyncToken   string                `json:"sync_token"`
	PageToken   string                `json:"page_token"`
	Metadata    map[string]any        `json:"metadata"`
}

func (r ingestReq) toInput() planner.IngestInput {
	items := make([]planner.IngestObligation, len(r.Obligations))
	for i, o := range r.Obligations {
		items[i] = planner.IngestObligation{
			SourceID:       o.SourceID,
			Title:          o.Title,
			Description:    o.Description,
			CourseID:       o.CourseID,
			CourseName:     o.CourseName,
			DueDate:        o.DueDate,
			Category:       model.Category(strings.ToLower(strings.TrimSpace(o.Category))),
			EstimatedHours: o.EstimatedHours,
			Dependencies:   o.Dependencies,
		}
	}
	return planner.IngestInput{
		Source:      model.Source(strings.ToLower(r.Source)),
		Obligations: items,
		SyncToken:   r.SyncToken,
		PageToken:   r.PageToken,
		Metadata:    r.Metadata,
	}
}

// ---

type listObligationsReq struct {
	Status   string    `form:"status"`
	Category string    `form:"category"`
	CourseID string    `form:"course_id"`
	DueFrom  time.Time `form:"due_from" time_format:"2006-01-02T15:04:05Z07:00"`
	DueTo    time.Time `form:"due_to"   time_format:"2006-01-02T15:04:05Z07:00"`
	Limit    int       `form:"limit"`
	Offset   int       `form:"offset"`
}

func (r listObligationsReq) validate() error {
	if r.Status != "" && !model.ObligationStatus(r.Status).Valid() {
		return errInvalidStatus
	}
	if r.Category != "" && !model.Category(r.Category).Valid() {
		return errInvalidCat
	}
	return nil
}

func (r listObligationsReq) toInput() planner.ListObligationsInput {
	return planner.ListObligationsInput{
		Status:   model.ObligationStatus(r.Status),
		Category: model.Category(r.Category),
		CourseID: r.CourseID,
		DueFrom:  r.DueFrom,
		DueTo:    r.DueTo,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// ---

type completeReq struct {
	ID          string  `json:"-"` // populated from URI param
	ActualHours float64 `json:"actual_hours"`
}

func (r completeReq) toInput() planner.CompleteObligationInput {
	return planner.CompleteObligationInput{ID: r.ID, ActualHours: r.ActualHours}
}

type snoozeReq struct {
	ID    string    `json:"-"` // populated from URI param
	Until time.Time `json:"until" binding:"required"`
}

func (r snoozeReq) toInput() planner.SnoozeObligationInput {
	return planner.SnoozeObligationInput{ID: r.ID, Until: r.Until}
}

type updateBlockStatusReq struct {
	ID     string `json:"-"` // populated from URI param
	Status string `json:"status" binding:"required"`
}

func (r updateBlockStatusReq) toInput() planner.UpdateBlockStatusInput {
	return planner.UpdateBlockStatusInput{ID: r.ID, Status: model.BlockStatus(r.Status)}
}

// ---

type upsertCourseReq struct {
	ID                 string   `json:"-"` // populated from URI param on PUT
	Name               string   `json:"name" binding:"required,max=200"`
	Code               string   `json:"code" binding:"max=50"`
	DifficultyEstimate *float64 `json:"difficulty_estimate"`
	CreditHours        int      `json:"credit_hours"`
}

func (r upsertCourseReq) toInput() planner.UpsertCourseInput {
	return planner.UpsertCourseInput{
		ID:                 r.ID,
		Name:               r.Name,
		Code:               r.Code,
		DifficultyEstimate: r.DifficultyEstimate,
		CreditHours:        r.CreditHours,
	}
}

// ---

type listConflictsReq struct {
	IncludeResolved bool `form:"include_resolved"`
}

type resolveReq struct {
	ID         string `json:"-"` // populated from URI param
	Resolution string `json:"resolution" binding:"required,max=1000"`
}

func (r resolveReq) toInput() planner.ResolveConflictInput {
	return planner.ResolveConflictInput{ID: r.ID, Resolution: r.Resolution}
}

// ---

type logSessionReq struct {
	ObligationID string     `json:"obligation_id"`
	StartedAt    time.Time  `json:"started_at" binding:"required"`
	EndedAt      *time.Time `json:"ended_at"`
	FocusRating  *int       `json:"focus_rating"`
	Notes        string     `json:"notes" binding:"max=2000"`
}

func (r logSessionReq) toInput() planner.LogSessionInput {
	return planner.LogSessionInput{
		ObligationID: r.ObligationID,
		StartedAt:    r.StartedAt,
		EndedAt:      r.EndedAt,
		FocusRating:  r.FocusRating,
		Notes:        r.Notes,
	}
}

// ---

type updatePreferencesReq struct {
	SleepStartHour          *int               `json:"sleep_start_hour"`
	SleepEndHour            *int               `json:"sleep_end_hour"`
	BufferHours             map[string]float64 `json:"buffer_hours"`
	Notifications           map[string]bool    `json:"notifications"`
	CategoryWeightOverrides map[string]float64 `json:"custom_priority_weights"`
}

func (r updatePreferencesReq) toInput() planner.UpdatePreferencesInput {
	return planner.UpdatePreferencesInput{
		SleepStartHour:          r.SleepStartHour,
		SleepEndHour:            r.SleepEndHour,
		BufferHours:             toCategoryMap(r.BufferHours),
		Notifications:           r.Notifications,
		CategoryWeightOverrides: toCategoryMap(r.CategoryWeightOverrides),
	}
}

func toCategoryMap(in map[string]float64) map[model.Category]float64 {
	if in == nil {
		return nil
	}
	out := make(map[model.Category]float64, len(in))
	for k, v := range in {
		out[model.Category(k)] = v
	}
	return out
}

// --- Response DTOs ---

type priorityResp struct {
	Score      float64 `json:"score"`
	Urgency    float64 `json:"urgency"`
	Difficulty float64 `json:"difficulty"`
	Importance float64 `json:"importance"`
	Reasoning  string  `json:"reasoning"`
}

type obligationResp struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	CourseID       string             `json:"course_id,omitempty"`
	CourseName     string             `json:"course_name,omitempty"`
	DueDate        response.DateTime  `json:"due_date"`
	Category       string             `json:"category"`
	Source         string             `json:"source"`
	SourceID       string             `json:"source_id"`
	EstimatedHours float64            `json:"estimated_hours"`
	ActualHours    float64            `json:"actual_hours,omitempty"`
	Status         string             `json:"status"`
	Dependencies   []string           `json:"dependencies,omitempty"`
	Priority       priorityResp       `json:"priority"`
	CompletedAt    *response.DateTime `json:"completed_at,omitempty"`
	SnoozedUntil   *response.DateTime `json:"snoozed_until,omitempty"`
}

func newObligationResp(o model.Obligation) obligationResp {
	return obligationResp{
		ID:             o.ID,
		Title:          o.Title,
		Description:    o.Description,
		CourseID:       o.CourseID,
		CourseName:     o.CourseName,
		DueDate:        response.DateTime(o.DueDate),
		Category:       string(o.Category),
		Source:         string(o.Source),
		SourceID:       o.SourceID,
		EstimatedHours: o.EstimatedHours,
		ActualHours:    o.ActualHours,
		Status:         string(o.Status),
		Dependencies:   o.Dependencies,
		Priority: priorityResp{
			Score:      o.Priority.Score,
			Urgency:    o.Priority.Urgency,
			Difficulty: o.Priority.Difficulty,
			Importance: o.Priority.Importance,
			Reasoning:  o.Priority.Reasoning,
		},
		CompletedAt:  response.NewDateTimePtr(o.CompletedAt),
		SnoozedUntil: response.NewDateTimePtr(o.SnoozedUntil),
	}
}

func newObligationResps(in []model.Obligation) []obligationResp {
	out := make([]obligationResp, len(in))
	for i, o := range in {
		out[i] = newObligationResp(o)
	}
	return out
}

type blockResp struct {
	ID              string            `json:"id"`
	ObligationID    string            `json:"obligation_id"`
	ObligationTitle string            `json:"obligation_title"`
	Start           response.DateTime `json:"start"`
	End             response.DateTime `json:"end"`
	Hours           float64           `json:"hours"`
	Status          string            `json:"status"`
}

func newBlockResp(b model.ScheduledBlock) blockResp {
	return blockResp{
		ID:              b.ID,
		ObligationID:    b.ObligationID,
		ObligationTitle: b.ObligationTitle,
		Start:           response.DateTime(b.Start),
		End:             response.DateTime(b.End),
		Hours:           b.Hours(),
		Status:          string(b.Status),
	}
}

func newBlockResps(in []model.ScheduledBlock) []blockResp {
	out := make([]blockResp, len(in))
	for i, b := range in {
		out[i] = newBlockResp(b)
	}
	return out
}

type courseResp struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Code               string            `json:"code,omitempty"`
	DifficultyEstimate float64           `json:"difficulty_estimate"`
	CreditHours        int               `json:"credit_hours"`
	CreatedAt          response.DateTime `json:"created_at"`
}

func newCourseResp(c model.Course) courseResp {
	return courseResp{
		ID:                 c.ID,
		Name:               c.Name,
		Code:               c.Code,
		DifficultyEstimate: c.DifficultyEstimate,
		CreditHours:        c.CreditHours,
		CreatedAt:          response.DateTime(c.CreatedAt),
	}
}

func newCourseResps(in []model.Course) []courseResp {
	out := make([]courseResp, len(in))
	for i, c := range in {
		out[i] = newCourseResp(c)
	}
	return out
}

type conflictResp struct {
	ID          string             `json:"id,omitempty"`
	Kind        string             `json:"kind"`
	ObligationA string             `json:"obligation_a"`
	ObligationB string             `json:"obligation_b"`
	BlockA      string             `json:"block_a,omitempty"`
	BlockB      string             `json:"block_b,omitempty"`
	Detail      string             `json:"detail"`
	Resolved    bool               `json:"resolved"`
	Resolution  string             `json:"resolution,omitempty"`
	DetectedAt  response.DateTime  `json:"detected_at"`
	ResolvedAt  *response.DateTime `json:"resolved_at,omitempty"`
}

func newConflictResp(c model.Conflict) conflictResp {
	return conflictResp{
		ID:          c.ID,
		Kind:        string(c.Kind),
		ObligationA: c.ObligationA,
		ObligationB: c.ObligationB,
		BlockA:      c.BlockA,
		BlockB:      c.BlockB,
		Detail:      c.Detail,
		Resolved:    c.Resolved,
		Resolution:  c.Resolution,
		DetectedAt:  response.DateTime(c.DetectedAt),
		ResolvedAt:  response.NewDateTimePtr(c.ResolvedAt),
	}
}

func newConflictResps(in []model.Conflict) []conflictResp {
	out := make([]conflictResp, len(in))
	for i, c := range in {
		out[i] = newConflictResp(c)
	}
	return out
}

type planResp struct {
	Blocks         []blockResp       `json:"blocks"`
	Warnings       []builder.Warning `json:"warnings"`
	Conflicts      []conflictResp    `json:"conflicts"`
	Excluded       []string          `json:"excluded"`
	ScheduledHours float64           `json:"scheduled_hours"`
	AvailableHours float64           `json:"available_hours"`
	Replaced       int               `json:"replaced"`
	DryRun         bool              `json:"dry_run"`
}

func (h *handler) newPlanResp(out planner.PlanOutput) planResp {
	warnings := out.Warnings
	if warnings == nil {
		warnings = []builder.Warning{}
	}
	excluded := out.Excluded
	if excluded == nil {
		excluded = []string{}
	}
	return planResp{
		Blocks:         newBlockResps(out.Blocks),
		Warnings:       warnings,
		Conflicts:      newConflictResps(out.Conflicts),
		Excluded:       excluded,
		ScheduledHours: out.ScheduledHours,
		AvailableHours: out.AvailableHours,
		Replaced:       out.Replaced,
		DryRun:         out.DryRun,
	}
}

type rescoreResp struct {
	Obligations []obligationResp `json:"obligations"`
}

type dueSoonResp struct {
	ObligationID   string            `json:"obligation_id"`
	Title          string            `json:"title"`
	DueDate        response.DateTime `json:"due_date"`
	HoursLeft      float64           `json:"hours_left"`
	ThresholdHours int               `json:"threshold_hours"`
}

type dayResp struct {
	Date   response.Date `json:"date"`
	Hours  float64       `json:"hours"`
	Blocks []blockResp   `json:"blocks"`
}

type scheduleResp struct {
	From                response.DateTime `json:"from"`
	To                  response.DateTime `json:"to"`
	Days                []dayResp         `json:"days"`
	TotalScheduledHours float64           `json:"total_scheduled_hours"`
	FreeHours           float64           `json:"free_hours"`
	Warnings            []string          `json:"warnings"`
	DueSoon             []dueSoonResp     `json:"due_soon"`
}

// newScheduleResp groups the view's blocks by the calendar day they start on,
// in the location of the range start.
func (h *handler) newScheduleResp(view planner.ScheduleView) scheduleResp {
	loc := view.From.Location()
	days := []dayResp{}
	for _, b := range view.Blocks {
		start := b.Start.In(loc)
		key := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		if n := len(days); n == 0 || !time.Time(days[n-1].Date).Equal(key) {
			days = append(days, dayResp{Date: response.Date(key), Blocks: []blockResp{}})
		}
		d := &days[len(days)-1]
		d.Blocks = append(d.Blocks, newBlockResps([]model.ScheduledBlock{b})...)
		d.Hours += b.Hours()
	}

	dueSoon := make([]dueSoonResp, len(view.DueSoon))
	for i, d := range view.DueSoon {
		dueSoon[i] = dueSoonResp{
			ObligationID:   d.ObligationID,
			Title:          d.Title,
			DueDate:        response.DateTime(d.DueDate),
			HoursLeft:      d.HoursLeft,
			ThresholdHours: d.ThresholdHours,
		}
	}
	warnings := view.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return scheduleResp{
		From:                response.DateTime(view.From),
		To:                  response.DateTime(view.To),
		Days:                days,
		TotalScheduledHours: view.TotalScheduledHours,
		FreeHours:           view.FreeHours,
		Warnings:            warnings,
		DueSoon:             dueSoon,
	}
}

type rejectionResp struct {
	SourceID string `json:"source_id"`
	Reason   string `json:"reason"`
}

type ingestResp struct {
	Upserted   []obligationResp `json:"upserted"`
	Rejected   []rejectionResp  `json:"rejected"`
	Duplicates []conflictResp   `json:"duplicates"`
}

func (h *handler) newIngestResp(out planner.IngestOutput) ingestResp {
	rejected := make([]rejectionResp, len(out.Rejected))
	for i, r := range out.Rejected {
		rejected[i] = rejectionResp{SourceID: r.SourceID, Reason: r.Reason}
	}
	return ingestResp{
		Upserted:   newObligationResps(out.Upserted),
		Rejected:   rejected,
		Duplicates: newConflictResps(out.Duplicates),
	}
}

type listObligationsResp struct {
	Obligations []obligationResp `json:"obligations"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
}

type detectConflictsResp struct {
	Conflicts []conflictResp `json:"conflicts"`
	Created   int            `json:"created"`
	Excluded  []string       `json:"excluded"`
}

type logEntryResp struct {
	ID           string             `json:"id"`
	ObligationID string             `json:"obligation_id,omitempty"`
	StartedAt    response.DateTime  `json:"started_at"`
	EndedAt      *response.DateTime `json:"ended_at,omitempty"`
	FocusRating  *int               `json:"focus_rating,omitempty"`
	HourOfDay    int                `json:"hour_of_day"`
	DayOfWeek    int                `json:"day_of_week"`
	Notes        string             `json:"notes,omitempty"`
}

func newLogEntryResp(e model.ProductivityLogEntry) logEntryResp {
	return logEntryResp{
		ID:           e.ID,
		ObligationID: e.ObligationID,
		StartedAt:    response.DateTime(e.StartedAt),
		EndedAt:      response.NewDateTimePtr(e.EndedAt),
		FocusRating:  e.FocusRating,
		HourOfDay:    e.HourOfDay,
		DayOfWeek:    e.DayOfWeek,
		Notes:        e.Notes,
	}
}

type profileResp struct {
	ProductivityByHour     map[int]float64   `json:"productivity_by_hour"`
	ProductivityByDay      map[int]float64   `json:"productivity_by_day"`
	AvgTaskCompletionRatio float64           `json:"avg_task_completion_ratio"`
	PreferredBlockMinutes  int               `json:"preferred_block_minutes"`
	BreakMinutes           int               `json:"break_minutes"`
	PeakHours              []int             `json:"peak_hours"`
	AvoidHours             []int             `json:"avoid_hours"`
	DataPoints             int               `json:"data_points"`
	CompletionSamples      int               `json:"completion_samples"`
	LastUpdated            response.DateTime `json:"last_updated"`
}

func newProfileResp(p model.ProductivityProfile) profileResp {
	return profileResp{
		ProductivityByHour:     p.ProductivityByHour,
		ProductivityByDay:      p.ProductivityByDay,
		AvgTaskCompletionRatio: p.AvgTaskCompletionRatio,
		PreferredBlockMinutes:  p.PreferredBlockMinutes,
		BreakMinutes:           p.BreakMinutes,
		PeakHours:              p.PeakHours,
		AvoidHours:             p.AvoidHours,
		DataPoints:             p.DataPoints,
		CompletionSamples:      p.CompletionSamples,
		LastUpdated:            response.DateTime(p.LastUpdated),
	}
}

type learnResp struct {
	Profile         profileResp `json:"profile"`
	EntriesConsumed int         `json:"entries_consumed"`
	Completions     int         `json:"completions"`
}

type preferencesResp struct {
	SleepStartHour          int                `json:"sleep_start_hour"`
	SleepEndHour            int                `json:"sleep_end_hour"`
	BufferHours             map[string]float64 `json:"buffer_hours"`
	Notifications           map[string]bool    `json:"notifications"`
	CategoryWeightOverrides map[string]float64 `json:"custom_priority_weights"`
}

func newPreferencesResp(p model.UserPreferences) preferencesResp {
	fromCategory := func(in map[model.Category]float64) map[string]float64 {
		out := make(map[string]float64, len(in))
		for k, v := range in {
			out[string(k)] = v
		}
		return out
	}
	return preferencesResp{
		SleepStartHour:          p.SleepStartHour,
		SleepEndHour:            p.SleepEndHour,
		BufferHours:             fromCategory(p.BufferHours),
		Notifications:           p.Notifications,
		CategoryWeightOverrides: fromCategory(p.CategoryWeightOverrides),
	}
}
