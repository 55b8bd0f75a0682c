package postgre

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	repo "study-planner/internal/planner/repository"
)

var obligationColumns = []string{
	"id", "user_id", "source", "source_id", "title", "description", "course_id", "course_name",
	"due_date", "category", "estimated_hours", "actual_hours", "status", "dependencies",
	"urgency_score", "difficulty_score", "importance_score", "priority_score", "priority_reasoning",
	"created_at", "completed_at", "snoozed_until",
}

// orderable lists the accepted ORDER BY expressions for ListObligations.
var orderable = map[string]bool{
	"due_date ASC":        true,
	"due_date DESC":       true,
	"priority_score DESC": true,
	"created_at DESC":     true,
}

// buildListObligationsQuery builds the SELECT for ListObligations.
// All non-empty fields are applied as AND conditions.
func (r *implRepository) buildListObligationsQuery(opt repo.ListObligationsOptions) (string, []any, error) {
	q := psql.Select(obligationColumns...).From("obligations").Where(sq.Eq{"user_id": opt.UserID})

	if len(opt.Statuses) > 0 {
		statuses := make([]string, len(opt.Statuses))
		for i, s := range opt.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where(sq.Eq{"status": statuses})
	}
	if opt.Category != "" {
		q = q.Where(sq.Eq{"category": string(opt.Category)})
	}
	if opt.CourseID != "" {
		q = q.Where(sq.Eq{"course_id": opt.CourseID})
	}
	if !opt.DueFrom.IsZero() {
		q = q.Where(sq.GtOrEq{"due_date": opt.DueFrom})
	}
	if !opt.DueTo.IsZero() {
		q = q.Where(sq.Lt{"due_date": opt.DueTo})
	}

	orderBy := opt.OrderBy
	if !orderable[orderBy] {
		orderBy = "due_date ASC"
	}
	q = q.OrderBy(orderBy, "id ASC")

	if opt.Limit > 0 {
		q = q.Limit(uint64(opt.Limit))
	}
	if opt.Offset > 0 {
		q = q.Offset(uint64(opt.Offset))
	}
	return q.ToSql()
}

// buildGetOneObligationQuery selects by id, or by (source, source_id) when id is empty.
func (r *implRepository) buildGetOneObligationQuery(opt repo.GetOneObligationOptions) (string, []any, error) {
	q := psql.Select(obligationColumns...).From("obligations").Where(sq.Eq{"user_id": opt.UserID})
	if opt.ID != "" {
		q = q.Where(sq.Eq{"id": opt.ID})
	} else {
		q = q.Where(sq.Eq{"source": string(opt.Source), "source_id": opt.SourceID})
	}
	return q.Limit(1).ToSql()
}

// buildUpsertObligationQuery inserts a new obligation or refreshes the source
// fields of an existing one. Status, priority and completion data are kept.
func (r *implRepository) buildUpsertObligationQuery(id string, opt repo.UpsertObligationOptions) (string, []any, error) {
	deps := opt.Dependencies
	if deps == nil {
		deps = []string{}
	}
	return psql.Insert("obligations").
		Columns("id", "user_id", "source", "source_id", "title", "description", "course_id", "course_name",
			"due_date", "category", "estimated_hours", "dependencies", "status").
		Values(id, opt.UserID, string(opt.Source), opt.SourceID, opt.Title, opt.Description, opt.CourseID, opt.CourseName,
			opt.DueDate, string(opt.Category), opt.EstimatedHours, pq.StringArray(deps), "pending").
		Suffix(`ON CONFLICT (user_id, source, source_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			course_id = EXCLUDED.course_id,
			course_name = EXCLUDED.course_name,
			due_date = EXCLUDED.due_date,
			category = EXCLUDED.category,
			estimated_hours = EXCLUDED.estimated_hours,
			dependencies = EXCLUDED.dependencies,
			updated_at = NOW()
		RETURNING ` + strings.Join(obligationColumns, ", ")).
		ToSql()
}

// buildListBlocksQuery selects blocks overlapping [From, To).
func (r *implRepository) buildListBlocksQuery(opt repo.ListBlocksOptions) (string, []any, error) {
	q := psql.Select(blockColumns...).From("scheduled_blocks").Where(sq.Eq{"user_id": opt.UserID})
	if !opt.From.IsZero() {
		q = q.Where(sq.Gt{"end_time": opt.From})
	}
	if !opt.To.IsZero() {
		q = q.Where(sq.Lt{"start_time": opt.To})
	}
	if len(opt.Statuses) > 0 {
		statuses := make([]string, len(opt.Statuses))
		for i, s := range opt.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where(sq.Eq{"status": statuses})
	}
	if len(opt.ObligationIDs) > 0 {
		q = q.Where(sq.Eq{"obligation_id": opt.ObligationIDs})
	}
	return q.OrderBy("start_time ASC", "id ASC").ToSql()
}
