package postgre

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObligation(row rowScanner) (model.Obligation, error) {
	var (
		o           model.Obligation
		source      string
		category    string
		status      string
		deps        pq.StringArray
		completedAt sql.NullTime
		snoozed     sql.NullTime
	)
	err := row.Scan(
		&o.ID, &o.UserID, &source, &o.SourceID, &o.Title, &o.Description, &o.CourseID, &o.CourseName,
		&o.DueDate, &category, &o.EstimatedHours, &o.ActualHours, &status, &deps,
		&o.Priority.Urgency, &o.Priority.Difficulty, &o.Priority.Importance, &o.Priority.Score, &o.Priority.Reasoning,
		&o.CreatedAt, &completedAt, &snoozed,
	)
	if err != nil {
		return model.Obligation{}, err
	}
	o.Source = model.Source(source)
	o.Category = model.Category(category)
	o.Status = model.ObligationStatus(status)
	o.Dependencies = []string(deps)
	o.CompletedAt = nullTime(completedAt)
	o.SnoozedUntil = nullTime(snoozed)
	return o, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// ListObligations returns the obligations matching opt, ordered by due date by default.
func (r *implRepository) ListObligations(ctx context.Context, opt repo.ListObligationsOptions) ([]model.Obligation, error) {
	query, args, err := r.buildListObligationsQuery(opt)
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("ListObligations"), err)
		return nil, repo.ErrFailedToList
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListObligations"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListObligations"), err)
			return nil, repo.ErrFailedToList
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListObligations"), err)
		return nil, repo.ErrFailedToList
	}
	return out, nil
}

// GetOneObligation returns a zero-value obligation (ID == "") when not found.
func (r *implRepository) GetOneObligation(ctx context.Context, opt repo.GetOneObligationOptions) (model.Obligation, error) {
	query, args, err := r.buildGetOneObligationQuery(opt)
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("GetOneObligation"), err)
		return model.Obligation{}, repo.ErrFailedToGet
	}

	o, err := scanObligation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Obligation{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneObligation"), err)
		return model.Obligation{}, repo.ErrFailedToGet
	}
	return o, nil
}

// UpsertObligation inserts or refreshes an obligation keyed by (user, source, source id).
func (r *implRepository) UpsertObligation(ctx context.Context, opt repo.UpsertObligationOptions) (model.Obligation, error) {
	query, args, err := r.buildUpsertObligationQuery(uuid.NewString(), opt)
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("UpsertObligation"), err)
		return model.Obligation{}, repo.ErrFailedToUpsert
	}

	var o model.Obligation
	err = r.withRetry(ctx, "UpsertObligation", func(ctx context.Context) error {
		var err error
		o, err = scanObligation(r.db.QueryRowContext(ctx, query, args...))
		return err
	})
	if err != nil {
		r.l.Errorf(ctx, "%s %s/%s: %v", r.dsn("UpsertObligation"), opt.Source, opt.SourceID, err)
		return model.Obligation{}, repo.ErrFailedToUpsert
	}
	return o, nil
}

// UpdatePriorities writes the score components of many obligations in one transaction.
func (r *implRepository) UpdatePriorities(ctx context.Context, userID string, priorities map[string]model.Priority) error {
	if len(priorities) == 0 {
		return nil
	}
	const query = `
		UPDATE obligations
		SET urgency_score = $1, difficulty_score = $2, importance_score = $3,
			priority_score = $4, priority_reasoning = $5, updated_at = NOW()
		WHERE user_id = $6 AND id = $7`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("UpdatePriorities"), err)
		return repo.ErrFailedToUpdate
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		r.l.Errorf(ctx, "%s prepare: %v", r.dsn("UpdatePriorities"), err)
		return repo.ErrFailedToUpdate
	}
	defer stmt.Close()

	for id, p := range priorities {
		if _, err := stmt.ExecContext(ctx, p.Urgency, p.Difficulty, p.Importance, p.Score, p.Reasoning, userID, id); err != nil {
			r.l.Errorf(ctx, "%s %s: %v", r.dsn("UpdatePriorities"), id, err)
			return repo.ErrFailedToUpdate
		}
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("UpdatePriorities"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

// UpdateObligationStatus moves an obligation to opt.Status and returns the updated row.
// Returns a zero-value obligation when no row matches.
func (r *implRepository) UpdateObligationStatus(ctx context.Context, opt repo.UpdateObligationStatusOptions) (model.Obligation, error) {
	query, args, err := psql.Update("obligations").
		Set("status", string(opt.Status)).
		Set("actual_hours", sq.Expr("CASE WHEN ? > 0 THEN ? ELSE actual_hours END", opt.ActualHours, opt.ActualHours)).
		Set("completed_at", opt.CompletedAt).
		Set("snoozed_until", opt.SnoozedUntil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": opt.UserID, "id": opt.ID}).
		Suffix("RETURNING " + strings.Join(obligationColumns, ", ")).
		ToSql()
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("UpdateObligationStatus"), err)
		return model.Obligation{}, repo.ErrFailedToUpdate
	}

	o, err := scanObligation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Obligation{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateObligationStatus"), err)
		return model.Obligation{}, repo.ErrFailedToUpdate
	}
	return o, nil
}

// ListCompletions returns effort feedback of obligations completed after since.
func (r *implRepository) ListCompletions(ctx context.Context, userID string, since time.Time) ([]model.Completion, error) {
	const query = `
		SELECT id, estimated_hours, actual_hours, completed_at
		FROM obligations
		WHERE user_id = $1 AND status = 'completed' AND completed_at > $2
			AND estimated_hours > 0 AND actual_hours > 0
		ORDER BY completed_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListCompletions"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.Completion
	for rows.Next() {
		var c model.Completion
		if err := rows.Scan(&c.ObligationID, &c.EstimatedHours, &c.ActualHours, &c.CompletedAt); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListCompletions"), err)
			return nil, repo.ErrFailedToList
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListCompletions"), err)
		return nil, repo.ErrFailedToList
	}
	return out, nil
}
