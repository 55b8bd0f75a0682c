package postgre

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

// CreateLogEntry stores a productivity session.
func (r *implRepository) CreateLogEntry(ctx context.Context, e model.ProductivityLogEntry) (model.ProductivityLogEntry, error) {
	const query = `
		INSERT INTO productivity_logs (id, user_id, obligation_id, started_at, ended_at, focus_rating,
			hour_of_day, day_of_week, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var rating sql.NullInt64
	if e.FocusRating != nil {
		rating = sql.NullInt64{Int64: int64(*e.FocusRating), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.ObligationID, e.StartedAt, e.EndedAt, rating,
		e.HourOfDay, e.DayOfWeek, e.Notes,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateLogEntry"), err)
		return model.ProductivityLogEntry{}, repo.ErrFailedToInsert
	}
	return e, nil
}

// ListUnconsumedLogs returns the entries not yet folded into the profile, oldest first.
func (r *implRepository) ListUnconsumedLogs(ctx context.Context, userID string) ([]model.ProductivityLogEntry, error) {
	const query = `
		SELECT id, user_id, obligation_id, started_at, ended_at, focus_rating, hour_of_day, day_of_week, notes
		FROM productivity_logs
		WHERE user_id = $1 AND NOT consumed
		ORDER BY started_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListUnconsumedLogs"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.ProductivityLogEntry
	for rows.Next() {
		var (
			e      model.ProductivityLogEntry
			ended  sql.NullTime
			rating sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.ObligationID, &e.StartedAt, &ended, &rating,
			&e.HourOfDay, &e.DayOfWeek, &e.Notes); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListUnconsumedLogs"), err)
			return nil, repo.ErrFailedToList
		}
		e.EndedAt = nullTime(ended)
		if rating.Valid {
			v := int(rating.Int64)
			e.FocusRating = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListUnconsumedLogs"), err)
		return nil, repo.ErrFailedToList
	}
	return out, nil
}

// markLogsConsumed flags entries so the learner never sees them again.
func markLogsConsumed(ctx context.Context, tx execPreparer, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	const query = `UPDATE productivity_logs SET consumed = TRUE WHERE user_id = $1 AND id = ANY($2)`
	_, err := tx.ExecContext(ctx, query, userID, pq.StringArray(ids))
	return err
}
