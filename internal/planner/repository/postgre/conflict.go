package postgre

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

const conflictColumns = `id, user_id, kind, obligation_a, obligation_b, block_a, block_b, detail,
	resolved, resolution, detected_at, resolved_at`

func scanConflict(row rowScanner) (model.Conflict, error) {
	var (
		c          model.Conflict
		kind       string
		resolvedAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.UserID, &kind, &c.ObligationA, &c.ObligationB, &c.BlockA, &c.BlockB, &c.Detail,
		&c.Resolved, &c.Resolution, &c.DetectedAt, &resolvedAt)
	if err != nil {
		return model.Conflict{}, err
	}
	c.Kind = model.ConflictKind(kind)
	c.ResolvedAt = nullTime(resolvedAt)
	return c, nil
}

// CreateConflicts stores the conflicts that have no open record with the same
// key and returns the stored ones. Re-detecting a known conflict is a no-op.
func (r *implRepository) CreateConflicts(ctx context.Context, conflicts []model.Conflict) ([]model.Conflict, error) {
	if len(conflicts) == 0 {
		return nil, nil
	}
	const query = `
		INSERT INTO conflicts (id, user_id, conflict_key, kind, obligation_a, obligation_b, block_a, block_b, detail, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, conflict_key) WHERE NOT resolved DO NOTHING
		RETURNING ` + conflictColumns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("CreateConflicts"), err)
		return nil, repo.ErrFailedToInsert
	}
	defer tx.Rollback()

	var created []model.Conflict
	for _, c := range conflicts {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		row := tx.QueryRowContext(ctx, query,
			c.ID, c.UserID, c.Key(), string(c.Kind), c.ObligationA, c.ObligationB, c.BlockA, c.BlockB, c.Detail, c.DetectedAt)
		stored, err := scanConflict(row)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			r.l.Errorf(ctx, "%s %s: %v", r.dsn("CreateConflicts"), c.Key(), err)
			return nil, repo.ErrFailedToInsert
		}
		created = append(created, stored)
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("CreateConflicts"), err)
		return nil, repo.ErrFailedToInsert
	}
	return created, nil
}

// ListConflicts returns the user's conflicts, newest first.
func (r *implRepository) ListConflicts(ctx context.Context, opt repo.ListConflictsOptions) ([]model.Conflict, error) {
	q := psql.Select(conflictColumns).From("conflicts").Where(sq.Eq{"user_id": opt.UserID})
	if !opt.IncludeResolved {
		q = q.Where(sq.Eq{"resolved": false})
	}
	query, args, err := q.OrderBy("detected_at DESC", "id ASC").ToSql()
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("ListConflicts"), err)
		return nil, repo.ErrFailedToList
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListConflicts"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListConflicts"), err)
			return nil, repo.ErrFailedToList
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListConflicts"), err)
		return nil, repo.ErrFailedToList
	}
	return out, nil
}

// GetOneConflict returns a zero-value conflict (ID == "") when not found.
func (r *implRepository) GetOneConflict(ctx context.Context, userID, id string) (model.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE user_id = $1 AND id = $2`
	c, err := scanConflict(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Conflict{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneConflict"), err)
		return model.Conflict{}, repo.ErrFailedToGet
	}
	return c, nil
}

// ResolveConflict marks an open conflict resolved. Returns a zero-value conflict
// when no open conflict matches.
func (r *implRepository) ResolveConflict(ctx context.Context, opt repo.ResolveConflictOptions) (model.Conflict, error) {
	query := `
		UPDATE conflicts SET resolved = TRUE, resolution = $1, resolved_at = $2
		WHERE user_id = $3 AND id = $4 AND NOT resolved
		RETURNING ` + conflictColumns
	c, err := scanConflict(r.db.QueryRowContext(ctx, query, opt.Resolution, opt.ResolvedAt, opt.UserID, opt.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Conflict{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ResolveConflict"), err)
		return model.Conflict{}, repo.ErrFailedToUpdate
	}
	return c, nil
}
