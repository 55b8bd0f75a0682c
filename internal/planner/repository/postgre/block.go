package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

var blockColumns = []string{"id", "user_id", "obligation_id", "obligation_title", "start_time", "end_time", "status"}

// ListBlocks returns the blocks matching opt ordered by start.
func (r *implRepository) ListBlocks(ctx context.Context, opt repo.ListBlocksOptions) ([]model.ScheduledBlock, error) {
	query, args, err := r.buildListBlocksQuery(opt)
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("ListBlocks"), err)
		return nil, repo.ErrFailedToList
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListBlocks"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.ScheduledBlock
	for rows.Next() {
		var (
			b      model.ScheduledBlock
			status string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.ObligationID, &b.ObligationTitle, &b.Start, &b.End, &status); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListBlocks"), err)
			return nil, repo.ErrFailedToList
		}
		b.Status = model.BlockStatus(status)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListBlocks"), err)
		return nil, repo.ErrFailedToList
	}
	return out, nil
}

// GetOneBlock returns a zero-value block when none matches.
func (r *implRepository) GetOneBlock(ctx context.Context, userID, id string) (model.ScheduledBlock, error) {
	query, args, err := psql.Select(blockColumns...).From("scheduled_blocks").
		Where(sq.Eq{"user_id": userID, "id": id}).ToSql()
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("GetOneBlock"), err)
		return model.ScheduledBlock{}, repo.ErrFailedToGet
	}

	b, err := scanBlock(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ScheduledBlock{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneBlock"), err)
		return model.ScheduledBlock{}, repo.ErrFailedToGet
	}
	return b, nil
}

// UpdateBlockStatus sets the status only while the block is still in opt.From.
func (r *implRepository) UpdateBlockStatus(ctx context.Context, opt repo.UpdateBlockStatusOptions) (model.ScheduledBlock, error) {
	query, args, err := r.buildUpdateBlockStatusQuery(opt)
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("UpdateBlockStatus"), err)
		return model.ScheduledBlock{}, repo.ErrFailedToUpdate
	}

	b, err := scanBlock(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ScheduledBlock{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateBlockStatus"), err)
		return model.ScheduledBlock{}, repo.ErrFailedToUpdate
	}
	return b, nil
}

func (r *implRepository) buildUpdateBlockStatusQuery(opt repo.UpdateBlockStatusOptions) (string, []any, error) {
	return psql.Update("scheduled_blocks").
		Set("status", string(opt.Status)).
		Where(sq.Eq{"user_id": opt.UserID, "id": opt.ID, "status": string(opt.From)}).
		Suffix("RETURNING " + strings.Join(blockColumns, ", ")).
		ToSql()
}

func scanBlock(row *sql.Row) (model.ScheduledBlock, error) {
	var (
		b      model.ScheduledBlock
		status string
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.ObligationID, &b.ObligationTitle, &b.Start, &b.End, &status); err != nil {
		return model.ScheduledBlock{}, err
	}
	b.Status = model.BlockStatus(status)
	return b, nil
}

// ReplaceFutureBlocks swaps the scheduled blocks of [From, To) for opt.Blocks
// atomically. Readers see either the old or the new schedule.
func (r *implRepository) ReplaceFutureBlocks(ctx context.Context, opt repo.ReplaceFutureBlocksOptions) (int, error) {
	const deleteQuery = `
		DELETE FROM scheduled_blocks
		WHERE user_id = $1 AND status IN ('scheduled', 'skipped') AND start_time >= $2 AND start_time < $3`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("ReplaceFutureBlocks"), err)
		return 0, repo.ErrFailedToUpdate
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, deleteQuery, opt.UserID, opt.From, opt.To)
	if err != nil {
		r.l.Errorf(ctx, "%s delete: %v", r.dsn("ReplaceFutureBlocks"), err)
		return 0, repo.ErrFailedToDelete
	}
	deleted, _ := res.RowsAffected()

	if len(opt.Blocks) > 0 {
		if err := r.copyBlocks(ctx, tx, opt.UserID, opt.Blocks); err != nil {
			r.l.Errorf(ctx, "%s copy: %v", r.dsn("ReplaceFutureBlocks"), err)
			return 0, repo.ErrFailedToInsert
		}
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("ReplaceFutureBlocks"), err)
		return 0, repo.ErrFailedToUpdate
	}
	return int(deleted), nil
}

// copyBlocks bulk-inserts blocks with COPY inside tx.
func (r *implRepository) copyBlocks(ctx context.Context, tx execPreparer, userID string, blocks []model.ScheduledBlock) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("scheduled_blocks", blockColumns...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}
	defer stmt.Close()

	for _, b := range blocks {
		status := b.Status
		if status == "" {
			status = model.BlockScheduled
		}
		if _, err := stmt.ExecContext(ctx, b.ID, userID, b.ObligationID, b.ObligationTitle, b.Start, b.End, string(status)); err != nil {
			return fmt.Errorf("copy block %s: %w", b.ID, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush copy: %w", err)
	}
	return nil
}
