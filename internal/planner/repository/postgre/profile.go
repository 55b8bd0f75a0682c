package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

// GetProfile returns a zero-value profile (UserID == "") when none is stored.
func (r *implRepository) GetProfile(ctx context.Context, userID string) (model.ProductivityProfile, error) {
	const query = `
		SELECT user_id, productivity_by_hour, productivity_by_day, avg_task_completion_ratio,
			preferred_block_minutes, break_minutes, peak_hours, avoid_hours,
			data_points, completion_samples, last_updated, completions_through
		FROM productivity_profiles WHERE user_id = $1`

	var (
		p           model.ProductivityProfile
		byHour      []byte
		byDay       []byte
		peak, avoid pq.Int64Array
		through     sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &byHour, &byDay, &p.AvgTaskCompletionRatio,
		&p.PreferredBlockMinutes, &p.BreakMinutes, &peak, &avoid,
		&p.DataPoints, &p.CompletionSamples, &p.LastUpdated, &through,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProductivityProfile{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetProfile"), err)
		return model.ProductivityProfile{}, repo.ErrFailedToGet
	}

	if err := json.Unmarshal(byHour, &p.ProductivityByHour); err != nil {
		r.l.Errorf(ctx, "%s decode by hour: %v", r.dsn("GetProfile"), err)
		return model.ProductivityProfile{}, repo.ErrFailedToGet
	}
	if err := json.Unmarshal(byDay, &p.ProductivityByDay); err != nil {
		r.l.Errorf(ctx, "%s decode by day: %v", r.dsn("GetProfile"), err)
		return model.ProductivityProfile{}, repo.ErrFailedToGet
	}
	p.PeakHours = toInts(peak)
	p.AvoidHours = toInts(avoid)
	if through.Valid {
		p.CompletionsThrough = through.Time
	}
	return p, nil
}

// SaveProfile inserts or replaces the profile of p.UserID and flags the folded
// log entries as consumed in the same transaction.
func (r *implRepository) SaveProfile(ctx context.Context, p model.ProductivityProfile, consumedLogIDs []string) error {
	const query = `
		INSERT INTO productivity_profiles (user_id, productivity_by_hour, productivity_by_day,
			avg_task_completion_ratio, preferred_block_minutes, break_minutes, peak_hours, avoid_hours,
			data_points, completion_samples, last_updated, completions_through)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			productivity_by_hour = EXCLUDED.productivity_by_hour,
			productivity_by_day = EXCLUDED.productivity_by_day,
			avg_task_completion_ratio = EXCLUDED.avg_task_completion_ratio,
			preferred_block_minutes = EXCLUDED.preferred_block_minutes,
			break_minutes = EXCLUDED.break_minutes,
			peak_hours = EXCLUDED.peak_hours,
			avoid_hours = EXCLUDED.avoid_hours,
			data_points = EXCLUDED.data_points,
			completion_samples = EXCLUDED.completion_samples,
			last_updated = EXCLUDED.last_updated,
			completions_through = EXCLUDED.completions_through`

	byHour, byDay, err := encodeMultipliers(p)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveProfile"), err)
		return repo.ErrFailedToUpsert
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("SaveProfile"), err)
		return repo.ErrFailedToUpsert
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, query,
		p.UserID, byHour, byDay, p.AvgTaskCompletionRatio,
		p.PreferredBlockMinutes, p.BreakMinutes, toInt64s(p.PeakHours), toInt64s(p.AvoidHours),
		p.DataPoints, p.CompletionSamples, p.LastUpdated, sql.NullTime{Time: p.CompletionsThrough, Valid: !p.CompletionsThrough.IsZero()},
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveProfile"), err)
		return repo.ErrFailedToUpsert
	}
	if err := markLogsConsumed(ctx, tx, p.UserID, consumedLogIDs); err != nil {
		r.l.Errorf(ctx, "%s consume logs: %v", r.dsn("SaveProfile"), err)
		return repo.ErrFailedToUpdate
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("SaveProfile"), err)
		return repo.ErrFailedToUpsert
	}
	return nil
}

func encodeMultipliers(p model.ProductivityProfile) ([]byte, []byte, error) {
	byHour := p.ProductivityByHour
	if byHour == nil {
		byHour = map[int]float64{}
	}
	byDay := p.ProductivityByDay
	if byDay == nil {
		byDay = map[int]float64{}
	}
	h, err := json.Marshal(byHour)
	if err != nil {
		return nil, nil, fmt.Errorf("encode by hour: %w", err)
	}
	d, err := json.Marshal(byDay)
	if err != nil {
		return nil, nil, fmt.Errorf("encode by day: %w", err)
	}
	return h, d, nil
}

func toInts(a pq.Int64Array) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}

func toInt64s(a []int) pq.Int64Array {
	out := make(pq.Int64Array, len(a))
	for i, v := range a {
		out[i] = int64(v)
	}
	return out
}
