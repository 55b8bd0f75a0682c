package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

// GetSyncState returns a zero-value state (UserID == "") when none is stored.
func (r *implRepository) GetSyncState(ctx context.Context, userID string, source model.Source) (model.SyncState, error) {
	const query = `
		SELECT user_id, source, last_sync, sync_token, page_token, metadata
		FROM sync_states WHERE user_id = $1 AND source = $2`

	var (
		s        model.SyncState
		src      string
		lastSync sql.NullTime
		meta     []byte
	)
	err := r.db.QueryRowContext(ctx, query, userID, string(source)).Scan(
		&s.UserID, &src, &lastSync, &s.SyncToken, &s.PageToken, &meta,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SyncState{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetSyncState"), err)
		return model.SyncState{}, repo.ErrFailedToGet
	}
	s.Source = model.Source(src)
	s.LastSync = nullTime(lastSync)
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &s.Metadata); err != nil {
			r.l.Errorf(ctx, "%s decode metadata: %v", r.dsn("GetSyncState"), err)
			return model.SyncState{}, repo.ErrFailedToGet
		}
	}
	return s, nil
}

// SaveSyncState inserts or replaces the cursor of (state.UserID, state.Source).
func (r *implRepository) SaveSyncState(ctx context.Context, s model.SyncState) error {
	const query = `
		INSERT INTO sync_states (user_id, source, last_sync, sync_token, page_token, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, source) DO UPDATE SET
			last_sync = EXCLUDED.last_sync,
			sync_token = EXCLUDED.sync_token,
			page_token = EXCLUDED.page_token,
			metadata = EXCLUDED.metadata`

	meta := s.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		r.l.Errorf(ctx, "%s encode metadata: %v", r.dsn("SaveSyncState"), err)
		return repo.ErrFailedToUpsert
	}
	if _, err := r.db.ExecContext(ctx, query, s.UserID, string(s.Source), s.LastSync, s.SyncToken, s.PageToken, raw); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveSyncState"), err)
		return repo.ErrFailedToUpsert
	}
	return nil
}
