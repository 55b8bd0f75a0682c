package postgre

import (
	"context"
	"encoding/json"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

// Preference keys stored per user.
const (
	prefSleepStart    = "sleep_start_hour"
	prefSleepEnd      = "sleep_end_hour"
	prefBufferHours   = "buffer_hours"
	prefNotifications = "notifications"
	prefCustomWeights = "custom_priority_weights"
)

// GetPreferences returns the defaults overlaid with the stored keys. Unknown
// keys are ignored.
func (r *implRepository) GetPreferences(ctx context.Context, userID string) (model.UserPreferences, error) {
	const query = `SELECT key, value FROM user_preferences WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetPreferences"), err)
		return model.UserPreferences{}, repo.ErrFailedToGet
	}
	defer rows.Close()

	kv := map[string][]byte{}
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("GetPreferences"), err)
			return model.UserPreferences{}, repo.ErrFailedToGet
		}
		kv[key] = value
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("GetPreferences"), err)
		return model.UserPreferences{}, repo.ErrFailedToGet
	}

	prefs, err := decodePreferences(kv)
	if err != nil {
		r.l.Errorf(ctx, "%s decode: %v", r.dsn("GetPreferences"), err)
		return model.UserPreferences{}, repo.ErrFailedToGet
	}
	return prefs, nil
}

// SavePreferences writes every preference key of prefs in one transaction.
func (r *implRepository) SavePreferences(ctx context.Context, userID string, prefs model.UserPreferences) error {
	const query = `
		INSERT INTO user_preferences (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	kv, err := encodePreferences(prefs)
	if err != nil {
		r.l.Errorf(ctx, "%s encode: %v", r.dsn("SavePreferences"), err)
		return repo.ErrFailedToUpsert
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("SavePreferences"), err)
		return repo.ErrFailedToUpsert
	}
	defer tx.Rollback()

	for _, key := range preferenceKeys {
		if _, err := tx.ExecContext(ctx, query, userID, key, kv[key]); err != nil {
			r.l.Errorf(ctx, "%s %s: %v", r.dsn("SavePreferences"), key, err)
			return repo.ErrFailedToUpsert
		}
	}
	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("SavePreferences"), err)
		return repo.ErrFailedToUpsert
	}
	return nil
}

var preferenceKeys = []string{prefSleepStart, prefSleepEnd, prefBufferHours, prefNotifications, prefCustomWeights}

func encodePreferences(p model.UserPreferences) (map[string][]byte, error) {
	values := map[string]any{
		prefSleepStart:    p.SleepStartHour,
		prefSleepEnd:      p.SleepEndHour,
		prefBufferHours:   p.BufferHours,
		prefNotifications: p.Notifications,
		prefCustomWeights: p.CategoryWeightOverrides,
	}
	out := make(map[string][]byte, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[k] = raw
	}
	return out, nil
}

func decodePreferences(kv map[string][]byte) (model.UserPreferences, error) {
	p := model.DefaultUserPreferences()
	targets := map[string]any{
		prefSleepStart:    &p.SleepStartHour,
		prefSleepEnd:      &p.SleepEndHour,
		prefBufferHours:   &p.BufferHours,
		prefNotifications: &p.Notifications,
		prefCustomWeights: &p.CategoryWeightOverrides,
	}
	for _, key := range preferenceKeys {
		raw, ok := kv[key]
		if !ok || len(raw) == 0 || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, targets[key]); err != nil {
			return model.UserPreferences{}, err
		}
	}
	return p, nil
}
