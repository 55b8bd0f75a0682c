package postgre

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	code TEXT NOT NULL DEFAULT '',
	difficulty_estimate DOUBLE PRECISION NOT NULL DEFAULT 0.5,
	credit_hours INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_courses_user ON courses (user_id);

CREATE TABLE IF NOT EXISTS obligations (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	source TEXT NOT NULL,
	source_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	course_id TEXT NOT NULL DEFAULT '',
	course_name TEXT NOT NULL DEFAULT '',
	due_date TIMESTAMPTZ NOT NULL,
	category TEXT NOT NULL,
	estimated_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	actual_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending',
	dependencies TEXT[] NOT NULL DEFAULT '{}',
	urgency_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	difficulty_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	importance_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	priority_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	priority_reasoning TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ,
	snoozed_until TIMESTAMPTZ,
	UNIQUE (user_id, source, source_id)
);
CREATE INDEX IF NOT EXISTS idx_obligations_user_status_due ON obligations (user_id, status, due_date);
CREATE INDEX IF NOT EXISTS idx_obligations_user_completed ON obligations (user_id, completed_at) WHERE completed_at IS NOT NULL;

CREATE TABLE IF NOT EXISTS scheduled_blocks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	obligation_id TEXT NOT NULL REFERENCES obligations (id) ON DELETE CASCADE,
	obligation_title TEXT NOT NULL DEFAULT '',
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'scheduled',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK (end_time > start_time)
);
CREATE INDEX IF NOT EXISTS idx_blocks_user_start ON scheduled_blocks (user_id, start_time);

CREATE TABLE IF NOT EXISTS productivity_profiles (
	user_id TEXT PRIMARY KEY,
	productivity_by_hour JSONB NOT NULL DEFAULT '{}',
	productivity_by_day JSONB NOT NULL DEFAULT '{}',
	avg_task_completion_ratio DOUBLE PRECISION NOT NULL DEFAULT 1,
	preferred_block_minutes INTEGER NOT NULL DEFAULT 90,
	break_minutes INTEGER NOT NULL DEFAULT 15,
	peak_hours INTEGER[] NOT NULL DEFAULT '{}',
	avoid_hours INTEGER[] NOT NULL DEFAULT '{}',
	data_points INTEGER NOT NULL DEFAULT 0,
	completion_samples INTEGER NOT NULL DEFAULT 0,
	last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completions_through TIMESTAMPTZ
);
ALTER TABLE productivity_profiles ADD COLUMN IF NOT EXISTS completions_through TIMESTAMPTZ;

CREATE TABLE IF NOT EXISTS productivity_logs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	obligation_id TEXT NOT NULL DEFAULT '',
	started_at TIMESTAMPTZ NOT NULL,
	ended_at TIMESTAMPTZ,
	focus_rating INTEGER CHECK (focus_rating BETWEEN 1 AND 5),
	hour_of_day INTEGER NOT NULL,
	day_of_week INTEGER NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	consumed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_logs_user_unconsumed ON productivity_logs (user_id, started_at) WHERE NOT consumed;

CREATE TABLE IF NOT EXISTS sync_states (
	user_id TEXT NOT NULL,
	source TEXT NOT NULL,
	last_sync TIMESTAMPTZ,
	sync_token TEXT NOT NULL DEFAULT '',
	page_token TEXT NOT NULL DEFAULT '',
	metadata JSONB NOT NULL DEFAULT '{}',
	PRIMARY KEY (user_id, source)
);

CREATE TABLE IF NOT EXISTS conflicts (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	conflict_key TEXT NOT NULL,
	kind TEXT NOT NULL,
	obligation_a TEXT NOT NULL,
	obligation_b TEXT NOT NULL,
	block_a TEXT NOT NULL DEFAULT '',
	block_b TEXT NOT NULL DEFAULT '',
	detail TEXT NOT NULL DEFAULT '',
	resolved BOOLEAN NOT NULL DEFAULT FALSE,
	resolution TEXT NOT NULL DEFAULT '',
	detected_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	resolved_at TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_conflicts_open ON conflicts (user_id, conflict_key) WHERE NOT resolved;

CREATE TABLE IF NOT EXISTS user_preferences (
	user_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_id, key)
);
`

// EnsureSchema creates the planner tables and indexes when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("planner/repository/postgre.EnsureSchema: %w", err)
	}
	return nil
}
