package postgre

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
)

var courseColumns = []string{"id", "user_id", "name", "code", "difficulty_estimate", "credit_hours", "created_at"}

// ListCourses returns every course of the user.
func (r *implRepository) ListCourses(ctx context.Context, userID string) ([]model.Course, error) {
	query := "SELECT " + strings.Join(courseColumns, ", ") + " FROM courses WHERE user_id = $1 ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListCourses"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var out []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Code, &c.DifficultyEstimate, &c.CreditHours, &c.CreatedAt); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListCourses"), err)
			return nil, repo.ErrFailedToList
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListCourses"), err)
		return nil, repo.ErrFailedToList
	}
	return out, nil
}

// UpsertCourse inserts c or updates the course with the same id. A course id
// owned by another user is left untouched.
func (r *implRepository) UpsertCourse(ctx context.Context, c model.Course) (model.Course, error) {
	query, args, err := r.buildUpsertCourseQuery(c)
	if err != nil {
		r.l.Errorf(ctx, "%s build: %v", r.dsn("UpsertCourse"), err)
		return model.Course{}, repo.ErrFailedToUpsert
	}

	var out model.Course
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Code, &out.DifficultyEstimate, &out.CreditHours, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Course{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertCourse"), err)
		return model.Course{}, repo.ErrFailedToUpsert
	}
	return out, nil
}

func (r *implRepository) buildUpsertCourseQuery(c model.Course) (string, []any, error) {
	return psql.Insert("courses").
		Columns("id", "user_id", "name", "code", "difficulty_estimate", "credit_hours").
		Values(c.ID, c.UserID, c.Name, c.Code, c.DifficultyEstimate, c.CreditHours).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			code = EXCLUDED.code,
			difficulty_estimate = EXCLUDED.difficulty_estimate,
			credit_hours = EXCLUDED.credit_hours
		WHERE courses.user_id = EXCLUDED.user_id
		RETURNING ` + strings.Join(courseColumns, ", ")).
		ToSql()
}
