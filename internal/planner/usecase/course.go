package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

func (uc *implUseCase) ListCourses(ctx context.Context, sc model.Scope) ([]model.Course, error) {
	if sc.UserID == "" {
		return nil, planner.ErrMissingUser
	}
	courses, err := uc.repo.ListCourses(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.ListCourses.ListCourses: %v", err)
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// UpsertCourse creates a course or replaces the fields of an existing one.
// The difficulty estimate feeds the scorer on the next pass.
func (uc *implUseCase) UpsertCourse(ctx context.Context, sc model.Scope, input planner.UpsertCourseInput) (model.Course, error) {
	if sc.UserID == "" {
		return model.Course{}, planner.ErrMissingUser
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Course{}, fmt.Errorf("%w: name is required", planner.ErrInvalidCourse)
	}
	difficulty := uc.cfg.Scorer.DefaultCourseDifficulty
	if input.DifficultyEstimate != nil {
		difficulty = *input.DifficultyEstimate
	}
	if difficulty < 0 || difficulty > 1 {
		return model.Course{}, fmt.Errorf("%w: difficulty must be within [0, 1]", planner.ErrInvalidCourse)
	}
	if input.CreditHours < 0 {
		return model.Course{}, fmt.Errorf("%w: credit hours must not be negative", planner.ErrInvalidCourse)
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}
	course, err := uc.repo.UpsertCourse(ctx, model.Course{
		ID:                 id,
		UserID:             sc.UserID,
		Name:               name,
		Code:               strings.TrimSpace(input.Code),
		DifficultyEstimate: difficulty,
		CreditHours:        input.CreditHours,
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.UpsertCourse.UpsertCourse: %v", err)
		return model.Course{}, fmt.Errorf("upsert course: %w", err)
	}
	if course.ID == "" {
		return model.Course{}, planner.ErrCourseNotFound
	}

	uc.l.Infof(ctx, "UpsertCourse: user=%s course=%s difficulty=%.2f", sc.UserID, course.ID, course.DifficultyEstimate)
	return course, nil
}
