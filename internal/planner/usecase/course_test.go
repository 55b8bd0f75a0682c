package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

func floatPtr(v float64) *float64 { return &v }

func TestUpsertCourse(t *testing.T) {
	f := newFixture()

	created, err := f.uc.UpsertCourse(context.Background(), scope, planner.UpsertCourseInput{Name: " Algorithms ", Code: "CS301"})
	if err != nil {
		t.Fatalf("UpsertCourse() error = %v", err)
	}
	if created.ID == "" || created.UserID != "u1" || created.Name != "Algorithms" || created.DifficultyEstimate != 0.5 {
		t.Errorf("created = %+v", created)
	}

	updated, err := f.uc.UpsertCourse(context.Background(), scope, planner.UpsertCourseInput{
		ID: created.ID, Name: "Algorithms", DifficultyEstimate: floatPtr(0.9), CreditHours: 4,
	})
	if err != nil {
		t.Fatalf("UpsertCourse() error = %v", err)
	}
	if updated.ID != created.ID || updated.DifficultyEstimate != 0.9 || updated.CreditHours != 4 {
		t.Errorf("updated = %+v", updated)
	}
	courses, err := f.uc.ListCourses(context.Background(), scope)
	if err != nil || len(courses) != 1 {
		t.Fatalf("ListCourses() = %v, %v", courses, err)
	}

	// someone else's course id
	f.repo.courses = append(f.repo.courses, model.Course{ID: "theirs", UserID: "u2", Name: "Physics"})
	if _, err := f.uc.UpsertCourse(context.Background(), scope, planner.UpsertCourseInput{ID: "theirs", Name: "Mine"}); !errors.Is(err, planner.ErrCourseNotFound) {
		t.Errorf("error = %v, want ErrCourseNotFound", err)
	}

	invalid := []planner.UpsertCourseInput{
		{Name: "  "},
		{Name: "Chemistry", DifficultyEstimate: floatPtr(1.2)},
		{Name: "Chemistry", CreditHours: -3},
	}
	for i, in := range invalid {
		if _, err := f.uc.UpsertCourse(context.Background(), scope, in); !errors.Is(err, planner.ErrInvalidCourse) {
			t.Errorf("case %d: error = %v, want ErrInvalidCourse", i, err)
		}
	}
}

func TestUpsertCourse_DifficultyReachesScores(t *testing.T) {
	f := newFixture()
	due := testNow.Add(5 * 24 * time.Hour)
	f.repo.add(model.Obligation{ID: "hard", Title: "Proofs", DueDate: due, CourseID: "c-hard", EstimatedHours: 2})
	f.repo.add(model.Obligation{ID: "easy", Title: "Survey", DueDate: due, CourseID: "c-easy", EstimatedHours: 2})

	for _, c := range []planner.UpsertCourseInput{
		{ID: "c-hard", Name: "Topology", DifficultyEstimate: floatPtr(1)},
		{ID: "c-easy", Name: "Orientation", DifficultyEstimate: floatPtr(0)},
	} {
		if _, err := f.uc.UpsertCourse(context.Background(), scope, c); err != nil {
			t.Fatalf("UpsertCourse(%s) error = %v", c.ID, err)
		}
	}

	out, err := f.uc.Rescore(context.Background(), scope)
	if err != nil {
		t.Fatalf("Rescore() error = %v", err)
	}
	if len(out.Obligations) != 2 || out.Obligations[0].ID != "hard" {
		t.Fatalf("order = %v, want hard first", out.Obligations)
	}
	if out.Obligations[0].Priority.Difficulty <= out.Obligations[1].Priority.Difficulty {
		t.Errorf("difficulty %v <= %v", out.Obligations[0].Priority.Difficulty, out.Obligations[1].Priority.Difficulty)
	}
}
