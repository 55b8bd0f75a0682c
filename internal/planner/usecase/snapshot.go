package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner/repository"
)

// snapshot is everything a pass reads before it starts computing.
type snapshot struct {
	pending     []model.Obligation
	courses     map[string]model.Course
	profile     model.ProductivityProfile
	preferences model.UserPreferences
}

// loadSnapshot reads the schedulable obligations of userID at now together
// with their courses, the profile and the preferences.
func (uc *implUseCase) loadSnapshot(ctx context.Context, userID string, now time.Time) (snapshot, error) {
	obligations, err := uc.repo.ListObligations(ctx, repository.ListObligationsOptions{
		UserID:   userID,
		Statuses: []model.ObligationStatus{model.StatusPending, model.StatusSnoozed},
	})
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.loadSnapshot.ListObligations: %v", err)
		return snapshot{}, fmt.Errorf("list obligations: %w", err)
	}
	pending := make([]model.Obligation, 0, len(obligations))
	for _, o := range obligations {
		if o.Schedulable(now) {
			pending = append(pending, o)
		}
	}

	courses, err := uc.repo.ListCourses(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.loadSnapshot.ListCourses: %v", err)
		return snapshot{}, fmt.Errorf("list courses: %w", err)
	}
	byID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	profile, err := uc.loadProfile(ctx, userID)
	if err != nil {
		return snapshot{}, err
	}

	prefs, err := uc.repo.GetPreferences(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.loadSnapshot.GetPreferences: %v", err)
		return snapshot{}, fmt.Errorf("get preferences: %w", err)
	}

	return snapshot{
		pending:     pending,
		courses:     byID,
		profile:     profile,
		preferences: prefs,
	}, nil
}

// loadProfile returns the stored profile or the cold-start default.
func (uc *implUseCase) loadProfile(ctx context.Context, userID string) (model.ProductivityProfile, error) {
	profile, err := uc.repo.GetProfile(ctx, userID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.loadProfile.GetProfile: %v", err)
		return model.ProductivityProfile{}, fmt.Errorf("get profile: %w", err)
	}
	if profile.UserID == "" {
		profile = model.DefaultProductivityProfile()
		profile.UserID = userID
		if uc.cfg.DefaultBlockMinutes > 0 {
			profile.PreferredBlockMinutes = uc.cfg.DefaultBlockMinutes
		}
		if uc.cfg.DefaultBreakMinutes > 0 {
			profile.BreakMinutes = uc.cfg.DefaultBreakMinutes
		}
		if uc.cfg.DefaultPeakHours != nil {
			profile.PeakHours = slices.Clone(uc.cfg.DefaultPeakHours)
		}
		if uc.cfg.DefaultAvoidHours != nil {
			profile.AvoidHours = slices.Clone(uc.cfg.DefaultAvoidHours)
		}
	}
	return profile, nil
}
