package usecase

import (
	"context"
	"fmt"
	"maps"

	"study-planner/internal/model"
	"study-planner/internal/planner"
)

var notificationKeys = map[string]struct{}{
	model.NotifyMorningDigest:    {},
	model.NotifyWeeklyPlan:       {},
	model.NotifyDeadlineWarnings: {},
	model.NotifyNewTaskDetected:  {},
}

func (uc *implUseCase) GetPreferences(ctx context.Context, sc model.Scope) (model.UserPreferences, error) {
	if sc.UserID == "" {
		return model.UserPreferences{}, planner.ErrMissingUser
	}
	prefs, err := uc.repo.GetPreferences(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.GetPreferences.GetPreferences: %v", err)
		return model.UserPreferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}

// UpdatePreferences merges input into the stored preferences. Map entries
// replace the stored value of their key only.
func (uc *implUseCase) UpdatePreferences(ctx context.Context, sc model.Scope, input planner.UpdatePreferencesInput) (model.UserPreferences, error) {
	prefs, err := uc.GetPreferences(ctx, sc)
	if err != nil {
		return model.UserPreferences{}, err
	}

	if err := validatePreferences(input); err != nil {
		return model.UserPreferences{}, err
	}
	if input.SleepStartHour != nil {
		prefs.SleepStartHour = *input.SleepStartHour
	}
	if input.SleepEndHour != nil {
		prefs.SleepEndHour = *input.SleepEndHour
	}
	prefs.BufferHours = merge(prefs.BufferHours, input.BufferHours)
	prefs.Notifications = merge(prefs.Notifications, input.Notifications)
	prefs.CategoryWeightOverrides = merge(prefs.CategoryWeightOverrides, input.CategoryWeightOverrides)

	if err := uc.repo.SavePreferences(ctx, sc.UserID, prefs); err != nil {
		uc.l.Errorf(ctx, "planner.usecase.UpdatePreferences.SavePreferences: %v", err)
		return model.UserPreferences{}, fmt.Errorf("save preferences: %w", err)
	}
	uc.l.Infof(ctx, "UpdatePreferences: user=%s sleep=%d-%d", sc.UserID, prefs.SleepStartHour, prefs.SleepEndHour)
	return prefs, nil
}

func validatePreferences(input planner.UpdatePreferencesInput) error {
	for _, h := range []*int{input.SleepStartHour, input.SleepEndHour} {
		if h != nil && (*h < 0 || *h > 23) {
			return fmt.Errorf("%w: sleep hours must be within 0-23", planner.ErrInvalidPreferences)
		}
	}
	for c, v := range input.BufferHours {
		if !c.Valid() || v < 0 {
			return fmt.Errorf("%w: buffer for %q", planner.ErrInvalidPreferences, c)
		}
	}
	for c, v := range input.CategoryWeightOverrides {
		if !c.Valid() || v < 0 || v > 1 {
			return fmt.Errorf("%w: weight override for %q must be within [0, 1]", planner.ErrInvalidPreferences, c)
		}
	}
	for k := range input.Notifications {
		if _, ok := notificationKeys[k]; !ok {
			return fmt.Errorf("%w: unknown notification %q", planner.ErrInvalidPreferences, k)
		}
	}
	return nil
}

func merge[K comparable, V any](dst, src map[K]V) map[K]V {
	out := make(map[K]V, len(dst)+len(src))
	maps.Copy(out, dst)
	maps.Copy(out, src)
	return out
}
