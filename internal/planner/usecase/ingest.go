package usecase

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/planner"
	"study-planner/internal/planner/repository"
)

// Ingest upserts one batch of obligations from a single source. Invalid items
// and items that could not be stored are reported as rejections; the rest of
// the batch still goes through. The sync cursor only advances when every valid
// item was stored.
func (uc *implUseCase) Ingest(ctx context.Context, sc model.Scope, input planner.IngestInput) (planner.IngestOutput, error) {
	if sc.UserID == "" {
		return planner.IngestOutput{}, planner.ErrMissingUser
	}
	if !input.Source.Valid() {
		return planner.IngestOutput{}, planner.ErrInvalidSource
	}

	now := uc.now()
	var (
		out           planner.IngestOutput
		storageFailed bool
	)
	for _, item := range input.Obligations {
		if reason := validateIngest(item); reason != "" {
			out.Rejected = append(out.Rejected, planner.Rejection{SourceID: item.SourceID, Reason: reason})
			continue
		}

		category := item.Category
		if category == "" {
			category = model.CategoryOther
		}
		o, err := uc.repo.UpsertObligation(ctx, repository.UpsertObligationOptions{
			UserID:         sc.UserID,
			Source:         input.Source,
			SourceID:       item.SourceID,
			Title:          strings.TrimSpace(item.Title),
			Description:    item.Description,
			CourseID:       item.CourseID,
			CourseName:     item.CourseName,
			DueDate:        item.DueDate,
			Category:       category,
			EstimatedHours: item.EstimatedHours,
			Dependencies:   item.Dependencies,
		})
		if err != nil {
			uc.l.Errorf(ctx, "planner.usecase.Ingest.UpsertObligation: source=%s source_id=%s: %v", input.Source, item.SourceID, err)
			storageFailed = true
			out.Rejected = append(out.Rejected, planner.Rejection{SourceID: item.SourceID, Reason: err.Error()})
			continue
		}
		out.Upserted = append(out.Upserted, o)
	}
	uc.metrics.RecordIngest(string(input.Source), len(out.Upserted), len(out.Rejected))

	if len(out.Upserted) > 0 {
		dups, err := uc.ingestDuplicates(ctx, sc.UserID, out.Upserted, now)
		if err != nil {
			uc.l.Warnf(ctx, "planner.usecase.Ingest: duplicate check failed (non-fatal): %v", err)
		}
		out.Duplicates = dups
	}

	if storageFailed {
		uc.l.Warnf(ctx, "Ingest: user=%s source=%s cursor kept, %d item(s) failed to store", sc.UserID, input.Source, len(out.Rejected))
	} else if err := uc.advanceCursor(ctx, sc.UserID, input, now); err != nil {
		return out, err
	}

	if len(out.Upserted) > 0 {
		uc.publish(ctx, model.PlannerEvent{
			Kind:        model.EventObligationsSynced,
			UserID:      sc.UserID,
			Source:      input.Source,
			Obligations: len(out.Upserted),
			OccurredAt:  now,
		})
	}

	uc.l.Infof(ctx, "Ingest: user=%s source=%s upserted=%d rejected=%d duplicates=%d",
		sc.UserID, input.Source, len(out.Upserted), len(out.Rejected), len(out.Duplicates))
	return out, nil
}

// validateIngest returns the rejection reason for item, or "" when it is usable.
func validateIngest(item planner.IngestObligation) string {
	switch {
	case strings.TrimSpace(item.SourceID) == "":
		return "source_id is required"
	case strings.TrimSpace(item.Title) == "":
		return "title is required"
	case item.DueDate.IsZero():
		return "due_date is required"
	case item.EstimatedHours < 0:
		return "estimated_hours must not be negative"
	}
	return ""
}

// ingestDuplicates records duplicate pairs that involve at least one of the
// freshly upserted obligations.
func (uc *implUseCase) ingestDuplicates(ctx context.Context, userID string, upserted []model.Obligation, now time.Time) ([]model.Conflict, error) {
	all, err := uc.repo.ListObligations(ctx, repository.ListObligationsOptions{
		UserID:   userID,
		Statuses: []model.ObligationStatus{model.StatusPending, model.StatusSnoozed, model.StatusInProgress},
	})
	if err != nil {
		return nil, fmt.Errorf("list obligations: %w", err)
	}

	fresh := make(map[string]struct{}, len(upserted))
	for _, o := range upserted {
		fresh[o.ID] = struct{}{}
	}
	var pairs []model.Conflict
	for _, c := range uc.detector.Duplicates(all) {
		_, a := fresh[c.ObligationA]
		_, b := fresh[c.ObligationB]
		if a || b {
			pairs = append(pairs, c)
		}
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	resolved, err := uc.resolvedKeys(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pairs = dropResolved(pairs, resolved); len(pairs) == 0 {
		return nil, nil
	}

	created, err := uc.repo.CreateConflicts(ctx, stampConflicts(pairs, userID, now))
	if err != nil {
		return nil, fmt.Errorf("record duplicates: %w", err)
	}
	for _, c := range created {
		uc.metrics.RecordConflict(string(c.Kind))
	}
	return created, nil
}

// advanceCursor stores the sync state of input.Source. Empty cursor fields keep
// their stored value.
func (uc *implUseCase) advanceCursor(ctx context.Context, userID string, input planner.IngestInput, now time.Time) error {
	state, err := uc.repo.GetSyncState(ctx, userID, input.Source)
	if err != nil {
		uc.l.Errorf(ctx, "planner.usecase.Ingest.GetSyncState: %v", err)
		return fmt.Errorf("get sync state: %w", err)
	}
	state.UserID = userID
	state.Source = input.Source
	state.LastSync = &now
	if input.SyncToken != "" {
		state.SyncToken = input.SyncToken
	}
	if input.PageToken != "" {
		state.PageToken = input.PageToken
	}
	if len(input.Metadata) > 0 {
		if state.Metadata == nil {
			state.Metadata = make(map[string]any, len(input.Metadata))
		}
		maps.Copy(state.Metadata, input.Metadata)
	}

	if err := uc.repo.SaveSyncState(ctx, state); err != nil {
		uc.l.Errorf(ctx, "planner.usecase.Ingest.SaveSyncState: %v", err)
		return fmt.Errorf("save sync state: %w", err)
	}
	return nil
}
