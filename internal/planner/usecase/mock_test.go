package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"study-planner/internal/availability"
	"study-planner/internal/metrics"
	"study-planner/internal/model"
	"study-planner/internal/planner/repository"
	"study-planner/pkg/locker"
	"study-planner/pkg/log"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) // Monday

// memRepo is an in-memory repository.Repository.
type memRepo struct {
	mu sync.Mutex

	obligations map[string]model.Obligation
	courses     []model.Course
	profile     model.ProductivityProfile
	logs        []model.ProductivityLogEntry
	consumed    map[string]bool
	blocks      []model.ScheduledBlock
	syncStates  map[model.Source]model.SyncState
	conflicts   []model.Conflict
	prefs       *model.UserPreferences
	priorities  map[string]model.Priority

	failUpsert map[string]bool
	failBlocks bool
	seq        int
}

func newMemRepo() *memRepo {
	return &memRepo{
		obligations: map[string]model.Obligation{},
		consumed:    map[string]bool{},
		syncStates:  map[model.Source]model.SyncState{},
		priorities:  map[string]model.Priority{},
		failUpsert:  map[string]bool{},
	}
}

func (r *memRepo) add(o model.Obligation) {
	if o.UserID == "" {
		o.UserID = "u1"
	}
	if o.Status == "" {
		o.Status = model.StatusPending
	}
	if o.Source == "" {
		o.Source = model.SourceManual
	}
	if o.Category == "" {
		o.Category = model.CategoryAssignment
	}
	r.obligations[o.ID] = o
}

func (r *memRepo) ListObligations(_ context.Context, opt repository.ListObligationsOptions) ([]model.Obligation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Obligation
	for _, o := range r.obligations {
		if o.UserID != opt.UserID {
			continue
		}
		if len(opt.Statuses) > 0 && !slices.Contains(opt.Statuses, o.Status) {
			continue
		}
		if opt.Category != "" && o.Category != opt.Category {
			continue
		}
		if opt.CourseID != "" && o.CourseID != opt.CourseID {
			continue
		}
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b model.Obligation) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		return 1
	})
	if opt.Offset > 0 {
		if opt.Offset >= len(out) {
			return nil, nil
		}
		out = out[opt.Offset:]
	}
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}

func (r *memRepo) GetOneObligation(_ context.Context, opt repository.GetOneObligationOptions) (model.Obligation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.obligations {
		if o.UserID != opt.UserID {
			continue
		}
		if opt.ID != "" && o.ID == opt.ID {
			return o, nil
		}
		if opt.ID == "" && o.Source == opt.Source && o.SourceID == opt.SourceID {
			return o, nil
		}
	}
	return model.Obligation{}, nil
}

func (r *memRepo) UpsertObligation(_ context.Context, opt repository.UpsertObligationOptions) (model.Obligation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsert[opt.SourceID] {
		return model.Obligation{}, repository.ErrFailedToUpsert
	}
	var existing *model.Obligation
	for _, o := range r.obligations {
		if o.UserID == opt.UserID && o.Source == opt.Source && o.SourceID == opt.SourceID {
			existing = &o
			break
		}
	}
	o := model.Obligation{Status: model.StatusPending, CreatedAt: testNow}
	if existing != nil {
		o = *existing
	} else {
		r.seq++
		o.ID = fmt.Sprintf("ob-%d", r.seq)
	}
	o.UserID = opt.UserID
	o.Source = opt.Source
	o.SourceID = opt.SourceID
	o.Title = opt.Title
	o.Description = opt.Description
	o.CourseID = opt.CourseID
	o.CourseName = opt.CourseName
	o.DueDate = opt.DueDate
	o.Category = opt.Category
	o.EstimatedHours = opt.EstimatedHours
	o.Dependencies = opt.Dependencies
	r.obligations[o.ID] = o
	return o, nil
}

func (r *memRepo) UpdatePriorities(_ context.Context, userID string, priorities map[string]model.Priority) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range priorities {
		r.priorities[id] = p
		if o, ok := r.obligations[id]; ok && o.UserID == userID {
			o.Priority = p
			r.obligations[id] = o
		}
	}
	return nil
}

func (r *memRepo) UpdateObligationStatus(_ context.Context, opt repository.UpdateObligationStatusOptions) (model.Obligation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.obligations[opt.ID]
	if !ok || o.UserID != opt.UserID {
		return model.Obligation{}, nil
	}
	o.Status = opt.Status
	if opt.ActualHours > 0 {
		o.ActualHours = opt.ActualHours
	}
	o.CompletedAt = opt.CompletedAt
	o.SnoozedUntil = opt.SnoozedUntil
	r.obligations[o.ID] = o
	return o, nil
}

func (r *memRepo) ListCompletions(_ context.Context, userID string, since time.Time) ([]model.Completion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Completion
	for _, o := range r.obligations {
		if o.UserID != userID || o.Status != model.StatusCompleted || o.CompletedAt == nil || !o.CompletedAt.After(since) {
			continue
		}
		if o.EstimatedHours <= 0 || o.ActualHours <= 0 {
			continue
		}
		out = append(out, model.Completion{
			ObligationID:   o.ID,
			EstimatedHours: o.EstimatedHours,
			ActualHours:    o.ActualHours,
			CompletedAt:    *o.CompletedAt,
		})
	}
	return out, nil
}

func (r *memRepo) ListCourses(context.Context, string) ([]model.Course, error) {
	return r.courses, nil
}

func (r *memRepo) UpsertCourse(_ context.Context, course model.Course) (model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.courses {
		if c.ID != course.ID {
			continue
		}
		if c.UserID != course.UserID {
			return model.Course{}, nil
		}
		course.CreatedAt = c.CreatedAt
		r.courses[i] = course
		return course, nil
	}
	course.CreatedAt = testNow
	r.courses = append(r.courses, course)
	return course, nil
}

func (r *memRepo) GetProfile(context.Context, string) (model.ProductivityProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profile, nil
}

func (r *memRepo) SaveProfile(_ context.Context, profile model.ProductivityProfile, consumedLogIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = profile
	for _, id := range consumedLogIDs {
		r.consumed[id] = true
	}
	return nil
}

func (r *memRepo) CreateLogEntry(_ context.Context, entry model.ProductivityLogEntry) (model.ProductivityLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, entry)
	return entry, nil
}

func (r *memRepo) ListUnconsumedLogs(_ context.Context, userID string) ([]model.ProductivityLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ProductivityLogEntry
	for _, e := range r.logs {
		if e.UserID == userID && !r.consumed[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRepo) ListBlocks(_ context.Context, opt repository.ListBlocksOptions) ([]model.ScheduledBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failBlocks {
		return nil, repository.ErrFailedToList
	}
	var out []model.ScheduledBlock
	for _, b := range r.blocks {
		if b.UserID != opt.UserID {
			continue
		}
		if !opt.From.IsZero() && !b.End.After(opt.From) {
			continue
		}
		if !opt.To.IsZero() && !b.Start.Before(opt.To) {
			continue
		}
		if len(opt.Statuses) > 0 && !slices.Contains(opt.Statuses, b.Status) {
			continue
		}
		if len(opt.ObligationIDs) > 0 && !slices.Contains(opt.ObligationIDs, b.ObligationID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) GetOneBlock(_ context.Context, userID, id string) (model.ScheduledBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blocks {
		if b.UserID == userID && b.ID == id {
			return b, nil
		}
	}
	return model.ScheduledBlock{}, nil
}

func (r *memRepo) UpdateBlockStatus(_ context.Context, opt repository.UpdateBlockStatusOptions) (model.ScheduledBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.blocks {
		if b.UserID == opt.UserID && b.ID == opt.ID && b.Status == opt.From {
			b.Status = opt.Status
			r.blocks[i] = b
			return b, nil
		}
	}
	return model.ScheduledBlock{}, nil
}

func (r *memRepo) ReplaceFutureBlocks(_ context.Context, opt repository.ReplaceFutureBlocksOptions) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	before := len(r.blocks)
	r.blocks = slices.DeleteFunc(r.blocks, func(b model.ScheduledBlock) bool {
		return b.UserID == opt.UserID && (b.Status == model.BlockScheduled || b.Status == model.BlockSkipped) &&
			!b.Start.Before(opt.From) && b.Start.Before(opt.To)
	})
	deleted := before - len(r.blocks)
	r.blocks = append(r.blocks, opt.Blocks...)
	return deleted, nil
}

func (r *memRepo) GetSyncState(_ context.Context, userID string, source model.Source) (model.SyncState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.syncStates[source]
	if !ok || s.UserID != userID {
		return model.SyncState{}, nil
	}
	return s, nil
}

func (r *memRepo) SaveSyncState(_ context.Context, state model.SyncState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syncStates[state.Source] = state
	return nil
}

func (r *memRepo) CreateConflicts(_ context.Context, conflicts []model.Conflict) ([]model.Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var created []model.Conflict
	for _, c := range conflicts {
		open := slices.ContainsFunc(r.conflicts, func(s model.Conflict) bool {
			return !s.Resolved && s.UserID == c.UserID && s.Key() == c.Key()
		})
		if open {
			continue
		}
		r.seq++
		c.ID = fmt.Sprintf("cf-%d", r.seq)
		r.conflicts = append(r.conflicts, c)
		created = append(created, c)
	}
	return created, nil
}

func (r *memRepo) ListConflicts(_ context.Context, opt repository.ListConflictsOptions) ([]model.Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Conflict
	for _, c := range r.conflicts {
		if c.UserID == opt.UserID && (opt.IncludeResolved || !c.Resolved) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepo) GetOneConflict(_ context.Context, userID, id string) (model.Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conflicts {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return model.Conflict{}, nil
}

func (r *memRepo) ResolveConflict(_ context.Context, opt repository.ResolveConflictOptions) (model.Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.conflicts {
		if c.UserID == opt.UserID && c.ID == opt.ID && !c.Resolved {
			at := opt.ResolvedAt
			c.Resolved = true
			c.Resolution = opt.Resolution
			c.ResolvedAt = &at
			r.conflicts[i] = c
			return c, nil
		}
	}
	return model.Conflict{}, nil
}

func (r *memRepo) GetPreferences(context.Context, string) (model.UserPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.prefs == nil {
		return model.DefaultUserPreferences(), nil
	}
	return *r.prefs, nil
}

func (r *memRepo) SavePreferences(_ context.Context, _ string, prefs model.UserPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs = &prefs
	return nil
}

// mockPublisher records published events.
type mockPublisher struct {
	mu     sync.Mutex
	events []model.PlannerEvent
	err    error
}

func (p *mockPublisher) Publish(_ context.Context, event model.PlannerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type failingAvailability struct{}

func (failingAvailability) FreeWindows(context.Context, string, model.TimeWindow) ([]model.TimeWindow, error) {
	return nil, errors.New("calendar down")
}

type fixture struct {
	uc   *implUseCase
	repo *memRepo
	pub  *mockPublisher
	lk   *locker.Local
}

func newFixture() fixture {
	repo := newMemRepo()
	pub := &mockPublisher{}
	lk := locker.NewLocal()
	uc := New(log.NewNop(), repo, availability.Static{}, lk, pub, metrics.NewMetrics(), DefaultConfig())
	uc.now = func() time.Time { return testNow }
	return fixture{uc: uc, repo: repo, pub: pub, lk: lk}
}

var scope = model.Scope{UserID: "u1"}
