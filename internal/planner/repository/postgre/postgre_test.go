package postgre

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"study-planner/internal/model"
	repo "study-planner/internal/planner/repository"
	"study-planner/pkg/log"
)

func newTestRepo() *implRepository {
	return &implRepository{l: log.NewNop(), retry: retryPolicy{attempts: 3}, now: time.Now}
}

func TestBuildListObligationsQuery(t *testing.T) {
	r := newTestRepo()
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	query, args, err := r.buildListObligationsQuery(repo.ListObligationsOptions{
		UserID:   "u1",
		Statuses: []model.ObligationStatus{model.StatusPending, model.StatusSnoozed},
		Category: model.CategoryExam,
		DueTo:    due,
		Limit:    10,
		OrderBy:  "priority_score DESC",
	})
	if err != nil {
		t.Fatalf("buildListObligationsQuery() error = %v", err)
	}

	wantParts := []string{
		"FROM obligations WHERE user_id = $1",
		"status IN ($2,$3)",
		"category = $4",
		"due_date < $5",
		"ORDER BY priority_score DESC, id ASC",
		"LIMIT 10",
	}
	for _, part := range wantParts {
		if !strings.Contains(query, part) {
			t.Errorf("query %q missing %q", query, part)
		}
	}
	if len(args) != 5 {
		t.Fatalf("len(args) = %d, want 5", len(args))
	}
	if args[0] != "u1" || args[1] != "pending" || args[2] != "snoozed" || args[3] != "exam" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildListObligationsQuery_RejectsUnknownOrder(t *testing.T) {
	r := newTestRepo()
	query, _, err := r.buildListObligationsQuery(repo.ListObligationsOptions{
		UserID:  "u1",
		OrderBy: "title; DROP TABLE obligations",
	})
	if err != nil {
		t.Fatalf("buildListObligationsQuery() error = %v", err)
	}
	if !strings.Contains(query, "ORDER BY due_date ASC, id ASC") {
		t.Errorf("query %q should fall back to due_date order", query)
	}
	if strings.Contains(query, "DROP") {
		t.Errorf("query %q must not carry the raw order", query)
	}
}

func TestBuildGetOneObligationQuery(t *testing.T) {
	r := newTestRepo()

	t.Run("by id", func(t *testing.T) {
		query, args, err := r.buildGetOneObligationQuery(repo.GetOneObligationOptions{UserID: "u1", ID: "o1"})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(query, "id = $2") || len(args) != 2 {
			t.Errorf("query = %q args = %v", query, args)
		}
	})

	t.Run("by source", func(t *testing.T) {
		query, args, err := r.buildGetOneObligationQuery(repo.GetOneObligationOptions{
			UserID: "u1", Source: model.SourceGmail, SourceID: "m-1",
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(query, "source = $2 AND source_id = $3") {
			t.Errorf("query = %q", query)
		}
		if len(args) != 3 || args[1] != "gmail" || args[2] != "m-1" {
			t.Errorf("args = %v", args)
		}
	})
}

func TestBuildUpsertObligationQuery(t *testing.T) {
	r := newTestRepo()
	query, args, err := r.buildUpsertObligationQuery("id-1", repo.UpsertObligationOptions{
		UserID:   "u1",
		Source:   model.SourceCalendar,
		SourceID: "evt-1",
		Title:    "Midterm",
		DueDate:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Category: model.CategoryExam,
	})
	if err != nil {
		t.Fatalf("buildUpsertObligationQuery() error = %v", err)
	}
	if !strings.HasPrefix(query, "INSERT INTO obligations") {
		t.Errorf("query = %q", query)
	}
	if !strings.Contains(query, "ON CONFLICT (user_id, source, source_id) DO UPDATE") {
		t.Errorf("query %q missing upsert clause", query)
	}
	if strings.Contains(query, "status = EXCLUDED.status") {
		t.Errorf("upsert must not overwrite the status")
	}
	if len(args) != 13 {
		t.Fatalf("len(args) = %d, want 13", len(args))
	}
	deps, ok := args[11].(pq.StringArray)
	if !ok || deps == nil {
		t.Errorf("dependencies arg = %#v, want empty pq.StringArray", args[11])
	}
}

func TestBuildListBlocksQuery(t *testing.T) {
	r := newTestRepo()
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	query, args, err := r.buildListBlocksQuery(repo.ListBlocksOptions{
		UserID:        "u1",
		From:          from,
		To:            from.AddDate(0, 0, 7),
		Statuses:      []model.BlockStatus{model.BlockScheduled},
		ObligationIDs: []string{"a", "b"},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"end_time > $2", "start_time < $3", "status IN ($4)", "obligation_id IN ($5,$6)", "ORDER BY start_time ASC, id ASC"} {
		if !strings.Contains(query, part) {
			t.Errorf("query %q missing %q", query, part)
		}
	}
	if len(args) != 6 {
		t.Errorf("len(args) = %d, want 6", len(args))
	}
}

func TestBuildUpdateBlockStatusQuery(t *testing.T) {
	r := newTestRepo()
	query, args, err := r.buildUpdateBlockStatusQuery(repo.UpdateBlockStatusOptions{
		UserID: "u1",
		ID:     "b1",
		From:   model.BlockScheduled,
		Status: model.BlockSkipped,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(query, "UPDATE scheduled_blocks SET status = $1") {
		t.Errorf("query = %q", query)
	}
	if !strings.Contains(query, "status = $") || !strings.Contains(query, "RETURNING id, user_id") {
		t.Errorf("query %q must compare the current status and return the row", query)
	}
	if len(args) != 4 || args[0] != "skipped" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildUpsertCourseQuery(t *testing.T) {
	r := newTestRepo()
	query, args, err := r.buildUpsertCourseQuery(model.Course{
		ID: "c1", UserID: "u1", Name: "Algorithms", Code: "CS301", DifficultyEstimate: 0.8, CreditHours: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"INSERT INTO courses", "ON CONFLICT (id) DO UPDATE", "WHERE courses.user_id = EXCLUDED.user_id", "RETURNING id"} {
		if !strings.Contains(query, part) {
			t.Errorf("query %q missing %q", query, part)
		}
	}
	if len(args) != 6 || args[4] != 0.8 {
		t.Errorf("args = %v", args)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection failure", &pq.Error{Code: "08006"}, true},
		{"serialization", &pq.Error{Code: "40001"}, true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"too many connections", &pq.Error{Code: "53300"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"syntax error", &pq.Error{Code: "42601"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isTransient(tc.err); got != tc.want {
				t.Errorf("isTransient() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries transient errors", func(t *testing.T) {
		r := newTestRepo()
		calls := 0
		err := r.withRetry(ctx, "op", func(context.Context) error {
			calls++
			if calls < 3 {
				return &pq.Error{Code: "40001"}
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Errorf("err = %v calls = %d, want nil and 3", err, calls)
		}
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		r := newTestRepo()
		calls := 0
		perm := &pq.Error{Code: "23505"}
		err := r.withRetry(ctx, "op", func(context.Context) error {
			calls++
			return perm
		})
		if !errors.Is(err, perm) || calls != 1 {
			t.Errorf("err = %v calls = %d, want permanent error after 1 call", err, calls)
		}
	})

	t.Run("gives up after the attempts", func(t *testing.T) {
		r := newTestRepo()
		calls := 0
		err := r.withRetry(ctx, "op", func(context.Context) error {
			calls++
			return &pq.Error{Code: "08006"}
		})
		if err == nil || calls != 3 {
			t.Errorf("err = %v calls = %d, want error after 3 calls", err, calls)
		}
	})

	t.Run("honours cancellation", func(t *testing.T) {
		r := newTestRepo()
		r.retry.base = time.Hour
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := r.withRetry(cctx, "op", func(context.Context) error {
			return &pq.Error{Code: "08006"}
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestPreferencesCodec(t *testing.T) {
	in := model.DefaultUserPreferences()
	in.SleepStartHour = 22
	in.BufferHours[model.CategoryExam] = 48
	in.Notifications[model.NotifyWeeklyPlan] = false
	in.CategoryWeightOverrides[model.CategoryLab] = 0.9

	kv, err := encodePreferences(in)
	if err != nil {
		t.Fatalf("encodePreferences() error = %v", err)
	}
	out, err := decodePreferences(kv)
	if err != nil {
		t.Fatalf("decodePreferences() error = %v", err)
	}

	if out.SleepStartHour != 22 || out.SleepEndHour != 8 {
		t.Errorf("sleep = %d-%d, want 22-8", out.SleepStartHour, out.SleepEndHour)
	}
	if out.BufferHours[model.CategoryExam] != 48 || out.BufferHours[model.CategoryProject] != 12 {
		t.Errorf("buffers = %v", out.BufferHours)
	}
	if out.Notifications[model.NotifyWeeklyPlan] {
		t.Errorf("weekly plan notification should be off")
	}
	if out.CategoryWeightOverrides[model.CategoryLab] != 0.9 {
		t.Errorf("overrides = %v", out.CategoryWeightOverrides)
	}
}

func TestDecodePreferences_PartialKeysKeepDefaults(t *testing.T) {
	out, err := decodePreferences(map[string][]byte{
		prefBufferHours: []byte(`{"exam": 36}`),
	})
	if err != nil {
		t.Fatalf("decodePreferences() error = %v", err)
	}
	if out.BufferHours[model.CategoryExam] != 36 {
		t.Errorf("exam buffer = %v, want 36", out.BufferHours[model.CategoryExam])
	}
	if out.BufferHours[model.CategoryAssignment] != 4 {
		t.Errorf("assignment buffer = %v, want default 4", out.BufferHours[model.CategoryAssignment])
	}
	if out.SleepStartHour != 23 {
		t.Errorf("sleep start = %d, want default 23", out.SleepStartHour)
	}
}
