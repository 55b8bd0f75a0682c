package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"study-planner/internal/model"
	"study-planner/pkg/gcalendar"
	"study-planner/pkg/log"
)

var day = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

func TestComplement(t *testing.T) {
	rng := model.TimeWindow{Start: at(8, 0), End: at(18, 0)}
	tests := []struct {
		name string
		busy []model.TimeWindow
		want []model.TimeWindow
	}{
		{
			name: "no busy time",
			want: []model.TimeWindow{rng},
		},
		{
			name: "overlapping and unsorted",
			busy: []model.TimeWindow{
				{Start: at(13, 0), End: at(14, 0)},
				{Start: at(9, 0), End: at(10, 30)},
				{Start: at(10, 0), End: at(11, 0)},
			},
			want: []model.TimeWindow{
				{Start: at(8, 0), End: at(9, 0)},
				{Start: at(11, 0), End: at(13, 0)},
				{Start: at(14, 0), End: at(18, 0)},
			},
		},
		{
			name: "busy spills over both edges",
			busy: []model.TimeWindow{
				{Start: at(6, 0), End: at(9, 0)},
				{Start: at(17, 0), End: at(20, 0)},
			},
			want: []model.TimeWindow{{Start: at(9, 0), End: at(17, 0)}},
		},
		{
			name: "fully busy",
			busy: []model.TimeWindow{{Start: at(0, 0), End: at(23, 0)}},
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Complement(rng, tc.busy)
			if len(got) != len(tc.want) {
				t.Fatalf("Complement() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if !got[i].Start.Equal(tc.want[i].Start) || !got[i].End.Equal(tc.want[i].End) {
					t.Errorf("window %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

type fakeBusy struct {
	calls int
	busy  []gcalendar.Busy
	err   error
}

func (f *fakeBusy) FreeBusy(context.Context, gcalendar.FreeBusyRequest) ([]gcalendar.Busy, error) {
	f.calls++
	return f.busy, f.err
}

func TestCalendar_FreeWindowsCaches(t *testing.T) {
	fake := &fakeBusy{busy: []gcalendar.Busy{{CalendarID: "primary", Start: at(12, 0), End: at(13, 0)}}}
	p := NewCalendar(fake, CalendarConfig{}, log.NewNop(), nil)
	rng := model.TimeWindow{Start: at(8, 0), End: at(18, 0)}

	for i := 0; i < 3; i++ {
		got, err := p.FreeWindows(context.Background(), "u1", rng)
		if err != nil {
			t.Fatalf("FreeWindows() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("FreeWindows() = %v, want 2 windows", got)
		}
	}
	if fake.calls != 1 {
		t.Errorf("calendar queried %d times, want 1", fake.calls)
	}

	if _, err := p.FreeWindows(context.Background(), "u2", rng); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 2 {
		t.Errorf("other user should miss the cache, calls = %d", fake.calls)
	}

	p.Invalidate()
	if _, err := p.FreeWindows(context.Background(), "u1", rng); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 3 {
		t.Errorf("Invalidate() should force a query, calls = %d", fake.calls)
	}
}

func TestCalendar_FreeWindowsError(t *testing.T) {
	p := NewCalendar(&fakeBusy{err: errors.New("boom")}, CalendarConfig{}, log.NewNop(), nil)
	_, err := p.FreeWindows(context.Background(), "u1", model.TimeWindow{Start: at(8, 0), End: at(9, 0)})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestStatic_FreeWindows(t *testing.T) {
	s := Static{Busy: []model.TimeWindow{{Start: at(10, 0), End: at(11, 0)}}}
	got, err := s.FreeWindows(context.Background(), "u1", model.TimeWindow{Start: at(9, 0), End: at(12, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[0].End.Equal(at(10, 0)) || !got[1].Start.Equal(at(11, 0)) {
		t.Errorf("FreeWindows() = %v", got)
	}
}
