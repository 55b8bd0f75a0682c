package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"study-planner/internal/metrics"
	"study-planner/internal/model"
	"study-planner/pkg/gcalendar"
	"study-planner/pkg/log"
)

// BusyQuerier is the part of the calendar client the provider needs.
type BusyQuerier interface {
	FreeBusy(ctx context.Context, req gcalendar.FreeBusyRequest) ([]gcalendar.Busy, error)
}

// CalendarConfig configures the calendar-backed provider.
type CalendarConfig struct {
	CalendarIDs []string
	Timezone    string
	CacheSize   int
	CacheTTL    time.Duration
}

// Calendar derives free windows from Google Calendar free/busy data. Results
// are cached per user and range.
type Calendar struct {
	client BusyQuerier
	cfg    CalendarConfig
	cache  *expirable.LRU[string, []model.TimeWindow]
	l      log.Logger
	m      *metrics.Metrics
}

// NewCalendar creates a calendar provider. m may be nil.
func NewCalendar(client BusyQuerier, cfg CalendarConfig, l log.Logger, m *metrics.Metrics) *Calendar {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &Calendar{
		client: client,
		cfg:    cfg,
		cache:  expirable.NewLRU[string, []model.TimeWindow](cfg.CacheSize, nil, cfg.CacheTTL),
		l:      l,
		m:      m,
	}
}

// FreeWindows implements Provider.
func (c *Calendar) FreeWindows(ctx context.Context, userID string, rng model.TimeWindow) ([]model.TimeWindow, error) {
	key := fmt.Sprintf("%s|%d|%d", userID, rng.Start.Unix(), rng.End.Unix())
	if windows, ok := c.cache.Get(key); ok {
		c.record(true)
		return windows, nil
	}
	c.record(false)

	busy, err := c.client.FreeBusy(ctx, gcalendar.FreeBusyRequest{
		CalendarIDs: c.cfg.CalendarIDs,
		TimeMin:     rng.Start,
		TimeMax:     rng.End,
		Timezone:    c.cfg.Timezone,
	})
	if err != nil {
		c.l.Errorf(ctx, "availability.Calendar.FreeWindows: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	spans := make([]model.TimeWindow, len(busy))
	for i, b := range busy {
		spans[i] = model.TimeWindow{Start: b.Start, End: b.End}
	}
	windows := Complement(rng, spans)
	c.cache.Add(key, windows)
	return windows, nil
}

// Invalidate drops every cached result.
func (c *Calendar) Invalidate() {
	c.cache.Purge()
}

func (c *Calendar) record(hit bool) {
	if c.m != nil {
		c.m.RecordCache(hit)
	}
}
