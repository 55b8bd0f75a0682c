package usecase

import (
	"time"

	"study-planner/internal/availability"
	"study-planner/internal/engine/builder"
	"study-planner/internal/engine/detector"
	"study-planner/internal/engine/learner"
	"study-planner/internal/engine/scorer"
	"study-planner/internal/metrics"
	"study-planner/internal/planner/repository"
	"study-planner/pkg/eventbus"
	"study-planner/pkg/locker"
	"study-planner/pkg/log"
)

// Config holds the engine configuration and the pass settings.
type Config struct {
	Scorer   scorer.Config
	Learner  learner.Config
	Detector detector.Config
	Builder  builder.Config

	LockTTL              time.Duration
	DeadlineWarningHours []int
	ScheduleViewDays     int

	// Cold-start block and break lengths. Zero keeps the profile defaults.
	DefaultBlockMinutes int
	DefaultBreakMinutes int
	// Cold-start peak and avoid hours. Nil keeps the profile defaults.
	DefaultPeakHours  []int
	DefaultAvoidHours []int
}

// DefaultConfig returns the engine defaults with a two minute pass lock.
func DefaultConfig() Config {
	return Config{
		Scorer:               scorer.DefaultConfig(),
		Learner:              learner.DefaultConfig(),
		Detector:             detector.DefaultConfig(),
		Builder:              builder.DefaultConfig(),
		LockTTL:              2 * time.Minute,
		DeadlineWarningHours: []int{24, 4, 1},
		ScheduleViewDays:     7,
	}
}

// implUseCase is the private implementation of planner.UseCase.
type implUseCase struct {
	repo      repository.Repository
	avail     availability.Provider
	locker    locker.Locker
	publisher eventbus.Publisher
	metrics   *metrics.Metrics
	l         log.Logger
	cfg       Config

	scorer   scorer.Scorer
	learner  learner.Learner
	detector detector.Detector
	builder  builder.Builder
	now      func() time.Time
}

// New creates a new planner UseCase implementation. A nil locker, publisher or
// metrics falls back to an in-process lock, no events and the shared metrics.
func New(
	l log.Logger,
	repo repository.Repository,
	avail availability.Provider,
	lk locker.Locker,
	publisher eventbus.Publisher,
	m *metrics.Metrics,
	cfg Config,
) *implUseCase {
	if lk == nil {
		lk = locker.NewLocal()
	}
	if publisher == nil {
		publisher = eventbus.Nop{}
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultConfig().LockTTL
	}
	if len(cfg.DeadlineWarningHours) == 0 {
		cfg.DeadlineWarningHours = DefaultConfig().DeadlineWarningHours
	}
	if cfg.ScheduleViewDays <= 0 {
		cfg.ScheduleViewDays = DefaultConfig().ScheduleViewDays
	}

	b := builder.New(cfg.Builder)
	cfg.Builder = b.Config()

	return &implUseCase{
		repo:      repo,
		avail:     avail,
		locker:    lk,
		publisher: publisher,
		metrics:   m,
		l:         l,
		cfg:       cfg,
		scorer:    scorer.New(cfg.Scorer),
		learner:   learner.New(cfg.Learner),
		detector:  detector.New(cfg.Detector),
		builder:   b,
		now:       time.Now,
	}
}
