package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"

	"study-planner/internal/engine/builder"
	"study-planner/internal/engine/detector"
	"study-planner/internal/engine/learner"
	"study-planner/internal/engine/scorer"
	"study-planner/internal/model"
	"study-planner/internal/planner/usecase"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Planner engine
	Planner      PlannerConfig
	Productivity ProductivityConfig
	Learner      LearnerConfig
	Scorer       ScorerConfig

	// Infrastructure
	Postgres       PostgresConfig
	Redis          RedisConfig
	NATS           NATSConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	RequestsPerMin int
	Burst          int
	MaxUsers       int
	TTL            time.Duration
}

type PlannerConfig struct {
	Timezone             string
	HorizonDays          int
	MaxDailyDeepWorkHrs  float64
	MinBlockMinutes      int
	DeadlineWarningHours []int
	ScheduleViewDays     int
	LockTTL              time.Duration
	DuplicateWindow      time.Duration
	SimilarityThreshold  float64
	ScaleByCompletion    bool
}

type ProductivityConfig struct {
	DefaultBlockMinutes int
	DefaultBreakMinutes int
	PeakHours           []int
	AvoidHours          []int
}

type LearnerConfig struct {
	MaxSamples          int
	ConfidenceThreshold int
	PeakCount           int
	AvoidCount          int
	MinCompletionRatio  float64
	MaxCompletionRatio  float64
}

type ScorerConfig struct {
	HorizonDays             int
	UrgencyFloor            float64
	OverduePenalty          float64
	DefaultCourseDifficulty float64
	UrgencyWeight           float64
	DifficultyWeight        float64
	ImportanceWeight        float64
	CategoryWeights         map[string]float64
}

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	RetryAttempts   int
	RetryBaseDelay  time.Duration
	RetryMaxDelay   time.Duration
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type NATSConfig struct {
	URL            string
	StreamName     string
	ConsumerPrefix string
	Timeout        time.Duration
	MaxAge         time.Duration
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarIDs     []string
	CacheSize       int
	CacheTTL        time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")
	cfg.RateLimit.MaxUsers = viper.GetInt("rate_limit.max_users")
	cfg.RateLimit.TTL = viper.GetDuration("rate_limit.ttl")

	// Planner engine
	cfg.Planner.Timezone = viper.GetString("planner.timezone")
	cfg.Planner.HorizonDays = viper.GetInt("planner.horizon_days")
	cfg.Planner.MaxDailyDeepWorkHrs = viper.GetFloat64("planner.max_daily_deep_work_hours")
	cfg.Planner.MinBlockMinutes = viper.GetInt("planner.min_block_minutes")
	cfg.Planner.DeadlineWarningHours = viper.GetIntSlice("planner.deadline_warning_hours")
	cfg.Planner.ScheduleViewDays = viper.GetInt("planner.schedule_view_days")
	cfg.Planner.LockTTL = viper.GetDuration("planner.lock_ttl")
	cfg.Planner.DuplicateWindow = viper.GetDuration("planner.duplicate_window")
	cfg.Planner.SimilarityThreshold = viper.GetFloat64("planner.similarity_threshold")
	cfg.Planner.ScaleByCompletion = viper.GetBool("planner.scale_by_completion_ratio")

	cfg.Productivity.DefaultBlockMinutes = viper.GetInt("productivity.default_block_minutes")
	cfg.Productivity.DefaultBreakMinutes = viper.GetInt("productivity.default_break_minutes")
	cfg.Productivity.PeakHours = viper.GetIntSlice("productivity.peak_hours")
	cfg.Productivity.AvoidHours = viper.GetIntSlice("productivity.avoid_hours")

	cfg.Learner.MaxSamples = viper.GetInt("learner.max_samples")
	cfg.Learner.ConfidenceThreshold = viper.GetInt("learner.confidence_threshold")
	cfg.Learner.PeakCount = viper.GetInt("learner.peak_count")
	cfg.Learner.AvoidCount = viper.GetInt("learner.avoid_count")
	cfg.Learner.MinCompletionRatio = viper.GetFloat64("learner.min_completion_ratio")
	cfg.Learner.MaxCompletionRatio = viper.GetFloat64("learner.max_completion_ratio")

	cfg.Scorer.HorizonDays = viper.GetInt("scorer.horizon_days")
	cfg.Scorer.UrgencyFloor = viper.GetFloat64("scorer.urgency_floor")
	cfg.Scorer.OverduePenalty = viper.GetFloat64("scorer.overdue_penalty")
	cfg.Scorer.DefaultCourseDifficulty = viper.GetFloat64("scorer.default_course_difficulty")
	cfg.Scorer.UrgencyWeight = viper.GetFloat64("scorer.weights.urgency")
	cfg.Scorer.DifficultyWeight = viper.GetFloat64("scorer.weights.difficulty")
	cfg.Scorer.ImportanceWeight = viper.GetFloat64("scorer.weights.importance")
	if viper.IsSet("scorer.category_weights") {
		cfg.Scorer.CategoryWeights = make(map[string]float64)
		for k, v := range viper.GetStringMap("scorer.category_weights") {
			cfg.Scorer.CategoryWeights[k] = toFloat(v)
		}
	}

	// Infrastructure
	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}
	cfg.Postgres.MaxOpenConns = viper.GetInt("postgres.max_open_conns")
	cfg.Postgres.MaxIdleConns = viper.GetInt("postgres.max_idle_conns")
	cfg.Postgres.ConnMaxLifetime = viper.GetDuration("postgres.conn_max_lifetime")
	cfg.Postgres.RetryAttempts = viper.GetInt("postgres.retry_attempts")
	cfg.Postgres.RetryBaseDelay = viper.GetDuration("postgres.retry_base_delay")
	cfg.Postgres.RetryMaxDelay = viper.GetDuration("postgres.retry_max_delay")

	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.KeyPrefix = viper.GetString("redis.key_prefix")

	cfg.NATS.URL = viper.GetString("nats.url")
	cfg.NATS.StreamName = viper.GetString("nats.stream_name")
	cfg.NATS.ConsumerPrefix = viper.GetString("nats.consumer_prefix")
	cfg.NATS.Timeout = viper.GetDuration("nats.timeout")
	cfg.NATS.MaxAge = viper.GetDuration("nats.max_age")

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}
	cfg.GoogleCalendar.CalendarIDs = splitList(viper.GetString("google_calendar.calendar_ids"))
	cfg.GoogleCalendar.CacheSize = viper.GetInt("google_calendar.cache_size")
	cfg.GoogleCalendar.CacheTTL = viper.GetDuration("google_calendar.cache_ttl")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.shutdown_timeout", "10s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("rate_limit.requests_per_min", 120)
	viper.SetDefault("rate_limit.max_users", 1000)
	viper.SetDefault("rate_limit.ttl", "5m")

	// Planner defaults
	viper.SetDefault("planner.timezone", "America/New_York")
	viper.SetDefault("planner.horizon_days", 30)
	viper.SetDefault("planner.max_daily_deep_work_hours", 6)
	viper.SetDefault("planner.min_block_minutes", 30)
	viper.SetDefault("planner.deadline_warning_hours", []int{24, 4, 1})
	viper.SetDefault("planner.schedule_view_days", 7)
	viper.SetDefault("planner.lock_ttl", "2m")
	viper.SetDefault("planner.duplicate_window", "2h")
	viper.SetDefault("planner.similarity_threshold", 0.9)
	viper.SetDefault("planner.scale_by_completion_ratio", false)

	viper.SetDefault("productivity.default_block_minutes", 90)
	viper.SetDefault("productivity.default_break_minutes", 15)
	viper.SetDefault("productivity.peak_hours", []int{8, 9, 10, 15, 16})
	viper.SetDefault("productivity.avoid_hours", []int{13, 14, 22, 23})

	viper.SetDefault("learner.max_samples", 20)
	viper.SetDefault("learner.confidence_threshold", 10)
	viper.SetDefault("learner.peak_count", 5)
	viper.SetDefault("learner.avoid_count", 4)
	viper.SetDefault("learner.min_completion_ratio", 0.2)
	viper.SetDefault("learner.max_completion_ratio", 3.0)

	viper.SetDefault("scorer.horizon_days", 30)
	viper.SetDefault("scorer.urgency_floor", 0.05)
	viper.SetDefault("scorer.overdue_penalty", 0.5)
	viper.SetDefault("scorer.default_course_difficulty", 0.5)
	viper.SetDefault("scorer.weights.urgency", 0.5)
	viper.SetDefault("scorer.weights.difficulty", 0.2)
	viper.SetDefault("scorer.weights.importance", 0.3)

	// Infrastructure defaults
	viper.SetDefault("postgres.max_open_conns", 20)
	viper.SetDefault("postgres.max_idle_conns", 5)
	viper.SetDefault("postgres.conn_max_lifetime", "30m")
	viper.SetDefault("postgres.retry_attempts", 3)
	viper.SetDefault("postgres.retry_base_delay", "100ms")
	viper.SetDefault("postgres.retry_max_delay", "2s")
	viper.SetDefault("redis.key_prefix", "planner:lock:")
	viper.SetDefault("nats.stream_name", "PLANNER")
	viper.SetDefault("nats.consumer_prefix", "")
	viper.SetDefault("nats.timeout", "10s")
	viper.SetDefault("nats.max_age", "24h")
	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_ids", "primary")
	viper.SetDefault("google_calendar.cache_size", 256)
	viper.SetDefault("google_calendar.cache_ttl", "5m")
}

// EngineConfigs converts the planner sections into the use case configuration.
func (c *Config) EngineConfigs() (usecase.Config, error) {
	loc, err := time.LoadLocation(c.Planner.Timezone)
	if err != nil {
		return usecase.Config{}, fmt.Errorf("planner.timezone %q: %w", c.Planner.Timezone, err)
	}

	out := usecase.DefaultConfig()

	out.Scorer.Horizon = time.Duration(c.Scorer.HorizonDays) * 24 * time.Hour
	out.Scorer.UrgencyFloor = c.Scorer.UrgencyFloor
	out.Scorer.OverduePenalty = c.Scorer.OverduePenalty
	out.Scorer.DefaultCourseDifficulty = c.Scorer.DefaultCourseDifficulty
	out.Scorer.Weights = scorer.Weights{
		Urgency:    c.Scorer.UrgencyWeight,
		Difficulty: c.Scorer.DifficultyWeight,
		Importance: c.Scorer.ImportanceWeight,
	}
	for k, v := range c.Scorer.CategoryWeights {
		cat := model.Category(strings.ToLower(k))
		if !cat.Valid() {
			return usecase.Config{}, fmt.Errorf("scorer.category_weights: unknown category %q", k)
		}
		out.Scorer.CategoryWeights[cat] = v
	}

	out.Learner = learner.Config{
		MaxSamples:          c.Learner.MaxSamples,
		ConfidenceThreshold: c.Learner.ConfidenceThreshold,
		PeakCount:           c.Learner.PeakCount,
		AvoidCount:          c.Learner.AvoidCount,
		MinCompletionRatio:  c.Learner.MinCompletionRatio,
		MaxCompletionRatio:  c.Learner.MaxCompletionRatio,
	}
	out.Detector = detector.Config{
		DuplicateWindow:     c.Planner.DuplicateWindow,
		SimilarityThreshold: c.Planner.SimilarityThreshold,
	}
	out.Builder = builder.Config{
		MaxDailyDeepWork: time.Duration(c.Planner.MaxDailyDeepWorkHrs * float64(time.Hour)),
		HorizonDays:      c.Planner.HorizonDays,
		MinBlock:         time.Duration(c.Planner.MinBlockMinutes) * time.Minute,
		Location:         loc,

		ScaleByCompletionRatio: c.Planner.ScaleByCompletion,
	}

	out.DefaultBlockMinutes = c.Productivity.DefaultBlockMinutes
	out.DefaultBreakMinutes = c.Productivity.DefaultBreakMinutes
	for _, h := range slices.Concat(c.Productivity.PeakHours, c.Productivity.AvoidHours) {
		if h < 0 || h > 23 {
			return usecase.Config{}, fmt.Errorf("productivity: hour %d outside 0-23", h)
		}
	}
	out.DefaultPeakHours = slices.Clone(c.Productivity.PeakHours)
	out.DefaultAvoidHours = slices.Clone(c.Productivity.AvoidHours)

	if c.Planner.LockTTL > 0 {
		out.LockTTL = c.Planner.LockTTL
	}
	if len(c.Planner.DeadlineWarningHours) > 0 {
		out.DeadlineWarningHours = c.Planner.DeadlineWarningHours
	}
	if c.Planner.ScheduleViewDays > 0 {
		out.ScheduleViewDays = c.Planner.ScheduleViewDays
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		var f float64
		_, _ = fmt.Sscanf(n, "%g", &f)
		return f
	}
	return 0
}
