package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the planner
type Metrics struct {
	// Planning pass metrics
	PassesTotal      *prometheus.CounterVec
	PassDuration     *prometheus.HistogramVec
	BlocksScheduled  prometheus.Counter
	ScheduledHours   *prometheus.GaugeVec
	WarningsTotal    *prometheus.CounterVec
	ConflictsTotal   *prometheus.CounterVec
	ProfileUpdates   prometheus.Counter
	ProfileDataPoint *prometheus.GaugeVec

	// Ingestion metrics
	ObligationsIngested *prometheus.CounterVec
	IngestRejected      *prometheus.CounterVec

	// System metrics
	StorageRetries      *prometheus.CounterVec
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	EventsPublished     *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			PassesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_passes_total",
					Help: "Total number of scheduling passes by outcome",
				},
				[]string{"outcome"},
			),
			PassDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "planner_pass_duration_seconds",
					Help:    "Scheduling pass duration in seconds",
					Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to 10s
				},
				[]string{"dry_run"},
			),
			BlocksScheduled: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "planner_blocks_scheduled_total",
					Help: "Total number of work blocks placed by committed passes",
				},
			),
			ScheduledHours: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "planner_scheduled_hours",
					Help: "Hours placed by the last pass per user",
				},
				[]string{"user_id"},
			),
			WarningsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_warnings_total",
					Help: "Total number of pass warnings by kind",
				},
				[]string{"kind"},
			),
			ConflictsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_conflicts_detected_total",
					Help: "Total number of conflicts detected by kind",
				},
				[]string{"kind"},
			),
			ProfileUpdates: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "planner_profile_updates_total",
					Help: "Total number of productivity profile updates",
				},
			),
			ProfileDataPoint: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "planner_profile_data_points",
					Help: "Rated sessions folded into the productivity profile per user",
				},
				[]string{"user_id"},
			),
			ObligationsIngested: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_obligations_ingested_total",
					Help: "Total number of obligations upserted by source",
				},
				[]string{"source"},
			),
			IngestRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_obligations_rejected_total",
					Help: "Total number of obligations rejected at ingestion by source",
				},
				[]string{"source"},
			),
			StorageRetries: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_storage_retries_total",
					Help: "Total number of retried storage operations",
				},
				[]string{"op"},
			),
			CacheHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "planner_availability_cache_hits_total",
					Help: "Free window cache hits",
				},
			),
			CacheMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "planner_availability_cache_misses_total",
					Help: "Free window cache misses",
				},
			),
			EventsPublished: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_events_published_total",
					Help: "Total number of events published to the message bus",
				},
				[]string{"kind", "success"},
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "planner_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "planner_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path"},
			),
		}
	})
	return sharedMetrics
}

// RecordPass records the outcome of one scheduling pass
func (m *Metrics) RecordPass(userID string, dryRun bool, blocks int, hours float64, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.PassesTotal.WithLabelValues(outcome).Inc()
	m.PassDuration.WithLabelValues(strconv.FormatBool(dryRun)).Observe(elapsed.Seconds())
	if err != nil || dryRun {
		return
	}
	m.BlocksScheduled.Add(float64(blocks))
	m.ScheduledHours.WithLabelValues(userID).Set(hours)
}

// RecordWarning records a pass warning
func (m *Metrics) RecordWarning(kind string) {
	m.WarningsTotal.WithLabelValues(kind).Inc()
}

// RecordConflict records a newly detected conflict
func (m *Metrics) RecordConflict(kind string) {
	m.ConflictsTotal.WithLabelValues(kind).Inc()
}

// RecordProfileUpdate records a learner run
func (m *Metrics) RecordProfileUpdate(userID string, dataPoints int) {
	m.ProfileUpdates.Inc()
	m.ProfileDataPoint.WithLabelValues(userID).Set(float64(dataPoints))
}

// RecordIngest records the result of one ingestion batch
func (m *Metrics) RecordIngest(source string, upserted, rejected int) {
	m.ObligationsIngested.WithLabelValues(source).Add(float64(upserted))
	if rejected > 0 {
		m.IngestRejected.WithLabelValues(source).Add(float64(rejected))
	}
}

// RecordRetry records a retried storage operation
func (m *Metrics) RecordRetry(op string) {
	m.StorageRetries.WithLabelValues(op).Inc()
}

// RecordCache records a free window cache lookup
func (m *Metrics) RecordCache(hit bool) {
	if hit {
		m.CacheHits.Inc()
		return
	}
	m.CacheMisses.Inc()
}

// RecordEvent records a publish attempt
func (m *Metrics) RecordEvent(kind string, success bool) {
	m.EventsPublished.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}
