// Package metrics provides Prometheus metrics for the zmanim schedule service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Feed acquisition
	feedFetches  prometheus.Counter
	feedRetries  prometheus.Counter
	feedFailures prometheus.Counter

	// Raw-day cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Derivation and stitching
	daysDerived    prometheus.Counter
	deriveFailures prometheus.Counter
	weeklyFillIns  prometheus.Counter

	// Schedule builds
	buildDuration prometheus.Histogram
	scheduleRows  prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithHistogramBuckets overrides the default duration buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets the Prometheus registerer used for all metrics.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "zmanim",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.feedFetches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_fetches_total",
		Help:      "Total number of zmanim feed fetch attempts.",
	})
	m.feedRetries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_retries_total",
		Help:      "Total number of feed fetch retries after empty or failed responses.",
	})
	m.feedFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_failures_total",
		Help:      "Total number of days whose feed fetch exhausted all attempts.",
	})
	m.cacheHits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_hits_total",
		Help:      "Raw-day cache hits.",
	})
	m.cacheMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_misses_total",
		Help:      "Raw-day cache misses.",
	})
	m.daysDerived = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "days_derived_total",
		Help:      "Days successfully derived by the rule engine.",
	})
	m.deriveFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "derive_failures_total",
		Help:      "Days whose derivation failed (unparseable required time).",
	})
	m.weeklyFillIns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "weekly_fill_ins_total",
		Help:      "Mincha fill-ins applied by the week stitcher.",
	})
	m.buildDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "schedule_build_duration_seconds",
		Help:      "End-to-end schedule generation duration.",
		Buckets:   m.histogramBuckets,
	})
	m.scheduleRows = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "schedule_rows",
		Help:      "Rows in the most recently generated schedule.",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration by endpoint and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the custom registry backing the global manager,
// suitable for promhttp.HandlerFor.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

func RecordFeedFetch()   { globalManager.feedFetches.Inc() }
func RecordFeedRetry()   { globalManager.feedRetries.Inc() }
func RecordFeedFailure() { globalManager.feedFailures.Inc() }

func RecordCacheHit()  { globalManager.cacheHits.Inc() }
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

func RecordDayDerived()    { globalManager.daysDerived.Inc() }
func RecordDeriveFailure() { globalManager.deriveFailures.Inc() }
func RecordWeeklyFillIn()  { globalManager.weeklyFillIns.Inc() }

// ObserveBuildDuration records one full schedule generation.
func ObserveBuildDuration(d time.Duration) {
	globalManager.buildDuration.Observe(d.Seconds())
}

// UpdateScheduleRows records the size of the latest schedule.
func UpdateScheduleRows(n int) {
	globalManager.scheduleRows.Set(float64(n))
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// ObserveHTTPRequestDuration records the duration of one HTTP request.
func ObserveHTTPRequestDuration(endpoint, method string, d time.Duration) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}
