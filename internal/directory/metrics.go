package directory

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks snapshot cache hits per layer.
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_cache_hits_total",
		Help: "Total number of stop snapshot cache hits by layer",
	}, []string{"layer"}) // layer: memory, redis

	// cacheMisses tracks snapshot cache misses per layer.
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_cache_misses_total",
		Help: "Total number of stop snapshot cache misses by layer",
	}, []string{"layer"})

	// loadDuration tracks the time taken to load a snapshot from the source.
	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "directory_load_duration_seconds",
		Help:    "Time taken to load the stop snapshot from its source",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})

	// loadErrors tracks snapshot load errors.
	loadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_load_errors_total",
		Help: "Total number of stop snapshot load errors",
	})

	// staleServed tracks stale snapshots served while the source is failing.
	staleServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "directory_stale_snapshots_served_total",
		Help: "Total number of stale stop snapshots served",
	})

	// snapshotAge tracks the age of the in-memory snapshot.
	snapshotAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "directory_snapshot_age_seconds",
		Help: "Age of the in-memory stop snapshot in seconds",
	})

	// breakerState tracks the stop source breaker state (0 closed, 1 open, 2 half-open).
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "directory_source_breaker_state",
		Help: "Stop source breaker state by name",
	}, []string{"name"})
)

// MetricsRecorder provides methods to record directory metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordCacheHit records a cache hit for a layer.
func (m *MetricsRecorder) RecordCacheHit(layer string) {
	cacheHits.WithLabelValues(layer).Inc()
}

// RecordCacheMiss records a cache miss for a layer.
func (m *MetricsRecorder) RecordCacheMiss(layer string) {
	cacheMisses.WithLabelValues(layer).Inc()
}

// RecordLoad records a source load operation.
func (m *MetricsRecorder) RecordLoad(duration time.Duration, success bool) {
	loadDuration.Observe(duration.Seconds())
	if !success {
		loadErrors.Inc()
	}
}

// RecordStaleServed records a stale snapshot being served.
func (m *MetricsRecorder) RecordStaleServed() {
	staleServed.Inc()
}

// RecordSnapshotAge records the age of the current snapshot.
func (m *MetricsRecorder) RecordSnapshotAge(age time.Duration) {
	snapshotAge.Set(age.Seconds())
}

// RecordBreakerState records a breaker state change.
func (m *MetricsRecorder) RecordBreakerState(name string, state BreakerState) {
	breakerState.WithLabelValues(name).Set(float64(state))
}
