package itinerary

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// planDuration tracks the time taken for a full planning run.
	planDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "itinerary_plan_duration_seconds",
		Help:    "Time taken to plan a trip by outcome",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"outcome"}) // outcome: ok, error

	// planErrors tracks planning failures by kind.
	planErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itinerary_plan_errors_total",
		Help: "Total number of planning errors by kind",
	}, []string{"kind"})

	// dayAdjustments tracks how often the requested day count was changed.
	dayAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "itinerary_day_adjustments_total",
		Help: "Total number of day count adjustments by direction",
	}, []string{"direction"}) // direction: increased, reduced

	// tripDays tracks the distribution of final day counts.
	tripDays = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "itinerary_trip_days_count",
		Help:    "Number of days in final plans",
		Buckets: []float64{1, 2, 3, 5, 7, 10, 14, 21},
	})

	// maxDailyHours tracks the longest day of each final plan.
	maxDailyHours = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "itinerary_max_daily_drive_hours",
		Help:    "Longest daily drive time in final plans",
		Buckets: []float64{2, 4, 6, 7, 8, 10, 12},
	})

	// unbalancedPlans tracks final plans that still violate a threshold.
	unbalancedPlans = promauto.NewCounter(prometheus.CounterOpts{
		Name: "itinerary_unbalanced_plans_total",
		Help: "Total number of final plans that remain unbalanced",
	})

	// stopPoolSize tracks the number of stops supplied per planning call.
	stopPoolSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "itinerary_stop_pool_size",
		Help:    "Number of stops in the planning snapshot",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 5000},
	})
)

// MetricsRecorder provides methods to record planning metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordPlan records one planning run.
func (m *MetricsRecorder) RecordPlan(duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	planDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordError records a planning error kind.
func (m *MetricsRecorder) RecordError(kind string) {
	planErrors.WithLabelValues(kind).Inc()
}

// RecordAdjustment records a change from the requested to the final day count.
func (m *MetricsRecorder) RecordAdjustment(requested, final int) {
	switch {
	case final > requested:
		dayAdjustments.WithLabelValues("increased").Inc()
	case final < requested:
		dayAdjustments.WithLabelValues("reduced").Inc()
	}
}

// RecordPlanShape records the day count, longest day and balance of a final plan.
func (m *MetricsRecorder) RecordPlanShape(days int, maxHours float64, balanced bool) {
	tripDays.Observe(float64(days))
	maxDailyHours.Observe(maxHours)
	if !balanced {
		unbalancedPlans.Inc()
	}
}

// RecordStopPool records the size of the stop snapshot.
func (m *MetricsRecorder) RecordStopPool(size int) {
	stopPoolSize.Observe(float64(size))
}
