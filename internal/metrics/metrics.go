// Package metrics provides Prometheus metrics infrastructure for the
// scheduling engine. It exports metrics via an HTTP endpoint in Prometheus
// format. Adapted from reimplement/internal/metrics/metrics.go: the same
// registry-holder shape and WithLabelValues call style, repurposed from
// HTTP/database/scrape metrics to build/solve/extract metrics.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsRegistry holds every metric the scheduling engine emits and
// provides helper methods for recording them.
type MetricsRegistry struct {
	registry prometheus.Registerer

	runsTotal    prometheus.CounterVec
	solveTimeout prometheus.CounterVec

	buildDuration     prometheus.HistogramVec
	solveDuration     prometheus.HistogramVec
	objectiveValue    prometheus.HistogramVec
	queueWaitDuration prometheus.HistogramVec

	segmentCount   prometheus.GaugeVec
	variableCount  prometheus.GaugeVec
	constraintCount prometheus.GaugeVec
	queueDepth     prometheus.GaugeVec

	mu sync.RWMutex
}

// NewMetricsRegistry creates and registers every metric using the global
// default registry. It panics if any metric fails to register.
func NewMetricsRegistry() *MetricsRegistry {
	return NewMetricsRegistryWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsRegistryWithRegistry creates and registers every metric with a
// custom registry, mainly for tests. It panics if any metric fails to
// register.
func NewMetricsRegistryWithRegistry(registerer prometheus.Registerer) *MetricsRegistry {
	m := &MetricsRegistry{registry: registerer}

	m.runsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_runs_total",
			Help: "Total solve runs by terminal status",
		},
		[]string{"status"},
	)
	m.registry.MustRegister(&m.runsTotal)

	m.solveTimeout = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_solve_timeouts_total",
			Help: "Total solve calls that hit their time limit",
		},
		[]string{"stage"},
	)
	m.registry.MustRegister(&m.solveTimeout)

	m.buildDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_build_duration_seconds",
			Help:    "Model build duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"run_kind"},
	)
	m.registry.MustRegister(&m.buildDuration)

	m.solveDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_solve_duration_seconds",
			Help:    "Solve duration in seconds, per objective stage",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage", "status"},
	)
	m.registry.MustRegister(&m.solveDuration)

	m.objectiveValue = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_objective_value",
			Help:    "Achieved objective value per term key",
			Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"term"},
	)
	m.registry.MustRegister(&m.objectiveValue)

	m.queueWaitDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_queue_wait_duration_seconds",
			Help:    "Time a solve job spent queued before a worker picked it up",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"queue_name"},
	)
	m.registry.MustRegister(&m.queueWaitDuration)

	m.segmentCount = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scheduler_segment_count",
			Help: "Number of window-derived segments in the built model",
		},
		[]string{"run_kind"},
	)
	m.registry.MustRegister(&m.segmentCount)

	m.variableCount = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scheduler_variable_count",
			Help: "Number of decision variables in the built model, by family",
		},
		[]string{"family"},
	)
	m.registry.MustRegister(&m.variableCount)

	m.constraintCount = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scheduler_constraint_count",
			Help: "Number of hard constraints added to the built model, by family",
		},
		[]string{"family"},
	)
	m.registry.MustRegister(&m.constraintCount)

	m.queueDepth = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scheduler_queue_depth",
			Help: "Pending solve job queue length",
		},
		[]string{"queue_name"},
	)
	m.registry.MustRegister(&m.queueDepth)

	return m
}

// RecordRun records a run's terminal status (optimal, feasible, infeasible,
// unknown, error).
func (m *MetricsRegistry) RecordRun(status string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.runsTotal.WithLabelValues(status).Inc()
}

// RecordSolveTimeout records that a solve stage hit its configured time
// limit before reaching optimality.
func (m *MetricsRegistry) RecordSolveTimeout(stage string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.solveTimeout.WithLabelValues(stage).Inc()
}

// RecordBuildDuration records how long model.Build took for a run.
func (m *MetricsRegistry) RecordBuildDuration(runKind string, seconds float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.buildDuration.WithLabelValues(runKind).Observe(seconds)
}

// RecordSolveDuration records how long one objective stage's Solve call
// took.
func (m *MetricsRegistry) RecordSolveDuration(stage, status string, seconds float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.solveDuration.WithLabelValues(stage, status).Observe(seconds)
}

// RecordObjectiveValue records one term's achieved contribution.
func (m *MetricsRegistry) RecordObjectiveValue(term string, value float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.objectiveValue.WithLabelValues(term).Observe(value)
}

// RecordQueueWait records how long a job waited in queue before a worker
// started it.
func (m *MetricsRegistry) RecordQueueWait(queueName string, seconds float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.queueWaitDuration.WithLabelValues(queueName).Observe(seconds)
}

// SetSegmentCount sets the number of segments the current build produced.
func (m *MetricsRegistry) SetSegmentCount(runKind string, count int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.segmentCount.WithLabelValues(runKind).Set(float64(count))
}

// SetVariableCount sets the number of decision variables in a family
// (e.g. "assignment", "shortfall", "overtime").
func (m *MetricsRegistry) SetVariableCount(family string, count int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.variableCount.WithLabelValues(family).Set(float64(count))
}

// SetConstraintCount sets the number of hard constraints in a family.
func (m *MetricsRegistry) SetConstraintCount(family string, count int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.constraintCount.WithLabelValues(family).Set(float64(count))
}

// SetQueueDepth sets the pending job count for queueName.
func (m *MetricsRegistry) SetQueueDepth(queueName string, depth int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.queueDepth.WithLabelValues(queueName).Set(float64(depth))
}

// GetHandler returns an HTTP handler that serves Prometheus metrics from
// this registry.
func (m *MetricsRegistry) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry.(prometheus.Gatherer), promhttp.HandlerOpts{})
}
