package metrics

import (
	"sync"

	"github.com/arloliu/teamsplit/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// one that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	searchNodes       prometheus.Counter
	searchLeaves      prometheus.Counter
	searchValidLeaves prometheus.Counter
	searchInterrupted prometheus.Counter

	assignDuration *prometheus.HistogramVec
	assignOutcomes *prometheus.CounterVec
	fairness       *prometheus.GaugeVec
	relaxations    prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "teamsplit" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "teamsplit"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.searchNodes = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "nodes_total",
			Help:      "Recursion nodes visited by the exhaustive search.",
		})
		p.searchLeaves = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "leaves_total",
			Help:      "Complete placements reached by the exhaustive search.",
		})
		p.searchValidLeaves = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "valid_leaves_total",
			Help:      "Complete placements satisfying leader coverage and polarity separation.",
		})
		p.searchInterrupted = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "interrupted_total",
			Help:      "Exhaustive searches stopped by cancellation or deadline.",
		})

		p.assignDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of Assign calls by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		}, []string{"strategy"})
		p.assignOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "outcomes_total",
			Help:      "Assignment outcomes by strategy (valid, relaxed, infeasible, error).",
		}, []string{"strategy", "outcome"})
		p.fairness = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "fairness",
			Help:      "Fairness score (max minus min total advantage) of the last partition.",
		}, []string{"strategy"})
		p.relaxations = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "polarity_relaxations_total",
			Help:      "Individuals placed by the greedy engine while ignoring polarity.",
		})

		p.reg.MustRegister(p.searchNodes)
		p.reg.MustRegister(p.searchLeaves)
		p.reg.MustRegister(p.searchValidLeaves)
		p.reg.MustRegister(p.searchInterrupted)
		p.reg.MustRegister(p.assignDuration)
		p.reg.MustRegister(p.assignOutcomes)
		p.reg.MustRegister(p.fairness)
		p.reg.MustRegister(p.relaxations)
	})
}

// SearchMetrics implementation

// RecordSearchTree adds the explored tree size to the search counters.
func (p *PrometheusCollector) RecordSearchTree(nodes, leaves, validLeaves int64) {
	p.ensureRegistered()
	p.searchNodes.Add(float64(nodes))
	p.searchLeaves.Add(float64(leaves))
	p.searchValidLeaves.Add(float64(validLeaves))
}

// RecordSearchInterrupted increments the interruption counter.
func (p *PrometheusCollector) RecordSearchInterrupted() {
	p.ensureRegistered()
	p.searchInterrupted.Inc()
}

// AssignmentMetrics implementation

// RecordAssignmentDuration observes an Assign duration for the strategy.
func (p *PrometheusCollector) RecordAssignmentDuration(strategy string, seconds float64) {
	p.ensureRegistered()
	p.assignDuration.WithLabelValues(strategy).Observe(seconds)
}

// RecordAssignmentOutcome increments the outcome counter.
func (p *PrometheusCollector) RecordAssignmentOutcome(strategy, outcome string) {
	p.ensureRegistered()
	p.assignOutcomes.WithLabelValues(strategy, outcome).Inc()
}

// RecordFairness sets the last fairness score for the strategy.
func (p *PrometheusCollector) RecordFairness(strategy string, score float64) {
	p.ensureRegistered()
	p.fairness.WithLabelValues(strategy).Set(score)
}

// RecordRelaxations adds to the relaxation counter.
func (p *PrometheusCollector) RecordRelaxations(count int) {
	if count <= 0 {
		return
	}
	p.ensureRegistered()
	p.relaxations.Add(float64(count))
}
