package metrics

import "github.com/arloliu/teamsplit/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Used by default by every strategy and by the
// Planner when no collector is configured.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	engine := strategy.NewGreedy(strategy.WithGreedyMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SearchMetrics implementation

// RecordSearchTree discards the search tree size.
func (n *NopMetrics) RecordSearchTree(_ /* nodes */, _ /* leaves */, _ /* validLeaves */ int64) {
	// No-op
}

// RecordSearchInterrupted discards the interruption.
func (n *NopMetrics) RecordSearchInterrupted() {
	// No-op
}

// AssignmentMetrics implementation

// RecordAssignmentDuration discards the duration.
func (n *NopMetrics) RecordAssignmentDuration(_ /* strategy */ string, _ /* seconds */ float64) {
	// No-op
}

// RecordAssignmentOutcome discards the outcome.
func (n *NopMetrics) RecordAssignmentOutcome(_ /* strategy */, _ /* outcome */ string) {
	// No-op
}

// RecordFairness discards the fairness score.
func (n *NopMetrics) RecordFairness(_ /* strategy */ string, _ /* score */ float64) {
	// No-op
}

// RecordRelaxations discards the relaxation count.
func (n *NopMetrics) RecordRelaxations(_ /* count */ int) {
	// No-op
}
