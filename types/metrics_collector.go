package types

// MetricsCollector records assignment metrics.
//
// Implementations must be safe for concurrent use: the parallel exhaustive
// search reports from several goroutines.
type MetricsCollector interface {
	SearchMetrics
	AssignmentMetrics
}

// SearchMetrics covers the exhaustive search tree.
type SearchMetrics interface {
	// RecordSearchTree records the size of an explored search tree.
	//
	// Parameters:
	//   - nodes: Recursion nodes visited
	//   - leaves: Complete placements reached
	//   - validLeaves: Complete placements satisfying every hard constraint
	RecordSearchTree(nodes, leaves, validLeaves int64)

	// RecordSearchInterrupted records a search stopped by its context.
	RecordSearchInterrupted()
}

// AssignmentMetrics covers one Assign call of any strategy.
type AssignmentMetrics interface {
	// RecordAssignmentDuration records how long a strategy ran.
	//
	// Parameters:
	//   - strategy: Strategy name ("exhaustive", "greedy")
	//   - seconds: Wall-clock duration in seconds
	RecordAssignmentDuration(strategy string, seconds float64)

	// RecordAssignmentOutcome counts assignment results.
	//
	// Parameters:
	//   - strategy: Strategy name
	//   - outcome: "valid", "relaxed", "invalid", "infeasible", "error"
	RecordAssignmentOutcome(strategy, outcome string)

	// RecordFairness records the fairness score of a produced partition.
	RecordFairness(strategy string, score float64)

	// RecordRelaxations counts polarity relaxations made by the greedy engine.
	RecordRelaxations(count int)
}
