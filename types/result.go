package types

import "time"

// SearchStats describes the work done by a strategy.
type SearchStats struct {
	// Nodes is the number of recursion nodes visited (exhaustive only).
	Nodes int64 `json:"nodes"`

	// Leaves is the number of complete placements reached (exhaustive only).
	Leaves int64 `json:"leaves"`

	// ValidLeaves is the number of complete placements that satisfied every constraint.
	ValidLeaves int64 `json:"validLeaves"`

	// Branches is the number of independent subtrees searched in parallel (0 when sequential).
	Branches int `json:"branches"`
}

// Result is the outcome of one assignment.
type Result struct {
	// Strategy is the name of the strategy that produced the result.
	Strategy string `json:"strategy"`

	// Partition is the populated partition. Nil only when the search found nothing.
	Partition *Partition `json:"-"`

	// Fairness is max minus min total advantage across containers.
	Fairness float64 `json:"fairness"`

	// Valid reports leader coverage and polarity separation on the final partition.
	Valid bool `json:"valid"`

	// Conflicts is the number of containers holding a duplicated polarity.
	Conflicts int `json:"conflicts"`

	// Relaxations is how many individuals the greedy engine placed while ignoring polarity.
	Relaxations int `json:"relaxations"`

	// InfeasiblePolarities lists polarities occurring more often than there are containers.
	InfeasiblePolarities []int `json:"infeasiblePolarities,omitempty"`

	// Stats describes the explored search space.
	Stats SearchStats `json:"stats"`

	// Duration is the wall-clock time spent in Assign.
	Duration time.Duration `json:"duration"`
}
