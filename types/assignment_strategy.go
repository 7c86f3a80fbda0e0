package types

import "context"

// AssignmentStrategy places a roster into a partition skeleton.
//
// Two strategies ship with the library:
//   - Exhaustive: provably optimal, exponential, for small rosters
//   - Greedy: sorted insertion with load balancing, for any roster size
//
// Implementations must:
//   - Leave the skeleton untouched (work on a clone)
//   - Be deterministic (same input and options → same output)
//   - Report feasibility gaps with ErrInfeasibleLeaders / ErrNoValidAssignment
type AssignmentStrategy interface {
	// Name returns the strategy identifier used in logs, metrics and reports.
	Name() string

	// Assign places every individual into the skeleton.
	//
	// Parameters:
	//   - ctx: Context for cancellation and deadline
	//   - skeleton: Partition whose free capacity equals len(individuals)
	//   - individuals: Roster to place
	//
	// Returns:
	//   - *Result: Populated partition with its scores
	//   - error: Feasibility, sizing or cancellation error
	Assign(ctx context.Context, skeleton *Partition, individuals []Individual) (*Result, error)
}
