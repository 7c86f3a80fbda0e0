package types

import "context"

// Hooks defines callbacks for Planner events.
//
// All hooks are optional and called synchronously on the goroutine running the
// assignment. Hook errors are logged but never fail the assignment.
//
// Example:
//
//	hooks := &teamsplit.Hooks{
//	    OnAssigned: func(ctx context.Context, roster string, res *teamsplit.Result) error {
//	        return archive.Save(roster, res)
//	    },
//	}
type Hooks struct {
	// OnAssigned is called after a roster has been placed, including relaxed placements.
	OnAssigned func(ctx context.Context, roster string, res *Result) error

	// OnFallback is called when the planner abandons one strategy for another.
	// cause is the error that triggered the switch.
	OnFallback func(ctx context.Context, roster, from, to string, cause error) error

	// OnError is called when an assignment fails.
	OnError func(ctx context.Context, roster string, err error) error
}
