// Package teamsplit splits class rosters into balanced project groups.
//
// Every group gets at least one leader, no group holds two individuals of the
// same polarity, and the spread of total advantage across groups (max minus
// min) is kept as small as possible.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import (
//	    "github.com/arloliu/teamsplit"
//	    "github.com/arloliu/teamsplit/source"
//	)
//
//	cfg := teamsplit.DefaultConfig()
//	cfg.Groups = 3
//
//	planner, err := teamsplit.NewPlanner(&cfg, source.NewXLSX("class.xlsx", source.DefaultSheet))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := planner.AssignNamed(ctx, "1A")
//	if teamsplit.IsInfeasible(err) {
//	    // retry with fewer groups
//	}
//
// # Engines
//
//   - Exhaustive: enumerates every placement and returns the fairest valid one.
//     Exponential; suited to rosters of about a dozen individuals.
//   - Greedy: leaders first, then heaviest first into the lightest admissible
//     group. Linear-ish; may relax polarity separation when it must.
//
// With Strategy "auto" (the default) the planner searches exhaustively up to
// Exhaustive.MaxRosterSize individuals and falls back to greedy when the
// search times out or finds nothing valid.
//
// # Advanced Usage
//
//	hooks := &teamsplit.Hooks{
//	    OnFallback: func(ctx context.Context, roster, from, to string, cause error) error {
//	        log.Printf("%s: %s gave up (%v), used %s", roster, from, cause, to)
//	        return nil
//	    },
//	}
//
//	planner, err := teamsplit.NewPlanner(&cfg, src,
//	    teamsplit.WithLogger(logging.NewSlogDefault()),
//	    teamsplit.WithMetrics(metrics.NewPrometheus(reg, "teamsplit")),
//	    teamsplit.WithHooks(hooks),
//	)
//
// See cmd/teamsplit for a complete command-line front end.
package teamsplit
