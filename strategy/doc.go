// Package strategy provides the built-in assignment strategies.
//
// A strategy places a roster into an empty partition skeleton so that every
// container holds a leader, no container holds two individuals of the same
// polarity, and the spread of total advantage across containers (the fairness
// score) stays small. The package includes two strategies:
//
//   - Exhaustive: backtracking over every capacity-respecting placement, returns the optimum
//   - Greedy: sorted insertion with load balancing, returns one good placement quickly
//
// # Strategy Selection Guide
//
// Exhaustive:
//   - Use for small rosters (about 12 individuals or fewer)
//   - Guarantees the lowest fairness score among all valid placements
//   - Cost grows as containers^individuals; supports parallel fan-out and cancellation
//   - Configuration: parallelism, split depth, maximum roster size
//
// Greedy:
//   - Use for any roster size
//   - Never beats the exhaustive optimum, usually close to it
//   - Relaxes polarity separation when a polarity occurs more often than there are containers
//   - Configuration: seed for an alternative tie-break order between equivalent individuals
//
// Both strategies check leader feasibility before placing anyone and never
// modify the skeleton they receive.
//
// Custom strategies can be implemented by satisfying the types.AssignmentStrategy interface.
package strategy
