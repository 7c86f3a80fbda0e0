package types

import "errors"

// Sentinel errors for the teamsplit library.
//
// Wrap them with context using fmt.Errorf("%w: ...", ErrX) and check them with
// errors.Is. Feasibility errors are recoverable: the caller can retry with
// fewer groups. Capacity and sizing errors indicate a defect or a bad
// configuration and are never retried.

// Feasibility errors - the roster cannot satisfy the hard constraints.
var (
	// ErrInfeasibleLeaders is returned when the roster has fewer leaders than groups.
	ErrInfeasibleLeaders = errors.New("not enough leaders for the requested group count")

	// ErrNoValidAssignment is returned when no placement satisfies every hard constraint.
	ErrNoValidAssignment = errors.New("no valid assignment")
)

// Container errors - precondition violations on the partition structure.
var (
	// ErrCapacityExceeded is returned when adding to a full container.
	ErrCapacityExceeded = errors.New("container capacity exceeded")

	// ErrCapacityExhausted is returned when no container has room left for an individual.
	ErrCapacityExhausted = errors.New("no container has capacity left")

	// ErrContainerEmpty is returned when removing from an empty container.
	ErrContainerEmpty = errors.New("container is empty")


	// ErrDuplicateContainer is returned when two containers share a name.
	ErrDuplicateContainer = errors.New("duplicate container name")

	// ErrSizingMismatch is returned for a non-positive group count or capacities
	// that do not match the roster size.
	ErrSizingMismatch = errors.New("sizing mismatch")
)

// Search errors - exhaustive engine limits.
var (
	// ErrRosterTooLarge is returned when the roster exceeds the exhaustive search limit.
	ErrRosterTooLarge = errors.New("roster too large for exhaustive search")

	// ErrSearchInterrupted is returned when the search context ends before the tree is exhausted.
	ErrSearchInterrupted = errors.New("search interrupted")
)

// Input errors - roster data problems.
var (
	// ErrInvalidIndividual is returned when an individual fails validation.
	ErrInvalidIndividual = errors.New("invalid individual")

	// ErrRosterNotFound is returned when a requested roster is not present in a source.
	ErrRosterNotFound = errors.New("roster not found")

	// ErrMissingColumn is returned when a tabular source lacks a required column.
	ErrMissingColumn = errors.New("missing column")
)

// IsInfeasible reports whether err is a recoverable feasibility gap.
//
// Returns:
//   - bool: true for ErrInfeasibleLeaders or ErrNoValidAssignment (possibly wrapped)
func IsInfeasible(err error) bool {
	return errors.Is(err, ErrInfeasibleLeaders) || errors.Is(err, ErrNoValidAssignment)
}
