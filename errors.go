package teamsplit

import (
	"errors"

	"github.com/arloliu/teamsplit/types"
)

// Sentinel errors returned by the Planner.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRosterSourceRequired is returned when the roster source is nil.
	ErrRosterSourceRequired = errors.New("roster source is required")
)

// Errors returned by the engines, re-exported for callers of the root package.
var (
	ErrInfeasibleLeaders = types.ErrInfeasibleLeaders
	ErrNoValidAssignment = types.ErrNoValidAssignment
	ErrCapacityExceeded  = types.ErrCapacityExceeded
	ErrCapacityExhausted = types.ErrCapacityExhausted
	ErrSizingMismatch    = types.ErrSizingMismatch
	ErrRosterTooLarge    = types.ErrRosterTooLarge
	ErrSearchInterrupted = types.ErrSearchInterrupted
	ErrInvalidIndividual = types.ErrInvalidIndividual
	ErrRosterNotFound    = types.ErrRosterNotFound
)

// IsInfeasible reports whether err is a recoverable feasibility gap that fewer
// groups might resolve.
func IsInfeasible(err error) bool {
	return types.IsInfeasible(err)
}
