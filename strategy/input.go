package strategy

import (
	"fmt"

	"github.com/arloliu/teamsplit/scoring"
	"github.com/arloliu/teamsplit/types"
)

// checkInput verifies the preconditions shared by every strategy.
//
// The skeleton must have at least one container, hold nobody yet, and offer
// exactly one slot per individual. Every individual must be valid and the
// roster must hold at least one leader per container.
func checkInput(skeleton *types.Partition, individuals []types.Individual) error {
	if skeleton == nil {
		return ErrNilSkeleton
	}
	if skeleton.Len() == 0 {
		return fmt.Errorf("%w: partition has no containers", types.ErrSizingMismatch)
	}
	if occupied := skeleton.Occupancy(); occupied != 0 {
		return fmt.Errorf("%w: skeleton already holds %d individuals", types.ErrSizingMismatch, occupied)
	}
	if capacity := skeleton.Capacity(); capacity != len(individuals) {
		return fmt.Errorf("%w: capacity %d for %d individuals", types.ErrSizingMismatch, capacity, len(individuals))
	}
	for i, ind := range individuals {
		if err := ind.Validate(); err != nil {
			return fmt.Errorf("individual %d: %w", i, err)
		}
	}
	if leaders := scoring.LeaderCount(individuals); leaders < skeleton.Len() {
		return fmt.Errorf("%w: %d leaders for %d containers", types.ErrInfeasibleLeaders, leaders, skeleton.Len())
	}

	return nil
}

// outcome classifies a result for metrics.
func outcome(res *types.Result, err error) string {
	switch {
	case types.IsInfeasible(err):
		return "infeasible"
	case err != nil:
		return "error"
	case res.Relaxations > 0:
		return "relaxed"
	case res.Valid:
		return "valid"
	default:
		return "invalid"
	}
}
