package strategy

import (
	"cmp"
	"slices"

	"github.com/arloliu/teamsplit/internal/hash"
	"github.com/arloliu/teamsplit/types"
)

// TieBreaker reorders a block of individuals that the greedy sort considers
// equivalent (same leader flag, same advantage).
//
// Implementations must be deterministic: the same block must always come back
// in the same order.
type TieBreaker interface {
	// Reorder permutes block in place.
	Reorder(block []types.Individual)
}

// TieBreakerFunc adapts a function to the TieBreaker interface.
type TieBreakerFunc func(block []types.Individual)

// Reorder calls f(block).
func (f TieBreakerFunc) Reorder(block []types.Individual) { f(block) }

// HashTieBreaker orders equivalent individuals by an xxh3 hash of their
// identity under a seed.
type HashTieBreaker struct {
	seed uint64
}

var _ TieBreaker = (*HashTieBreaker)(nil)

// NewHashTieBreaker creates a tie-breaker for the given seed.
//
// The order depends only on the seed and on who is in the block, not on the
// roster order, so shuffled input yields the same placement.
func NewHashTieBreaker(seed uint64) *HashTieBreaker {
	return &HashTieBreaker{seed: seed}
}

// Reorder sorts block by hash rank, identity key breaking hash collisions.
func (h *HashTieBreaker) Reorder(block []types.Individual) {
	slices.SortStableFunc(block, func(a, b types.Individual) int {
		if c := cmp.Compare(hash.Rank(a, h.seed), hash.Rank(b, h.seed)); c != 0 {
			return c
		}

		return cmp.Compare(a.Key(), b.Key())
	})
}
