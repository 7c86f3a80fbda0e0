// Package hash provides xxh3-based hashing used for reproducible tie-breaks
// and for fingerprinting partitions.
package hash

import (
	"encoding/binary"
	"math"
	"slices"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/teamsplit/types"
)

// String computes a 64-bit hash of key using XXH3.
//
// A zero seed uses the unseeded variant so that String(k, 0) matches
// xxh3.HashString(k).
func String(key string, seed uint64) uint64 {
	if seed != 0 {
		return xxh3.HashStringSeed(key, seed)
	}

	return xxh3.HashString(key)
}

// Rank returns the tie-break rank of an individual under seed.
//
// The rank depends only on the individual's identity (surname and given name)
// and the seed, so reordering the roster never changes it.
func Rank(ind types.Individual, seed uint64) uint64 {
	return String(ind.Key(), seed)
}

// Fingerprint computes a hash identifying the content of a partition.
//
// Two partitions share a fingerprint when every container (matched by position
// and name) holds the same set of individuals. Member order inside a container
// does not matter; container order does.
//
// Example:
//
//	if hash.Fingerprint(a) == hash.Fingerprint(b) {
//	    // same grouping
//	}
func Fingerprint(p *types.Partition) uint64 {
	if p == nil {
		return 0
	}

	h := xxh3.New()
	var buf [8]byte
	for i := range p.Len() {
		c := p.At(i)
		_, _ = h.WriteString(c.Name())
		_, _ = h.Write([]byte{0})

		members := c.Members()
		slices.SortFunc(members, func(a, b types.Individual) int {
			return strings.Compare(a.Key(), b.Key())
		})
		for _, m := range members {
			_, _ = h.WriteString(m.Key())
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(m.Advantage))
			_, _ = h.Write(buf[:])
		}
		_, _ = h.Write([]byte{0xff})
	}

	return h.Sum64()
}
