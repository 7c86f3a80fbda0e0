// Package scoring evaluates partitions: hard-constraint validity, fairness and
// feasibility diagnostics.
//
// All functions are pure. They never modify the partition they inspect and are
// safe to call concurrently on distinct partitions.
package scoring

import (
	"math"
	"slices"

	"github.com/arloliu/teamsplit/types"
)

// IsValid reports whether every container has a leader and no container holds
// two members with the same polarity.
//
// A partition without containers is not valid.
func IsValid(p *types.Partition) bool {
	if p == nil || p.Len() == 0 {
		return false
	}
	for i := range p.Len() {
		c := p.At(i)
		if !c.HasLeader() || c.HasPolarityConflict() {
			return false
		}
	}

	return true
}

// Fairness returns max minus min total advantage across containers.
//
// Lower is better, zero is perfect balance. Returns 0 for an empty partition.
func Fairness(p *types.Partition) float64 {
	if p == nil || p.Len() == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range p.Len() {
		total := p.At(i).TotalAdvantage()
		lo = min(lo, total)
		hi = max(hi, total)
	}

	return hi - lo
}

// ConflictCount returns the number of containers holding a duplicated polarity.
func ConflictCount(p *types.Partition) int {
	if p == nil {
		return 0
	}
	n := 0
	for i := range p.Len() {
		if p.At(i).HasPolarityConflict() {
			n++
		}
	}

	return n
}

// LeaderCount returns the number of leaders among individuals.
func LeaderCount(individuals []types.Individual) int {
	n := 0
	for _, ind := range individuals {
		if ind.Leader {
			n++
		}
	}

	return n
}

// InfeasiblePolarities returns the polarities carried by more than k
// individuals, sorted ascending. No placement into k containers can keep such
// a polarity separated.
func InfeasiblePolarities(individuals []types.Individual, k int) []int {
	counts := make(map[int]int)
	for _, ind := range individuals {
		if ind.Polarity != nil {
			counts[*ind.Polarity]++
		}
	}

	var out []int
	for pol, n := range counts {
		if n > k {
			out = append(out, pol)
		}
	}
	slices.Sort(out)

	return out
}

// ContainerReport summarizes one container.
type ContainerReport struct {
	Name           string  `json:"name"`
	Capacity       int     `json:"capacity"`
	Size           int     `json:"size"`
	TotalAdvantage float64 `json:"totalAdvantage"`
	HasLeader      bool    `json:"hasLeader"`
	Conflict       bool    `json:"conflict"`
}

// Report bundles the scores of a partition.
type Report struct {
	Fairness   float64           `json:"fairness"`
	Valid      bool              `json:"valid"`
	Conflicts  int               `json:"conflicts"`
	Containers []ContainerReport `json:"containers"`
}

// Evaluate computes every score of p in one pass over its containers.
func Evaluate(p *types.Partition) Report {
	if p == nil {
		return Report{}
	}

	containers := p.Containers()
	rep := Report{
		Valid:      len(containers) > 0,
		Containers: make([]ContainerReport, 0, len(containers)),
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range containers {
		cr := ContainerReport{
			Name:           c.Name(),
			Capacity:       c.Capacity(),
			Size:           c.Len(),
			TotalAdvantage: c.TotalAdvantage(),
			HasLeader:      c.HasLeader(),
			Conflict:       c.HasPolarityConflict(),
		}
		rep.Containers = append(rep.Containers, cr)

		lo = min(lo, cr.TotalAdvantage)
		hi = max(hi, cr.TotalAdvantage)
		if cr.Conflict {
			rep.Conflicts++
		}
		if !cr.HasLeader || cr.Conflict {
			rep.Valid = false
		}
	}
	if len(containers) > 0 {
		rep.Fairness = hi - lo
	}

	return rep
}
