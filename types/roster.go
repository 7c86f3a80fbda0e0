package types

import (
	"fmt"
	"slices"
)

// Roster is the list of individuals of one source group, to be split into
// project groups.
type Roster struct {
	// Name identifies the source group (e.g., "1A").
	Name string `json:"name" yaml:"name"`

	// Individuals are the members to distribute, in source order.
	Individuals []Individual `json:"individuals" yaml:"individuals"`
}

// Len returns the number of individuals.
func (r Roster) Len() int { return len(r.Individuals) }

// Sizes returns the balanced container capacities for k groups.
func (r Roster) Sizes(k int) ([]int, error) {
	return Sizes(len(r.Individuals), k)
}

// GroupCountFor derives the group count from a target group size.
//
// Returns ceil(n / target), at least 1. A non-positive target is treated as 1.
func (r Roster) GroupCountFor(target int) int {
	target = max(target, 1)
	k := (len(r.Individuals) + target - 1) / target

	return max(k, 1)
}

// Leaders returns the number of leaders in the roster.
func (r Roster) Leaders() int {
	n := 0
	for _, ind := range r.Individuals {
		if ind.Leader {
			n++
		}
	}

	return n
}

// Validate checks every individual.
func (r Roster) Validate() error {
	for i, ind := range r.Individuals {
		if err := ind.Validate(); err != nil {
			return fmt.Errorf("roster %q, row %d: %w", r.Name, i+1, err)
		}
	}

	return nil
}

// Subset returns a roster holding at most size individuals in which no
// polarity appears more than maxPerPolarity times. Individuals that would break
// the polarity bound are skipped.
//
// Used to build small feasible scenarios for the exhaustive engine.
func (r Roster) Subset(size, maxPerPolarity int) Roster {
	out := make([]Individual, 0, min(size, len(r.Individuals)))
	counts := make(map[int]int)
	for _, ind := range r.Individuals {
		if len(out) >= size {
			break
		}
		if ind.Polarity != nil {
			if counts[*ind.Polarity] >= maxPerPolarity {
				continue
			}
			counts[*ind.Polarity]++
		}
		out = append(out, ind)
	}

	return Roster{
		Name:        fmt.Sprintf("%s-subset%d", r.Name, len(out)),
		Individuals: out,
	}
}

// Clone returns a copy with its own individual slice.
func (r Roster) Clone() Roster {
	return Roster{Name: r.Name, Individuals: slices.Clone(r.Individuals)}
}
