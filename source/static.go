package source

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/arloliu/teamsplit/types"
)

// Static implements a roster source over a fixed set of rosters.
type Static struct {
	mu      sync.RWMutex
	rosters map[string]types.Roster
}

var _ types.RosterSource = (*Static)(nil)

// NewStatic creates a new static roster source.
//
// Rosters are keyed by their Name. Useful for tests and for callers that
// build rosters in code.
//
// Parameters:
//   - rosters: Fixed list of rosters
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic(types.Roster{Name: "1A", Individuals: individuals})
//	planner := teamsplit.NewPlanner(&cfg, src)
func NewStatic(rosters ...types.Roster) *Static {
	s := &Static{}
	s.Update(rosters...)

	return s
}

// ListRosters returns a copy of the rosters.
//
// Returns:
//   - map[string]types.Roster: Rosters keyed by name
//   - error: Validation error of the first invalid roster
func (s *Static) ListRosters(_ context.Context) (map[string]types.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]types.Roster, len(s.rosters))
	for name, r := range s.rosters {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		result[name] = r.Clone()
	}

	return result, nil
}

// Update replaces the rosters.
func (s *Static) Update(rosters ...types.Roster) {
	next := make(map[string]types.Roster, len(rosters))
	for _, r := range rosters {
		next[r.Name] = r.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rosters = next
}

// Names returns the roster names of a ListRosters result, sorted.
func Names(rosters map[string]types.Roster) []string {
	return slices.Sorted(maps.Keys(rosters))
}
