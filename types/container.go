package types

import (
	"fmt"
	"slices"
)

// Container is a named group with a fixed capacity.
//
// Members keep their arrival order. The number of members never exceeds the
// capacity: Add refuses the individual instead of dropping it.
type Container struct {
	name     string
	capacity int
	members  []Individual
}

// NewContainer creates an empty container.
//
// Parameters:
//   - name: Unique container name within a partition (e.g., "G1")
//   - capacity: Maximum number of members (must be >= 0)
//
// Returns:
//   - *Container: Empty container
//   - error: ErrSizingMismatch when capacity is negative
func NewContainer(name string, capacity int) (*Container, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: container %q has negative capacity %d", ErrSizingMismatch, name, capacity)
	}

	return &Container{
		name:     name,
		capacity: capacity,
		members:  make([]Individual, 0, capacity),
	}, nil
}

// Name returns the container name.
func (c *Container) Name() string { return c.name }

// Capacity returns the fixed capacity.
func (c *Container) Capacity() int { return c.capacity }

// Len returns the current member count.
func (c *Container) Len() int { return len(c.members) }

// Room returns the number of free slots.
func (c *Container) Room() int { return c.capacity - len(c.members) }

// IsFull reports whether no more members can be added.
func (c *Container) IsFull() bool { return len(c.members) >= c.capacity }

// Members returns a copy of the members in arrival order.
func (c *Container) Members() []Individual {
	return slices.Clone(c.members)
}

// Add appends an individual.
//
// Returns:
//   - error: ErrCapacityExceeded if the container is already full
func (c *Container) Add(ind Individual) error {
	if c.IsFull() {
		return fmt.Errorf("%w: container %q is full (capacity=%d)", ErrCapacityExceeded, c.name, c.capacity)
	}
	c.members = append(c.members, ind)

	return nil
}

// RemoveLast pops the most recently added member.
//
// Only the exhaustive search uses this, to undo a tentative placement.
//
// Returns:
//   - Individual: The removed member
//   - error: ErrContainerEmpty if there is nothing to remove
func (c *Container) RemoveLast() (Individual, error) {
	n := len(c.members)
	if n == 0 {
		return Individual{}, fmt.Errorf("%w: container %q", ErrContainerEmpty, c.name)
	}
	last := c.members[n-1]
	c.members = c.members[:n-1]

	return last, nil
}

// TotalAdvantage returns the sum of the members' advantage.
func (c *Container) TotalAdvantage() float64 {
	total := 0.0
	for _, m := range c.members {
		total += m.Advantage
	}

	return total
}

// HasLeader reports whether at least one member is a leader.
func (c *Container) HasLeader() bool {
	for _, m := range c.members {
		if m.Leader {
			return true
		}
	}

	return false
}

// HasPolarity reports whether a member already carries polarity p.
func (c *Container) HasPolarity(p int) bool {
	for _, m := range c.members {
		if m.Polarity != nil && *m.Polarity == p {
			return true
		}
	}

	return false
}

// OccupiedPolarities returns the distinct non-nil polarities present, sorted.
func (c *Container) OccupiedPolarities() []int {
	seen := make(map[int]struct{}, len(c.members))
	out := make([]int, 0, len(c.members))
	for _, m := range c.members {
		if m.Polarity == nil {
			continue
		}
		if _, ok := seen[*m.Polarity]; ok {
			continue
		}
		seen[*m.Polarity] = struct{}{}
		out = append(out, *m.Polarity)
	}
	slices.Sort(out)

	return out
}

// HasPolarityConflict reports whether two members share a non-nil polarity.
func (c *Container) HasPolarityConflict() bool {
	seen := make(map[int]struct{}, len(c.members))
	for _, m := range c.members {
		if m.Polarity == nil {
			continue
		}
		if _, ok := seen[*m.Polarity]; ok {
			return true
		}
		seen[*m.Polarity] = struct{}{}
	}

	return false
}

// CanAccept reports whether ind can join without exceeding capacity or
// duplicating a polarity.
func (c *Container) CanAccept(ind Individual) bool {
	if c.IsFull() {
		return false
	}
	if ind.Polarity != nil && c.HasPolarity(*ind.Polarity) {
		return false
	}

	return true
}

// Clone returns a deep copy with its own member slice.
func (c *Container) Clone() *Container {
	members := make([]Individual, len(c.members), c.capacity)
	copy(members, c.members)

	return &Container{name: c.name, capacity: c.capacity, members: members}
}

// String renders "name(len/capacity)=total".
func (c *Container) String() string {
	return fmt.Sprintf("%s(%d/%d)=%.1f", c.name, len(c.members), c.capacity, c.TotalAdvantage())
}
