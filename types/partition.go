package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Partition is a fixed, ordered collection of containers keyed by unique name.
//
// The container order is part of the contract: the exhaustive search tries
// containers in this order and the greedy engine breaks ties with it.
type Partition struct {
	containers []*Container
	index      map[string]int
}

// NewPartition builds a partition skeleton from parallel name and capacity lists.
//
// Parameters:
//   - names: Unique container names, in iteration order
//   - capacities: Capacity of each container
//
// Returns:
//   - *Partition: Skeleton with empty containers
//   - error: ErrSizingMismatch on length mismatch or negative capacity,
//     ErrDuplicateContainer when a name repeats
func NewPartition(names []string, capacities []int) (*Partition, error) {
	if len(names) != len(capacities) {
		return nil, fmt.Errorf("%w: %d names for %d capacities", ErrSizingMismatch, len(names), len(capacities))
	}

	p := &Partition{
		containers: make([]*Container, 0, len(names)),
		index:      make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, ok := p.index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateContainer, name)
		}
		c, err := NewContainer(name, capacities[i])
		if err != nil {
			return nil, err
		}
		p.index[name] = len(p.containers)
		p.containers = append(p.containers, c)
	}

	return p, nil
}

// NewPartitionFromSizes builds a skeleton named prefix1..prefixN.
//
// Example:
//
//	sizes, _ := types.Sizes(10, 3)              // [4 3 3]
//	p, _ := types.NewPartitionFromSizes("G", sizes) // G1(0/4) G2(0/3) G3(0/3)
func NewPartitionFromSizes(prefix string, sizes []int) (*Partition, error) {
	names := make([]string, len(sizes))
	for i := range sizes {
		names[i] = prefix + strconv.Itoa(i+1)
	}

	return NewPartition(names, sizes)
}

// Sizes computes the balanced split of n individuals into k containers.
//
// The first n mod k containers get ceil(n/k) slots, the rest floor(n/k), so the
// capacities always sum to n.
//
// Returns:
//   - []int: k capacities
//   - error: ErrSizingMismatch when k <= 0 or n < 0
func Sizes(n, k int) ([]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: group count must be > 0, got %d", ErrSizingMismatch, k)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: roster size must be >= 0, got %d", ErrSizingMismatch, n)
	}

	base, extra := n/k, n%k
	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}

	return sizes, nil
}

// Len returns the number of containers.
func (p *Partition) Len() int { return len(p.containers) }

// Containers returns the containers in iteration order.
//
// The slice is a copy but the containers are shared; callers that need an
// independent partition should use Clone.
func (p *Partition) Containers() []*Container {
	out := make([]*Container, len(p.containers))
	copy(out, p.containers)

	return out
}

// At returns the i-th container.
func (p *Partition) At(i int) *Container { return p.containers[i] }

// Get returns the container with the given name.
func (p *Partition) Get(name string) (*Container, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}

	return p.containers[i], true
}

// Names returns the container names in iteration order.
func (p *Partition) Names() []string {
	names := make([]string, len(p.containers))
	for i, c := range p.containers {
		names[i] = c.name
	}

	return names
}

// Capacity returns the sum of all container capacities.
func (p *Partition) Capacity() int {
	total := 0
	for _, c := range p.containers {
		total += c.capacity
	}

	return total
}

// Occupancy returns the number of placed individuals.
func (p *Partition) Occupancy() int {
	total := 0
	for _, c := range p.containers {
		total += len(c.members)
	}

	return total
}

// NotFull returns the containers that still have room, in iteration order.
func (p *Partition) NotFull() []*Container {
	out := make([]*Container, 0, len(p.containers))
	for _, c := range p.containers {
		if !c.IsFull() {
			out = append(out, c)
		}
	}

	return out
}

// Members returns every placed individual, container by container.
func (p *Partition) Members() []Individual {
	out := make([]Individual, 0, p.Occupancy())
	for _, c := range p.containers {
		out = append(out, c.members...)
	}

	return out
}

// Clone returns a deep copy of the partition.
func (p *Partition) Clone() *Partition {
	cp := &Partition{
		containers: make([]*Container, len(p.containers)),
		index:      make(map[string]int, len(p.index)),
	}
	for i, c := range p.containers {
		cp.containers[i] = c.Clone()
	}
	for k, v := range p.index {
		cp.index[k] = v
	}

	return cp
}

// String renders "<Partition: (len/cap)(len/cap)...>".
func (p *Partition) String() string {
	var b strings.Builder
	b.WriteString("<Partition: ")
	for _, c := range p.containers {
		fmt.Fprintf(&b, "(%d/%d)", len(c.members), c.capacity)
	}
	b.WriteString(">")

	return b.String()
}
