package strategy

import (
	"math"
	"math/rand/v2"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/teamsplit/scoring"
	"github.com/arloliu/teamsplit/types"
)

// scenario returns the four-person roster used throughout the docs:
// two leaders and two individuals sharing polarity 1.
func scenario() []types.Individual {
	return []types.Individual{
		{Surname: "A", Advantage: 5, Leader: true},
		{Surname: "B", Advantage: 3, Leader: true},
		{Surname: "C", Advantage: 4, Polarity: types.Pol(1)},
		{Surname: "D", Advantage: 2, Polarity: types.Pol(1)},
	}
}

func skeletonFor(t *testing.T, n, k int) *types.Partition {
	t.Helper()

	sizes, err := types.Sizes(n, k)
	require.NoError(t, err)
	p, err := types.NewPartitionFromSizes("G", sizes)
	require.NoError(t, err)

	return p
}

func surnames(c *types.Container) []string {
	members := c.Members()
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Surname
	}

	return out
}

// randomRoster builds n individuals with integer advantages so fairness
// comparisons are exact. The first k individuals are leaders.
func randomRoster(rng *rand.Rand, n, k int) []types.Individual {
	out := make([]types.Individual, n)
	for i := range out {
		ind := types.Individual{
			Surname:   "S" + strconv.Itoa(i),
			GivenName: "G" + strconv.Itoa(i),
			Advantage: float64(rng.IntN(10)),
			Leader:    i < k || rng.IntN(4) == 0,
		}
		if rng.IntN(3) == 0 {
			ind.Polarity = types.Pol(1 + rng.IntN(2))
		}
		out[i] = ind
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}

// bruteForce enumerates every map from individuals to containers that fills
// each container exactly, independently of the engine's recursion.
type bruteForceResult struct {
	best        float64
	found       bool
	leaves      int64
	validLeaves int64
}

func bruteForce(t *testing.T, individuals []types.Individual, sizes []int) bruteForceResult {
	t.Helper()

	n, k := len(individuals), len(sizes)
	res := bruteForceResult{best: math.Inf(1)}
	total := 1
	for range n {
		total *= k
	}

	assign := make([]int, n)
	for code := range total {
		c := code
		counts := make([]int, k)
		for i := range n {
			assign[i] = c % k
			c /= k
			counts[assign[i]]++
		}
		fits := true
		for i := range k {
			if counts[i] != sizes[i] {
				fits = false

				break
			}
		}
		if !fits {
			continue
		}

		p, err := types.NewPartitionFromSizes("G", sizes)
		require.NoError(t, err)
		for i, ind := range individuals {
			require.NoError(t, p.At(assign[i]).Add(ind))
		}

		res.leaves++
		if !scoring.IsValid(p) {
			continue
		}
		res.validLeaves++
		res.found = true
		res.best = min(res.best, scoring.Fairness(p))
	}

	return res
}

func requireCapacityInvariants(t *testing.T, p *types.Partition, n int) {
	t.Helper()

	require.Equal(t, n, p.Capacity())
	require.Equal(t, n, p.Occupancy())
	for _, c := range p.Containers() {
		require.LessOrEqual(t, c.Len(), c.Capacity(), "container %s", c.Name())
	}
}

// recordingMetrics captures the calls a strategy makes.
type recordingMetrics struct {
	mu          sync.Mutex
	trees       int
	interrupted int
	outcomes    []string
	fairness    []float64
	relaxations int
	durations   int
}

var _ types.MetricsCollector = (*recordingMetrics)(nil)

func (m *recordingMetrics) RecordSearchTree(_, _, _ int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trees++
}

func (m *recordingMetrics) RecordSearchInterrupted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interrupted++
}

func (m *recordingMetrics) RecordAssignmentDuration(_ string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

func (m *recordingMetrics) RecordAssignmentOutcome(_, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) RecordFairness(_ string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fairness = append(m.fairness, score)
}

func (m *recordingMetrics) RecordRelaxations(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relaxations += count
}
