package strategy

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/teamsplit/internal/logging"
	"github.com/arloliu/teamsplit/internal/metrics"
	"github.com/arloliu/teamsplit/scoring"
	"github.com/arloliu/teamsplit/types"
)

// GreedyName identifies the greedy strategy in results, logs and metrics.
const GreedyName = "greedy"

// Greedy builds one placement by sorted insertion with load balancing.
//
// The roster is sorted leaders first, then by advantage descending (stable).
// The first leader of the sorted order goes to the first container, the second
// to the second, and so on until every container has one. Each remaining
// individual goes to the container with the lowest total advantage among
// those with room that do not yet hold its polarity, ties to the earliest
// container. When every container with room already holds the polarity, the
// polarity rule is relaxed for that individual and the relaxation is counted.
type Greedy struct {
	tieBreaker TieBreaker
	logger     types.Logger
	metrics    types.MetricsCollector
}

var _ types.AssignmentStrategy = (*Greedy)(nil)

// GreedyOption configures a Greedy strategy.
type GreedyOption func(*Greedy)

// NewGreedy creates a new greedy strategy.
//
// Parameters:
//   - opts: Optional configuration (WithSeed, WithTieBreaker, WithGreedyLogger, WithGreedyMetrics)
//
// Returns:
//   - *Greedy: Initialized greedy strategy; without a seed, equivalent individuals keep roster order
//
// Example:
//
//	engine := strategy.NewGreedy(strategy.WithSeed(42))
//	res, err := engine.Assign(ctx, skeleton, roster.Individuals)
//	if types.IsInfeasible(err) {
//	    // ask for fewer groups
//	}
func NewGreedy(opts ...GreedyOption) *Greedy {
	g := &Greedy{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	if g.metrics == nil {
		g.metrics = metrics.NewNop()
	}

	return g
}

// WithSeed reorders individuals sharing leader flag and advantage by a hash of
// their identity under seed. The same seed always yields the same placement.
func WithSeed(seed uint64) GreedyOption {
	return func(g *Greedy) {
		g.tieBreaker = NewHashTieBreaker(seed)
	}
}

// WithTieBreaker installs a custom tie-break order for equivalent individuals.
func WithTieBreaker(tb TieBreaker) GreedyOption {
	return func(g *Greedy) {
		g.tieBreaker = tb
	}
}

// WithGreedyLogger sets the logger used for relaxation warnings and diagnostics.
func WithGreedyLogger(logger types.Logger) GreedyOption {
	return func(g *Greedy) {
		g.logger = logger
	}
}

// WithGreedyMetrics sets the metrics collector.
func WithGreedyMetrics(collector types.MetricsCollector) GreedyOption {
	return func(g *Greedy) {
		g.metrics = collector
	}
}

// Name returns "greedy".
func (g *Greedy) Name() string { return GreedyName }

// Assign places individuals into a clone of skeleton.
//
// The result may violate polarity separation when a polarity occurs more often
// than there are containers; Result.Valid, Result.Conflicts and
// Result.Relaxations describe it. Leader coverage is never relaxed.
//
// Parameters:
//   - ctx: Context checked once before placement
//   - skeleton: Empty partition whose capacity equals len(individuals); not modified
//   - individuals: Roster to place
//
// Returns:
//   - *types.Result: Populated partition with its scores
//   - error: ErrInfeasibleLeaders before any placement, ErrCapacityExhausted on
//     a sizing defect, or a sizing error
func (g *Greedy) Assign(ctx context.Context, skeleton *types.Partition, individuals []types.Individual) (*types.Result, error) {
	start := time.Now()

	res, err := g.assign(ctx, skeleton, individuals)

	elapsed := time.Since(start)
	if res != nil {
		res.Duration = elapsed
	}
	g.metrics.RecordAssignmentDuration(GreedyName, elapsed.Seconds())
	g.metrics.RecordAssignmentOutcome(GreedyName, outcome(res, err))

	return res, err
}

func (g *Greedy) assign(ctx context.Context, skeleton *types.Partition, individuals []types.Individual) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkInput(skeleton, individuals); err != nil {
		return nil, err
	}

	sorted := g.order(individuals)
	part := skeleton.Clone()
	k := part.Len()

	// checkInput guarantees at least k leaders, and they sort first.
	for i := range k {
		if err := part.At(i).Add(sorted[i]); err != nil {
			return nil, err
		}
	}

	loads := make([]float64, k)
	for i := range k {
		loads[i] = sorted[i].Advantage
	}

	relaxations := 0
	for _, ind := range sorted[k:] {
		target, relaxed := pickContainer(part, loads, ind)
		if target < 0 {
			return nil, fmt.Errorf("%w: nowhere to place %q", types.ErrCapacityExhausted, ind.FullName())
		}
		if relaxed {
			relaxations++
			g.logger.Warn("polarity separation relaxed",
				"individual", ind.FullName(),
				"polarity", *ind.Polarity,
				"container", part.At(target).Name(),
			)
		}
		if err := part.At(target).Add(ind); err != nil {
			return nil, err
		}
		loads[target] += ind.Advantage
	}

	report := scoring.Evaluate(part)
	res := &types.Result{
		Strategy:             GreedyName,
		Partition:            part,
		Fairness:             report.Fairness,
		Valid:                report.Valid,
		Conflicts:            report.Conflicts,
		Relaxations:          relaxations,
		InfeasiblePolarities: scoring.InfeasiblePolarities(individuals, k),
	}

	g.metrics.RecordRelaxations(relaxations)
	g.metrics.RecordFairness(GreedyName, res.Fairness)
	if res.Conflicts > 0 {
		g.logger.Warn("greedy placement has polarity conflicts",
			"conflicts", res.Conflicts,
			"infeasiblePolarities", res.InfeasiblePolarities,
		)
	}
	g.logger.Debug("greedy placement complete",
		"individuals", len(individuals),
		"containers", k,
		"fairness", res.Fairness,
		"relaxations", relaxations,
	)

	return res, nil
}

// order returns the placement order: leaders first, then advantage descending,
// roster order among equals unless a tie-breaker is installed.
func (g *Greedy) order(individuals []types.Individual) []types.Individual {
	sorted := slices.Clone(individuals)
	slices.SortStableFunc(sorted, compareForPlacement)

	if g.tieBreaker == nil {
		return sorted
	}

	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && compareForPlacement(sorted[start], sorted[end]) == 0 {
			end++
		}
		if end-start > 1 {
			g.tieBreaker.Reorder(sorted[start:end])
		}
		start = end
	}

	return sorted
}

func compareForPlacement(a, b types.Individual) int {
	if a.Leader != b.Leader {
		if a.Leader {
			return -1
		}

		return 1
	}

	return cmp.Compare(b.Advantage, a.Advantage)
}

// pickContainer returns the index of the lightest admissible container and
// whether the polarity rule had to be ignored. It returns -1 when every
// container is full.
func pickContainer(part *types.Partition, loads []float64, ind types.Individual) (int, bool) {
	best := -1
	for i := range part.Len() {
		c := part.At(i)
		if !c.CanAccept(ind) {
			continue
		}
		if best < 0 || loads[i] < loads[best] {
			best = i
		}
	}
	if best >= 0 {
		return best, false
	}

	for i := range part.Len() {
		if part.At(i).IsFull() {
			continue
		}
		if best < 0 || loads[i] < loads[best] {
			best = i
		}
	}

	return best, best >= 0
}
