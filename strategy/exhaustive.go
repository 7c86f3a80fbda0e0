package strategy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/teamsplit/internal/logging"
	"github.com/arloliu/teamsplit/internal/metrics"
	"github.com/arloliu/teamsplit/scoring"
	"github.com/arloliu/teamsplit/types"
)

// ExhaustiveName identifies the exhaustive strategy in results, logs and metrics.
const ExhaustiveName = "exhaustive"

const branchesPerWorker = 4

// Exhaustive finds the valid placement with the lowest fairness score by
// enumerating every capacity-respecting placement of the roster.
//
// Individuals are placed in input order; for each one every non-full container
// is tried in partition order. A complete placement replaces the incumbent only
// when it is valid and strictly fairer, so among equally fair placements the
// first one enumerated wins. There is no bound on partial placements: the cost
// is exponential in the roster size.
type Exhaustive struct {
	parallelism   int
	splitDepth    int
	maxRosterSize int
	logger        types.Logger
	metrics       types.MetricsCollector
}

var _ types.AssignmentStrategy = (*Exhaustive)(nil)

// ExhaustiveOption configures an Exhaustive strategy.
type ExhaustiveOption func(*Exhaustive)

// NewExhaustive creates a new exhaustive search strategy.
//
// Parameters:
//   - opts: Optional configuration (WithParallelism, WithSplitDepth, WithMaxRosterSize, WithExhaustiveLogger, WithExhaustiveMetrics)
//
// Returns:
//   - *Exhaustive: Initialized exhaustive strategy, sequential by default
//
// Example:
//
//	engine := strategy.NewExhaustive(
//	    strategy.WithParallelism(runtime.GOMAXPROCS(0)),
//	    strategy.WithMaxRosterSize(12),
//	)
//	res, err := engine.Assign(ctx, skeleton, roster.Individuals)
func NewExhaustive(opts ...ExhaustiveOption) *Exhaustive {
	e := &Exhaustive{
		parallelism: 1,
		logger:      logging.NewNop(),
		metrics:     metrics.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	e.normalizeConfig()

	return e
}

// WithParallelism sets the number of search branches explored concurrently.
//
// Values <= 1 keep the search on the calling goroutine.
func WithParallelism(n int) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.parallelism = n
	}
}

// WithSplitDepth sets how many leading individuals are fixed to form parallel branches.
//
// Zero picks a depth yielding a few branches per worker.
func WithSplitDepth(depth int) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.splitDepth = depth
	}
}

// WithMaxRosterSize refuses rosters larger than n with ErrRosterTooLarge. Zero or negative means unlimited.
func WithMaxRosterSize(n int) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.maxRosterSize = n
	}
}

// WithExhaustiveLogger sets the logger used for search diagnostics.
func WithExhaustiveLogger(logger types.Logger) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.logger = logger
	}
}

// WithExhaustiveMetrics sets the metrics collector.
func WithExhaustiveMetrics(collector types.MetricsCollector) ExhaustiveOption {
	return func(e *Exhaustive) {
		e.metrics = collector
	}
}

// Name returns "exhaustive".
func (e *Exhaustive) Name() string { return ExhaustiveName }

// Assign searches every placement of individuals into skeleton and returns the fairest valid one.
//
// The context is checked at every recursion node. When it ends first, Assign
// returns the best placement found so far (its Partition may be nil) together
// with an error wrapping both ErrSearchInterrupted and the context error.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - skeleton: Empty partition whose capacity equals len(individuals); not modified
//   - individuals: Roster in enumeration order
//
// Returns:
//   - *types.Result: Optimal partition and search statistics. Also returned with
//     a nil Partition alongside ErrNoValidAssignment so callers can inspect Stats.
//   - error: ErrInfeasibleLeaders, ErrNoValidAssignment, ErrRosterTooLarge,
//     ErrSearchInterrupted or a sizing error
func (e *Exhaustive) Assign(ctx context.Context, skeleton *types.Partition, individuals []types.Individual) (*types.Result, error) {
	start := time.Now()

	res, err := e.assign(ctx, skeleton, individuals)

	elapsed := time.Since(start)
	if res != nil {
		res.Duration = elapsed
	}
	e.metrics.RecordAssignmentDuration(ExhaustiveName, elapsed.Seconds())
	e.metrics.RecordAssignmentOutcome(ExhaustiveName, outcome(res, err))

	return res, err
}

func (e *Exhaustive) assign(ctx context.Context, skeleton *types.Partition, individuals []types.Individual) (*types.Result, error) {
	if e.maxRosterSize > 0 && len(individuals) > e.maxRosterSize {
		return nil, fmt.Errorf("%w: %d individuals, limit %d", types.ErrRosterTooLarge, len(individuals), e.maxRosterSize)
	}
	if err := checkInput(skeleton, individuals); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrSearchInterrupted, err)
	}

	var (
		best  incumbent
		stats types.SearchStats
		err   error
	)
	if e.parallelism > 1 {
		best, stats, err = e.searchParallel(ctx, skeleton, individuals)
	} else {
		s := newSearcher(ctx, skeleton.Clone(), individuals)
		err = s.visit(0)
		best = s.best
		stats = types.SearchStats{Nodes: s.nodes, Leaves: s.leaves, ValidLeaves: s.validLeaves}
	}
	e.metrics.RecordSearchTree(stats.Nodes, stats.Leaves, stats.ValidLeaves)

	res := &types.Result{
		Strategy:             ExhaustiveName,
		Partition:            best.partition,
		InfeasiblePolarities: scoring.InfeasiblePolarities(individuals, skeleton.Len()),
		Stats:                stats,
	}
	if best.partition != nil {
		res.Fairness = best.score
		res.Valid = true
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			e.metrics.RecordSearchInterrupted()
			e.logger.Warn("exhaustive search interrupted",
				"nodes", stats.Nodes,
				"validLeaves", stats.ValidLeaves,
				"haveIncumbent", best.partition != nil,
			)

			return res, fmt.Errorf("%w: %w", types.ErrSearchInterrupted, ctxErr)
		}

		return nil, err
	}

	if best.partition == nil {
		e.logger.Info("exhaustive search found no valid placement",
			"leaves", stats.Leaves,
			"infeasiblePolarities", res.InfeasiblePolarities,
		)

		return res, fmt.Errorf("%w: %d placements explored, none valid (infeasible polarities %v)",
			types.ErrNoValidAssignment, stats.Leaves, res.InfeasiblePolarities)
	}

	e.metrics.RecordFairness(ExhaustiveName, res.Fairness)
	e.logger.Debug("exhaustive search complete",
		"individuals", len(individuals),
		"containers", skeleton.Len(),
		"nodes", stats.Nodes,
		"leaves", stats.Leaves,
		"validLeaves", stats.ValidLeaves,
		"branches", stats.Branches,
		"fairness", res.Fairness,
	)

	return res, nil
}

// incumbent is the best valid placement seen so far.
type incumbent struct {
	partition *types.Partition
	score     float64
	branch    int
}

// better reports whether a placement with score found in branch should replace b.
// Lower scores win; equal scores go to the lower branch index.
func (b incumbent) better(score float64, branch int) bool {
	if b.partition == nil {
		return true
	}
	if score != b.score {
		return score < b.score
	}

	return branch < b.branch
}

// searcher runs the add/undo recursion over one private partition.
type searcher struct {
	done        <-chan struct{}
	ctx         context.Context
	part        *types.Partition
	individuals []types.Individual
	best        incumbent
	nodes       int64
	leaves      int64
	validLeaves int64
}

func newSearcher(ctx context.Context, part *types.Partition, individuals []types.Individual) *searcher {
	return &searcher{
		done:        ctx.Done(),
		ctx:         ctx,
		part:        part,
		individuals: individuals,
		best:        incumbent{score: math.Inf(1)},
	}
}

// visit places individuals[idx:] in every possible way.
func (s *searcher) visit(idx int) error {
	s.nodes++
	if s.done != nil {
		select {
		case <-s.done:
			return s.ctx.Err()
		default:
		}
	}

	if idx == len(s.individuals) {
		s.leaves++
		if !scoring.IsValid(s.part) {
			return nil
		}
		s.validLeaves++
		if score := scoring.Fairness(s.part); s.best.partition == nil || score < s.best.score {
			s.best = incumbent{partition: s.part.Clone(), score: score}
		}

		return nil
	}

	ind := s.individuals[idx]
	for i := range s.part.Len() {
		c := s.part.At(i)
		if c.IsFull() {
			continue
		}
		if err := c.Add(ind); err != nil {
			return err
		}
		err := s.visit(idx + 1)
		if _, undoErr := c.RemoveLast(); undoErr != nil {
			return undoErr
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// searchParallel fixes the containers of the first few individuals to form
// branches, in the same order the sequential search would reach them, and
// searches the branches concurrently.
func (e *Exhaustive) searchParallel(ctx context.Context, skeleton *types.Partition, individuals []types.Individual) (incumbent, types.SearchStats, error) {
	depth := e.branchDepth(skeleton.Len(), len(individuals))
	capacities := make([]int, skeleton.Len())
	for i := range capacities {
		capacities[i] = skeleton.At(i).Capacity()
	}
	prefixes := enumeratePrefixes(capacities, depth)

	var (
		mu          sync.Mutex
		best        = incumbent{score: math.Inf(1)}
		nodes       = xsync.NewCounter()
		leaves      = xsync.NewCounter()
		validLeaves = xsync.NewCounter()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for branch, prefix := range prefixes {
		g.Go(func() error {
			part := skeleton.Clone()
			for i, ci := range prefix {
				if err := part.At(ci).Add(individuals[i]); err != nil {
					return err
				}
			}

			s := newSearcher(gctx, part, individuals)
			err := s.visit(depth)

			nodes.Add(s.nodes)
			leaves.Add(s.leaves)
			validLeaves.Add(s.validLeaves)

			if s.best.partition != nil {
				mu.Lock()
				if best.better(s.best.score, branch) {
					best = incumbent{partition: s.best.partition, score: s.best.score, branch: branch}
				}
				mu.Unlock()
			}

			return err
		})
	}
	err := g.Wait()

	stats := types.SearchStats{
		Nodes:       nodes.Value(),
		Leaves:      leaves.Value(),
		ValidLeaves: validLeaves.Value(),
		Branches:    len(prefixes),
	}
	return best, stats, err
}

// branchDepth picks how many individuals to fix per branch.
func (e *Exhaustive) branchDepth(containers, individuals int) int {
	if e.splitDepth > 0 {
		return min(e.splitDepth, individuals)
	}

	target := e.parallelism * branchesPerWorker
	depth, branches := 0, 1
	for depth < individuals && branches < target && containers > 1 {
		depth++
		branches *= containers
	}

	return depth
}

// enumeratePrefixes lists, in depth-first order, every capacity-respecting
// choice of container for the first depth individuals.
func enumeratePrefixes(capacities []int, depth int) [][]int {
	var (
		out    [][]int
		prefix = make([]int, 0, depth)
		used   = make([]int, len(capacities))
	)

	var walk func()
	walk = func() {
		if len(prefix) == depth {
			out = append(out, slices.Clone(prefix))

			return
		}
		for i, capacity := range capacities {
			if used[i] >= capacity {
				continue
			}
			used[i]++
			prefix = append(prefix, i)
			walk()
			prefix = prefix[:len(prefix)-1]
			used[i]--
		}
	}
	walk()

	return out
}

func (e *Exhaustive) normalizeConfig() {
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.metrics == nil {
		e.metrics = metrics.NewNop()
	}

	if e.parallelism < 1 {
		e.logger.Warn("parallelism must be positive; clamping to 1", "provided", e.parallelism, "using", 1)
		e.parallelism = 1
	}

	if e.splitDepth < 0 {
		e.logger.Warn("split depth must not be negative; using automatic depth", "provided", e.splitDepth)
		e.splitDepth = 0
	}

	if e.maxRosterSize < 0 {
		e.logger.Warn("max roster size must not be negative; disabling the limit", "provided", e.maxRosterSize)
		e.maxRosterSize = 0
	}
}
