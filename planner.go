package teamsplit

import (
	"context"
	"errors"
	"fmt"

	"github.com/arloliu/teamsplit/internal/hooks"
	"github.com/arloliu/teamsplit/internal/logging"
	"github.com/arloliu/teamsplit/internal/metrics"
	"github.com/arloliu/teamsplit/scoring"
	"github.com/arloliu/teamsplit/source"
	"github.com/arloliu/teamsplit/strategy"
	"github.com/arloliu/teamsplit/types"
)

// Planner turns rosters into project groups.
//
// It sizes the partition from the configured group count, builds the empty
// skeleton, picks an engine and reports the result. A Planner holds no
// per-call state and is safe for concurrent use.
type Planner struct {
	cfg    Config
	source RosterSource

	logger  Logger
	metrics MetricsCollector
	hooks   Hooks

	fixed      AssignmentStrategy
	exhaustive *strategy.Exhaustive
	greedy     *strategy.Greedy
}

// NewPlanner creates a new Planner.
//
// Parameters:
//   - cfg: Configuration; missing values get defaults (cfg itself is not modified)
//   - src: Roster source used by AssignNamed and AssignAll
//   - opts: Optional configuration (WithLogger, WithMetrics, WithHooks, WithStrategy)
//
// Returns:
//   - *Planner: Initialized planner
//   - error: ErrInvalidConfig, ErrRosterSourceRequired
//
// Example:
//
//	cfg := teamsplit.DefaultConfig()
//	cfg.Groups = 3
//	planner, err := teamsplit.NewPlanner(&cfg, source.NewCSV("class.csv"))
//	if err != nil {
//	    return err
//	}
//	res, err := planner.AssignNamed(ctx, "1A")
func NewPlanner(cfg *Config, src RosterSource, opts ...Option) (*Planner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if src == nil {
		return nil, ErrRosterSourceRequired
	}

	c := *cfg
	SetDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	options := &plannerOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}
	if options.logger == nil {
		options.logger = logging.NewNop()
	}

	c.ValidateWithWarnings(options.logger)

	greedyOpts := []strategy.GreedyOption{
		strategy.WithGreedyLogger(options.logger),
		strategy.WithGreedyMetrics(options.metrics),
	}
	if c.Seed != nil {
		greedyOpts = append(greedyOpts, strategy.WithSeed(*c.Seed))
	}

	return &Planner{
		cfg:     c,
		source:  src,
		logger:  options.logger,
		metrics: options.metrics,
		hooks:   hooks.Fill(options.hooks),
		fixed:   options.strategy,
		exhaustive: strategy.NewExhaustive(
			strategy.WithParallelism(c.Exhaustive.Parallelism),
			strategy.WithSplitDepth(c.Exhaustive.SplitDepth),
			strategy.WithMaxRosterSize(c.Exhaustive.MaxRosterSize),
			strategy.WithExhaustiveLogger(options.logger),
			strategy.WithExhaustiveMetrics(options.metrics),
		),
		greedy: strategy.NewGreedy(greedyOpts...),
	}, nil
}

// Config returns the effective configuration, defaults applied.
func (p *Planner) Config() Config {
	return p.cfg
}

// GroupCount returns the number of groups for r: Config.Groups when set,
// otherwise ceil(len(r) / Config.TargetSize).
func (p *Planner) GroupCount(r Roster) int {
	if p.cfg.Groups > 0 {
		return p.cfg.Groups
	}

	return r.GroupCountFor(p.cfg.TargetSize)
}

// Skeleton builds the empty partition for r split into k groups.
//
// Returns:
//   - *Partition: Containers named ContainerPrefix+1..k with balanced capacities
//   - error: ErrSizingMismatch when k is not positive
func (p *Planner) Skeleton(r Roster, k int) (*Partition, error) {
	sizes, err := r.Sizes(k)
	if err != nil {
		return nil, err
	}

	return types.NewPartitionFromSizes(p.cfg.ContainerPrefix, sizes)
}

// StrategyFor returns the engine the planner would start with for a roster
// of n individuals.
func (p *Planner) StrategyFor(n int) AssignmentStrategy {
	if p.fixed != nil {
		return p.fixed
	}

	switch p.cfg.Strategy {
	case StrategyGreedy:
		return p.greedy
	case StrategyExhaustive:
		return p.exhaustive
	default:
		if limit := p.cfg.Exhaustive.MaxRosterSize; limit > 0 && n > limit {
			return p.greedy
		}

		return p.exhaustive
	}
}

// Rosters lists every roster of the source.
func (p *Planner) Rosters(ctx context.Context) (map[string]Roster, error) {
	return p.source.ListRosters(ctx)
}

// AssignNamed loads the roster called name from the source and assigns it.
//
// Returns:
//   - *Result: Assignment result
//   - error: ErrRosterNotFound, or any error from Assign
func (p *Planner) AssignNamed(ctx context.Context, name string) (*Result, error) {
	r, err := source.Lookup(ctx, p.source, name)
	if err != nil {
		return nil, err
	}

	return p.Assign(ctx, r)
}

// AssignAll assigns every roster of the source, in name order.
//
// A failing roster does not stop the others. The returned map holds the
// rosters that produced a result (including interrupted searches that kept an
// incumbent); the error joins every per-roster failure.
func (p *Planner) AssignAll(ctx context.Context) (map[string]*Result, error) {
	rosters, err := p.source.ListRosters(ctx)
	if err != nil {
		return nil, err
	}

	results := make(map[string]*Result, len(rosters))
	var errs []error
	for _, name := range source.Names(rosters) {
		res, err := p.Assign(ctx, rosters[name])
		if res != nil && res.Partition != nil {
			results[name] = res
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("roster %q: %w", name, err))
			if ctx.Err() != nil {
				break
			}
		}
	}

	return results, errors.Join(errs...)
}

// Assign splits r into GroupCount(r) groups.
func (p *Planner) Assign(ctx context.Context, r Roster) (*Result, error) {
	return p.AssignGroups(ctx, r, p.GroupCount(r))
}

// AssignGroups splits r into k groups.
//
// In auto mode the exhaustive search runs on rosters up to
// Exhaustive.MaxRosterSize; when it times out or finds no valid placement the
// greedy engine takes over and OnFallback fires. An interrupted search whose
// incumbent beats the greedy placement keeps the incumbent.
//
// Parameters:
//   - ctx: Context for cancellation; Exhaustive.Timeout is applied on top of it
//   - r: Roster to split
//   - k: Number of groups
//
// Returns:
//   - *Result: Assignment result (may be non-nil alongside an interruption error)
//   - error: Validation, sizing, feasibility or cancellation error
func (p *Planner) AssignGroups(ctx context.Context, r Roster, k int) (*Result, error) {
	res, err := p.assignGroups(ctx, r, k)
	if err != nil {
		if hookErr := p.hooks.OnError(ctx, r.Name, err); hookErr != nil {
			p.logger.Warn("OnError hook failed", "roster", r.Name, "error", hookErr)
		}

		return res, err
	}

	if hookErr := p.hooks.OnAssigned(ctx, r.Name, res); hookErr != nil {
		p.logger.Warn("OnAssigned hook failed", "roster", r.Name, "error", hookErr)
	}

	return res, nil
}

func (p *Planner) assignGroups(ctx context.Context, r Roster, k int) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	skeleton, err := p.Skeleton(r, k)
	if err != nil {
		return nil, err
	}

	if bad := scoring.InfeasiblePolarities(r.Individuals, k); len(bad) > 0 {
		p.logger.Warn("polarities outnumber groups, separation cannot hold",
			"roster", r.Name,
			"groups", k,
			"polarities", bad,
		)
	}

	engine := p.StrategyFor(r.Len())
	p.logger.Info("assigning roster",
		"roster", r.Name,
		"individuals", r.Len(),
		"groups", k,
		"strategy", engine.Name(),
	)

	if p.fixed != nil {
		return p.fixed.Assign(ctx, skeleton, r.Individuals)
	}
	if engine == p.greedy {
		return p.greedy.Assign(ctx, skeleton, r.Individuals)
	}

	res, err := p.search(ctx, skeleton, r.Individuals)
	if err == nil || p.cfg.Strategy == StrategyExhaustive {
		return res, err
	}
	if !errors.Is(err, ErrSearchInterrupted) && !errors.Is(err, ErrNoValidAssignment) {
		return res, err
	}
	if ctx.Err() != nil {
		return res, err
	}

	return p.fallback(ctx, r.Name, skeleton, r.Individuals, res, err)
}

// search runs the exhaustive engine under Exhaustive.Timeout.
func (p *Planner) search(ctx context.Context, skeleton *Partition, individuals []Individual) (*Result, error) {
	if p.cfg.Exhaustive.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Exhaustive.Timeout)
		defer cancel()
	}

	return p.exhaustive.Assign(ctx, skeleton, individuals)
}

// fallback runs the greedy engine after the exhaustive search gave up. An
// interrupted incumbent is kept when it scores at least as well.
func (p *Planner) fallback(ctx context.Context, roster string, skeleton *Partition, individuals []Individual, incumbent *Result, cause error) (*Result, error) {
	p.logger.Warn("exhaustive search did not conclude, falling back to greedy",
		"roster", roster,
		"cause", cause,
	)
	if hookErr := p.hooks.OnFallback(ctx, roster, strategy.ExhaustiveName, strategy.GreedyName, cause); hookErr != nil {
		p.logger.Warn("OnFallback hook failed", "roster", roster, "error", hookErr)
	}

	res, err := p.greedy.Assign(ctx, skeleton, individuals)
	if err != nil {
		return nil, err
	}

	if incumbent != nil && incumbent.Partition != nil && (!res.Valid || incumbent.Fairness <= res.Fairness) {
		p.logger.Info("keeping interrupted search incumbent",
			"roster", roster,
			"fairness", incumbent.Fairness,
			"greedyFairness", res.Fairness,
		)

		return incumbent, nil
	}

	return res, nil
}
