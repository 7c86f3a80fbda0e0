// Package bench compares the exhaustive and greedy engines on the same rosters.
package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/arloliu/teamsplit/internal/logging"
	"github.com/arloliu/teamsplit/source"
	"github.com/arloliu/teamsplit/types"
)

// Method values reported in Result.Method.
const (
	MethodExhaustive        = "exhaustive"
	MethodHeuristic         = "heuristic"
	MethodExhaustiveTimeout = "exhaustive_timeout"
	MethodExhaustiveError   = "exhaustive_error"
	MethodHeuristicError    = "heuristic_error"
)

// Scenario is one roster split into a fixed number of groups.
type Scenario struct {
	Name   string
	Roster types.Roster
	Groups int
}

// Result is one engine run on one scenario.
type Result struct {
	Scenario  string   `json:"scenario"`
	Method    string   `json:"method"`
	Fairness  *float64 `json:"fairness,omitempty"`
	Conflicts *int     `json:"conflicts,omitempty"`
	DurationS float64  `json:"duration_s"`
	Nodes     int64    `json:"nodes,omitempty"`
	Note      string   `json:"note,omitempty"`
}

// Runner runs both engines over scenarios.
type Runner struct {
	// Exhaustive is the optimal engine; Greedy the heuristic one.
	Exhaustive types.AssignmentStrategy
	Greedy     types.AssignmentStrategy

	// Timeout bounds each exhaustive run. Zero means no deadline.
	Timeout time.Duration

	// ContainerPrefix names the groups of every skeleton.
	ContainerPrefix string

	Logger types.Logger
}

// Scenarios builds the benchmark scenarios for the named rosters.
//
// Each roster contributes its full scenario, plus a subset of at most
// subsetSize individuals in which no polarity appears more often than there
// are groups. The subset is skipped when it would equal the full roster or
// subsetSize is not positive.
//
// Parameters:
//   - rosters: Rosters keyed by name
//   - names: Rosters to include, in order; empty means all, sorted
//   - groups: Group count; zero derives it from targetSize per roster
//   - targetSize: Target group size used when groups is zero
//   - subsetSize: Size of the feasible subset scenario
//
// Returns:
//   - []Scenario: Scenarios in roster order, full before subset
//   - error: ErrRosterNotFound for an unknown name
func Scenarios(rosters map[string]types.Roster, names []string, groups, targetSize, subsetSize int) ([]Scenario, error) {
	if len(names) == 0 {
		names = source.Names(rosters)
	}

	var out []Scenario
	for _, name := range names {
		r, ok := rosters[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", types.ErrRosterNotFound, name)
		}

		k := groups
		if k <= 0 {
			k = r.GroupCountFor(targetSize)
		}
		out = append(out, Scenario{Name: name, Roster: r, Groups: k})

		if subsetSize <= 0 {
			continue
		}
		sub := r.Subset(subsetSize, k)
		if sub.Len() < r.Len() {
			out = append(out, Scenario{Name: sub.Name, Roster: sub, Groups: k})
		}
	}

	return out, nil
}

// Run executes the exhaustive engine then the greedy engine on every scenario.
//
// Engine failures are recorded as *_error or exhaustive_timeout results; only
// cancellation of ctx stops the run early.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) []Result {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	results := make([]Result, 0, 2*len(scenarios))
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			break
		}

		ex := r.runExhaustive(ctx, sc)
		logger.Info("benchmark run", "scenario", ex.Scenario, "method", ex.Method, "seconds", ex.DurationS)
		results = append(results, ex)

		gr := r.runGreedy(ctx, sc)
		logger.Info("benchmark run", "scenario", gr.Scenario, "method", gr.Method, "seconds", gr.DurationS)
		results = append(results, gr)
	}

	return results
}

func (r *Runner) runExhaustive(ctx context.Context, sc Scenario) Result {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	res, elapsed, err := r.run(ctx, r.Exhaustive, sc)
	out := Result{Scenario: sc.Name, Method: MethodExhaustive, DurationS: elapsed.Seconds()}
	if res != nil {
		out.Nodes = res.Stats.Nodes
	}

	switch {
	case errors.Is(err, types.ErrSearchInterrupted):
		out.Method = MethodExhaustiveTimeout
		out.Note = err.Error()
		if res != nil && res.Partition != nil {
			setScores(&out, res)
			out.Note = "best placement found before interruption"
		}
	case err != nil:
		out.Method = MethodExhaustiveError
		out.Note = err.Error()
	default:
		setScores(&out, res)
	}

	return out
}

func (r *Runner) runGreedy(ctx context.Context, sc Scenario) Result {
	res, elapsed, err := r.run(ctx, r.Greedy, sc)
	out := Result{Scenario: sc.Name, Method: MethodHeuristic, DurationS: elapsed.Seconds()}
	if err != nil {
		out.Method = MethodHeuristicError
		out.Note = err.Error()

		return out
	}

	setScores(&out, res)
	if res.Relaxations > 0 {
		out.Note = fmt.Sprintf("polarity separation relaxed %d times", res.Relaxations)
	}

	return out
}

func (r *Runner) run(ctx context.Context, engine types.AssignmentStrategy, sc Scenario) (*types.Result, time.Duration, error) {
	start := time.Now()

	sizes, err := sc.Roster.Sizes(sc.Groups)
	if err != nil {
		return nil, time.Since(start), err
	}
	skeleton, err := types.NewPartitionFromSizes(r.ContainerPrefix, sizes)
	if err != nil {
		return nil, time.Since(start), err
	}

	res, err := engine.Assign(ctx, skeleton, sc.Roster.Individuals)

	return res, time.Since(start), err
}

func setScores(out *Result, res *types.Result) {
	fairness := math.Round(res.Fairness*1e6) / 1e6
	conflicts := res.Conflicts
	out.Fairness = &fairness
	out.Conflicts = &conflicts
}

// WriteJSON writes results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if results == nil {
		results = []Result{}
	}

	return enc.Encode(results)
}
