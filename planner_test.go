package teamsplit

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/teamsplit/internal/hash"
	"github.com/arloliu/teamsplit/internal/logging"
	"github.com/arloliu/teamsplit/internal/metrics"
	"github.com/arloliu/teamsplit/source"
	"github.com/arloliu/teamsplit/strategy"
	splittest "github.com/arloliu/teamsplit/testing"
)

func largeRoster(n, leaders int) Roster {
	r := Roster{Name: "big"}
	for i := range n {
		r.Individuals = append(r.Individuals, Individual{
			Surname:   "S" + strconv.Itoa(i),
			Advantage: float64((i*7)%10) + 0.5,
			Leader:    i < leaders,
		})
	}

	return r
}

func memberNames(c *Container) []string {
	var out []string
	for _, m := range c.Members() {
		out = append(out, m.Surname)
	}

	return out
}

// hookRecorder captures hook invocations.
type hookRecorder struct {
	mu        sync.Mutex
	assigned  []string
	fallbacks []error
	failures  []error
}

func (h *hookRecorder) hooks() *Hooks {
	return &Hooks{
		OnAssigned: func(_ context.Context, roster string, _ *Result) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.assigned = append(h.assigned, roster)

			return nil
		},
		OnFallback: func(_ context.Context, _, from, to string, cause error) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			if from == strategy.ExhaustiveName && to == strategy.GreedyName {
				h.fallbacks = append(h.fallbacks, cause)
			}

			return nil
		},
		OnError: func(_ context.Context, _ string, err error) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.failures = append(h.failures, err)

			return errors.New("hook failure is only logged")
		},
	}
}

func TestNewPlanner(t *testing.T) {
	src := source.NewStatic(splittest.Scenario())

	t.Run("nil config", func(t *testing.T) {
		_, err := NewPlanner(nil, src)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("nil source", func(t *testing.T) {
		cfg := DefaultConfig()
		_, err := NewPlanner(&cfg, nil)
		require.ErrorIs(t, err, ErrRosterSourceRequired)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := Config{Strategy: "random"}
		_, err := NewPlanner(&cfg, src)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("defaults applied to a copy", func(t *testing.T) {
		cfg := Config{Groups: 2}
		p, err := NewPlanner(&cfg, src, nil)
		require.NoError(t, err)

		require.Equal(t, StrategyAuto, p.Config().Strategy)
		require.Empty(t, cfg.Strategy, "caller config must not be modified")
	})
}

func TestPlanner_GroupCount(t *testing.T) {
	src := source.NewStatic()

	cfg := Config{TargetSize: 4}
	p, err := NewPlanner(&cfg, src)
	require.NoError(t, err)
	require.Equal(t, 1, p.GroupCount(largeRoster(4, 1)))
	require.Equal(t, 2, p.GroupCount(largeRoster(5, 1)))
	require.Equal(t, 7, p.GroupCount(largeRoster(27, 1)))

	cfg = Config{Groups: 3}
	p, err = NewPlanner(&cfg, src)
	require.NoError(t, err)
	require.Equal(t, 3, p.GroupCount(largeRoster(27, 1)))
}

func TestPlanner_Skeleton(t *testing.T) {
	cfg := Config{ContainerPrefix: "Team"}
	p, err := NewPlanner(&cfg, source.NewStatic())
	require.NoError(t, err)

	skeleton, err := p.Skeleton(largeRoster(7, 2), 2)
	require.NoError(t, err)
	require.Equal(t, []string{"Team1", "Team2"}, skeleton.Names())
	require.Equal(t, 4, skeleton.At(0).Capacity())
	require.Equal(t, 3, skeleton.At(1).Capacity())

	_, err = p.Skeleton(largeRoster(7, 2), 0)
	require.ErrorIs(t, err, ErrSizingMismatch)
}

func TestPlanner_StrategyFor(t *testing.T) {
	src := source.NewStatic()

	t.Run("auto switches at the roster limit", func(t *testing.T) {
		cfg := DefaultConfig()
		p, err := NewPlanner(&cfg, src)
		require.NoError(t, err)

		require.Equal(t, strategy.ExhaustiveName, p.StrategyFor(12).Name())
		require.Equal(t, strategy.GreedyName, p.StrategyFor(13).Name())
	})

	t.Run("auto without limit", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Exhaustive.MaxRosterSize = Unlimited
		p, err := NewPlanner(&cfg, src)
		require.NoError(t, err)

		require.Equal(t, strategy.ExhaustiveName, p.StrategyFor(40).Name())
	})

	t.Run("partial exhaustive block keeps the limit", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("exhaustive:\n  parallelism: 4\n"))
		require.NoError(t, err)
		p, err := NewPlanner(&cfg, src)
		require.NoError(t, err)

		require.Equal(t, 12, p.Config().Exhaustive.MaxRosterSize)
		require.Equal(t, 30*time.Second, p.Config().Exhaustive.Timeout)
		require.Equal(t, strategy.GreedyName, p.StrategyFor(30).Name())
	})

	t.Run("explicit strategies", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Strategy = StrategyGreedy
		p, err := NewPlanner(&cfg, src)
		require.NoError(t, err)
		require.Equal(t, strategy.GreedyName, p.StrategyFor(3).Name())

		cfg.Strategy = StrategyExhaustive
		p, err = NewPlanner(&cfg, src)
		require.NoError(t, err)
		require.Equal(t, strategy.ExhaustiveName, p.StrategyFor(30).Name())
	})

	t.Run("fixed strategy wins", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Strategy = StrategyExhaustive
		p, err := NewPlanner(&cfg, src, WithStrategy(strategy.NewGreedy()))
		require.NoError(t, err)
		require.Equal(t, strategy.GreedyName, p.StrategyFor(3).Name())
	})
}

func TestPlanner_AssignNamed(t *testing.T) {
	rec := &hookRecorder{}
	cfg := Config{Groups: 2}
	p, err := NewPlanner(&cfg, source.NewStatic(splittest.Scenario()), WithHooks(rec.hooks()))
	require.NoError(t, err)

	t.Run("optimal placement", func(t *testing.T) {
		res, err := p.AssignNamed(context.Background(), "1A")
		require.NoError(t, err)

		require.Equal(t, strategy.ExhaustiveName, res.Strategy)
		require.True(t, res.Valid)
		require.Zero(t, res.Fairness)
		require.Equal(t, []string{"A", "D"}, memberNames(res.Partition.At(0)))
		require.Equal(t, []string{"B", "C"}, memberNames(res.Partition.At(1)))
		require.Equal(t, int64(6), res.Stats.Leaves)
		require.Equal(t, []string{"1A"}, rec.assigned)
	})

	t.Run("unknown roster", func(t *testing.T) {
		_, err := p.AssignNamed(context.Background(), "9Z")
		require.ErrorIs(t, err, ErrRosterNotFound)
		require.Contains(t, err.Error(), "1A")
	})
}

func TestPlanner_AssignErrors(t *testing.T) {
	t.Run("not enough leaders", func(t *testing.T) {
		rec := &hookRecorder{}
		logs := logging.NewRecorder()
		cfg := Config{Groups: 3}
		p, err := NewPlanner(&cfg, source.NewStatic(), WithHooks(rec.hooks()), WithLogger(logs))
		require.NoError(t, err)

		res, err := p.Assign(context.Background(), largeRoster(6, 2))
		require.Nil(t, res)
		require.ErrorIs(t, err, ErrInfeasibleLeaders)
		require.True(t, IsInfeasible(err))
		require.Len(t, rec.failures, 1)
		require.Empty(t, rec.assigned)
		require.Len(t, logs.Find("WARN", "OnError hook failed"), 1)
	})

	t.Run("invalid individual", func(t *testing.T) {
		cfg := Config{Groups: 1}
		p, err := NewPlanner(&cfg, source.NewStatic(), WithLogger(splittest.NewTestLogger(t)))
		require.NoError(t, err)

		r := largeRoster(3, 1)
		r.Individuals[2].Advantage = -1
		_, err = p.Assign(context.Background(), r)
		require.ErrorIs(t, err, ErrInvalidIndividual)
	})
}

func TestPlanner_Fallback(t *testing.T) {
	t.Run("no valid placement falls back to greedy", func(t *testing.T) {
		rec := &hookRecorder{}
		logs := logging.NewRecorder()
		cfg := Config{Groups: 2}
		p, err := NewPlanner(&cfg, source.NewStatic(), WithHooks(rec.hooks()), WithLogger(logs))
		require.NoError(t, err)

		res, err := p.Assign(context.Background(), splittest.Crowded())
		require.NoError(t, err)

		require.Equal(t, strategy.GreedyName, res.Strategy)
		require.False(t, res.Valid)
		require.Equal(t, 1, res.Relaxations)
		require.Equal(t, []int{1}, res.InfeasiblePolarities)
		require.Equal(t, []string{"A", "D"}, memberNames(res.Partition.At(0)))
		require.Len(t, rec.fallbacks, 1)
		require.ErrorIs(t, rec.fallbacks[0], ErrNoValidAssignment)
		require.Len(t, logs.Find("WARN", "polarities outnumber groups"), 1)
		require.Len(t, logs.Find("WARN", "falling back"), 1)
	})

	t.Run("explicit exhaustive does not fall back", func(t *testing.T) {
		rec := &hookRecorder{}
		cfg := Config{Groups: 2, Strategy: StrategyExhaustive}
		p, err := NewPlanner(&cfg, source.NewStatic(), WithHooks(rec.hooks()))
		require.NoError(t, err)

		res, err := p.Assign(context.Background(), splittest.Crowded())
		require.ErrorIs(t, err, ErrNoValidAssignment)
		require.NotNil(t, res)
		require.Nil(t, res.Partition)
		require.Equal(t, int64(6), res.Stats.Leaves)
		require.Empty(t, rec.fallbacks)
		require.Len(t, rec.failures, 1)
	})

	t.Run("timeout falls back to greedy", func(t *testing.T) {
		rec := &hookRecorder{}
		cfg := DefaultConfig()
		cfg.Groups = 4
		cfg.Exhaustive.MaxRosterSize = Unlimited
		cfg.Exhaustive.Timeout = 20 * time.Millisecond
		p, err := NewPlanner(&cfg, source.NewStatic(), WithHooks(rec.hooks()))
		require.NoError(t, err)

		res, err := p.Assign(context.Background(), largeRoster(16, 4))
		require.NoError(t, err)
		require.NotNil(t, res.Partition)
		require.Equal(t, 16, res.Partition.Occupancy())
		require.True(t, res.Valid)
		require.Len(t, rec.fallbacks, 1)
		require.ErrorIs(t, rec.fallbacks[0], ErrSearchInterrupted)
		require.ErrorIs(t, rec.fallbacks[0], context.DeadlineExceeded)
	})

	t.Run("caller cancellation is returned", func(t *testing.T) {
		rec := &hookRecorder{}
		cfg := DefaultConfig()
		cfg.Groups = 2
		p, err := NewPlanner(&cfg, source.NewStatic(), WithHooks(rec.hooks()))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = p.Assign(ctx, splittest.Scenario())
		require.ErrorIs(t, err, ErrSearchInterrupted)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, rec.fallbacks)
	})
}

func TestPlanner_Greedy(t *testing.T) {
	t.Run("large roster uses greedy in auto mode", func(t *testing.T) {
		cfg := Config{TargetSize: 4}
		p, err := NewPlanner(&cfg, source.NewStatic())
		require.NoError(t, err)

		res, err := p.Assign(context.Background(), largeRoster(20, 5))
		require.NoError(t, err)
		require.Equal(t, strategy.GreedyName, res.Strategy)
		require.Equal(t, 5, res.Partition.Len())
		require.True(t, res.Valid)
	})

	t.Run("seed reaches the greedy engine", func(t *testing.T) {
		seed := uint64(11)
		cfg := Config{Strategy: StrategyGreedy, Groups: 4, Seed: &seed}
		p, err := NewPlanner(&cfg, source.NewStatic())
		require.NoError(t, err)

		r := largeRoster(16, 4)
		res, err := p.Assign(context.Background(), r)
		require.NoError(t, err)

		skeleton, err := p.Skeleton(r, 4)
		require.NoError(t, err)
		want, err := strategy.NewGreedy(strategy.WithSeed(seed)).Assign(context.Background(), skeleton, r.Individuals)
		require.NoError(t, err)

		require.Equal(t, hash.Fingerprint(want.Partition), hash.Fingerprint(res.Partition))
	})
}

func TestPlanner_AssignAll(t *testing.T) {
	cfg := Config{Groups: 2, Strategy: StrategyExhaustive}
	infeasible := largeRoster(4, 1)
	infeasible.Name = "0Z"
	p, err := NewPlanner(&cfg, source.NewStatic(splittest.Scenario(), infeasible))
	require.NoError(t, err)

	results, err := p.AssignAll(context.Background())
	require.Error(t, err)
	require.True(t, IsInfeasible(err))
	require.Contains(t, err.Error(), `roster "0Z"`)

	require.Len(t, results, 1)
	require.Contains(t, results, "1A")
}

func TestPlanner_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := Config{Groups: 2}
	p, err := NewPlanner(&cfg, source.NewStatic(), WithMetrics(metrics.NewPrometheus(reg, "teamsplit")))
	require.NoError(t, err)

	_, err = p.Assign(context.Background(), splittest.Crowded())
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	outcomes := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != "teamsplit_assignment_outcomes_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			outcomes[labels["strategy"]+"/"+labels["outcome"]] = m.GetCounter().GetValue()
		}
	}

	require.Equal(t, map[string]float64{
		"exhaustive/infeasible": 1,
		"greedy/relaxed":        1,
	}, outcomes)
}
