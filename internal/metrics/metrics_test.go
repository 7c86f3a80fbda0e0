package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
	require.NotPanics(t, func() {
		metrics.RecordSearchTree(10, 4, 1)
		metrics.RecordSearchInterrupted()
		metrics.RecordAssignmentDuration("greedy", 0.01)
		metrics.RecordAssignmentOutcome("greedy", "valid")
		metrics.RecordFairness("greedy", 1.5)
		metrics.RecordRelaxations(-1)
	})
}

func TestPrometheusCollector(t *testing.T) {
	t.Run("lazy registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_ = NewPrometheus(reg, "")

		families, err := reg.Gather()
		require.NoError(t, err)
		require.Empty(t, families)
	})

	t.Run("search counters", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		p := NewPrometheus(reg, "ts")

		p.RecordSearchTree(100, 20, 3)
		p.RecordSearchTree(50, 10, 2)
		p.RecordSearchInterrupted()

		require.InDelta(t, 150.0, testutil.ToFloat64(p.searchNodes), 1e-9)
		require.InDelta(t, 30.0, testutil.ToFloat64(p.searchLeaves), 1e-9)
		require.InDelta(t, 5.0, testutil.ToFloat64(p.searchValidLeaves), 1e-9)
		require.InDelta(t, 1.0, testutil.ToFloat64(p.searchInterrupted), 1e-9)
	})

	t.Run("assignment metrics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		p := NewPrometheus(reg, "ts")

		p.RecordAssignmentOutcome("greedy", "valid")
		p.RecordAssignmentOutcome("greedy", "valid")
		p.RecordAssignmentOutcome("exhaustive", "infeasible")
		p.RecordFairness("greedy", 2.5)
		p.RecordFairness("greedy", 1.0)
		p.RecordRelaxations(2)
		p.RecordRelaxations(0)
		p.RecordAssignmentDuration("greedy", 0.002)

		require.InDelta(t, 2.0, testutil.ToFloat64(p.assignOutcomes.WithLabelValues("greedy", "valid")), 1e-9)
		require.InDelta(t, 1.0, testutil.ToFloat64(p.assignOutcomes.WithLabelValues("exhaustive", "infeasible")), 1e-9)
		require.InDelta(t, 1.0, testutil.ToFloat64(p.fairness.WithLabelValues("greedy")), 1e-9)
		require.InDelta(t, 2.0, testutil.ToFloat64(p.relaxations), 1e-9)
		require.Equal(t, 1, testutil.CollectAndCount(p.assignDuration))
	})

	t.Run("metric names use namespace", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		p := NewPrometheus(reg, "")
		p.RecordSearchInterrupted()

		families, err := reg.Gather()
		require.NoError(t, err)

		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		require.Contains(t, names, "teamsplit_search_interrupted_total")
	})
}
