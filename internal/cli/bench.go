package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/teamsplit/internal/bench"
	"github.com/arloliu/teamsplit/strategy"
)

func newBenchCommand(a *app) *cobra.Command {
	var (
		output     string
		subsetSize int
	)

	cmd := &cobra.Command{
		Use:   "bench [roster...]",
		Short: "Compare the exhaustive and greedy engines",
		Long: `Run both engines on each roster and on a feasible subset of it, then
write a JSON report with fairness, conflicts and duration per run.

The subset keeps at most --subset-size individuals, each polarity appearing
no more often than there are groups. Rosters above --max-roster-size are
reported as exhaustive_error; set --max-roster-size -1 to search them anyway.`,
		Example: `  teamsplit bench 1A 2B --groups 3 --timeout 1m --output report/benchmark.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finish(runBench(cmd, a, args, subsetSize, output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to this file instead of stdout")
	cmd.Flags().IntVar(&subsetSize, "subset-size", 12, "size of the feasible subset scenario (0 disables it)")

	return cmd
}

func runBench(cmd *cobra.Command, a *app, names []string, subsetSize int, output string) (err error) {
	cfg, err := a.plannerConfig()
	if err != nil {
		return err
	}

	src, err := a.openSource()
	if err != nil {
		return err
	}

	rosters, err := src.ListRosters(cmd.Context())
	if err != nil {
		return err
	}

	scenarios, err := bench.Scenarios(rosters, names, cfg.Groups, cfg.TargetSize, subsetSize)
	if err != nil {
		return err
	}

	greedyOpts := []strategy.GreedyOption{
		strategy.WithGreedyLogger(a.logger),
		strategy.WithGreedyMetrics(a.metrics),
	}
	if cfg.Seed != nil {
		greedyOpts = append(greedyOpts, strategy.WithSeed(*cfg.Seed))
	}

	runner := &bench.Runner{
		Exhaustive: strategy.NewExhaustive(
			strategy.WithParallelism(cfg.Exhaustive.Parallelism),
			strategy.WithSplitDepth(cfg.Exhaustive.SplitDepth),
			strategy.WithMaxRosterSize(cfg.Exhaustive.MaxRosterSize),
			strategy.WithExhaustiveLogger(a.logger),
			strategy.WithExhaustiveMetrics(a.metrics),
		),
		Greedy:          strategy.NewGreedy(greedyOpts...),
		Timeout:         cfg.Exhaustive.Timeout,
		ContainerPrefix: cfg.ContainerPrefix,
		Logger:          a.logger,
	}

	start := time.Now()
	results := runner.Run(cmd.Context(), scenarios)
	a.logger.Info("benchmark complete", "scenarios", len(scenarios), "runs", len(results), "elapsed", time.Since(start))

	if output == "" {
		return bench.WriteJSON(cmd.OutOrStdout(), results)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := bench.WriteJSON(f, results); err != nil {
		return err
	}

	return writeBenchSummary(cmd, output, results)
}

func writeBenchSummary(cmd *cobra.Command, path string, results []bench.Result) error {
	rows := []string{"Scenario|Method|Fairness|Conflicts|Seconds"}
	for _, r := range results {
		fairness, conflicts := "", ""
		if r.Fairness != nil {
			fairness = formatAdvantage(*r.Fairness)
		}
		if r.Conflicts != nil {
			conflicts = fmt.Sprint(*r.Conflicts)
		}
		rows = append(rows, fmt.Sprintf("%s|%s|%s|%s|%.4f", r.Scenario, r.Method, fairness, conflicts, r.DurationS))
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Results (%s):\n%s\n", path, formatList(rows))

	return err
}
