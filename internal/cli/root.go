// Package cli implements the teamsplit command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/teamsplit"
	"github.com/arloliu/teamsplit/internal/logging"
	"github.com/arloliu/teamsplit/internal/metrics"
	"github.com/arloliu/teamsplit/source"
	"github.com/arloliu/teamsplit/types"
)

// Exit codes returned by Execute.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitInfeasible = 2
)

var errNoInput = errors.New("no roster file given and no .xlsx or .csv file in the current directory")

// app carries state shared by the subcommands of one invocation.
type app struct {
	v        *viper.Viper
	logger   *logging.SlogLogger
	registry *prometheus.Registry
	metrics  types.MetricsCollector
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)

	return ExitCode(cmd.ExecuteContext(ctx))
}

// ExitCode maps a command error to a process exit code.
//
// A joined error maps to ExitInfeasible only when every joined failure is a
// feasibility gap; any other failure among them yields ExitError.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) > 0 && !slices.ContainsFunc(errs, func(e error) bool { return !teamsplit.IsInfeasible(e) }) {
			return ExitInfeasible
		}

		return ExitError
	}
	if teamsplit.IsInfeasible(err) {
		return ExitInfeasible
	}

	return ExitError
}

// NewRootCommand builds the teamsplit command tree.
//
// Settings resolve in order: command-line flags, TEAMSPLIT_* environment
// variables, the YAML file given by --config, built-in defaults.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "teamsplit",
		Short: "Split class rosters into balanced project groups",
		Long: `teamsplit splits each roster of a spreadsheet into project groups.

Every group gets at least one leader, individuals sharing a polarity are kept
apart, and the spread of total advantage across groups is minimized.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringP("config", "c", "", "config file (YAML)")
	f.StringP("input", "i", "", "roster file: .xlsx, .csv or .yaml (default: first .xlsx or .csv in the current directory)")
	f.String("sheet", "", `spreadsheet sheet (default "`+source.DefaultSheet+`" when present, else the first sheet)`)
	f.String("log-level", "warn", "log level: debug, info, warn, error")
	f.String("log-format", "text", "log format: text or json")
	f.String("metrics-file", "", "write Prometheus metrics to this textfile when done")
	f.IntP("groups", "g", 0, "number of groups per roster (default: derived from --target-size)")
	f.Int("target-size", 0, "target group size when --groups is not set (default 4)")
	f.String("strategy", "", "engine: auto, exhaustive or greedy (default auto)")
	f.Uint64("seed", 0, "seed for the greedy tie-break between equivalent individuals")
	f.Duration("timeout", 0, "exhaustive search timeout, negative for none (default 30s)")
	f.Int("max-roster-size", 0, "largest roster searched exhaustively, -1 for no limit (default 12)")
	f.Int("parallelism", 0, "exhaustive search workers (default 1)")

	for key, flag := range map[string]string{
		"config":                   "config",
		"input":                    "input",
		"sheet":                    "sheet",
		"log.level":                "log-level",
		"log.format":               "log-format",
		"metrics.file":             "metrics-file",
		"groups":                   "groups",
		"targetSize":               "target-size",
		"strategy":                 "strategy",
		"seed":                     "seed",
		"exhaustive.timeout":       "timeout",
		"exhaustive.maxRosterSize": "max-roster-size",
		"exhaustive.parallelism":   "parallelism",
	} {
		_ = a.v.BindPFlag(key, f.Lookup(flag))
	}

	a.v.SetEnvPrefix("TEAMSPLIT")
	// TEAMSPLIT_EXHAUSTIVE_TIMEOUT for exhaustive.timeout
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newAssignCommand(a),
		newGroupsCommand(a),
		newBenchCommand(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = logging.New(cmd.ErrOrStderr(), a.v.GetString("log.level"), a.v.GetString("log.format"))

	if a.v.GetString("metrics.file") != "" {
		a.registry = prometheus.NewRegistry()
		a.metrics = metrics.NewPrometheus(a.registry, "teamsplit")
	} else {
		a.metrics = metrics.NewNop()
	}

	return nil
}

// finish writes the metrics textfile, if any, and returns err joined with
// any write failure.
func (a *app) finish(err error) error {
	if a.registry == nil {
		return err
	}

	path := a.v.GetString("metrics.file")
	if werr := prometheus.WriteToTextfile(path, a.registry); werr != nil {
		return errors.Join(err, fmt.Errorf("write metrics: %w", werr))
	}
	a.logger.Debug("metrics written", "path", path)

	return err
}

// plannerConfig layers flags and environment over the config file.
func (a *app) plannerConfig() (teamsplit.Config, error) {
	cfg := teamsplit.DefaultConfig()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := teamsplit.LoadConfig(path)
		if err != nil {
			return teamsplit.Config{}, err
		}
		cfg = loaded
	}

	if a.v.IsSet("strategy") {
		cfg.Strategy = a.v.GetString("strategy")
	}
	if a.v.IsSet("groups") {
		cfg.Groups = a.v.GetInt("groups")
	}
	if a.v.IsSet("targetSize") {
		cfg.TargetSize = a.v.GetInt("targetSize")
	}
	if a.v.IsSet("seed") {
		seed := a.v.GetUint64("seed")
		cfg.Seed = &seed
	}
	if a.v.IsSet("exhaustive.timeout") {
		cfg.Exhaustive.Timeout = a.v.GetDuration("exhaustive.timeout")
	}
	if a.v.IsSet("exhaustive.maxRosterSize") {
		cfg.Exhaustive.MaxRosterSize = a.v.GetInt("exhaustive.maxRosterSize")
	}
	if a.v.IsSet("exhaustive.parallelism") {
		cfg.Exhaustive.Parallelism = a.v.GetInt("exhaustive.parallelism")
	}

	teamsplit.SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return teamsplit.Config{}, err
	}

	return cfg, nil
}

// openSource opens the roster file named by --input, or the first spreadsheet
// in the working directory.
func (a *app) openSource() (types.RosterSource, error) {
	path, err := pickInput(a.v.GetString("input"))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("reading rosters", "path", path)

	return source.Open(path, a.v.GetString("sheet"))
}

func (a *app) planner() (*teamsplit.Planner, error) {
	cfg, err := a.plannerConfig()
	if err != nil {
		return nil, err
	}

	src, err := a.openSource()
	if err != nil {
		return nil, err
	}

	return teamsplit.NewPlanner(&cfg, src,
		teamsplit.WithLogger(a.logger),
		teamsplit.WithMetrics(a.metrics),
	)
}

func pickInput(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	for _, pattern := range []string{"*.xlsx", "*.csv"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return "", err
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}

	return "", errNoInput
}
