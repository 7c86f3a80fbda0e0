package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/teamsplit"
	"github.com/arloliu/teamsplit/source"
	"github.com/arloliu/teamsplit/types"
)

func newAssignCommand(a *app) *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "assign [roster...]",
		Short: "Split rosters into project groups",
		Long: `Split one or more rosters into project groups and print the result.

Roster names are the values of the "Groupe" column (for example 1A).
Exit status is 2 when a roster cannot be split into the requested number of
groups; retry with fewer groups.`,
		Example: `  teamsplit assign 1A --input classes.xlsx --groups 3
  teamsplit assign --all --target-size 5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("give at least one roster name or --all")
			}

			return a.finish(runAssign(cmd, a, args, all, asJSON))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "assign every roster of the input file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func runAssign(cmd *cobra.Command, a *app, names []string, all, asJSON bool) error {
	planner, err := a.planner()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var listed map[string]types.Roster
	if all {
		listed, err = planner.Rosters(ctx)
		if err != nil {
			return err
		}
		names = source.Names(listed)
	}

	out := cmd.OutOrStdout()
	var results []jsonResult
	emitted := 0
	assignErr := assignRosters(ctx, planner, names, listed, func(name string, res *types.Result) error {
		if asJSON {
			results = append(results, toJSONResult(name, res))

			return nil
		}
		if emitted > 0 {
			fmt.Fprintln(out)
		}
		emitted++

		return writeResult(out, name, res)
	})

	if asJSON {
		if results == nil {
			results = []jsonResult{}
		}
		if err := writeJSON(out, results); err != nil {
			return err
		}
	}

	return assignErr
}

// assignRosters runs the planner on each name and hands results to emit.
// Names found in listed are assigned from it; others are looked up in the
// source. Per-roster failures are joined, an emit failure aborts.
func assignRosters(ctx context.Context, planner *teamsplit.Planner, names []string, listed map[string]types.Roster,
	emit func(name string, res *types.Result) error,
) error {
	var errs []error
	for _, name := range names {
		var (
			res *types.Result
			err error
		)
		if r, ok := listed[name]; ok {
			res, err = planner.Assign(ctx, r)
		} else {
			res, err = planner.AssignNamed(ctx, name)
		}
		if err != nil {
			if teamsplit.IsInfeasible(err) {
				err = fmt.Errorf("%w (try fewer groups)", err)
			}
			errs = append(errs, fmt.Errorf("roster %s: %w", name, err))
			if ctx.Err() != nil {
				break
			}

			continue
		}

		if err := emit(name, res); err != nil {
			return err
		}
	}

	return errors.Join(errs...)
}

func newGroupsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the rosters of the input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(runGroups(cmd, a))
		},
	}
}

func runGroups(cmd *cobra.Command, a *app) error {
	src, err := a.openSource()
	if err != nil {
		return err
	}

	rosters, err := src.ListRosters(cmd.Context())
	if err != nil {
		return err
	}

	rows := []string{"Roster|Individuals|Leaders|Polarities"}
	for _, name := range source.Names(rosters) {
		r := rosters[name]
		rows = append(rows, fmt.Sprintf("%s|%d|%d|%s", name, r.Len(), r.Leaders(), polaritySummary(r)))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), formatList(rows))

	return err
}

// polaritySummary renders "1x3 2x2" for three members of polarity 1 and two
// of polarity 2, in polarity order.
func polaritySummary(r teamsplit.Roster) string {
	counts := make(map[int]int)
	var order []int
	for _, ind := range r.Individuals {
		if ind.Polarity == nil {
			continue
		}
		if counts[*ind.Polarity] == 0 {
			order = append(order, *ind.Polarity)
		}
		counts[*ind.Polarity]++
	}
	slices.Sort(order)

	parts := make([]string, len(order))
	for i, p := range order {
		parts[i] = fmt.Sprintf("%dx%d", p, counts[p])
	}

	return strings.Join(parts, " ")
}
