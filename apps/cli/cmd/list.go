package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the execution plan for a seed without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if root == nil {
			return fmt.Errorf("no suite registered: call cmd.SetRoot before Execute")
		}
		r := runner.New(root, nil)
		r.Seed = listSeedFlag
		r.FileFilter = fileFilter(listOnlyFilesFlag)

		plan := r.Plan()
		fmt.Fprintf(cmd.OutOrStdout(), "seed %d: %d tests\n", listSeedFlag, runner.CountTests(plan))
		printPlan(cmd, plan, 0)
		return nil
	},
}

var (
	listSeedFlag      int64
	listOnlyFilesFlag []string
)

func init() {
	listCmd.Flags().Int64Var(&listSeedFlag, "seed", 0, "Seed driving the shuffle")
	listCmd.Flags().StringSliceVar(&listOnlyFilesFlag, "only-files", nil, "Restrict to tests declared in these files")
}

func printPlan(cmd *cobra.Command, plan []runner.Executable, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, exe := range plan {
		switch e := exe.(type) {
		case *runner.TestExecution:
			fmt.Fprintf(cmd.OutOrStdout(), "%s- %s\n", indent, nodeLine(e.Test.Labels, "test"))
		case *runner.AroundExecution:
			fmt.Fprintf(cmd.OutOrStdout(), "%s* %s\n", indent, nodeLine(e.Suite.Labels, "suite"))
			printPlan(cmd, e.Children, depth+1)
		}
	}
}

func nodeLine(labels spec.Labels, fallback string) string {
	name := fallback
	if n, ok := labels.Name(); ok {
		name = n
	}
	if loc, ok := labels.Location(); ok {
		return fmt.Sprintf("%s (%s)", name, loc)
	}
	return name
}
