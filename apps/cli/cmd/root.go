// Package cmd implements the randspec command surface. It is meant to be
// embedded: consumers build their own binary, register a suite tree with
// SetRoot, and call Execute.
package cmd

import (
	"os"

	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	root      *spec.Suite
)

var rootCmd = &cobra.Command{
	Use:   "randspec",
	Short: "Seeded, tree-shaped test execution. No magic.",
	Long: `randspec executes a tree of tests and scoped setup/teardown wrappers
in an order that is shuffled but fully determined by a seed, so any
failing order can be reproduced exactly. The first failure stops the
run with a structured diagnostic.`,
}

// SetRoot registers the suite tree the run and list commands operate on.
func SetRoot(s *spec.Suite) {
	root = s
}

// Execute runs the CLI with version information injected at build time.
func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
