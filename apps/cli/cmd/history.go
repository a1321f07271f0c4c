package cmd

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/randspec/packages/core/config"
	"github.com/abdul-hamid-achik/randspec/packages/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs and their seeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitConfigError)
		}

		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(historyLimitFlag)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, e := range entries {
			status := green("pass")
			if e.Failed > 0 {
				status = red("fail")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  seed=%-12d tests=%-4d %s\n",
				e.StartedAt.Local().Format("2006-01-02 15:04:05"), status, e.Seed, e.Total, e.Duration)
		}
		return nil
	},
}

var historyLimitFlag int

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Number of runs to show")
}
