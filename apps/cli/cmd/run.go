package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/randspec/packages/core/config"
	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/history"
	"github.com/abdul-hamid-achik/randspec/packages/output"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the registered suite tree",
	Long: `Run the registered suite tree in a seed-determined order.

Examples:
  myspecs run
  myspecs run --seed 1337
  myspecs run --reporter tap
  myspecs run --only-files ./specs/billing.go
  myspecs run --last-failed`,
	RunE: runCommand,
}

var (
	seedFlag       int64
	reporterFlag   string
	onlyFilesFlag  []string
	noColorFlag    bool
	forceColorFlag bool
	verboseFlag    bool
	configFlag     string
	noHistoryFlag  bool
	lastFailedFlag bool
)

func init() {
	runCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Seed driving the shuffle (env: RANDSPEC_SEED)")
	runCmd.Flags().StringVarP(&reporterFlag, "reporter", "r", "", "Reporter: console, progress, tap, json (env: RANDSPEC_REPORTER)")
	runCmd.Flags().StringSliceVar(&onlyFilesFlag, "only-files", nil, "Run only tests declared in these files")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output (env: RANDSPEC_NO_COLOR)")
	runCmd.Flags().BoolVar(&forceColorFlag, "force-color", false, "Force colored output (env: RANDSPEC_FORCE_COLOR)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output (env: RANDSPEC_VERBOSE)")
	runCmd.Flags().StringVar(&configFlag, "config", "", "Path to config file")
	runCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Do not record this run")
	runCmd.Flags().BoolVar(&lastFailedFlag, "last-failed", false, "Reuse the seed of the most recent failed run")
}

func runCommand(cmd *cobra.Command, args []string) error {
	if root == nil {
		return fmt.Errorf("no suite registered: call cmd.SetRoot before Execute")
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	// Flags win over env/config, which win over defaults.
	if !cmd.Flags().Changed("seed") && cfg.Seed != nil {
		seedFlag = cfg.GetSeed()
	}
	if reporterFlag == "" {
		reporterFlag = cfg.Reporter
	}
	if !cmd.Flags().Changed("no-color") {
		noColorFlag = cfg.GetNoColor()
	}
	if !cmd.Flags().Changed("force-color") {
		forceColorFlag = cfg.GetForceColor()
	}
	if !cmd.Flags().Changed("verbose") {
		verboseFlag = cfg.GetVerbose()
	}
	if len(onlyFilesFlag) == 0 {
		onlyFilesFlag = cfg.OnlyFiles
	}

	var store *history.Store
	if !noHistoryFlag {
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(ExitConfigError)
		}
		defer store.Close()
	}

	if lastFailedFlag {
		if store == nil {
			return fmt.Errorf("--last-failed requires run history")
		}
		seed, found, err := store.LastFailedSeed()
		if err != nil {
			return err
		}
		if found {
			seedFlag = seed
		}
	}

	planner := runner.New(root, nil)
	planner.Seed = seedFlag
	planner.FileFilter = fileFilter(onlyFilesFlag)
	total := runner.CountTests(planner.Plan())

	started := time.Now()

	// The formatter owns termination on failure; record the run before it
	// exits so the seed stays reproducible via --last-failed.
	exit := func(code int) {
		if store != nil {
			_ = store.Record(&history.Entry{
				Seed:      seedFlag,
				Total:     total,
				Failed:    1,
				StartedAt: started,
				Duration:  time.Since(started),
			})
			_ = store.Close()
		}
		os.Exit(code)
	}

	formatter, console, err := buildFormatter(reporterFlag, exit)
	if err != nil {
		return err
	}

	r := runner.New(root, formatter)
	r.Seed = seedFlag
	r.FileFilter = planner.FileFilter

	if err := r.Run(nil); err != nil {
		// Unreachable with the shipped formatters, which terminate on
		// failure; kept for custom formatters that propagate instead.
		os.Exit(ExitTestFailure)
	}

	if store != nil {
		_ = store.Record(&history.Entry{
			Seed:      seedFlag,
			Total:     total,
			StartedAt: started,
			Duration:  time.Since(started),
		})
	}
	if console != nil && verboseFlag {
		console.Summary()
	}
	return nil
}

func buildFormatter(reporter string, exit func(int)) (runner.Formatter, *output.ConsoleFormatter, error) {
	mode := output.ColorAuto
	if noColorFlag {
		mode = output.ColorNever
	} else if forceColorFlag {
		mode = output.ColorAlways
	}

	switch reporter {
	case "", "console":
		f := output.NewConsoleFormatter(
			output.WithColorMode(mode),
			output.WithVerbose(verboseFlag),
			output.WithExitFunc(exit),
		)
		return f, f, nil
	case "progress":
		return output.NewProgressFormatter(output.WithProgressExitFunc(exit)), nil, nil
	case "tap":
		return output.NewTAPFormatter(output.WithTAPExitFunc(exit)), nil, nil
	case "json":
		return output.NewJSONFormatter(output.WithJSONExitFunc(exit)), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown reporter %q", reporter)
}

func fileFilter(files []string) map[string]struct{} {
	if len(files) == 0 {
		return nil
	}
	filter := make(map[string]struct{}, len(files))
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			filter[abs] = struct{}{}
		} else {
			filter[f] = struct{}{}
		}
	}
	return filter
}
