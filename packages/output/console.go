package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode controls colored output.
type ColorMode int

const (
	// ColorAuto defers to the NO_COLOR/FORCE_COLOR environment signals,
	// then to terminal detection on the output stream.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ConsoleFormatter is the reference formatter: a running completed/total
// counter, indent tracking, colored per-test lines and a structured
// failure diagnostic followed by process exit 1.
type ConsoleFormatter struct {
	writer  io.Writer
	colors  ColorMode
	verbose bool
	exit    func(int)
	timing  *Timing

	total     int
	completed int
	depth     int
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
		exit:   os.Exit,
		timing: NewTiming(),
	}
	for _, opt := range opts {
		opt(f)
	}
	color.NoColor = !f.colorEnabled()
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithColorMode(mode ColorMode) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.colors = mode
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

// WithExitFunc replaces the process-exit call, e.g. to record run history
// before exiting.
func WithExitFunc(exit func(int)) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.exit = exit
	}
}

// colorEnabled resolves the color policy: explicit mode first, then the
// no-color environment signal, then the force-color one, then whether the
// output stream is an interactive terminal.
func (f *ConsoleFormatter) colorEnabled() bool {
	switch f.colors {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if out, ok := f.writer.(*os.File); ok {
		return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	}
	return false
}

func (f *ConsoleFormatter) PrepareExecution(plan []runner.Executable) {
	f.total = runner.CountTests(plan)
	if f.verbose {
		fmt.Fprintf(f.writer, "%d tests in plan\n", f.total)
	}
}

func (f *ConsoleFormatter) RunTest(t *spec.Test, body func() error) error {
	start := time.Now()
	err := capture(body)
	f.timing.Record(time.Since(start))

	if err != nil {
		f.fail(t.Labels, "test", err)
		return err
	}

	f.completed++
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(f.writer, "%s%s %s (%d/%d)\n",
		f.indent(), green("✓"), displayName(t.Labels, "test"), f.completed, f.total)
	return nil
}

func (f *ConsoleFormatter) RunSuite(s *spec.Suite, body func() error) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(f.writer, "%s%s\n", f.indent(), cyan(displayName(s.Labels, "suite")))

	err := capture(body)
	if err != nil {
		f.fail(s.Labels, "suite", err)
	}
	return err
}

func (f *ConsoleFormatter) RunChildren(s *spec.Suite, body func() error) error {
	f.depth++
	defer func() { f.depth-- }()
	return body()
}

// Summary writes the post-run timing percentiles.
func (f *ConsoleFormatter) Summary() {
	fmt.Fprintf(f.writer, "\n%d/%d tests completed\n", f.completed, f.total)
	f.timing.WriteSummary(f.writer)
}

// Completed reports how many tests finished so far.
func (f *ConsoleFormatter) Completed() int { return f.completed }

// Total reports the number of tests in the plan.
func (f *ConsoleFormatter) Total() int { return f.total }

func (f *ConsoleFormatter) indent() string {
	return strings.Repeat("  ", f.depth)
}

func (f *ConsoleFormatter) fail(labels spec.Labels, fallback string, err error) {
	renderFailure(f.writer, labels, fallback, err)
	f.exit(1)
}
