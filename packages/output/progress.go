package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressFormatter renders a live progress bar instead of per-test lines.
// Failure handling is identical to the console formatter.
type ProgressFormatter struct {
	writer    io.Writer
	exit      func(int)
	bar       *progressbar.ProgressBar
	total     int
	completed int
}

type ProgressOption func(*ProgressFormatter)

func NewProgressFormatter(opts ...ProgressOption) *ProgressFormatter {
	f := &ProgressFormatter{
		writer: os.Stdout,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithProgressWriter(w io.Writer) ProgressOption {
	return func(f *ProgressFormatter) {
		f.writer = w
	}
}

func WithProgressExitFunc(exit func(int)) ProgressOption {
	return func(f *ProgressFormatter) {
		f.exit = exit
	}
}

func (f *ProgressFormatter) PrepareExecution(plan []runner.Executable) {
	f.total = runner.CountTests(plan)
	f.bar = progressbar.NewOptions(f.total,
		progressbar.OptionSetWriter(f.writer),
		progressbar.OptionSetDescription(f.description()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(f.writer, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (f *ProgressFormatter) RunTest(t *spec.Test, body func() error) error {
	err := capture(body)
	if err != nil {
		if f.bar != nil {
			_ = f.bar.Exit()
			fmt.Fprint(f.writer, "\n")
		}
		renderFailure(f.writer, t.Labels, "test", err)
		f.exit(1)
		return err
	}

	f.completed++
	if f.bar != nil {
		_ = f.bar.Set(f.completed)
		f.bar.Describe(f.description())
	}
	return nil
}

func (f *ProgressFormatter) RunSuite(s *spec.Suite, body func() error) error {
	err := capture(body)
	if err != nil {
		if f.bar != nil {
			_ = f.bar.Exit()
			fmt.Fprint(f.writer, "\n")
		}
		renderFailure(f.writer, s.Labels, "suite", err)
		f.exit(1)
	}
	return err
}

func (f *ProgressFormatter) RunChildren(s *spec.Suite, body func() error) error {
	return body()
}

func (f *ProgressFormatter) description() string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[completed: %d", f.completed) +
		" | " +
		color.WhiteString("total: %d]", f.total)
}
