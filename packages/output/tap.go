package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
)

// TAPFormatter emits Test Anything Protocol version 13 output.
type TAPFormatter struct {
	writer io.Writer
	exit   func(int)
	n      int
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer: os.Stdout,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithTAPWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func WithTAPExitFunc(exit func(int)) TAPOption {
	return func(f *TAPFormatter) {
		f.exit = exit
	}
}

func (f *TAPFormatter) PrepareExecution(plan []runner.Executable) {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", runner.CountTests(plan))
}

func (f *TAPFormatter) RunTest(t *spec.Test, body func() error) error {
	err := capture(body)
	f.n++
	name := displayName(t.Labels, "test")

	if err != nil {
		fmt.Fprintf(f.writer, "not ok %d - %s\n", f.n, name)
		fmt.Fprintf(f.writer, "# location: %s\n", displayLocation(t.Labels))
		fmt.Fprintf(f.writer, "# kind: %T\n", err)
		fmt.Fprintf(f.writer, "# %s\n", err.Error())
		f.exit(1)
		return err
	}

	fmt.Fprintf(f.writer, "ok %d - %s\n", f.n, name)
	return nil
}

func (f *TAPFormatter) RunSuite(s *spec.Suite, body func() error) error {
	fmt.Fprintf(f.writer, "# suite: %s\n", displayName(s.Labels, "suite"))
	err := capture(body)
	if err != nil {
		fmt.Fprintf(f.writer, "# suite failed at %s: %s\n", displayLocation(s.Labels), err.Error())
		f.exit(1)
	}
	return err
}

func (f *TAPFormatter) RunChildren(s *spec.Suite, body func() error) error {
	return body()
}
