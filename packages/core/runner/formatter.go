package runner

import (
	"fmt"

	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
)

// Formatter is the reporting boundary the runner drives. The runner never
// catches errors from step execution; each of RunTest, RunSuite and
// RunChildren must invoke body exactly once, propagate its return value,
// and handle any error or panic the body surfaces. The reference
// formatters print a diagnostic and terminate the process with status 1.
type Formatter interface {
	// PrepareExecution is called once with the full plan before any
	// execution output.
	PrepareExecution(plan []Executable)
	RunTest(t *spec.Test, body func() error) error
	RunSuite(s *spec.Suite, body func() error) error
	// RunChildren brackets a suite's body separately from the suite's own
	// wrap behavior. No side effect is required.
	RunChildren(s *spec.Suite, body func() error) error
}

// ExitSignal marks a deliberate process exit raised (via panic) from
// inside a test body. Formatters re-raise it untouched instead of
// reporting it as a failure.
type ExitSignal struct {
	Code int
}

func (e *ExitSignal) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
