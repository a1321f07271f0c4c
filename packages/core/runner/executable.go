package runner

import "github.com/abdul-hamid-achik/randspec/packages/core/spec"

// Executable is one node of the execution plan: either a single test or an
// around node carrying its own sub-plan. The union is closed; gather and
// runExecutables switch exhaustively over the two variants.
type Executable interface {
	executable()
}

// TestExecution is a plan leaf.
type TestExecution struct {
	Test *spec.Test
}

// AroundExecution wraps a sub-plan with the originating around node's wrap
// function. Suite is carried for labeling only.
type AroundExecution struct {
	Children []Executable
	Wrap     spec.WrapFunc
	Suite    *spec.Suite
}

func (*TestExecution) executable()   {}
func (*AroundExecution) executable() {}

// CountTests returns the number of test leaves in a plan, recursing into
// around nodes. Formatters typically call it from PrepareExecution.
func CountTests(plan []Executable) int {
	n := 0
	for _, exe := range plan {
		switch e := exe.(type) {
		case *TestExecution:
			n++
		case *AroundExecution:
			n += CountTests(e.Children)
		}
	}
	return n
}
