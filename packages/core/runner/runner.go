package runner

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
)

// Runner converts a suite tree into a flat, filtered, seed-shuffled
// execution plan and walks it, forking the context before every node.
type Runner struct {
	root      *spec.Suite
	formatter Formatter

	// Seed drives the plan shuffle. A fixed seed and a fixed tree shape
	// always produce the same order.
	Seed int64

	// FileFilter, when non-nil, restricts the plan to tests declared in
	// one of the given absolute file paths.
	FileFilter map[string]struct{}
}

// New returns a Runner for the given tree reporting through formatter.
func New(root *spec.Suite, formatter Formatter) *Runner {
	return &Runner{root: root, formatter: formatter}
}

// Run builds the plan, hands it to the formatter, and executes it against
// ctx (a fresh Context when nil). Control returns once the whole plan
// completed; on failure the formatter terminates the process first.
func (r *Runner) Run(ctx *spec.Context) error {
	if ctx == nil {
		ctx = spec.NewContext()
	}
	plan := r.Plan()
	r.formatter.PrepareExecution(plan)
	return r.runExecutables(plan, ctx)
}

// Plan returns the execution plan Run would walk, without executing it.
// The shuffle uses a generator local to this call seeded with Seed, so
// planning never perturbs the process-wide math/rand state.
func (r *Runner) Plan() []Executable {
	rng := rand.New(rand.NewSource(r.Seed))
	return r.gather(r.root, rng)
}

// gather flattens one suite level: sort children on a stable key first so
// a fixed seed yields a fixed shuffle regardless of insertion order, then
// shuffle, then filter. Around nodes whose subtree filtered down to
// nothing vanish entirely.
func (r *Runner) gather(s *spec.Suite, rng *rand.Rand) []Executable {
	children := make([]spec.Node, len(s.Children))
	copy(children, s.Children)

	sort.SliceStable(children, func(i, j int) bool {
		return sortKey(children[i]) < sortKey(children[j])
	})
	rng.Shuffle(len(children), func(i, j int) {
		children[i], children[j] = children[j], children[i]
	})

	var plan []Executable
	for _, child := range children {
		switch n := child.(type) {
		case *spec.Test:
			if r.excluded(n) {
				continue
			}
			plan = append(plan, &TestExecution{Test: n})
		case *spec.AroundSuite:
			inner := r.gather(n.Suite, rng)
			if len(inner) == 0 {
				continue
			}
			plan = append(plan, &AroundExecution{Children: inner, Wrap: n.Wrap, Suite: n.Suite})
		}
	}
	return plan
}

// sortKey orders nodes by declaration path and line, falling back to the
// stringified name label.
func sortKey(n spec.Node) string {
	labels := n.NodeLabels()
	if loc, ok := labels.Location(); ok {
		return fmt.Sprintf("%s:%08d", loc.File, loc.Line)
	}
	if name, ok := labels.Name(); ok {
		return name
	}
	return ""
}

func (r *Runner) excluded(t *spec.Test) bool {
	if r.FileFilter == nil {
		return false
	}
	loc, ok := t.Labels.Location()
	if !ok {
		return true
	}
	_, member := r.FileFilter[loc.File]
	return !member
}

// runExecutables walks a plan depth-first. Every node runs against its own
// copy of ctx: siblings never observe each other's mutations, but all see
// what the parent set before the fork.
func (r *Runner) runExecutables(plan []Executable, ctx *spec.Context) error {
	for _, exe := range plan {
		forked := ctx.Copy()
		switch e := exe.(type) {
		case *TestExecution:
			test := e.Test
			if err := r.formatter.RunTest(test, func() error {
				_, err := test.Step.Call(forked)
				return err
			}); err != nil {
				return err
			}
		case *AroundExecution:
			around := e
			inner := spec.NewStep(func(given *spec.Context) (any, error) {
				return nil, r.formatter.RunChildren(around.Suite, func() error {
					return r.runExecutables(around.Children, given)
				})
			})
			composed := around.Wrap(inner)
			if err := r.formatter.RunSuite(around.Suite, func() error {
				_, err := composed.Call(forked)
				return err
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
