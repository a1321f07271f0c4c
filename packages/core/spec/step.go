package spec

import "errors"

// ErrNoBody is returned when a Step without a body is called.
var ErrNoBody = errors.New("step has no body")

const chainOption = "chain"

// Body is the unit of work a Step executes. It receives the Context the
// runner forked for the branch of the tree the step runs in.
type Body func(ctx *Context) (any, error)

// Step pairs a closure with static options. AssertionCount is advanced by
// the assertions package while the step is running.
type Step struct {
	Options        map[string]any
	Body           Body
	AssertionCount int
}

// NewStep returns a Step executing body.
func NewStep(body Body) *Step {
	return &Step{Options: map[string]any{}, Body: body}
}

// Call invokes the body with ctx and returns whatever it returns. The step
// publishes itself under the __step context key for the duration of the
// call so assertion helpers can find it.
func (s *Step) Call(ctx *Context) (any, error) {
	if s.Body == nil {
		return nil, ErrNoBody
	}
	ctx.Set(StepKey, s)
	return s.Body(ctx)
}

// Chain combines steps into a single Step that calls each in order with
// the same context, returning the last result. Arguments that are chains
// themselves are spliced in flat rather than nested. A single argument is
// returned as-is; zero arguments is a programmer error and panics.
func Chain(steps ...*Step) *Step {
	if len(steps) == 0 {
		panic("spec: Chain requires at least one step")
	}
	if len(steps) == 1 {
		return steps[0]
	}

	var flat []*Step
	for _, s := range steps {
		if s == nil {
			panic("spec: Chain called with a nil step")
		}
		if children, ok := s.chainedSteps(); ok {
			flat = append(flat, children...)
			continue
		}
		flat = append(flat, s)
	}

	chained := &Step{Options: map[string]any{chainOption: flat}}
	chained.Body = func(ctx *Context) (any, error) {
		var last any
		for _, child := range flat {
			v, err := child.Call(ctx)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	}
	return chained
}

func (s *Step) chainedSteps() ([]*Step, bool) {
	children, ok := s.Options[chainOption].([]*Step)
	return children, ok
}
