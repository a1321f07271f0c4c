package spec

import (
	"fmt"
	"runtime"
)

// Reserved label and context keys.
const (
	// NameKey holds a node's display name.
	NameKey = "name"
	// LocationKey holds the Location where a node was declared.
	LocationKey = "__location"
	// StepKey holds the currently executing *Step in a Context.
	StepKey = "__step"
)

// Location identifies the source position where a tree node was declared.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Labels annotate tree nodes. They are used for naming, filtering and
// ordering only; nothing ever compares them for identity.
type Labels map[string]any

// Name returns the stringified name label when present.
func (l Labels) Name() (string, bool) {
	v, ok := l[NameKey]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Location returns the declaration site when present.
func (l Labels) Location() (Location, bool) {
	loc, ok := l[LocationKey].(Location)
	return loc, ok
}

// Node is a child of a Suite: either a *Test leaf or an *AroundSuite.
type Node interface {
	NodeLabels() Labels
}

// Suite is an ordered tree node holding Test leaves and AroundSuite
// wrappers. Children keep insertion order until the runner reorders them
// for execution.
type Suite struct {
	Labels   Labels
	Children []Node
}

// NewSuite returns an empty root suite stamped with the caller's location.
func NewSuite(labels ...Labels) *Suite {
	l := mergeLabels(labels)
	stampLocation(l, 2)
	return &Suite{Labels: l}
}

// Test is a labeled leaf pairing a name and location with a Step.
type Test struct {
	Labels Labels
	Step   *Step
}

func (t *Test) NodeLabels() Labels { return t.Labels }

// WrapFunc receives a Step that runs a wrapped subtree and returns the
// Step that executes in its place (setup, run inner, teardown).
type WrapFunc func(inner *Step) *Step

// AroundSuite wraps a child Suite with the behavior produced by Wrap. Its
// labels delegate to the child suite's.
type AroundSuite struct {
	Suite *Suite
	Wrap  WrapFunc
}

func (a *AroundSuite) NodeLabels() Labels { return a.Suite.Labels }

// Test appends a test leaf. The name and the caller's location are stamped
// into the labels unless supplied explicitly.
func (s *Suite) Test(name string, step *Step, labels ...Labels) *Test {
	l := mergeLabels(labels)
	if _, ok := l[NameKey]; !ok {
		l[NameKey] = name
	}
	stampLocation(l, 2)
	t := &Test{Labels: l, Step: step}
	s.Children = append(s.Children, t)
	return t
}

// WithAround appends an AroundSuite wrapping a fresh child suite and
// returns that suite so further children can be nested under it. The wrap
// function is required.
func (s *Suite) WithAround(wrap WrapFunc, labels ...Labels) *Suite {
	if wrap == nil {
		panic("spec: WithAround requires a wrapping function")
	}
	l := mergeLabels(labels)
	stampLocation(l, 2)
	child := &Suite{Labels: l}
	s.Children = append(s.Children, &AroundSuite{Suite: child, Wrap: wrap})
	return child
}

// WithBefore nests a child suite whose subtree runs preceded by before.
func (s *Suite) WithBefore(before *Step, labels ...Labels) *Suite {
	l := mergeLabels(labels)
	stampLocation(l, 2)
	return s.WithAround(func(inner *Step) *Step {
		return Chain(before, inner)
	}, l)
}

// WithAfter nests a child suite whose subtree runs followed by after.
func (s *Suite) WithAfter(after *Step, labels ...Labels) *Suite {
	l := mergeLabels(labels)
	stampLocation(l, 2)
	return s.WithAround(func(inner *Step) *Step {
		return Chain(inner, after)
	}, l)
}

func mergeLabels(labels []Labels) Labels {
	merged := make(Labels)
	for _, l := range labels {
		for k, v := range l {
			merged[k] = v
		}
	}
	return merged
}

// stampLocation records the call site skip frames up, keeping any location
// the caller supplied explicitly.
func stampLocation(l Labels, skip int) {
	if _, ok := l[LocationKey]; ok {
		return
	}
	if _, file, line, ok := runtime.Caller(skip); ok {
		l[LocationKey] = Location{File: file, Line: line}
	}
}
