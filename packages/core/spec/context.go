package spec

import (
	"errors"
	"fmt"
	"maps"
)

// ErrKeyNotFound is returned by Get for keys that were never set.
var ErrKeyNotFound = errors.New("key not found")

// Context is a branchable key/value store passed through the tree during
// execution. Copies are independent going forward; values present at copy
// time stay shared by reference.
type Context struct {
	values map[string]any
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (c *Context) Get(key string) (any, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, fmt.Errorf("context: %w: %s", ErrKeyNotFound, key)
	}
	return v, nil
}

// GetOr returns the stored value, falling back to the result of defaultFn
// when the key is absent. The default is not stored.
func (c *Context) GetOr(key string, defaultFn func() any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return defaultFn()
}

// Set stores value under key, overwriting any previous value.
func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Copy returns a shallow duplicate: mutations on either side after the
// copy are invisible to the other.
func (c *Context) Copy() *Context {
	dup := maps.Clone(c.values)
	if dup == nil {
		dup = make(map[string]any)
	}
	return &Context{values: dup}
}

// Len reports how many keys are set.
func (c *Context) Len() int {
	return len(c.values)
}

// CurrentStep returns the step currently executing against ctx, if any.
func CurrentStep(ctx *Context) (*Step, bool) {
	s, ok := ctx.values[StepKey].(*Step)
	return s, ok
}
