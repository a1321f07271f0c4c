package spec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx *Context) (any, error) { return nil, nil }

func TestSuite_Test(t *testing.T) {
	t.Run("stamps name and caller location", func(t *testing.T) {
		root := NewSuite()
		test := root.Test("adds numbers", NewStep(noop))

		require.Len(t, root.Children, 1)
		assert.Same(t, test, root.Children[0])

		name, ok := test.Labels.Name()
		require.True(t, ok)
		assert.Equal(t, "adds numbers", name)

		loc, ok := test.Labels.Location()
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(loc.File, "suite_test.go"), "got %s", loc.File)
		assert.Greater(t, loc.Line, 0)
	})

	t.Run("explicit labels are kept", func(t *testing.T) {
		root := NewSuite()
		explicit := Location{File: "/elsewhere/file.go", Line: 7}
		test := root.Test("t", NewStep(noop), Labels{LocationKey: explicit, "slow": true})

		loc, ok := test.Labels.Location()
		require.True(t, ok)
		assert.Equal(t, explicit, loc)
		assert.Equal(t, true, test.Labels["slow"])
	})
}

func TestSuite_WithAround(t *testing.T) {
	t.Run("returns the child suite for nesting", func(t *testing.T) {
		root := NewSuite()
		child := root.WithAround(func(inner *Step) *Step { return inner })

		require.Len(t, root.Children, 1)
		around, ok := root.Children[0].(*AroundSuite)
		require.True(t, ok)
		assert.Same(t, child, around.Suite)
	})

	t.Run("labels delegate to the child suite", func(t *testing.T) {
		root := NewSuite()
		child := root.WithAround(func(inner *Step) *Step { return inner }, Labels{NameKey: "db"})

		around := root.Children[0].(*AroundSuite)
		assert.Equal(t, child.Labels, around.NodeLabels())
		name, ok := around.NodeLabels().Name()
		require.True(t, ok)
		assert.Equal(t, "db", name)
	})

	t.Run("missing wrap function panics", func(t *testing.T) {
		assert.Panics(t, func() { NewSuite().WithAround(nil) })
	})
}

func TestSuite_BeforeAfterSugar(t *testing.T) {
	t.Run("WithBefore runs setup then inner", func(t *testing.T) {
		var log []string
		root := NewSuite()
		before := NewStep(func(c *Context) (any, error) {
			log = append(log, "before")
			return nil, nil
		})
		root.WithBefore(before)

		around := root.Children[0].(*AroundSuite)
		inner := NewStep(func(c *Context) (any, error) {
			log = append(log, "inner")
			return nil, nil
		})

		_, err := around.Wrap(inner).Call(NewContext())
		require.NoError(t, err)
		assert.Equal(t, []string{"before", "inner"}, log)
	})

	t.Run("WithAfter runs inner then teardown", func(t *testing.T) {
		var log []string
		root := NewSuite()
		after := NewStep(func(c *Context) (any, error) {
			log = append(log, "after")
			return nil, nil
		})
		root.WithAfter(after)

		around := root.Children[0].(*AroundSuite)
		inner := NewStep(func(c *Context) (any, error) {
			log = append(log, "inner")
			return nil, nil
		})

		_, err := around.Wrap(inner).Call(NewContext())
		require.NoError(t, err)
		assert.Equal(t, []string{"inner", "after"}, log)
	})

	t.Run("sugar records the user call site", func(t *testing.T) {
		root := NewSuite()
		child := root.WithBefore(NewStep(noop))

		loc, ok := child.Labels.Location()
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(loc.File, "suite_test.go"), "got %s", loc.File)
	})
}
