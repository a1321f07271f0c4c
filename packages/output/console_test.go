package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/randspec/packages/assertions"
	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNode(name, file string, line int) *spec.Test {
	return &spec.Test{
		Labels: spec.Labels{
			spec.NameKey:     name,
			spec.LocationKey: spec.Location{File: file, Line: line},
		},
		Step: spec.NewStep(func(c *spec.Context) (any, error) { return nil, nil }),
	}
}

func plainConsole(buf *bytes.Buffer, exit func(int)) *ConsoleFormatter {
	opts := []ConsoleOption{WithWriter(buf), WithColorMode(ColorNever)}
	if exit != nil {
		opts = append(opts, WithExitFunc(exit))
	}
	return NewConsoleFormatter(opts...)
}

func TestConsoleFormatter_RunTest(t *testing.T) {
	t.Run("passing test prints a counter line", func(t *testing.T) {
		var buf bytes.Buffer
		f := plainConsole(&buf, nil)
		f.PrepareExecution([]runner.Executable{
			&runner.TestExecution{Test: testNode("one", "/specs/a.go", 1)},
			&runner.TestExecution{Test: testNode("two", "/specs/a.go", 2)},
		})

		err := f.RunTest(testNode("one", "/specs/a.go", 1), func() error { return nil })
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "✓ one (1/2)")
		assert.Equal(t, 1, f.Completed())
		assert.Equal(t, 2, f.Total())
	})

	t.Run("failure renders the diagnostic and exits 1", func(t *testing.T) {
		var buf bytes.Buffer
		exitCode := -1
		f := plainConsole(&buf, func(code int) { exitCode = code })

		boom := errors.New("database gone")
		err := f.RunTest(testNode("broken", "/specs/db.go", 12), func() error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, exitCode)

		out := buf.String()
		assert.Contains(t, out, "Error occurred")
		assert.Contains(t, out, "broken")
		assert.Contains(t, out, "/specs/db.go:12")
		assert.Contains(t, out, "*errors.errorString")
		assert.Contains(t, out, "database gone")
	})

	t.Run("assertion failure panics are recovered and rendered", func(t *testing.T) {
		var buf bytes.Buffer
		exitCode := -1
		f := plainConsole(&buf, func(code int) { exitCode = code })

		err := f.RunTest(testNode("asserts", "/specs/a.go", 3), func() error {
			assertions.Expect(spec.NewContext(), 1).ToEqual(2)
			return nil
		})

		var failure *assertions.Failure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, 1, exitCode)
		assert.Contains(t, buf.String(), "to equal")
	})

	t.Run("exit signals are re-raised untouched", func(t *testing.T) {
		var buf bytes.Buffer
		f := plainConsole(&buf, func(int) { t.Fatal("exit must not be called") })

		sig := &runner.ExitSignal{Code: 3}
		assert.PanicsWithValue(t, sig, func() {
			_ = f.RunTest(testNode("exits", "/specs/a.go", 4), func() error { panic(sig) })
		})
		assert.NotContains(t, buf.String(), "Error occurred")
	})
}

func TestConsoleFormatter_RunSuite(t *testing.T) {
	var buf bytes.Buffer
	f := plainConsole(&buf, nil)

	suite := &spec.Suite{Labels: spec.Labels{spec.NameKey: "billing"}}
	ran := false
	err := f.RunSuite(suite, func() error {
		return f.RunChildren(suite, func() error {
			ran = true
			return f.RunTest(testNode("t", "/specs/b.go", 1), func() error { return nil })
		})
	})

	require.NoError(t, err)
	assert.True(t, ran)

	out := buf.String()
	assert.Contains(t, out, "billing")
	// The test line inside RunChildren is indented one level deeper.
	assert.Contains(t, out, "  ✓ t")
}

func TestConsoleFormatter_ColorPolicy(t *testing.T) {
	var buf bytes.Buffer

	t.Run("explicit modes win", func(t *testing.T) {
		f := &ConsoleFormatter{writer: &buf, colors: ColorAlways}
		assert.True(t, f.colorEnabled())
		f.colors = ColorNever
		assert.False(t, f.colorEnabled())
	})

	t.Run("no-color signal disables", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		t.Setenv("FORCE_COLOR", "1")
		f := &ConsoleFormatter{writer: &buf, colors: ColorAuto}
		assert.False(t, f.colorEnabled())
	})

	t.Run("force-color signal enables", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("FORCE_COLOR", "1")
		f := &ConsoleFormatter{writer: &buf, colors: ColorAuto}
		assert.True(t, f.colorEnabled())
	})

	t.Run("non-terminal writer disables by default", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("FORCE_COLOR", "")
		f := &ConsoleFormatter{writer: &buf, colors: ColorAuto}
		assert.False(t, f.colorEnabled())
	})
}

func TestDisplayName(t *testing.T) {
	t.Run("prefers the name label", func(t *testing.T) {
		labels := spec.Labels{spec.NameKey: "named"}
		assert.Equal(t, "named", displayName(labels, "test"))
	})

	t.Run("falls back to the location", func(t *testing.T) {
		labels := spec.Labels{spec.LocationKey: spec.Location{File: "/x/y.go", Line: 3}}
		assert.Equal(t, "/x/y.go:3", displayName(labels, "test"))
	})

	t.Run("falls back to the kind", func(t *testing.T) {
		assert.Equal(t, "suite", displayName(spec.Labels{}, "suite"))
		assert.Equal(t, "<unknown>", displayLocation(spec.Labels{}))
	})
}
