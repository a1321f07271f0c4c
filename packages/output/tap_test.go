package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTAPFormatter(t *testing.T) {
	t.Run("passing plan emits ok lines", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewTAPFormatter(WithTAPWriter(&buf))

		one := testNode("first", "/specs/a.go", 1)
		two := testNode("second", "/specs/a.go", 2)
		f.PrepareExecution([]runner.Executable{
			&runner.TestExecution{Test: one},
			&runner.TestExecution{Test: two},
		})
		require.NoError(t, f.RunTest(one, func() error { return nil }))
		require.NoError(t, f.RunTest(two, func() error { return nil }))

		want := "TAP version 13\n1..2\nok 1 - first\nok 2 - second\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("failure emits not ok with diagnostics and exits", func(t *testing.T) {
		var buf bytes.Buffer
		exitCode := -1
		f := NewTAPFormatter(WithTAPWriter(&buf), WithTAPExitFunc(func(code int) { exitCode = code }))

		node := testNode("broken", "/specs/a.go", 9)
		f.PrepareExecution([]runner.Executable{&runner.TestExecution{Test: node}})
		err := f.RunTest(node, func() error { return errors.New("boom") })

		assert.Error(t, err)
		assert.Equal(t, 1, exitCode)

		out := buf.String()
		assert.Contains(t, out, "not ok 1 - broken")
		assert.Contains(t, out, "# location: /specs/a.go:9")
		assert.Contains(t, out, "# boom")
	})

	t.Run("suites become comments", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewTAPFormatter(WithTAPWriter(&buf))

		suite := testSuiteNode("payments")
		require.NoError(t, f.RunSuite(suite, func() error { return nil }))
		assert.Contains(t, buf.String(), "# suite: payments")
	})
}
