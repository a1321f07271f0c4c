package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/stretchr/testify/assert"
)

func TestProgressFormatter(t *testing.T) {
	t.Run("advances the bar per test", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewProgressFormatter(WithProgressWriter(&buf))

		node := testNode("t", "/specs/a.go", 1)
		f.PrepareExecution([]runner.Executable{&runner.TestExecution{Test: node}})
		assert.NoError(t, f.RunTest(node, func() error { return nil }))
		assert.Equal(t, 1, f.completed)
		assert.NotEmpty(t, buf.String())
	})

	t.Run("failure renders the diagnostic and exits", func(t *testing.T) {
		var buf bytes.Buffer
		exitCode := -1
		f := NewProgressFormatter(
			WithProgressWriter(&buf),
			WithProgressExitFunc(func(code int) { exitCode = code }),
		)

		node := testNode("broken", "/specs/a.go", 2)
		f.PrepareExecution([]runner.Executable{&runner.TestExecution{Test: node}})
		err := f.RunTest(node, func() error { return errors.New("boom") })

		assert.Error(t, err)
		assert.Equal(t, 1, exitCode)
		assert.Contains(t, buf.String(), "Error occurred")
		assert.Contains(t, buf.String(), "boom")
	})
}
