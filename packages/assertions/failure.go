package assertions

import (
	"fmt"
	"runtime"
)

// Failure is raised via panic when an expectation does not hold. It
// carries structured frame data captured where it was raised so
// formatters can render a backtrace without parsing strings.
type Failure struct {
	Message  string
	Expected any
	Actual   any

	callers []uintptr
}

func (f *Failure) Error() string { return f.Message }

// Frames returns the call stack captured when the failure was raised.
func (f *Failure) Frames() *runtime.Frames {
	return runtime.CallersFrames(f.callers)
}

// newFailure captures the caller's caller as the first frame, skipping the
// matcher that raised it.
func newFailure(expected, actual any, format string, args ...any) *Failure {
	f := &Failure{
		Message:  fmt.Sprintf(format, args...),
		Expected: expected,
		Actual:   actual,
	}
	pc := make([]uintptr, 64)
	n := runtime.Callers(3, pc)
	f.callers = pc[:n]
	return f
}
