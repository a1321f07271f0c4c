package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/abdul-hamid-achik/randspec/packages/assertions"
	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/fatih/color"
)

// capture runs body and converts panics into errors. Deliberate exit
// signals are re-raised untouched.
func capture(body func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if sig, ok := r.(*runner.ExitSignal); ok {
			panic(sig)
		}
		if e, ok := r.(error); ok {
			err = e
			return
		}
		err = fmt.Errorf("panic: %v", r)
	}()
	return body()
}

// displayName derives a node's presentation name: the name label, then the
// declaration site as relative path:line, then the fallback string.
func displayName(labels spec.Labels, fallback string) string {
	if name, ok := labels.Name(); ok {
		return name
	}
	if loc, ok := labels.Location(); ok {
		return relLocation(loc)
	}
	return fallback
}

func displayLocation(labels spec.Labels) string {
	if loc, ok := labels.Location(); ok {
		return relLocation(loc)
	}
	return "<unknown>"
}

func relLocation(loc spec.Location) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, loc.File); err == nil && !strings.HasPrefix(rel, "..") {
			return fmt.Sprintf("%s:%d", rel, loc.Line)
		}
	}
	return loc.String()
}

// renderFailure prints the structured diagnostic shared by all formatters:
// banner, display name, location, error kind, message and a backtrace
// filtered to exclude the framework's own frames.
func renderFailure(w io.Writer, labels spec.Labels, fallback string, err error) {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "\n%s\n\n", bold(red("Error occurred")))
	fmt.Fprintf(w, "  Name:     %s\n", displayName(labels, fallback))
	fmt.Fprintf(w, "  Location: %s\n", displayLocation(labels))
	fmt.Fprintf(w, "  Kind:     %T\n", err)
	fmt.Fprintf(w, "  Message:  %s\n", err.Error())

	frames := userFrames(err)
	if len(frames) > 0 {
		fmt.Fprintf(w, "  Backtrace:\n")
		for _, frame := range frames {
			fmt.Fprintf(w, "    %s:%d in %s\n", frame.File, frame.Line, frame.Function)
		}
	}
}

// userFrames returns the structured frames a Failure captured, dropping
// frames inside this framework and the Go runtime.
func userFrames(err error) []runtime.Frame {
	var failure *assertions.Failure
	if !errors.As(err, &failure) {
		return nil
	}

	var out []runtime.Frame
	frames := failure.Frames()
	for {
		frame, more := frames.Next()
		if frame.File != "" && !frameworkFrame(frame.File) {
			out = append(out, frame)
		}
		if !more {
			break
		}
	}
	return out
}

func frameworkFrame(file string) bool {
	return strings.Contains(file, "randspec/packages/") ||
		strings.Contains(filepath.ToSlash(file), "/src/runtime/")
}
