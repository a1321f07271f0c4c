package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/randspec/packages/core/runner"
	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/google/uuid"
)

// JSONFormatter streams one event object per line, suitable for machine
// consumption. Every event carries the run id.
type JSONFormatter struct {
	writer io.Writer
	enc    *json.Encoder
	exit   func(int)
	runID  string

	total     int
	completed int
}

// Event is a single line of JSON formatter output.
type Event struct {
	Event     string `json:"event"`
	RunID     string `json:"runId"`
	Name      string `json:"name,omitempty"`
	Location  string `json:"location,omitempty"`
	Total     int    `json:"total,omitempty"`
	Completed int    `json:"completed,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		exit:   os.Exit,
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.enc = json.NewEncoder(f.writer)
	return f
}

func WithJSONWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func WithJSONExitFunc(exit func(int)) JSONOption {
	return func(f *JSONFormatter) {
		f.exit = exit
	}
}

// RunID returns the identifier stamped on every event of this run.
func (f *JSONFormatter) RunID() string { return f.runID }

func (f *JSONFormatter) PrepareExecution(plan []runner.Executable) {
	f.total = runner.CountTests(plan)
	f.emit(Event{Event: "run_started", Total: f.total})
}

func (f *JSONFormatter) RunTest(t *spec.Test, body func() error) error {
	err := capture(body)
	name := displayName(t.Labels, "test")
	location := displayLocation(t.Labels)

	if err != nil {
		f.emit(Event{
			Event:    "test_failed",
			Name:     name,
			Location: location,
			Kind:     errKind(err),
			Error:    err.Error(),
		})
		f.exit(1)
		return err
	}

	f.completed++
	f.emit(Event{Event: "test_passed", Name: name, Location: location, Completed: f.completed, Total: f.total})
	return nil
}

func (f *JSONFormatter) RunSuite(s *spec.Suite, body func() error) error {
	name := displayName(s.Labels, "suite")
	f.emit(Event{Event: "suite_started", Name: name, Location: displayLocation(s.Labels)})

	err := capture(body)
	if err != nil {
		f.emit(Event{
			Event:    "suite_failed",
			Name:     name,
			Location: displayLocation(s.Labels),
			Kind:     errKind(err),
			Error:    err.Error(),
		})
		f.exit(1)
		return err
	}

	f.emit(Event{Event: "suite_finished", Name: name})
	return nil
}

func (f *JSONFormatter) RunChildren(s *spec.Suite, body func() error) error {
	return body()
}

func (f *JSONFormatter) emit(ev Event) {
	ev.RunID = f.runID
	_ = f.enc.Encode(ev)
}

func errKind(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%T", err)
}
