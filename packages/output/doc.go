// Package output provides formatters for reporting randspec runs.
//
// Supported formats:
//   - Console: human-readable colored terminal output (the reference formatter)
//   - Progress: a live progress bar with running success/failure counts
//   - TAP: Test Anything Protocol version 13
//   - JSON: one machine-readable event object per line
//
// Each formatter implements runner.Formatter. Formatters own failure
// presentation and process termination: on the first error anywhere in a
// run they render a structured diagnostic and exit the process with
// status 1. A deliberate *runner.ExitSignal is re-raised untouched.
package output
