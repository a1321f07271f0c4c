// Package runner executes randspec suite trees.
//
// It provides functionality for:
//   - Deriving a flat, filtered, deterministically shuffled plan from a tree
//   - Reproducible ordering from an explicit seed
//   - Restricting a run to tests declared in specific files
//   - Walking the plan while forking a Context per branch
//   - Driving a pluggable Formatter at well-defined reporting points
//
// Execution is strictly single-threaded and sequential; the seed only
// reorders the plan, it never overlaps execution. Errors raised by test
// bodies are never caught here — they are the formatter's to handle at the
// RunTest/RunSuite boundary.
package runner
