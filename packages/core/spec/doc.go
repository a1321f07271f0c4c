// Package spec defines the building blocks of a randspec test tree.
//
// It provides:
//   - Step: an invocable unit of work over a Context
//   - Chain: a combinator that runs steps in sequence, flattening nested chains
//   - Context: branchable key/value state threaded through execution
//   - Suite: an ordered tree of Test leaves and AroundSuite wrapper nodes
//
// Trees are declared with Test, WithAround, WithBefore and WithAfter; every
// node is stamped with the declaring call site under the __location label
// so the runner can order, filter and name nodes deterministically.
package spec
