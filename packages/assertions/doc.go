// Package assertions provides the expectation collaborator used inside
// randspec test bodies.
//
// Supported expectations:
//   - Equality (Expect(ctx, got).ToEqual(want))
//   - Truth, nil and substring/element checks
//   - JSON path extraction (Expect(ctx, body).JSON("data.id").ToEqual(...))
//   - JSON Schema validation (ToMatchSchema)
//
// Every matcher advances the assertion counter of the step currently
// executing against the given context. A failed expectation panics with a
// *Failure carrying message, expected/actual values and the call stack;
// the formatter at the RunTest boundary recovers it, renders the
// diagnostic and terminates the run.
package assertions
