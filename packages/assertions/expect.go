package assertions

import (
	"reflect"
	"strings"

	"github.com/abdul-hamid-achik/randspec/packages/core/spec"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// Expectation is a pending check on a value, bound to the step whose
// assertion counter it advances.
type Expectation struct {
	step   *spec.Step
	actual any
}

// Expect begins an expectation on actual. The current step is looked up in
// ctx so every matcher advances its assertion counter; outside a running
// step the counter is simply not tracked.
func Expect(ctx *spec.Context, actual any) *Expectation {
	step, _ := spec.CurrentStep(ctx)
	return &Expectation{step: step, actual: actual}
}

func (e *Expectation) count() {
	if e.step != nil {
		e.step.AssertionCount++
	}
}

// ToEqual asserts deep equality.
func (e *Expectation) ToEqual(expected any) {
	e.count()
	if !reflect.DeepEqual(e.actual, expected) {
		panic(newFailure(expected, e.actual, "expected %#v to equal %#v", e.actual, expected))
	}
}

// ToBeTrue asserts the value is the boolean true.
func (e *Expectation) ToBeTrue() {
	e.count()
	if b, ok := e.actual.(bool); !ok || !b {
		panic(newFailure(true, e.actual, "expected %#v to be true", e.actual))
	}
}

// ToBeNil asserts the value is nil.
func (e *Expectation) ToBeNil() {
	e.count()
	if !isNil(e.actual) {
		panic(newFailure(nil, e.actual, "expected %#v to be nil", e.actual))
	}
}

// ToContain asserts a string contains a substring, or a slice/array
// contains an element equal to want.
func (e *Expectation) ToContain(want any) {
	e.count()
	if s, ok := e.actual.(string); ok {
		if sub, ok := want.(string); ok && strings.Contains(s, sub) {
			return
		}
		panic(newFailure(want, e.actual, "expected %q to contain %v", s, want))
	}
	v := reflect.ValueOf(e.actual)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			if reflect.DeepEqual(v.Index(i).Interface(), want) {
				return
			}
		}
	}
	panic(newFailure(want, e.actual, "expected %#v to contain %#v", e.actual, want))
}

// JSON extracts path from a JSON document (string or []byte) with gjson
// and returns a new expectation bound to the extracted value. A missing
// path fails immediately.
func (e *Expectation) JSON(path string) *Expectation {
	e.count()
	doc, ok := jsonDocument(e.actual)
	if !ok {
		panic(newFailure(nil, e.actual, "expected a JSON document (string or []byte), got %T", e.actual))
	}
	result := gjson.Get(doc, path)
	if !result.Exists() {
		panic(newFailure(path, e.actual, "expected JSON path %q to exist", path))
	}
	return &Expectation{step: e.step, actual: result.Value()}
}

// ToMatchSchema validates the value (a JSON document) against an inline
// JSON Schema.
func (e *Expectation) ToMatchSchema(schemaJSON string) {
	e.count()
	doc, ok := jsonDocument(e.actual)
	if !ok {
		panic(newFailure(nil, e.actual, "expected a JSON document (string or []byte), got %T", e.actual))
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		panic(newFailure(schemaJSON, doc, "schema validation errored: %v", err))
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		panic(newFailure(schemaJSON, doc, "document does not match schema: %s", strings.Join(msgs, "; ")))
	}
}

func jsonDocument(v any) (string, bool) {
	switch d := v.(type) {
	case string:
		return d, true
	case []byte:
		return string(d), true
	}
	return "", false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
