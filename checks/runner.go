// Package checks drives load and save capabilities with fixture data and
// validates their behavior: correct results, correct error signaling, and
// serialization-safe output shapes.
//
// Failures found during one verb accumulate and are reported together at the
// end of the verb, so a broken implementation produces one complete report
// instead of stopping at the first problem.
package checks

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"

	"gopkg.in/yaml.v3"

	"github.com/act4e/data-contract-tests/contract"
)

// TestingT is the subset of testing.T that the verbs report failures through.
// Both *testing.T and the harness's own test contexts satisfy it.
type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

// collector accumulates failures for one verb invocation.
type collector struct {
	t        TestingT
	failures int
}

func (c *collector) failf(format string, args ...any) {
	c.failures++
	c.t.Errorf(format, args...)
}

// finish ends the verb if any failure was recorded. It must be the last thing
// a verb does.
func (c *collector) finish() {
	if c.failures > 0 {
		c.t.FailNow()
	}
}

// SaveValue drives a save capability with ob and validates the result shape.
// Any error or panic from the capability is a failure, as is a nil result or
// a result using non-serializable datatypes. On failure the verb reports
// everything it found on t and then terminates the test.
func SaveValue(t TestingT, s contract.Saver, h contract.IOHelper, ob any) any {
	col := &collector{t: t}
	name := implName(s)

	res, err, stack := callSave(s, h, ob)
	switch {
	case stack != nil:
		col.failf("%s.Save() panicked: %v\n%s", name, err, stack)
	case err != nil:
		col.failf("%s.Save() failed: %v (object: %v)", name, err, ob)
	case res == nil:
		col.failf("%s.Save() returned nil (object: %v)", name, ob)
	default:
		for _, v := range CheckOutput(res) {
			col.failf("%s.Save(): %s (value: %v)", name, v.Message, v.Value)
		}
	}
	col.finish()
	return res
}

// LoadValue drives a load capability with fixture data the corpus knows to be
// valid, and checks the result against the expected type (want may be an
// interface type, a concrete type, or nil to skip the check).
//
// A NotImplementedError from the capability is returned unchanged: it is a
// legitimate outcome, and the caller decides whether to skip. Every other
// error, any panic, and an InvalidFormatError in particular, is a failure
// reported on t.
func LoadValue(t TestingT, l contract.Loader, h contract.IOHelper, data any, want reflect.Type) (any, error) {
	col := &collector{t: t}
	name := implName(l)

	res, err, stack := callLoad(l, h, data)
	var notImpl *contract.NotImplementedError
	var badFormat *contract.InvalidFormatError
	switch {
	case stack != nil:
		col.failf("%s.Load() panicked: %v\n%s", name, err, stack)
	case errors.As(err, &notImpl):
		return nil, err
	case errors.As(err, &badFormat):
		col.failf("Implementation of %s.Load() threw InvalidFormat but the format is valid.\nData:\n%s",
			name, asYAML(data))
	case err != nil:
		col.failf("Implementation of %s.Load() failed but the format is valid: %v\nData:\n%s",
			name, err, asYAML(data))
	default:
		if want != nil && !typeMatches(res, want) {
			col.failf("Expected that %s.Load() returns a %s (got %s)", name, want, typeName(res))
		}
	}
	col.finish()
	return res, nil
}

func callSave(s contract.Saver, h contract.IOHelper, ob any) (res any, err error, stack []byte) {
	defer func() {
		if r := recover(); r != nil {
			res, err, stack = nil, fmt.Errorf("%v", r), debug.Stack()
		}
	}()
	res, err = s.Save(h, ob)
	return
}

func callLoad(l contract.Loader, h contract.IOHelper, data any) (res any, err error, stack []byte) {
	defer func() {
		if r := recover(); r != nil {
			res, err, stack = nil, fmt.Errorf("%v", r), debug.Stack()
		}
	}()
	res, err = l.Load(h, data)
	return
}

func typeMatches(res any, want reflect.Type) bool {
	if res == nil {
		return false
	}
	rt := reflect.TypeOf(res)
	if want.Kind() == reflect.Interface {
		return rt.Implements(want)
	}
	return rt.AssignableTo(want)
}

// implName names a capability in failure messages by its type, dereferencing
// pointers so *FooRep and FooRep read the same.
func implName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func asYAML(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
