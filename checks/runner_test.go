package checks

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/act4e/data-contract-tests/contract"
)

type fakeT struct {
	messages  []string
	failedNow bool
}

type stopTest struct{}

func (f *fakeT) Errorf(format string, args ...any) {
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}

func (f *fakeT) FailNow() {
	f.failedNow = true
	panic(stopTest{})
}

// runVerb runs fn, absorbing the panic fakeT.FailNow uses to end a verb.
func runVerb(fn func()) (stopped bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(stopTest); !ok {
				panic(r)
			}
			stopped = true
		}
	}()
	fn()
	return
}

type loaderFunc func(contract.IOHelper, any) (any, error)

func (f loaderFunc) Load(h contract.IOHelper, data any) (any, error) { return f(h, data) }

type saverFunc func(contract.IOHelper, any) (any, error)

func (f saverFunc) Save(h contract.IOHelper, ob any) (any, error) { return f(h, ob) }

type named interface{ Name() string }

type namedThing struct{}

func (namedThing) Name() string { return "thing" }

func TestLoadValueSuccess(t *testing.T) {
	ft := &fakeT{}
	loader := loaderFunc(func(h contract.IOHelper, data any) (any, error) {
		return "loaded:" + data.(string), nil
	})

	var res any
	var err error
	stopped := runVerb(func() {
		res, err = LoadValue(ft, loader, contract.StubIOHelper{}, "x", reflect.TypeOf(""))
	})

	assert.False(t, stopped)
	require.NoError(t, err)
	assert.Equal(t, "loaded:x", res)
	assert.Empty(t, ft.messages)
}

func TestLoadValueChecksInterfaceWant(t *testing.T) {
	ft := &fakeT{}
	loader := loaderFunc(func(contract.IOHelper, any) (any, error) { return namedThing{}, nil })
	want := reflect.TypeOf((*named)(nil)).Elem()

	var res any
	stopped := runVerb(func() {
		res, _ = LoadValue(ft, loader, contract.StubIOHelper{}, nil, want)
	})

	assert.False(t, stopped)
	assert.Equal(t, namedThing{}, res)
	assert.Empty(t, ft.messages)
}

func TestLoadValueWrongResultType(t *testing.T) {
	ft := &fakeT{}
	loader := loaderFunc(func(contract.IOHelper, any) (any, error) { return 42, nil })

	stopped := runVerb(func() {
		LoadValue(ft, loader, contract.StubIOHelper{}, "data", reflect.TypeOf(""))
	})

	assert.True(t, stopped)
	require.Len(t, ft.messages, 1)
	assert.Contains(t, ft.messages[0], "Expected that loaderFunc.Load() returns a string (got int)")
}

func TestLoadValueUnimplementedPassesThrough(t *testing.T) {
	ft := &fakeT{}
	cause := contract.NotImplemented("powerset")
	loader := loaderFunc(func(contract.IOHelper, any) (any, error) { return nil, cause })

	var err error
	stopped := runVerb(func() {
		_, err = LoadValue(ft, loader, contract.StubIOHelper{}, "data", nil)
	})

	assert.False(t, stopped)
	assert.Equal(t, cause, err)
	var ni *contract.NotImplementedError
	assert.ErrorAs(t, err, &ni)
	assert.Empty(t, ft.messages)
}

func TestLoadValueInvalidFormatOnValidData(t *testing.T) {
	ft := &fakeT{}
	loader := loaderFunc(func(_ contract.IOHelper, data any) (any, error) {
		return nil, contract.InvalidFormat("did not like it", data)
	})

	stopped := runVerb(func() {
		LoadValue(ft, loader, contract.StubIOHelper{}, map[string]any{"a": 1}, nil)
	})

	assert.True(t, stopped)
	require.Len(t, ft.messages, 1)
	assert.Contains(t, ft.messages[0], "threw InvalidFormat but the format is valid")
	assert.Contains(t, ft.messages[0], "a: 1") // offending data echoed as YAML
}

func TestLoadValueUnexpectedError(t *testing.T) {
	ft := &fakeT{}
	loader := loaderFunc(func(contract.IOHelper, any) (any, error) { return nil, errors.New("boom") })

	stopped := runVerb(func() {
		LoadValue(ft, loader, contract.StubIOHelper{}, "data", nil)
	})

	assert.True(t, stopped)
	require.Len(t, ft.messages, 1)
	assert.Contains(t, ft.messages[0], "failed but the format is valid")
	assert.Contains(t, ft.messages[0], "boom")
}

func TestLoadValuePanic(t *testing.T) {
	ft := &fakeT{}
	loader := loaderFunc(func(contract.IOHelper, any) (any, error) { panic("kaboom") })

	stopped := runVerb(func() {
		LoadValue(ft, loader, contract.StubIOHelper{}, "data", nil)
	})

	assert.True(t, stopped)
	require.Len(t, ft.messages, 1)
	assert.Contains(t, ft.messages[0], "panicked")
	assert.Contains(t, ft.messages[0], "kaboom")
}

func TestSaveValueSuccess(t *testing.T) {
	ft := &fakeT{}
	saver := saverFunc(func(contract.IOHelper, any) (any, error) {
		return map[string]any{"elements": []any{1, 2}}, nil
	})

	var res any
	stopped := runVerb(func() {
		res = SaveValue(ft, saver, contract.StubIOHelper{}, "ob")
	})

	assert.False(t, stopped)
	assert.Equal(t, map[string]any{"elements": []any{1, 2}}, res)
	assert.Empty(t, ft.messages)
}

func TestSaveValueNilResult(t *testing.T) {
	ft := &fakeT{}
	saver := saverFunc(func(contract.IOHelper, any) (any, error) { return nil, nil })

	stopped := runVerb(func() {
		SaveValue(ft, saver, contract.StubIOHelper{}, "ob")
	})

	assert.True(t, stopped)
	require.Len(t, ft.messages, 1)
	assert.Contains(t, ft.messages[0], "returned nil")
}

func TestSaveValueAnyErrorIsAFailure(t *testing.T) {
	for name, err := range map[string]error{
		"plain error":   errors.New("broke"),
		"unimplemented": contract.NotImplemented("save"),
	} {
		t.Run(name, func(t *testing.T) {
			ft := &fakeT{}
			saver := saverFunc(func(contract.IOHelper, any) (any, error) { return nil, err })

			stopped := runVerb(func() {
				SaveValue(ft, saver, contract.StubIOHelper{}, "ob")
			})

			assert.True(t, stopped)
			require.Len(t, ft.messages, 1)
			assert.Contains(t, ft.messages[0], "Save() failed")
		})
	}
}

func TestSaveValuePanic(t *testing.T) {
	ft := &fakeT{}
	saver := saverFunc(func(contract.IOHelper, any) (any, error) { panic("kaboom") })

	stopped := runVerb(func() {
		SaveValue(ft, saver, contract.StubIOHelper{}, "ob")
	})

	assert.True(t, stopped)
	require.Len(t, ft.messages, 1)
	assert.Contains(t, ft.messages[0], "panicked")
}

func TestSaveValueReportsEveryShapeViolation(t *testing.T) {
	ft := &fakeT{}
	saver := saverFunc(func(contract.IOHelper, any) (any, error) {
		return map[string]any{
			"pair":  [2]int{1, 2},
			"weird": struct{}{},
		}, nil
	})

	stopped := runVerb(func() {
		SaveValue(ft, saver, contract.StubIOHelper{}, nil)
	})

	assert.True(t, stopped)
	require.Len(t, ft.messages, 2) // both problems reported before the verb fails
	assert.Contains(t, ft.messages[0], "fixed-size arrays")
	assert.Contains(t, ft.messages[1], "struct {}")
}
