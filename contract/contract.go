// Package contract defines the capability interfaces that an implementation under
// test provides, and the error signals it is expected to use. The harness consumes
// these contracts; it never implements the mathematics behind them.
package contract

import "fmt"

// IOHelper gives a load capability access to auxiliary files. The conformance
// environment does not provide any, so the default helper reports every file as
// unimplemented.
type IOHelper interface {
	LoadFile(name string) (map[string]any, error)
}

// StubIOHelper is the IOHelper used by the harness. LoadFile always fails with a
// NotImplementedError.
type StubIOHelper struct{}

func (StubIOHelper) LoadFile(name string) (map[string]any, error) {
	return nil, NotImplemented(fmt.Sprintf("loadfile(%q)", name))
}

// Loader is a capability that builds an abstraction object from its concrete
// representation. The data argument is a plain nested value (maps, slices and
// scalars) as produced by the fixture corpus.
//
// A Loader must return a NotImplementedError if it does not support the feature the
// data needs, and an InvalidFormatError if the data is not a valid representation.
// Any other error, and any panic, is treated by the harness as a defect in the
// implementation.
type Loader interface {
	Load(h IOHelper, data any) (any, error)
}

// Saver is a capability that serializes an abstraction object back into its
// concrete representation, which must use only the serialization-safe datatypes
// (see the checks package).
type Saver interface {
	Save(h IOHelper, ob any) (any, error)
}

// Representation is a matched Loader/Saver pair for one abstraction family.
type Representation interface {
	Loader
	Saver
}

// NotImplementedError is the signal for a feature an implementation legitimately
// does not provide. It is never counted as a conformance failure.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	if e.Feature == "" {
		return "not implemented"
	}
	return "not implemented: " + e.Feature
}

// NotImplemented returns a NotImplementedError for the named feature.
func NotImplemented(feature string) error {
	return &NotImplementedError{Feature: feature}
}

// InvalidFormatError is the signal for concrete data that is not a valid
// representation. Raising it on data the harness knows to be valid is a
// conformance failure.
type InvalidFormatError struct {
	Reason string
	Data   any
}

func (e *InvalidFormatError) Error() string {
	if e.Reason == "" {
		return "invalid format"
	}
	return "invalid format: " + e.Reason
}

// InvalidFormat returns an InvalidFormatError describing why the data was rejected.
func InvalidFormat(reason string, data any) error {
	return &InvalidFormatError{Reason: reason, Data: data}
}
