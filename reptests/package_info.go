// Package reptests contains the conformance test suite that exercises a
// candidate's representations against the fixture corpus.
//
// Tests are organized per abstraction family, with one subtest per fixture, so
// a broken fixture never stops the rest of the suite. A candidate that answers
// "not implemented" for a fixture gets a skip, not a failure; wrong results,
// wrong error signaling, and non-serializable output are failures.
//
// The suite drives any implementation of contract.Representation. In-process
// implementations can be passed in directly; out-of-process ones are bridged
// through the client package.
package reptests
