// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A test can record any number of failures before it
// terminates, so that one call into an implementation under test can report every
// problem it found at once.
//
// 2. Tests can be filtered by identifier, skipped with a reason, and can capture debug
// output that is surfaced or discarded according to the logging configuration of the
// test run.
//
// The domain-specific code that knows what is being tested is responsible for loading
// the fixture corpus, talking to the implementation under test, and providing a
// domain-specific test API on top of the test context.
package framework
