package framework

import (
	"fmt"
	"strings"
)

// Results is the accumulated outcome of a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of a single test.
type TestResult struct {
	TestID TestID
	Errors []error
}

// OK is true if no test in the run failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test as the path of subtest names leading to it.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// TestFailure pairs a test identifier with one of its errors.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
