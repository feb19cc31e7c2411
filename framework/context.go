package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context represents one test (or subtest) in progress. It accumulates failures until
// the test either finishes or is terminated early with FailNow.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes a test action with a brand new root context, returning the accumulated
// results of every subtest that ran.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		result := TestResult{TestID: c.id, Errors: c.errors}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// ID returns the full identifier of the current test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest under this context. Failures in the subtest are recorded in the
// overall results but do not affect the parent: a broken fixture never prevents the
// rest of the suite from running.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a test failure without terminating the test. This (together with
// FailNow) is the same contract as testing.T, so assertion libraries that understand
// testing.T can be pointed at a Context as well.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow terminates the test immediately. Any failures recorded with Errorf are
// retained; if there were none, a generic failure is reported.
func (c *Context) FailNow() {
	panic(c)
}

// Failed reports whether any failure has been recorded for this test so far.
func (c *Context) Failed() bool {
	return c.failed
}

// Skip terminates the test immediately and marks it as skipped rather than failed.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason is Skip with an explanation that is passed along to the test logger.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug writes a message to the test's captured debug output.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the test's captured debug output, for
// passing into lower-level components.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
