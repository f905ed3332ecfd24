package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results      Results
	testLogger   TestLogger
	filter       Filter
	capabilities Capabilities
}

// Context represents a test or subtest. It accumulates failures, debug output, deferred cleanup
// actions and observations, and it can start subtests with Run.
//
// Context implements the TestingT interfaces of the testify assert and require packages, so it can
// be passed to those the same way as a *testing.T.
type Context struct {
	env          *environment
	id           TestID
	debugLogger  CapturingLogger
	failed       bool
	harnessError bool
	skipped      bool
	skipReason   string
	errors       []error
	observations []string
	deferred     []func()
}

// Run starts a root test context and runs the action in it.
func Run(
	filter Filter,
	testLogger TestLogger,
	capabilities Capabilities,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:       filter,
		testLogger:   testLogger,
		capabilities: capabilities,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
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
		}
		c.runDeferred()
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{
			TestID:         c.id,
			Errors:         c.errors,
			Skipped:        c.skipped,
			HarnessFailure: c.harnessError,
			Observations:   c.observations,
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed && !c.skipped {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) runDeferred() {
	for i := len(c.deferred) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.debugLogger.Printf("panic in deferred cleanup: %+v", r)
				}
			}()
			c.deferred[i]()
		}()
	}
	c.deferred = nil
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. This is equivalent to the Run method of testing.T. Deferred actions of the
// subtest are run when the subtest finishes.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

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

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow causes the test to immediately exit. The methods in the require package call FailNow.
func (c *Context) FailNow() {
	panic(c)
}

// Fatalf reports a harness failure: the test cannot proceed because something it depends on did not
// behave as the harness requires (an unparseable body, an unrecognized envelope, a failed login).
// It is reported distinctly from an assertion mismatch, and the test exits immediately.
func (c *Context) Fatalf(format string, args ...interface{}) {
	c.harnessError = true
	c.failed = true
	err := &HarnessError{Message: fmt.Sprintf(format, args...)}
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Observe records behavior of the service that is known to be questionable but is not asserted
// either way. Observations are reported by the test logger and included in the results.
func (c *Context) Observe(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.observations = append(c.observations, message)
	c.debugLogger.Printf("OBSERVED: %s", message)
	c.env.testLogger.TestObservation(c.id, message)
}

// Defer schedules an action to run when the test finishes, whether it passed, failed, or was
// skipped. Actions run in reverse order of scheduling.
func (c *Context) Defer(action func()) {
	c.deferred = append(c.deferred, action)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Capabilities() Capabilities {
	return c.env.capabilities
}

// RequireCapability skips this test if the capability was not enabled for this run.
func (c *Context) RequireCapability(capability string) {
	if !c.env.capabilities.Has(capability) {
		c.SkipWithReason(fmt.Sprintf("capability %q is not enabled", capability))
	}
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
