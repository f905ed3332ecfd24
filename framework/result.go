package framework

import (
	"errors"
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID         TestID
	Errors         []error
	Skipped        bool
	HarnessFailure bool
	Observations   []string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Observed returns the results of all tests that recorded at least one observation.
func (r Results) Observed() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if len(t.Observations) > 0 {
			ret = append(ret, t)
		}
	}
	return ret
}

// Counts returns the number of passed, failed, and skipped tests. Tests that only contain
// subtests are counted like any other test.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Skipped:
			skipped++
		case len(t.Errors) > 0:
			failed++
		default:
			passed++
		}
	}
	return
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// HarnessError is a failure of the test harness itself rather than a mismatch between expected
// and actual values.
type HarnessError struct {
	Message string
}

func (e *HarnessError) Error() string {
	return "harness error: " + e.Message
}

// IsHarnessError returns true if the error is or wraps a *HarnessError.
func IsHarnessError(err error) bool {
	var he *HarnessError
	return errors.As(err, &he)
}

// reformatError removes the blank lines and tab-heavy indentation that testify puts into its
// failure messages, so they read well on a console.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(line, "\t") && len(out) > 0 {
			trimmed = "  " + trimmed
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return err
	}
	return errors.New(strings.Join(out, "\n"))
}
