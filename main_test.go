package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/evgenybelkin/service-e2e-tests/framework"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestConsoleTestLoggerDistinguishesHarnessErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleTestLogger(&buf, false, false)
	failed := framework.TestID{Path: []string{"API", "create", "fails"}}
	broken := framework.TestID{Path: []string{"API", "create", "broken"}}

	logger.TestStarted(failed)
	logger.TestError(failed, errors.New("expected 22, got 23"))
	logger.TestFinished(failed, true, nil)
	logger.TestStarted(broken)
	logger.TestError(broken, &framework.HarnessError{Message: "body is not JSON"})
	logger.TestFinished(broken, true, nil)

	out := buf.String()
	assert.Contains(t, out, "[API/create/fails]\n  expected 22, got 23\n  FAILED: API/create/fails\n")
	assert.Contains(t, out, "  harness error: body is not JSON\n  ERROR: API/create/broken\n")
}

func TestConsoleTestLoggerDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleTestLogger(&buf, true, false)
	var captured framework.CapturingLogger
	captured.Printf("Request: GET /api/service/1")
	id := framework.TestID{Path: []string{"API", "get"}}

	logger.TestFinished(id, false, captured.Output())
	assert.NotContains(t, buf.String(), "Request:")

	logger.TestFinished(id, true, captured.Output())
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "Request: GET /api/service/1")
}

func TestConsoleTestLoggerObservationsAndSkips(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleTestLogger(&buf, false, false)
	id := framework.TestID{Path: []string{"UI"}}

	logger.TestObservation(id, "negative price accepted")
	logger.TestSkipped(id, `capability "ui" is not enabled`)

	assert.Equal(t, "  OBSERVED: negative price accepted\n  SKIPPED: UI (capability \"ui\" is not enabled)\n", buf.String())
}

func TestPrintResults(t *testing.T) {
	ok := framework.TestResult{TestID: framework.TestID{Path: []string{"a"}}, Observations: []string{"odd"}}
	failed := framework.TestResult{TestID: framework.TestID{Path: []string{"b"}}, Errors: []error{errors.New("x")}}
	broken := framework.TestResult{TestID: framework.TestID{Path: []string{"c"}}, Errors: []error{errors.New("y")}, HarnessFailure: true}
	results := framework.Results{
		Tests:    []framework.TestResult{ok, failed, broken},
		Failures: []framework.TestResult{failed, broken},
	}

	var buf bytes.Buffer
	PrintResults(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "Observations:\n  a: odd\n")
	assert.Contains(t, out, "FAILED TESTS:\n  b\n  c (harness error)\n")
	assert.Contains(t, out, "Some tests failed (1 passed, 2 failed, 0 skipped)")
}

func TestPrintResultsAllPassed(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, framework.Results{Tests: []framework.TestResult{{TestID: framework.TestID{Path: []string{"a"}}}}})
	assert.Equal(t, "All tests passed (1 passed, 0 failed, 0 skipped)\n", buf.String())
}

func TestReadParams(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"e2e", "-url", "http://localhost:8080", "-ui", "-timeout", "5s", "-run", "API"}))

	assert.Equal(t, "http://localhost:8080", params.serviceURL)
	assert.True(t, params.ui)
	assert.False(t, params.headed)
	assert.Equal(t, 5*time.Second, params.timeout)
	assert.True(t, params.filters.MustMatch.IsDefined())
	assert.False(t, params.filters.MustNotMatch.IsDefined())
}

func TestRerunCommand(t *testing.T) {
	params := commandParams{serviceURL: "http://localhost:8080/", envFile: ".env", ui: true}
	cmd := params.rerunCommand("./e2e", []framework.TestID{
		{Path: []string{"API", "create", "create success"}},
		{Path: []string{"UI", "service form", "tax calculation", "price 0.01"}},
	})
	assert.Equal(t,
		`./e2e -url http://localhost:8080/ -ui -run 'API/create/create success(/|$)' -run 'UI/service form/tax calculation/price 0\.01(/|$)'`,
		cmd)
}

func TestRerunCommandForFailedGroupRunsItsSubtests(t *testing.T) {
	params := commandParams{envFile: ".env", ui: true}
	group := framework.TestID{Path: []string{"UI", "service form"}}
	cmd := params.rerunCommand("./e2e", []framework.TestID{group})
	assert.Equal(t, `./e2e -ui -run 'UI/service form(/|$)'`, cmd)

	var rerun commandParams
	require.True(t, rerun.Read([]string{"e2e", "-ui", "-run", framework.PatternFor(group)}))
	filter := rerun.filters.AsFilter
	assert.True(t, filter(framework.TestID{Path: []string{"UI"}}))
	assert.True(t, filter(group))
	assert.True(t, filter(framework.TestID{Path: []string{"UI", "service form", "form elements present"}}))
	assert.False(t, filter(framework.TestID{Path: []string{"UI", "service forms"}}))
	assert.False(t, filter(framework.TestID{Path: []string{"UI", "authentication", "wrong password"}}))
}
