package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/evgenybelkin/service-e2e-tests/framework"

	"github.com/fatih/color"
)

var (
	failedColor   = color.New(color.FgRed, color.Bold)
	errorColor    = color.New(color.FgMagenta, color.Bold)
	skippedColor  = color.New(color.FgYellow)
	observedColor = color.New(color.FgCyan)
	passedColor   = color.New(color.FgGreen, color.Bold)
)

// ConsoleTestLogger reports test progress as it happens. A test that ended because of a harness
// error is reported as ERROR, and one that failed an assertion as FAILED.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	harnessErrors map[string]bool
}

func NewConsoleTestLogger(out io.Writer, debugOnFailure, debugOnSuccess bool) *ConsoleTestLogger {
	return &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: debugOnFailure,
		DebugOutputOnSuccess: debugOnSuccess,
		harnessErrors:        make(map[string]bool),
	}
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	textColor := failedColor
	if framework.IsHarnessError(err) {
		c.harnessErrors[id.String()] = true
		textColor = errorColor
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", textColor.Sprint(line))
	}
}

func (c *ConsoleTestLogger) TestObservation(id framework.TestID, message string) {
	fmt.Fprintf(c.Out, "  %s %s\n", observedColor.Sprint("OBSERVED:"), message)
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		if c.harnessErrors[id.String()] {
			fmt.Fprintf(c.Out, "  %s %s\n", errorColor.Sprint("ERROR:"), id)
		} else {
			fmt.Fprintf(c.Out, "  %s %s\n", failedColor.Sprint("FAILED:"), id)
		}
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s %s\n", skippedColor.Sprint("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s %s (%s)\n", skippedColor.Sprint("SKIPPED:"), id, reason)
	}
}

// PrintResults writes the summary of a test run: observations, failures and counts.
func PrintResults(out io.Writer, results framework.Results) {
	passed, failed, skipped := results.Counts()

	if observed := results.Observed(); len(observed) > 0 {
		fmt.Fprintln(out, observedColor.Sprint("Observations:"))
		for _, r := range observed {
			for _, o := range r.Observations {
				fmt.Fprintf(out, "  %s: %s\n", r.TestID, o)
			}
		}
		fmt.Fprintln(out)
	}

	if !results.OK() {
		fmt.Fprintln(out, failedColor.Sprint("FAILED TESTS:"))
		for _, f := range results.Failures {
			if f.HarnessFailure {
				fmt.Fprintf(out, "  %s %s\n", f.TestID, errorColor.Sprint("(harness error)"))
			} else {
				fmt.Fprintf(out, "  %s\n", f.TestID)
			}
		}
		fmt.Fprintln(out)
	}

	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if results.OK() {
		fmt.Fprintln(out, passedColor.Sprint("All tests passed")+" ("+summary+")")
	} else {
		fmt.Fprintln(out, failedColor.Sprint("Some tests failed")+" ("+summary+")")
	}
}
