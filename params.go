package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL string
	envFile    string
	filters    framework.RegexFilters
	ui         bool
	headed     bool
	chromePath string
	timeout    time.Duration
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the application (default $"+config.EnvBaseURL+" or "+config.DefaultBaseURL+")")
	fs.StringVar(&c.envFile, "env-file", config.DefaultEnvFile, "file of environment variables to load if it exists")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) matched against the full test path, such as 'API/CRUD/', to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.ui, "ui", false, "also run the tests of the web interface, which need Chrome")
	fs.BoolVar(&c.headed, "headed", false, "show the browser window")
	fs.StringVar(&c.chromePath, "chrome", "", "path of the Chrome executable")
	fs.DurationVar(&c.timeout, "timeout", 0, "timeout of each API request (default 30s)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand builds a command line that runs only the given tests, with the same settings.
func (c *commandParams) rerunCommand(program string, ids []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	if c.serviceURL != "" {
		b.add("-url", c.serviceURL)
	}
	if c.envFile != config.DefaultEnvFile {
		b.add("-env-file", c.envFile)
	}
	if c.ui {
		b.add("-ui")
	}
	if c.headed {
		b.add("-headed")
	}
	if c.chromePath != "" {
		b.add("-chrome", c.chromePath)
	}
	if c.timeout != 0 {
		b.add("-timeout", c.timeout.String())
	}
	for _, id := range ids {
		b.add("-run", framework.PatternFor(id))
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
