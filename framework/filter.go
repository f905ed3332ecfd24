package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name) || r.isAncestorOfMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

// A parent test has to run for any of its subtests to run, so a -run pattern naming a full subtest
// path also admits every prefix of that path. Patterns are matched against the whole path starting
// from the top-level group: "API/CRUD/" selects the CRUD tests, while "CRUD" alone admits no
// top-level group and so selects nothing.
func (r RegexFilters) isAncestorOfMatch(name string) bool {
	for _, p := range r.MustMatch.patterns {
		literal, _ := p.LiteralPrefix()
		if literal != "" && strings.HasPrefix(literal, name+"/") {
			return true
		}
	}
	return false
}

// PatternFor returns a -run pattern that selects the test and all of its subtests.
func PatternFor(id TestID) string {
	return regexp.QuoteMeta(id.String()) + "(/|$)"
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func PrintFilterDescription(out io.Writer, filters RegexFilters, enabled Capabilities, allCapabilities []string) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}

	if missing := enabled.Missing(allCapabilities); len(missing) > 0 {
		fmt.Fprintln(out, "Some tests will be skipped because the following capabilities are not enabled:")
		fmt.Fprintf(out, "  %s\n", missing)
		fmt.Fprintln(out)
	}
}
