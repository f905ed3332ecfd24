package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testID(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFiltersWithNoPatternsMatchEverything(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(testID("API", "create")))
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("API/validation"))

	assert.True(t, filters.AsFilter(testID("API", "validation", "empty name")))
	assert.False(t, filters.AsFilter(testID("UI", "form")))
	// ancestors of a literal path have to run for the subtests to be reached
	assert.True(t, filters.AsFilter(testID("API")))
}

func TestPatternForSelectsTestAndSubtests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set(PatternFor(testID("UI", "service form"))))

	assert.True(t, filters.AsFilter(testID("UI")))
	assert.True(t, filters.AsFilter(testID("UI", "service form")))
	assert.True(t, filters.AsFilter(testID("UI", "service form", "tax calculation", "price 0.01")))
	assert.False(t, filters.AsFilter(testID("UI", "authentication")))
	assert.False(t, filters.AsFilter(testID("API")))
}

func TestRegexFiltersMatchFullPath(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("CRUD"))

	// a pattern that does not start with a top-level group admits no group
	assert.False(t, filters.AsFilter(testID("API")))
	assert.True(t, filters.AsFilter(testID("API", "CRUD")))
}

func TestRegexFiltersMustNotMatch(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^UI"))

	assert.True(t, filters.AsFilter(testID("API", "create")))
	assert.False(t, filters.AsFilter(testID("UI", "auth")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestPrintFilterDescription(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("API"))
	var buf bytes.Buffer
	PrintFilterDescription(&buf, filters, Capabilities{"api"}, []string{"api", "ui"})

	out := buf.String()
	assert.Contains(t, out, `skip any not matching "API"`)
	assert.Contains(t, out, "not enabled:\n  ui\n")
}
