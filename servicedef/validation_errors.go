package servicedef

import (
	"sort"
	"strings"
)

// ValidationErrorSet maps a field name to the messages the service reported for it. It only
// appears in 422 responses.
type ValidationErrorSet map[string][]string

// Fields returns the field names in sorted order.
func (s ValidationErrorSet) Fields() []string {
	ret := make([]string, 0, len(s))
	for k := range s {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Has returns true if there is at least one message for the field.
func (s ValidationErrorSet) Has(field string) bool {
	return len(s[field]) > 0
}

// AnyContains returns true if any message for the field contains any of the substrings,
// ignoring case.
func (s ValidationErrorSet) AnyContains(field string, substrings ...string) bool {
	for _, message := range s[field] {
		lower := strings.ToLower(message)
		for _, sub := range substrings {
			if strings.Contains(lower, strings.ToLower(sub)) {
				return true
			}
		}
	}
	return false
}

// AllMessages returns every message of every field, in field order.
func (s ValidationErrorSet) AllMessages() []string {
	var ret []string
	for _, f := range s.Fields() {
		ret = append(ret, s[f]...)
	}
	return ret
}
