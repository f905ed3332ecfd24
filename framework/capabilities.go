package framework

import "strings"

// Capabilities is a set of optional features enabled for a test run, such as "ui" for tests that
// need a browser.
type Capabilities []string

func (c Capabilities) Has(desired string) bool {
	for _, capability := range c {
		if capability == desired {
			return true
		}
	}
	return false
}

// Missing returns the members of all that are not in c.
func (c Capabilities) Missing(all []string) Capabilities {
	var ret Capabilities
	for _, capability := range all {
		if !c.Has(capability) {
			ret = append(ret, capability)
		}
	}
	return ret
}

func (c Capabilities) String() string {
	return strings.Join(c, ", ")
}
