// Package servicetests contains the end-to-end test suite for the service catalog: its JSON API and
// its web interface.
//
// Tests are written in the same style as Go unit tests, with a *T in place of *testing.T, but they
// run against a live deployment through the framework package rather than under "go test".
package servicetests
