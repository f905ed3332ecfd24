// Package framework contains the low-level implementation of the test runner infrastructure that
// is not specific to the service under test.
//
// The general model is:
//
// 1. The runner executes a tree of tests outside of the Go test runner. There is a general notion
// of a test context, similar to Go's *testing.T, allowing pieces of test logic to be associated
// with a test identifier and to accumulate success/failure results.
//
// 2. A test can fail in two distinct ways: an assertion mismatch (Errorf/FailNow, as called by the
// testify assert and require packages), or a harness failure (Fatalf) when the test cannot
// proceed at all. A test can also record observations of behavior that is deliberately not
// asserted either way.
//
// 3. Cleanup is registered with Defer and runs when the test that registered it finishes, which
// lets a parent test hold a resource that is shared by all of its subtests.
//
// The domain-specific code that knows what is being tested is responsible for talking to the
// service and for providing a domain-specific test API on top of the test context.
package framework
