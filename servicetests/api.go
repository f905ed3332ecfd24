package servicetests

import (
	"context"

	"github.com/evgenybelkin/service-e2e-tests/apiclient"
	"github.com/evgenybelkin/service-e2e-tests/browser"
	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/framework"
	"github.com/evgenybelkin/service-e2e-tests/servicedef"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

// T represents a test or subtest in the service test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging and
// observations that are provided by the lower-level framework package.
//
// It also provides functionality that is specific to this service. Every T that talks to the API
// has its own resource tracker: services that it creates are deleted when it finishes. A T can also
// carry a logged-in browser page, which its subtests share.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it
// were a *testing.T. Helper methods such as RequireRecord end the test with a harness error if the
// service answers with something the suite cannot interpret at all.
type T struct {
	context *framework.Context
	env     *Environment
	ctx     context.Context
	tracker *apiclient.ResourceTracker
	page    *browser.Page
}

func newT(c *framework.Context, env *Environment, page *browser.Page) *T {
	return &T{
		context: c,
		env:     env,
		ctx:     context.Background(),
		page:    page,
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Fatalf ends the test with a harness error.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.context.Fatalf(format, args...)
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The subtest gets its own resource tracker, and inherits the browser page of this test if there
// is one.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newT(c, t.env, t.page))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Observe records questionable behavior of the service without failing the test.
func (t *T) Observe(format string, args ...interface{}) {
	t.context.Observe(format, args...)
}

func (t *T) Defer(action func()) {
	t.context.Defer(action)
}

func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

func (t *T) RequireCapability(capability string) {
	t.context.RequireCapability(capability)
}

func (t *T) Config() config.Config {
	return t.env.Config
}

// Client returns the API client, logging to this test's debug output.
func (t *T) Client() *apiclient.ServiceClient {
	return t.env.Client.WithLogger(t.context.DebugLogger())
}

// Tracker returns the resource tracker of this test. The first call schedules the deletion of the
// tracked services for when the test finishes.
func (t *T) Tracker() *apiclient.ResourceTracker {
	if t.tracker == nil {
		tracker := apiclient.NewResourceTracker(t.Client(), t.context.DebugLogger())
		t.tracker = tracker
		t.Defer(func() {
			if n := tracker.Cleanup(t.ctx); n > 0 {
				t.Debug("Cleaned up %d service(s)", n)
			}
		})
	}
	return t.tracker
}

// CreateService posts a request body, which may be a ServicePayload or any other JSON-encodable
// value. A service that was created is deleted when the test finishes.
func (t *T) CreateService(body interface{}) apiclient.CreateResult {
	result, err := apiclient.CreateService(t.ctx, t.Client(), t.Tracker(), body)
	if err != nil {
		t.Fatalf("create request failed: %s", err)
	}
	if result.NormalizeErr != nil {
		t.Debug("Created service could not be normalized: %s", result.NormalizeErr)
	}
	return result
}

// RequireCreated creates a service and returns its record, failing the test if it is not created.
func (t *T) RequireCreated(payload servicedef.ServicePayload) servicedef.ServiceRecord {
	result := t.CreateService(payload)
	return t.RequireRecord(result.Response)
}

func (t *T) Get(id string) *apiclient.Response {
	resp, err := t.Client().Get(t.ctx, id)
	if err != nil {
		t.Fatalf("get request failed: %s", err)
	}
	return resp
}

func (t *T) Replace(id string, body interface{}) *apiclient.Response {
	resp, err := t.Client().Replace(t.ctx, id, body)
	if err != nil {
		t.Fatalf("replace request failed: %s", err)
	}
	return resp
}

// Delete deletes a service and stops tracking it.
func (t *T) Delete(id string) *apiclient.Response {
	resp, err := t.Client().Delete(t.ctx, id)
	if err != nil {
		t.Fatalf("delete request failed: %s", err)
	}
	t.Tracker().Forget(id)
	return resp
}

// RequireStatus fails the test immediately unless the response has one of the allowed statuses.
func (t *T) RequireStatus(resp *apiclient.Response, allowed ...int) {
	if !resp.StatusIn(allowed...) {
		t.Errorf("%s, expected one of %v: %s", resp, allowed, resp.Body)
		t.FailNow()
	}
}

// RequireRecord requires a successful response and returns the service record in it, whatever
// envelope the service used. A body that does not contain a record is a harness error.
func (t *T) RequireRecord(resp *apiclient.Response) servicedef.ServiceRecord {
	t.RequireStatus(resp, 200, 201)
	body := t.requireJSON(resp)
	value, err := apiclient.ExtractRecord(body)
	if err != nil {
		t.Fatalf("%s: %s", resp, err)
	}
	record, err := servicedef.RecordFromValue(value)
	if err != nil {
		t.Fatalf("%s: %s", resp, err)
	}
	return record
}

// AssertValidationErrors requires a 422 response and returns the validation errors in it.
func (t *T) AssertValidationErrors(resp *apiclient.Response) servicedef.ValidationErrorSet {
	t.RequireStatus(resp, 422)
	errs, err := apiclient.ParseValidationErrors(t.requireJSON(resp))
	if err != nil {
		t.Fatalf("%s: %s", resp, err)
	}
	return errs
}

// AssertValidationError requires a 422 response with at least one message for the field, and
// returns those messages.
func (t *T) AssertValidationError(resp *apiclient.Response, field string) []string {
	errs := t.AssertValidationErrors(resp)
	if !errs.Has(field) {
		t.Errorf("expected a validation error for %q, got errors for %v", field, errs.Fields())
		t.FailNow()
	}
	return errs[field]
}

func (t *T) requireJSON(resp *apiclient.Response) ldvalue.Value {
	body, err := resp.JSON()
	if err != nil {
		t.Fatalf("%s", err)
	}
	return body
}

func assertDecimalEqual(t *T, expected, actual decimal.Decimal, field string) bool {
	return assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", field, expected, actual)
}

var cent = decimal.New(1, -2)

// assertWithinCent allows for a service that computes amounts with binary floating point.
func assertWithinCent(t *T, expected, actual decimal.Decimal, field string) bool {
	return assert.True(t, expected.Sub(actual).Abs().LessThanOrEqual(cent),
		"%s: expected %s, got %s", field, expected, actual)
}
