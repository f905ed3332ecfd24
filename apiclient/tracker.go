package apiclient

import (
	"context"
	"sync"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/framework"
	"github.com/evgenybelkin/service-e2e-tests/servicedef"

	"github.com/google/uuid"
)

// ResourceTracker remembers the services created by a test, so that they can be deleted when the
// test finishes.
type ResourceTracker struct {
	client *ServiceClient
	logger framework.Logger
	ids    []string
	lock   sync.Mutex
}

func NewResourceTracker(client *ServiceClient, logger framework.Logger) *ResourceTracker {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &ResourceTracker{client: client, logger: logger}
}

// Track adds an identifier. Empty and already tracked identifiers are ignored.
func (t *ResourceTracker) Track(id string) {
	if id == "" {
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		t.logger.Printf("Tracking service with an identifier that is not a UUID: %q", id)
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, existing := range t.ids {
		if existing == id {
			return
		}
	}
	t.ids = append(t.ids, id)
}

// Forget removes an identifier, for a service that the test has deleted itself.
func (t *ResourceTracker) Forget(id string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	for i, existing := range t.ids {
		if existing == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			return
		}
	}
}

func (t *ResourceTracker) IDs() []string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]string(nil), t.ids...)
}

// Cleanup deletes every tracked service once and forgets them all. Errors are logged and
// otherwise ignored. It returns the number of deletes that were attempted.
func (t *ResourceTracker) Cleanup(ctx context.Context) int {
	t.lock.Lock()
	ids := t.ids
	t.ids = nil
	t.lock.Unlock()

	for _, id := range ids {
		resp, err := t.client.Delete(ctx, id)
		switch {
		case err != nil:
			t.logger.Printf("Cleanup of service %s failed: %s", id, err)
		case !resp.StatusIn(200, 204, 404):
			t.logger.Printf("Cleanup of service %s: unexpected status %d", id, resp.StatusCode)
		}
	}
	return len(ids)
}

// CreateResult is the outcome of CreateService.
type CreateResult struct {
	Response *Response
	// Record is the normalized service record, or nil if the response was not a success or
	// could not be normalized.
	Record *servicedef.ServiceRecord
	// NormalizeErr is the reason why a successful response could not be normalized.
	NormalizeErr error
}

// CreateService posts a new service. If the response is a success, the record is normalized and
// its identifier is tracked for cleanup. A response that cannot be normalized is still returned,
// so that the caller can make assertions about it; only a transport error is returned as an error.
func CreateService(ctx context.Context, client *ServiceClient, tracker *ResourceTracker, body interface{}) (CreateResult, error) {
	resp, err := client.Create(ctx, body)
	if err != nil {
		return CreateResult{}, err
	}
	result := CreateResult{Response: resp}
	if !resp.IsSuccess() {
		return result, nil
	}

	parsed, err := resp.JSON()
	if err != nil {
		result.NormalizeErr = err
		return result, nil
	}
	value, err := ExtractRecord(parsed)
	if err != nil {
		result.NormalizeErr = err
		return result, nil
	}
	if id := value.GetByKey(config.FieldUUID); id.IsString() {
		tracker.Track(id.StringValue())
	}
	record, err := servicedef.RecordFromValue(value)
	if err != nil {
		result.NormalizeErr = err
		return result, nil
	}
	result.Record = &record
	return result, nil
}
