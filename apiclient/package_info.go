// Package apiclient makes requests to the service API and interprets the responses.
//
// It knows about the two shapes in which the API returns a service record, about the structure of
// validation errors, and about deleting the services that a test has created. It makes no
// assertions; that is up to the tests.
package apiclient
