package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a complete HTTP response from the API.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the response body. An empty or malformed body is an error.
func (r *Response) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if len(r.Body) == 0 {
		return v, fmt.Errorf("%s: response body is empty", r)
	}
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), fmt.Errorf("%s: response body is not valid JSON: %w", r, err)
	}
	return v, nil
}

// StatusIn returns true if the status code is one of the given codes.
func (r *Response) StatusIn(codes ...int) bool {
	for _, c := range codes {
		if r.StatusCode == c {
			return true
		}
	}
	return false
}

// IsSuccess returns true for the statuses that the service uses for a successful create.
func (r *Response) IsSuccess() bool {
	return r.StatusIn(http.StatusOK, http.StatusCreated)
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s returned %d", r.Method, r.URL, r.StatusCode)
}
