package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/evgenybelkin/service-e2e-tests/framework"

	"github.com/alessio/shellescape"
)

const maskedToken = "***"

// ServiceClient makes requests to the service resource of the API.
//
// A ServiceClient is immutable; WithToken, WithoutAuth and WithLogger return modified copies.
type ServiceClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     framework.Logger
}

// NewServiceClient creates a client for the resource collection at baseURL, which must end in a
// slash. If token is empty, requests have no Authorization header.
func NewServiceClient(baseURL, token string, timeout time.Duration, logger framework.Logger) *ServiceClient {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &ServiceClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// WithToken returns a copy of the client that uses a different bearer token.
func (c *ServiceClient) WithToken(token string) *ServiceClient {
	c1 := *c
	c1.token = token
	return &c1
}

// WithoutAuth returns a copy of the client that sends no Authorization header.
func (c *ServiceClient) WithoutAuth() *ServiceClient {
	return c.WithToken("")
}

// WithLogger returns a copy of the client that logs to a different logger, such as the debug
// logger of a test.
func (c *ServiceClient) WithLogger(logger framework.Logger) *ServiceClient {
	c1 := *c
	c1.logger = logger
	if c1.logger == nil {
		c1.logger = framework.NullLogger()
	}
	return &c1
}

// ResourceURL returns the URL of an individual service.
func (c *ServiceClient) ResourceURL(id string) string {
	return c.baseURL + id
}

// Create sends a POST to the collection URL. The body may be anything that encoding/json can
// marshal, including a servicedef.ServicePayload or an ldvalue.Value.
func (c *ServiceClient) Create(ctx context.Context, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, c.baseURL, body)
}

func (c *ServiceClient) Get(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.ResourceURL(id), nil)
}

// Replace sends a PUT with a full replacement of the service.
func (c *ServiceClient) Replace(ctx context.Context, id string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.ResourceURL(id), body)
}

func (c *ServiceClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.ResourceURL(id), nil)
}

func (c *ServiceClient) do(ctx context.Context, method, url string, body interface{}) (*Response, error) {
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("could not encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Printf("Request: %s %s", method, url)
	c.logger.Printf("Reproduce with: %s", curlCommand(req, data))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("Request failed: %s", err)
		return nil, fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body of %s %s: %w", method, url, err)
	}

	c.logger.Printf("Response: %d after %s: %s", resp.StatusCode, time.Since(start).Round(time.Millisecond),
		truncate(string(respBody), 1000))
	return &Response{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// curlCommand returns a shell command that repeats the request, with the bearer token masked.
func curlCommand(req *http.Request, body []byte) string {
	args := []string{"curl", "-i", "-X", req.Method}
	for _, name := range []string{"Accept", "Content-Type", "Authorization"} {
		value := req.Header.Get(name)
		if value == "" {
			continue
		}
		if name == "Authorization" {
			value = "Bearer " + maskedToken
		}
		args = append(args, "-H", name+": "+value)
	}
	if len(body) > 0 {
		args = append(args, "--data", string(body))
	}
	args = append(args, req.URL.String())
	return shellescape.QuoteCommand(args)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
