// Package restcall provides a minimal request/response client for
// named remote REST services.
package restcall

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client performs single request/response exchanges against one remote
// service, identified by name for error reporting.
type Client struct {
	name    string
	baseURL string
	client  *http.Client
}

// New creates a client for a named service with standard transport settings.
func New(name, baseURL string, timeout time.Duration) *Client {
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Name returns the service name the client was created with.
func (c *Client) Name() string {
	return c.name
}

// Response is one structured response from the remote service.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the response Content-Type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Get performs a GET against a path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// Post performs a POST with a body and optional extra headers.
func (c *Client) Post(ctx context.Context, path string, body []byte, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body, headers)
}

// Delete performs a DELETE against a path relative to the base URL.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, headers map[string]string) (*Response, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", c.name, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response body: %w", c.name, err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &HTTPError{Service: c.name, StatusCode: resp.StatusCode, Body: data}
	}
	return result, nil
}

// HTTPError represents a non-2xx response from the remote service.
// The response is still returned alongside it, so callers can render
// the body when diagnosing the failure.
type HTTPError struct {
	Service    string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: HTTP %d", e.Service, e.StatusCode)
}

// IsClientError returns true for 4xx errors.
func IsClientError(err error) bool {
	if he, ok := err.(*HTTPError); ok {
		return he.StatusCode >= 400 && he.StatusCode < 500
	}
	return false
}
