package httpclient

import (
	"io"
	"net/http"
	"time"
)

// Client defines an interface for making HTTP requests to external
// collaborators (captcha verification, event trigger webhooks).
// Keeping it as an interface makes those calls easy to mock in tests.
type Client interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
	Get(url string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps the standard http.Client
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient creates a new HTTP client with a 30s timeout
func NewStandardClient() Client {
	return NewClientWithTimeout(30 * time.Second)
}

// NewClientWithTimeout creates a new HTTP client with a custom timeout
func NewClientWithTimeout(timeout time.Duration) Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Post makes a POST request
func (c *StandardHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return c.client.Post(url, contentType, body)
}

// Get makes a GET request
func (c *StandardHTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
