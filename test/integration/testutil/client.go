package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"skybook/pkg/client"
)

// Client wraps the service HTTP client with test-friendly fatal-on-error calls.
type Client struct {
	http *client.HttpClient
}

func NewClient(baseURL string) *Client {
	return &Client{http: client.NewHttpClient(baseURL, 10*time.Second)}
}

func (c *Client) GET(t *testing.T, path string) *client.Response {
	t.Helper()
	resp, err := c.http.GET(context.Background(), path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func (c *Client) POST(t *testing.T, path string, body any) *client.Response {
	t.Helper()
	resp, err := c.http.POST(context.Background(), path, body)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func (c *Client) WaitForHealthy(t *testing.T, maxWait time.Duration) {
	t.Helper()

	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		resp, err := c.http.GET(context.Background(), "/ready")
		if err == nil && resp.StatusCode == http.StatusOK {
			return
		}
		<-ticker.C
	}

	t.Fatalf("service did not become ready within %v", maxWait)
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(resp.Body))
	}
}
