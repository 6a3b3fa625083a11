// Package testutil provides testing utilities for the analytics API.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestServer wraps httptest.Server with convenience methods
type TestServer struct {
	Server  *httptest.Server
	BaseURL string
	t       *testing.T
}

// TestEnv points the application at a throwaway data directory with a
// short model delay so deferred results land within test timeouts.
func TestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FINIQ_DATA_DIR", t.TempDir())
	t.Setenv("FINIQ_DEBUG", "true")
	t.Setenv("FINIQ_LISTEN_ADDR", ":0")
	t.Setenv("FINIQ_MODEL_LATENCY_MS", "20")
}

// NewTestServer creates a new test server using the application's router.
func NewTestServer(t *testing.T, router http.Handler) *TestServer {
	t.Helper()

	server := httptest.NewServer(router)

	return &TestServer{
		Server:  server,
		BaseURL: server.URL,
		t:       t,
	}
}

// GET performs a GET request to the given path
func (ts *TestServer) GET(path string) *http.Response {
	ts.t.Helper()

	resp, err := http.Get(ts.BaseURL + path)
	if err != nil {
		ts.t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

// POST performs a POST request to the given path
func (ts *TestServer) POST(path string, contentType string, body io.Reader) *http.Response {
	ts.t.Helper()

	resp, err := http.Post(ts.BaseURL+path, contentType, body)
	if err != nil {
		ts.t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// ReadBody reads and returns the response body as a string
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return string(body)
}
