package main

import (
	"testing"
	"time"

	"financeiq/internal/config"
	"financeiq/internal/services/storage"
	"financeiq/internal/testutil"
)

// setupTestServer initializes dependencies against a throwaway data
// directory and returns a test server for the full router.
func setupTestServer(t *testing.T) *testutil.TestServer {
	t.Helper()

	cfg := &config.Config{
		ListenAddr:    ":0",
		Debug:         true,
		DataDirectory: t.TempDir(),
		ModelLatency:  10 * time.Millisecond,
	}

	store, err := storage.New(cfg.DataDirectory)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	setupDependencies(cfg, store)

	ts := testutil.NewTestServer(t, setupRouter())
	t.Cleanup(ts.Close)
	return ts
}

// TestHealthEndpoint tests the /api/health endpoint
func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	testutil.AssertResponse(t, ts.GET("/api/health")).
		StatusOK().
		ContentTypeJSON().
		Contains(`"status":"ok"`)
}

// TestVersionEndpoint tests the /api/version endpoint
func TestVersionEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	testutil.AssertResponse(t, ts.GET("/api/version")).
		StatusOK().
		ContentTypeJSON().
		Contains(`"version"`)
}

// TestFullAPISurface checks that every registered route responds
func TestFullAPISurface(t *testing.T) {
	ts := setupTestServer(t)

	paths := []string{
		"/api/transactions",
		"/api/kpis",
		"/api/anomalies",
		"/api/charts/category",
		"/api/charts/daily",
	}
	for _, path := range paths {
		testutil.AssertResponse(t, ts.GET(path)).
			StatusOK().
			ContentTypeJSON()
	}
}
