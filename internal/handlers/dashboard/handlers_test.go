package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"financeiq/internal/services/anomaly"
	"financeiq/internal/services/ingest"
	"financeiq/internal/services/kpi"
	"financeiq/internal/services/storage"
	"financeiq/internal/testutil"
)

func newDashboardServer(t *testing.T) *testutil.TestServer {
	t.Helper()

	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New failed: %v", err)
	}

	Initialize(ingest.NewLoader(store), kpi.New(), anomaly.NewModel(10*time.Millisecond))

	r := chi.NewRouter()
	RegisterRoutes(r)

	ts := testutil.NewTestServer(t, r)
	t.Cleanup(ts.Close)
	return ts
}

func TestTransactionsEndpoint(t *testing.T) {
	ts := newDashboardServer(t)

	var payload struct {
		Transactions []map[string]any `json:"transactions"`
		Count        int              `json:"count"`
	}
	testutil.AssertResponse(t, ts.GET("/api/transactions")).
		StatusOK().
		ContentTypeJSON().
		JSON(&payload)

	if payload.Count != 10 {
		t.Errorf("count = %d, want the 10 sample transactions", payload.Count)
	}
	if len(payload.Transactions) != payload.Count {
		t.Errorf("transactions length %d does not match count %d", len(payload.Transactions), payload.Count)
	}
}

func TestKPIsEndpoint(t *testing.T) {
	ts := newDashboardServer(t)

	var summary struct {
		TotalRevenue   float64 `json:"totalRevenue"`
		TotalExpenses  float64 `json:"totalExpenses"`
		NetProfit      float64 `json:"netProfit"`
		ActiveAccounts int     `json:"activeAccounts"`
	}
	testutil.AssertResponse(t, ts.GET("/api/kpis")).
		StatusOK().
		ContentTypeJSON().
		JSON(&summary)

	if summary.TotalRevenue <= 0 || summary.TotalExpenses <= 0 {
		t.Errorf("sample batch produced empty totals: %+v", summary)
	}
	if summary.NetProfit != summary.TotalRevenue-summary.TotalExpenses {
		t.Errorf("netProfit %v is not revenue minus expenses", summary.NetProfit)
	}
	if summary.ActiveAccounts == 0 {
		t.Error("activeAccounts should be nonzero for the sample batch")
	}
}

func TestUploadReplacesBatch(t *testing.T) {
	ts := newDashboardServer(t)

	upload := `[
		{"id": "u1", "date": "2025-11-01", "description": "Invoice paid", "amount": 900},
		{"id": "u2", "date": "2025-11-02", "description": "Travel Expenses", "amount": 120},
		{"date": "garbage", "description": "dropped", "amount": 5}
	]`
	testutil.AssertResponse(t, ts.POST("/api/transactions/upload", "application/json", strings.NewReader(upload))).
		StatusOK().
		Contains("accepted 2 of 3 records")

	var payload struct {
		Count int `json:"count"`
	}
	testutil.AssertResponse(t, ts.GET("/api/transactions")).StatusOK().JSON(&payload)
	if payload.Count != 2 {
		t.Errorf("count = %d after upload, want 2", payload.Count)
	}
}

func TestUploadCSV(t *testing.T) {
	ts := newDashboardServer(t)

	csvBody := "date,description,amount\n2025-11-03,Consulting retainer,5000\n"
	testutil.AssertResponse(t, ts.POST("/api/transactions/upload", "text/csv", strings.NewReader(csvBody))).
		StatusOK().
		Contains("accepted 1 of 1 records")
}

func TestUploadRejectsUnusablePayloads(t *testing.T) {
	ts := newDashboardServer(t)

	t.Run("empty body", func(t *testing.T) {
		testutil.AssertResponse(t, ts.POST("/api/transactions/upload", "application/json", strings.NewReader(""))).
			Status(http.StatusBadRequest)
	})

	t.Run("all records invalid", func(t *testing.T) {
		body := `[{"date": "never", "amount": 1}]`
		testutil.AssertResponse(t, ts.POST("/api/transactions/upload", "application/json", strings.NewReader(body))).
			Status(http.StatusBadRequest).
			Contains("no usable records")
	})

	t.Run("oversized body", func(t *testing.T) {
		// A valid CSV that crosses the 10 MB cap must be rejected
		// whole, not truncated into a partial ingest.
		var sb strings.Builder
		sb.WriteString("date,description,amount\n")
		row := "2025-11-03,Consulting retainer,5000\n"
		for sb.Len() <= maxUploadBytes {
			sb.WriteString(row)
		}
		testutil.AssertResponse(t, ts.POST("/api/transactions/upload", "text/csv", strings.NewReader(sb.String()))).
			Status(http.StatusRequestEntityTooLarge)
	})

	// The working batch must be untouched by rejected uploads.
	var payload struct {
		Count int `json:"count"`
	}
	testutil.AssertResponse(t, ts.GET("/api/transactions")).StatusOK().JSON(&payload)
	if payload.Count != 10 {
		t.Errorf("count = %d after rejected uploads, want 10", payload.Count)
	}
}

func TestAnomaliesEndpoint(t *testing.T) {
	ts := newDashboardServer(t)

	// One extreme outlier among uniform amounts.
	upload := `[
		{"id": "n1", "date": "2025-11-01", "description": "a", "amount": 100},
		{"id": "n2", "date": "2025-11-01", "description": "b", "amount": 100},
		{"id": "n3", "date": "2025-11-01", "description": "c", "amount": 100},
		{"id": "n4", "date": "2025-11-01", "description": "d", "amount": 100},
		{"id": "n5", "date": "2025-11-01", "description": "e", "amount": 100},
		{"id": "big", "date": "2025-11-02", "description": "f", "amount": 100000}
	]`
	testutil.AssertResponse(t, ts.POST("/api/transactions/upload", "application/json", strings.NewReader(upload))).
		StatusOK()

	var payload struct {
		Anomalies []string `json:"anomalies"`
		Label     string   `json:"label"`
		Model     struct {
			Anomalies []string `json:"anomalies"`
			Label     string   `json:"label"`
		} `json:"model"`
	}
	testutil.AssertResponse(t, ts.GET("/api/anomalies")).StatusOK().JSON(&payload)

	if len(payload.Anomalies) != 1 || payload.Anomalies[0] != "big" {
		t.Errorf("strict anomalies = %v, want [big]", payload.Anomalies)
	}
	if payload.Label != "1 anomaly detected" {
		t.Errorf("label = %q", payload.Label)
	}

	// The deferred model publishes after its delay.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		testutil.AssertResponse(t, ts.GET("/api/anomalies")).StatusOK().JSON(&payload)
		if len(payload.Model.Anomalies) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(payload.Model.Anomalies) != 1 || payload.Model.Anomalies[0] != "big" {
		t.Errorf("deferred anomalies = %v, want [big]", payload.Model.Anomalies)
	}
}

func TestChartEndpoints(t *testing.T) {
	ts := newDashboardServer(t)

	t.Run("category", func(t *testing.T) {
		var payload struct {
			Categories []struct {
				Category string  `json:"category"`
				Total    float64 `json:"total"`
			} `json:"categories"`
		}
		testutil.AssertResponse(t, ts.GET("/api/charts/category")).StatusOK().JSON(&payload)

		if len(payload.Categories) == 0 {
			t.Fatal("no categories in sample batch breakdown")
		}
		for i := 1; i < len(payload.Categories); i++ {
			if payload.Categories[i].Total > payload.Categories[i-1].Total {
				t.Errorf("categories not sorted by total descending: %+v", payload.Categories)
				break
			}
		}
	})

	t.Run("daily", func(t *testing.T) {
		body := testutil.AssertResponse(t, ts.GET("/api/charts/daily")).StatusOK().Body()
		var payload struct {
			Series []struct {
				Date     string  `json:"date"`
				Revenue  float64 `json:"revenue"`
				Expenses float64 `json:"expenses"`
			} `json:"series"`
		}
		if err := json.Unmarshal([]byte(body), &payload); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(payload.Series) == 0 {
			t.Fatal("empty daily series for sample batch")
		}
		for i := 1; i < len(payload.Series); i++ {
			if payload.Series[i].Date < payload.Series[i-1].Date {
				t.Errorf("series not sorted by date: %+v", payload.Series)
				break
			}
		}
	})
}
