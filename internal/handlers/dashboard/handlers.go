// Package dashboard serves the transaction dataset and the analytics
// derived from it. The current batch is held in memory; uploading a
// new export replaces it wholesale and resubmits it to the deferred
// anomaly model.
package dashboard

import (
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	httpx "financeiq/internal/http"
	"financeiq/internal/models"
	"financeiq/internal/services/anomaly"
	"financeiq/internal/services/ingest"
	"financeiq/internal/services/kpi"
)

// maxUploadBytes caps upload payloads at 10 MB.
const maxUploadBytes = 10 << 20

var (
	loader  *ingest.Loader
	metrics *kpi.Service
	model   *anomaly.Model

	mu      sync.RWMutex
	current *models.Batch
)

// Initialize sets up the dashboard package with required dependencies
// and loads the startup batch.
func Initialize(l *ingest.Loader, m *kpi.Service, am *anomaly.Model) {
	loader = l
	metrics = m
	model = am

	batch := loader.LoadDefault()
	mu.Lock()
	current = batch
	mu.Unlock()
	model.Submit(batch)
}

// RegisterRoutes registers all dashboard routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/transactions", handleTransactions)
	r.Post("/api/transactions/upload", handleUpload)
	r.Get("/api/kpis", handleKPIs)
	r.Get("/api/anomalies", handleAnomalies)
	r.Get("/api/charts/category", handleCategoryChart)
	r.Get("/api/charts/daily", handleDailyChart)
}

func currentBatch() *models.Batch {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func handleTransactions(w http.ResponseWriter, r *http.Request) {
	batch := currentBatch()
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"transactions": batch.Transactions,
		"count":        batch.Len(),
	})
}

func handleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		httpx.ErrorResponse(w, "failed to read upload", http.StatusBadRequest)
		return
	}
	if len(body) > maxUploadBytes {
		httpx.ErrorResponse(w, "upload exceeds 10 MB limit", http.StatusRequestEntityTooLarge)
		return
	}
	if len(body) == 0 {
		httpx.ErrorResponse(w, "empty upload", http.StatusBadRequest)
		return
	}

	records, err := ingest.ParseUpload(body)
	if err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := ingest.Normalize(records)
	if result.Accepted == 0 {
		httpx.ErrorResponse(w, "no usable records in upload", http.StatusBadRequest)
		return
	}

	// The upload replaces the working batch entirely.
	mu.Lock()
	current = result.Batch
	mu.Unlock()
	model.Submit(result.Batch)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  result.Message(),
		"accepted": result.Accepted,
		"supplied": result.Supplied,
	})
}

func handleKPIs(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, metrics.Aggregate(currentBatch()))
}

func handleAnomalies(w http.ResponseWriter, r *http.Request) {
	batch := currentBatch()

	strict := anomaly.Detect(batch, anomaly.StrictThreshold)
	strictIDs := sortedIDs(strict)

	deferred := model.Result()
	deferredIDs := sortedIDs(deferred)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"anomalies": strictIDs,
		"label":     anomaly.CountLabel(len(strictIDs)),
		"model": map[string]any{
			"anomalies": deferredIDs,
			"label":     anomaly.CountLabel(len(deferredIDs)),
		},
	})
}

func handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	breakdown := metrics.CategoryBreakdown(currentBatch())

	type slice struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
	}
	slices := make([]slice, 0, len(breakdown))
	for category, total := range breakdown {
		slices = append(slices, slice{Category: category, Total: total})
	}
	sort.Slice(slices, func(i, j int) bool { return slices[i].Total > slices[j].Total })

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"categories": slices})
}

func handleDailyChart(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"series": metrics.DailySeries(currentBatch()),
	})
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
