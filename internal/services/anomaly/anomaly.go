// Package anomaly flags transactions whose amounts sit far from the
// batch mean. Two thresholds are in play: a strict synchronous pass
// used for the dashboard badge, and a lenient pass run by the deferred
// model to surface borderline amounts.
package anomaly

import (
	"fmt"
	"math"
	"sync"
	"time"

	"financeiq/internal/models"
	"financeiq/internal/services/sanitize"
)

const (
	// StrictThreshold drives the synchronous dashboard scan.
	StrictThreshold = 2.0
	// LenientThreshold drives the deferred model scan.
	LenientThreshold = 1.5
	// DefaultModelLatency is the simulated model inference delay.
	DefaultModelLatency = 700 * time.Millisecond
)

// Detect scores every transaction against the batch mean and returns
// the set of IDs whose z-score exceeds the threshold. Batches with
// fewer than two transactions have no meaningful spread and yield an
// empty set. The standard deviation uses the population divisor.
func Detect(batch *models.Batch, zThreshold float64) map[string]bool {
	flagged := make(map[string]bool)
	n := batch.Len()
	if n < 2 {
		return flagged
	}

	amounts := batch.Amounts()
	var sum float64
	for i, raw := range amounts {
		amounts[i] = sanitize.Amount(raw)
		sum += amounts[i]
	}
	mean := sum / float64(n)

	var variance float64
	for _, amount := range amounts {
		diff := amount - mean
		variance += diff * diff
	}
	variance /= float64(n)
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return flagged
	}

	for i, id := range batch.IDs() {
		if math.Abs(amounts[i]-mean) > zThreshold*stddev {
			flagged[id] = true
		}
	}
	return flagged
}

// CountLabel renders the anomaly count for display.
func CountLabel(n int) string {
	if n == 1 {
		return "1 anomaly detected"
	}
	return fmt.Sprintf("%d anomalies detected", n)
}

// Model simulates a slow scoring model. Each submitted batch is scored
// at the lenient threshold after a fixed delay; submitting a new batch
// cancels any pending run, so only the latest batch ever publishes a
// result.
type Model struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	result map[string]bool
}

// NewModel creates a deferred model with the given inference delay.
// Zero means score immediately; negative delays fall back to
// DefaultModelLatency.
func NewModel(delay time.Duration) *Model {
	if delay < 0 {
		delay = DefaultModelLatency
	}
	return &Model{delay: delay}
}

// Submit schedules a lenient scan of the batch. A batch already
// waiting on the timer is discarded.
func (m *Model) Submit(batch *models.Batch) {
	snapshot := batch.Copy()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen

	m.timer = time.AfterFunc(m.delay, func() {
		flagged := Detect(snapshot, LenientThreshold)

		m.mu.Lock()
		defer m.mu.Unlock()
		// A later Submit superseded this run while it was scoring.
		if m.gen != gen {
			return
		}
		m.result = flagged
	})
}

// Result returns a copy of the most recently published scan, or an
// empty set when no scan has completed yet.
func (m *Model) Result() map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]bool, len(m.result))
	for id, v := range m.result {
		out[id] = v
	}
	return out
}
