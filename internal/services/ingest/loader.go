package ingest

import (
	"bytes"
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"financeiq/internal/models"
	"financeiq/internal/services/storage"
)

// defaultDataset is the file the loader looks for in the data
// directory before falling back to the built-in sample batch.
const defaultDataset = "default-transactions.csv"

// DefaultTransactions is the sample batch served until an upload
// replaces it.
var DefaultTransactions = []models.Transaction{
	{ID: "1", Date: "2025-10-26", Description: "Client Payment - Acme Corp", Amount: 45000, Status: models.StatusCompleted},
	{ID: "2", Date: "2025-10-26", Description: "Software Subscription", Amount: 299, Status: models.StatusCompleted},
	{ID: "3", Date: "2025-10-25", Description: "Office Supplies", Amount: 1250, Status: models.StatusCompleted},
	{ID: "4", Date: "2025-10-25", Description: "Marketing Campaign", Amount: 8500, Status: models.StatusCompleted},
	{ID: "5", Date: "2025-10-24", Description: "Client Payment - TechStart", Amount: 125000, Status: models.StatusCompleted},
	{ID: "6", Date: "2025-10-24", Description: "Payroll Processing", Amount: 82000, Status: models.StatusPending},
	{ID: "7", Date: "2025-10-23", Description: "Cloud Services", Amount: 3200, Status: models.StatusCompleted},
	{ID: "8", Date: "2025-10-23", Description: "Consulting Services", Amount: 15000, Status: models.StatusCompleted},
	{ID: "9", Date: "2025-10-22", Description: "Equipment Purchase", Amount: 28500, Status: models.StatusCompleted},
	{ID: "10", Date: "2025-10-22", Description: "Travel Expenses", Amount: 4200, Status: models.StatusFailed},
}

// Loader sources the initial transaction batch from the data
// directory.
type Loader struct {
	store *storage.Store
}

// NewLoader creates a loader backed by the given store.
func NewLoader(store *storage.Store) *Loader {
	return &Loader{store: store}
}

// LoadDefault returns the startup batch. A default-transactions.csv
// file in the data directory takes precedence and goes through the
// same Normalize pass as an upload; otherwise a copy of the built-in
// sample batch is used.
func (l *Loader) LoadDefault() *models.Batch {
	if l.store != nil && l.store.Exists(defaultDataset) {
		data, err := l.store.ReadFile(defaultDataset)
		if err != nil {
			log.Printf("Warning: failed to read %s: %v", defaultDataset, err)
		} else if batch, err := l.fromCSV(data); err != nil {
			log.Printf("Warning: failed to parse %s: %v", defaultDataset, err)
		} else if batch.Len() > 0 {
			log.Printf("Loaded %d transactions from %s", batch.Len(), defaultDataset)
			return batch
		}
	}
	return models.NewBatch(DefaultTransactions).Copy()
}

// SaveDefault persists a batch as the startup dataset, in date order.
func (l *Loader) SaveDefault(batch *models.Batch) error {
	if l.store == nil {
		return os.ErrInvalid
	}
	return l.store.WriteFile(defaultDataset, marshalCSV(batch.SortByDate()), 0644)
}

func (l *Loader) fromCSV(data []byte) (*models.Batch, error) {
	records, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}
	result := Normalize(records)
	if result.Accepted < result.Supplied {
		log.Printf("Dropped %d records from %s", result.Supplied-result.Accepted, defaultDataset)
	}
	return result.Batch, nil
}

func marshalCSV(batch *models.Batch) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "date", "description", "amount", "status"})
	for _, txn := range batch.Transactions {
		w.Write([]string{
			txn.ID,
			txn.Date,
			txn.Description,
			strconv.FormatFloat(txn.Amount, 'f', -1, 64),
			txn.Status,
		})
	}
	w.Flush()
	return buf.Bytes()
}
