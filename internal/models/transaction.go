package models

import "sort"

// TransactionType indicates whether a transaction is revenue or an expense
type TransactionType string

const (
	Revenue TransactionType = "revenue"
	Expense TransactionType = "expense"
)

// Transaction statuses (canonical lowercase form)
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Transaction is a single canonical financial record. Date is always an
// ISO-8601 calendar date (YYYY-MM-DD) and Amount is always finite; both are
// guaranteed by ingestion. Transactions are immutable within a batch.
type Transaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
}

// Classification is the derived revenue/expense label for a transaction.
// It is recomputed on demand from the description, never stored.
type Classification struct {
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
}

// KPISummary holds the dashboard totals, fully recomputed per aggregation call
type KPISummary struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalExpenses  float64 `json:"totalExpenses"`
	NetProfit      float64 `json:"netProfit"`
	ActiveAccounts int     `json:"activeAccounts"`
}

// Batch is the full set of transactions currently loaded. A new upload
// replaces the batch wholesale; there is no incremental merge.
type Batch struct {
	Transactions []Transaction
}

// NewBatch creates a Batch from a slice
func NewBatch(transactions []Transaction) *Batch {
	return &Batch{Transactions: transactions}
}

// Len returns the number of transactions
func (b *Batch) Len() int {
	return len(b.Transactions)
}

// Amounts returns the amount of every transaction in batch order
func (b *Batch) Amounts() []float64 {
	amounts := make([]float64, len(b.Transactions))
	for i, t := range b.Transactions {
		amounts[i] = t.Amount
	}
	return amounts
}

// IDs returns every transaction id in batch order
func (b *Batch) IDs() []string {
	ids := make([]string, len(b.Transactions))
	for i, t := range b.Transactions {
		ids[i] = t.ID
	}
	return ids
}

// SortByDate returns a copy sorted by date ascending. ISO dates order
// lexically, so no parsing is needed.
func (b *Batch) SortByDate() *Batch {
	sorted := make([]Transaction, len(b.Transactions))
	copy(sorted, b.Transactions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return &Batch{Transactions: sorted}
}

// GroupByDate groups transactions by their calendar date
func (b *Batch) GroupByDate() map[string]*Batch {
	result := make(map[string]*Batch)
	for _, t := range b.Transactions {
		if result[t.Date] == nil {
			result[t.Date] = &Batch{}
		}
		result[t.Date].Transactions = append(result[t.Date].Transactions, t)
	}
	return result
}

// Copy creates a shallow copy of the Batch
func (b *Batch) Copy() *Batch {
	copied := make([]Transaction, len(b.Transactions))
	copy(copied, b.Transactions)
	return &Batch{Transactions: copied}
}
