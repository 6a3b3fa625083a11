package models

import (
	"reflect"
	"testing"
)

func sampleBatch() *Batch {
	return NewBatch([]Transaction{
		{ID: "b", Date: "2025-10-26", Description: "second", Amount: 2},
		{ID: "a", Date: "2025-10-25", Description: "first", Amount: 1},
		{ID: "c", Date: "2025-10-26", Description: "third", Amount: 3},
	})
}

func TestBatchSortByDate(t *testing.T) {
	batch := sampleBatch()
	sorted := batch.SortByDate()

	if got := sorted.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("sorted IDs = %v, want [a b c]", got)
	}
	// Sorting returns a copy; the original order is untouched.
	if got := batch.IDs(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("original batch mutated: %v", got)
	}
}

func TestBatchGroupByDate(t *testing.T) {
	groups := sampleBatch().GroupByDate()

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups["2025-10-26"].Len() != 2 {
		t.Errorf("2025-10-26 has %d transactions, want 2", groups["2025-10-26"].Len())
	}
	if groups["2025-10-25"].Len() != 1 {
		t.Errorf("2025-10-25 has %d transactions, want 1", groups["2025-10-25"].Len())
	}
}

func TestBatchCopy(t *testing.T) {
	batch := sampleBatch()
	copied := batch.Copy()

	copied.Transactions[0].Amount = 999
	if batch.Transactions[0].Amount == 999 {
		t.Error("Copy shares backing storage with the original")
	}
}

func TestBatchAmounts(t *testing.T) {
	if got := sampleBatch().Amounts(); !reflect.DeepEqual(got, []float64{2, 1, 3}) {
		t.Errorf("Amounts() = %v", got)
	}
}
