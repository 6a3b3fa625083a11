// Package ingest turns uploaded CSV or JSON exports into canonical
// transaction batches. Records missing a parseable date are dropped;
// everything else is repaired with sensible defaults so a partially
// messy export still loads.
package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"financeiq/internal/models"
	"financeiq/internal/services/sanitize"
)

// RawRecord is one row of an export before normalization. Keys are
// lowercase field names.
type RawRecord map[string]any

// Result describes the outcome of normalizing a set of raw records.
type Result struct {
	Batch    *models.Batch
	Accepted int
	Supplied int
}

// Message renders the acceptance summary for display.
func (r *Result) Message() string {
	return fmt.Sprintf("accepted %d of %d records", r.Accepted, r.Supplied)
}

// Normalize converts raw records into a canonical batch. Dates are
// normalized and then validated as ISO; records whose date cannot be
// made canonical are dropped. Amounts fall back from "amount" to
// "value", descriptions default to "Imported", missing IDs are
// generated, and statuses are lowercased with "completed" as default.
func Normalize(records []RawRecord) *Result {
	accepted := make([]models.Transaction, 0, len(records))

	for _, rec := range records {
		date := sanitize.NormalizeDate(stringField(rec, "date"))
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}

		amount, ok := rec["amount"]
		if !ok || isEmptyValue(amount) {
			amount = rec["value"]
		}

		description := stringField(rec, "description")
		if description == "" {
			description = stringField(rec, "desc")
		}
		if description == "" {
			description = "Imported"
		}

		id := stringField(rec, "id")
		if id == "" {
			id = uuid.NewString()
		}

		status := strings.ToLower(stringField(rec, "status"))
		if status == "" {
			status = models.StatusCompleted
		}

		accepted = append(accepted, models.Transaction{
			ID:          id,
			Date:        date,
			Description: description,
			Amount:      sanitize.Amount(amount),
			Status:      status,
		})
	}

	return &Result{
		Batch:    models.NewBatch(accepted),
		Accepted: len(accepted),
		Supplied: len(records),
	}
}

// ParseUpload decodes an uploaded payload. JSON is tried first, then
// CSV, so both export shapes work without a content-type hint.
func ParseUpload(data []byte) ([]RawRecord, error) {
	if records, err := ParseJSON(data); err == nil {
		return records, nil
	}
	records, err := ParseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("payload is neither valid JSON nor CSV: %w", err)
	}
	return records, nil
}

// ParseJSON decodes a JSON array of objects into raw records. Numbers
// are kept as json.Number so amounts survive undistorted.
func ParseJSON(data []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("error decoding JSON: %w", err)
	}

	records := make([]RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(RawRecord, len(row))
		for k, v := range row {
			rec[strings.ToLower(strings.TrimSpace(k))] = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseCSV decodes a CSV export with a header row into raw records.
// Header names are lowercased; rows with a different field count than
// the header are tolerated.
func ParseCSV(data []byte) ([]RawRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading row: %w", err)
		}

		rec := make(RawRecord, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func stringField(rec RawRecord, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
