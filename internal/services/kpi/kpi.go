// Package kpi aggregates a transaction batch into the dashboard
// headline figures and chart series.
package kpi

import (
	"sort"
	"strings"

	"financeiq/internal/models"
	"financeiq/internal/services/classifier"
	"financeiq/internal/services/sanitize"
)

// Service computes summary figures over transaction batches.
type Service struct{}

// New creates a new KPI service.
func New() *Service {
	return &Service{}
}

// Aggregate walks a batch once and returns the four headline figures.
// Amounts are re-sanitized so a batch built from raw records and a
// batch built in code aggregate identically.
func (s *Service) Aggregate(batch *models.Batch) models.KPISummary {
	var summary models.KPISummary
	accounts := make(map[string]struct{})

	for _, txn := range batch.Transactions {
		amount := sanitize.Amount(txn.Amount)
		cls := classifier.Classify(txn.Description)

		switch cls.Type {
		case models.Revenue:
			summary.TotalRevenue += amount
		case models.Expense:
			summary.TotalExpenses += amount
		}

		if token := AccountToken(txn.Description); token != "" {
			accounts[token] = struct{}{}
		}
	}

	summary.NetProfit = summary.TotalRevenue - summary.TotalExpenses

	// A batch of transactions with blank descriptions still represents
	// activity, so fall back to the transaction count.
	summary.ActiveAccounts = len(accounts)
	if summary.ActiveAccounts == 0 {
		summary.ActiveAccounts = batch.Len()
	}

	return summary
}

// AccountToken extracts the counterparty token from a description.
// Descriptions shaped "Client Payment - Acme Corp" yield the segment
// after the last hyphen; anything else yields the whole trimmed text.
func AccountToken(description string) string {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndex(trimmed, "-"); idx >= 0 {
		return strings.TrimSpace(trimmed[idx+1:])
	}
	return trimmed
}

// CategoryBreakdown sums expense amounts per category. Revenue
// transactions are excluded.
func (s *Service) CategoryBreakdown(batch *models.Batch) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, txn := range batch.Transactions {
		cls := classifier.Classify(txn.Description)
		if cls.Type != models.Expense {
			continue
		}
		breakdown[cls.Category] += sanitize.Amount(txn.Amount)
	}
	return breakdown
}

// DailyPoint is one day on the revenue/expense trend chart.
type DailyPoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// DailySeries folds the batch into per-day revenue and expense totals,
// sorted by date ascending.
func (s *Service) DailySeries(batch *models.Batch) []DailyPoint {
	groups := batch.GroupByDate()

	dates := make([]string, 0, len(groups))
	for date := range groups {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]DailyPoint, 0, len(dates))
	for _, date := range dates {
		point := DailyPoint{Date: date}
		for _, txn := range groups[date].Transactions {
			amount := sanitize.Amount(txn.Amount)
			if classifier.Classify(txn.Description).Type == models.Revenue {
				point.Revenue += amount
			} else {
				point.Expenses += amount
			}
		}
		series = append(series, point)
	}
	return series
}
