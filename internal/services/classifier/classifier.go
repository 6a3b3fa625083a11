// Package classifier assigns a transaction type and category from its
// description using an ordered keyword rule table. The first matching
// rule wins, so rule order is part of the contract.
package classifier

import (
	"strings"

	"financeiq/internal/models"
)

// RevenueKeywords mark a transaction as revenue. Revenue is checked
// before any expense rule.
var RevenueKeywords = []string{"payment", "invoice", "paid", "income", "deposit", "receipt"}

// CategoryRule groups the keywords that map a description to one
// expense category.
type CategoryRule struct {
	Category string
	Keywords []string
}

// ExpenseRules are evaluated in order after the revenue check.
var ExpenseRules = []CategoryRule{
	{"Salaries", []string{"salary", "payroll", "salaries"}},
	{"Marketing", []string{"marketing", "ad", "campaign"}},
	{"Travel", []string{"travel", "flight", "taxi", "uber"}},
	{"Operations", []string{"cloud", "services", "hosting", "aws", "azure"}},
	{"Consulting", []string{"consult", "consulting"}},
	{"Equipment", []string{"equipment", "purchase", "hardware"}},
	{"R&D", []string{"r&d", "research"}},
}

// DefaultCategory is used when no expense rule matches.
const DefaultCategory = "Other"

// Classify inspects a description and returns its type and category.
// Revenue transactions always receive the "Revenue" category.
func Classify(description string) models.Classification {
	lower := strings.ToLower(description)

	for _, keyword := range RevenueKeywords {
		if strings.Contains(lower, keyword) {
			return models.Classification{Type: models.Revenue, Category: "Revenue"}
		}
	}

	for _, rule := range ExpenseRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return models.Classification{Type: models.Expense, Category: rule.Category}
			}
		}
	}

	return models.Classification{Type: models.Expense, Category: DefaultCategory}
}
