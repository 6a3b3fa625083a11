package sanitize

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"plain number", 1250.50, 1250.50},
		{"negative number", -42.0, -42.0},
		{"integer", 299, 299},
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"garbage string", "abc", 0},
		{"rupee with separators", "₹1,250.50", 1250.50},
		{"dollar sign", "$45000", 45000},
		{"euro with spaces", "€ 3 200", 3200},
		{"pound", "£82,000.00", 82000},
		{"plain numeric string", "8500", 8500},
		{"negative string", "-1,200.25", -1200.25},
		{"whitespace only", "   ", 0},
		{"json number", json.Number("125000"), 125000},
		{"bad json number", json.Number("12x"), 0},
		{"nan degrades to zero", math.NaN(), 0},
		{"inf degrades to zero", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amount(tt.input)
			if got != tt.expected {
				t.Errorf("Amount(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// Amount must be idempotent on values it has already produced
func TestAmountIdempotent(t *testing.T) {
	inputs := []any{"₹1,250.50", "abc", 42.5, nil}
	for _, in := range inputs {
		once := Amount(in)
		twice := Amount(once)
		if once != twice {
			t.Errorf("Amount not idempotent for %v: %v then %v", in, once, twice)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"iso fixed point", "2025-10-26", "2025-10-26"},
		{"day month year dashes", "26-10-2025", "2025-10-26"},
		{"day month year slashes", "26/10/2025", "2025-10-26"},
		{"padded iso", "  2025-01-02  ", "2025-01-02"},
		{"empty unchanged", "", ""},
		{"unknown format trimmed", " Oct 26 2025 ", "Oct 26 2025"},
		{"not a date", "tomorrow", "tomorrow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
