// Package sanitize normalizes raw amount and date values from uploaded
// financial records. Both functions are total: any input yields a usable
// value, never an error.
package sanitize

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyDate = regexp.MustCompile(`^(\d{2})[-/](\d{2})[-/](\d{4})$`)

	// Currency symbols, thousands separators and whitespace stripped from
	// amount strings before parsing
	amountNoise = strings.NewReplacer(
		"₹", "", "$", "", "€", "", "£", "",
		",", "", " ", "", "\t", "",
	)
)

// Amount converts an arbitrary raw value into a finite number. Numeric input
// passes through as-is, empty or unparseable input degrades to 0.
func Amount(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case string:
		return parseAmountString(v)
	default:
		return parseAmountString(fmt.Sprint(raw))
	}
}

func parseAmountString(s string) float64 {
	s = amountNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(parsed)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NormalizeDate rewrites common date conventions to ISO (YYYY-MM-DD).
// ISO input is a fixed point; DD-MM-YYYY and DD/MM/YYYY are rewritten;
// anything else is returned trimmed, for downstream validation to reject.
func NormalizeDate(raw string) string {
	if raw == "" {
		return raw
	}
	trimmed := strings.TrimSpace(raw)
	if isoDate.MatchString(trimmed) {
		return trimmed
	}
	if m := dmyDate.FindStringSubmatch(trimmed); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	return trimmed
}
