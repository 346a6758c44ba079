// Package scoresheet normalizes the extraction endpoint's free-form JSON
// output and applies the totals validation rule.
package scoresheet

import (
	"strconv"
	"strings"

	"github.com/22331a1268-rgb/read-sum-magic/internal/models"
)

// ParseScore coerces a display string to an integer for summing. Blanks,
// dashes, and anything else that fails to parse count as 0. Fractional
// values truncate toward zero.
func ParseScore(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// SumRowTotals sums the integer-parsed total of each row.
func SumRowTotals(rows []models.TableRow) int {
	sum := 0
	for _, row := range rows {
		sum += ParseScore(row.Total)
	}
	return sum
}

// Validate computes the checksum over the table rows and compares it to the
// bubble digits by exact integer equality. The written total is carried
// through for display only; it never affects IsValid.
func Validate(rows []models.TableRow, written, bubbleDigits int) models.TotalsSummary {
	calculated := SumRowTotals(rows)
	return models.TotalsSummary{
		Calculated:   calculated,
		Written:      written,
		BubbleDigits: bubbleDigits,
		IsValid:      calculated == bubbleDigits,
	}
}
