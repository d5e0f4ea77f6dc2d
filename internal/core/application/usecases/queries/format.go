// Package queries contains read-only report operations over the database.
// Implements the query side of the CQRS architecture: each report is a query
// struct plus a handler over *gorm.DB that scans raw rows and aggregates in
// Go, keeping the SQL portable across postgres and sqlite.
package queries

import (
	"fmt"
	"strings"
)

// formatPercent renders a 0..1 rate as a percentage string with one decimal,
// e.g. 0.875 -> "87.5%".
func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// formatMoney renders an amount as a dollar string with thousands separators,
// e.g. 1234567.5 -> "$1,234,567.50".
func formatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart, fracPart, _ := strings.Cut(whole, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, b.String(), fracPart)
}

// formatDays renders an average day count, e.g. 12.25 -> "12.3 days".
func formatDays(days float64) string {
	return fmt.Sprintf("%.1f days", days)
}
