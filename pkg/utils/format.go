// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	longDateLayout  = "Monday, January 2, 2006"
	timestampLayout = "Monday, January 2, 2006 at 03:04 PM"
)

// FormatCurrency formats a dollar amount with two decimals.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatPercent formats a percentage with one decimal.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatLongDate formats a day key as "Saturday, June 1, 2024". Keys that do
// not parse are returned unchanged.
func FormatLongDate(dateKey string) string {
	t, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return dateKey
	}
	return t.Format(longDateLayout)
}

// FormatTimestamp formats a generation time for report headers.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// Capitalize upper-cases the first letter of a key such as a mood name.
func Capitalize(s string) string {
	return cases.Title(language.English).String(s)
}

// TruncateString truncates a string to max runes with ellipsis.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
