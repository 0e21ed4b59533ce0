package payroll

import (
	"strings"
	"time"
)

// Payroll periods travel over the wire as a month name plus a year. The name
// is normalized to a canonical month index here, at the boundary, so no
// locale-dependent parsing leaks into the core.

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseMonthName normalizes an English month name (full or 3-letter
// abbreviation, any case) to its 1-12 index.
func ParseMonthName(name string) (time.Month, error) {
	m, ok := monthsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrInvalidMonthName
	}
	return m, nil
}
