// Package dates holds the date-only arithmetic the compliance engine is
// built on. Every helper normalizes to local midnight first so that whole-day
// comparisons never depend on time-of-day.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateOnly truncates a timestamp to midnight in its own location. Zero values
// pass through unchanged.
func DateOnly(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// DaysBetween returns the signed number of whole days from a to b, positive
// when b is after a. Both calendar days are anchored to UTC midnight before
// subtracting so mixed locations and DST transitions cannot skew the count.
func DaysBetween(a time.Time, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	utcA := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	utcB := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(utcB.Sub(utcA).Hours() / 24)
}

// AddDays returns the date n whole days after the (normalized) input.
func AddDays(value time.Time, n int) time.Time {
	if value.IsZero() {
		return value
	}
	return DateOnly(value).AddDate(0, 0, n)
}

// OrdinalSuffix returns "st", "nd", "rd", or "th" for display labels such as
// "3rd 60-Day".
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FormatDate renders a date as M/D/YYYY. Absent dates render as "N/A" rather
// than erroring; callers display the result as-is.
func FormatDate(value time.Time) string {
	if value.IsZero() {
		return "N/A"
	}
	return value.Format("1/2/2006")
}

// ParseDate accepts the date spellings that show up in exported rosters.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	layouts := []string{
		"2006-01-02",
		"2006/01/02",
		"1/2/2006",
		"01/02/2006",
		"01-02-2006",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", value)
}
