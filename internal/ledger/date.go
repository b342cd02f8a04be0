package ledger

import (
	"fmt"
	"time"
)

// ISODate is the wire format for calendar dates exchanged with the store.
const ISODate = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD string into a calendar date anchored at
// midday local time. Anchoring at noon keeps the date stable across timezone
// rollovers when the value round-trips through UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, s, time.Local)
	if err != nil {
		return time.Time{}, NewValidationError("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Midday(t), nil
}

// FormatDate renders a date in the ISO wire format.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// Midday normalizes any timestamp to 12:00 local on the same calendar day.
func Midday(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

// SameMonth reports whether t falls in the given calendar month and year.
func SameMonth(t time.Time, month time.Month, year int) bool {
	t = Midday(t)
	return t.Year() == year && t.Month() == month
}

// AddMonths adds n calendar months to a date, clamping the day-of-month to the
// last day of the target month instead of letting it overflow. Jan 31 + 1
// month is Feb 28 (or 29), never Mar 2/3.
func AddMonths(t time.Time, n int) time.Time {
	t = Midday(t)
	year, month, day := t.Date()

	// First day of the target month, then clamp the day.
	first := time.Date(year, month, 1, 12, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	last := daysIn(first.Month(), first.Year())
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 12, 0, 0, 0, t.Location())
}

func daysIn(m time.Month, year int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, m+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// MonthIndex returns the zero-based month slot for matrix rows.
func MonthIndex(t time.Time) int {
	return int(t.Month()) - 1
}

func mustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("ledger: bad date literal %q", s))
	}
	return t
}
