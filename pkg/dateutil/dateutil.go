package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// MonthYearLayout is the textual form of a competence month, e.g. "03/2020".
const MonthYearLayout = "01/2006"

// YearMonth identifies a calendar month without a day component.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth builds a YearMonth, normalizing out-of-range months (13/2019 -> 01/2020).
func NewYearMonth(year int, month time.Month) YearMonth {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseMonthYear parses a "MM/YYYY" string. Month must be two digits and year four.
func ParseMonthYear(value string) (YearMonth, error) {
	s := strings.TrimSpace(value)
	t, err := time.Parse(MonthYearLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month/year %q: expected MM/YYYY", value)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the month as "MM/YYYY".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%02d/%04d", int(ym.Month), ym.Year)
}

// Before reports whether ym is chronologically earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// After reports whether ym is chronologically later than other.
func (ym YearMonth) After(other YearMonth) bool {
	return other.Before(ym)
}

// Next returns the following month.
func (ym YearMonth) Next() YearMonth {
	return NewYearMonth(ym.Year, ym.Month+1)
}

// Ordered returns the two months with the earlier one first.
func Ordered(a, b YearMonth) (YearMonth, YearMonth) {
	if a.After(b) {
		return b, a
	}
	return a, b
}

// MonthRange enumerates every month from start to end inclusive.
// It returns nil when start is after end.
func MonthRange(start, end YearMonth) []YearMonth {
	if start.After(end) {
		return nil
	}
	months := make([]YearMonth, 0, MonthsBetween(start, end))
	for current := start; !current.After(end); current = current.Next() {
		months = append(months, current)
	}
	return months
}

// MonthsBetween counts the months from start to end inclusive, or zero when start is after end.
func MonthsBetween(start, end YearMonth) int {
	n := (end.Year-start.Year)*12 + int(end.Month-start.Month) + 1
	if n < 0 {
		return 0
	}
	return n
}
