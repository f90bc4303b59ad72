package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CanonicalDateLayout is the persisted form of a Date (YYYY-MM-DD).
const CanonicalDateLayout = "2006-01-02"

// Date is a calendar day without time or zone. The zero value is not a valid date.
type Date struct {
	Day   int
	Month int
	Year  int
}

// SortKey returns year*10000 + month*100 + day. Ordering by SortKey is
// chronological ordering; equal keys are equal dates.
func (d Date) SortKey() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText encodes the date in canonical form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a canonical date.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DateFromTime takes the calendar day of t in its own location.
func DateFromTime(t time.Time) Date {
	return Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// DateRules bounds the years accepted from user input.
type DateRules struct {
	MinYear int
	MaxYear int
}

// DefaultDateRules accepts years from 1900 through next year.
func DefaultDateRules(now time.Time) DateRules {
	return DateRules{MinYear: 1900, MaxYear: now.Year() + 1}
}

// ParseFields builds a Date from user-entered day, month and year strings.
// All problems are collected into a single ValidationError.
func ParseFields(day, month, year string, rules DateRules) (Date, error) {
	var errs []FieldError

	d, dErr := strconv.Atoi(strings.TrimSpace(day))
	if dErr != nil {
		errs = append(errs, FieldError{Field: "day", Message: "must be a number"})
	}
	m, mErr := strconv.Atoi(strings.TrimSpace(month))
	if mErr != nil {
		errs = append(errs, FieldError{Field: "month", Message: "must be a number"})
	}
	y, yErr := strconv.Atoi(strings.TrimSpace(year))
	if yErr != nil {
		errs = append(errs, FieldError{Field: "year", Message: "must be a number"})
	}
	if len(errs) > 0 {
		return Date{}, NewValidationErrors(errs)
	}

	date := Date{Day: d, Month: m, Year: y}
	if err := rules.Check(date); err != nil {
		return Date{}, err
	}
	return date, nil
}

// Check validates the calendar fields of d and the year against the rules.
func (r DateRules) Check(d Date) error {
	errs := calendarErrors(d)
	if d.Year < r.MinYear || d.Year > r.MaxYear {
		errs = append(errs, FieldError{
			Field:   "year",
			Message: fmt.Sprintf("must be between %d and %d", r.MinYear, r.MaxYear),
		})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func calendarErrors(d Date) []FieldError {
	var errs []FieldError
	if d.Month < 1 || d.Month > 12 {
		errs = append(errs, FieldError{Field: "month", Message: "must be between 1 and 12"})
		return errs
	}
	if n := DaysInMonth(d.Month, d.Year); d.Day < 1 || d.Day > n {
		errs = append(errs, FieldError{Field: "day", Message: fmt.Sprintf("must be between 1 and %d", n)})
	}
	return errs
}

// DaysInMonth returns the number of days in month (1-12) of year.
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseDate parses the canonical YYYY-MM-DD form. Year plausibility is not
// checked: persisted dates were validated when they were written.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, NewValidationError("date", fmt.Sprintf("%q is not in YYYY-MM-DD form", s))
	}

	var fields [3]int
	for i, p := range parts {
		if !isDigits(p) {
			return Date{}, NewValidationError("date", fmt.Sprintf("%q is not in YYYY-MM-DD form", s))
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, NewValidationError("date", fmt.Sprintf("%q is not in YYYY-MM-DD form", s))
		}
		fields[i] = n
	}

	d := Date{Year: fields[0], Month: fields[1], Day: fields[2]}
	if errs := calendarErrors(d); len(errs) > 0 {
		return Date{}, NewValidationErrors(errs)
	}
	return d, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseDates parses canonical strings, returning the valid dates and the
// strings that could not be parsed.
func ParseDates(raw []string) (dates []Date, invalid []string) {
	dates = make([]Date, 0, len(raw))
	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		dates = append(dates, d)
	}
	return dates, invalid
}

// DateStyle selects a display format.
type DateStyle string

const (
	DateStyleShort     DateStyle = "short"      // 3/15/2021
	DateStyleMonthYear DateStyle = "month-year" // March 2021
	DateStyleFull      DateStyle = "full"       // March 15, 2021
)

// Format renders d for display. Unknown styles fall back to the canonical form.
func (d Date) Format(style DateStyle) string {
	switch style {
	case DateStyleShort:
		return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
	case DateStyleMonthYear:
		return fmt.Sprintf("%s %d", MonthName(d.Month), d.Year)
	case DateStyleFull:
		return fmt.Sprintf("%s %d, %d", MonthName(d.Month), d.Day, d.Year)
	}
	return d.String()
}

// CompareDates returns -1, 0 or 1 by sort key.
func CompareDates(a, b Date) int {
	return cmp.Compare(a.SortKey(), b.SortKey())
}

// UniqueDates returns a sorted copy of dates with duplicates removed.
func UniqueDates(dates []Date) []Date {
	out := slices.Clone(dates)
	slices.SortFunc(out, CompareDates)
	return slices.Compact(out)
}
