package library

import (
	"database/sql"
	"fmt"
	"time"
)

// DateLayout is how calendar dates are stored in the database.
const DateLayout = "2006-01-02"

// DateOf drops the clock part of t and returns midnight UTC of the same
// calendar day as seen in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current local calendar date.
func Today() time.Time { return DateOf(time.Now()) }

// NewDate builds a calendar date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return DateOf(t).Format(DateLayout) }

// nullableDate converts an optional date into a bound parameter; nil becomes NULL.
func nullableDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatDate(*t), Valid: true}
}

// scanOptionalDate turns a nullable text column back into an optional date.
func scanOptionalDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// daysBetween counts whole calendar days. Unix seconds avoid the ~292 year
// ceiling of time.Duration.
func daysBetween(from, to time.Time) int {
	return int((DateOf(to).Unix() - DateOf(from).Unix()) / 86400)
}
