// Package dates parses the ISO-8601 due dates clients submit.
package dates

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned for values that are not ISO-8601 dates or datetimes
var ErrInvalidDate = errors.New("invalid ISO-8601 date")

const dateOnly = "2006-01-02"

// Accepted layouts, tried in order. Datetimes without an offset are read as UTC.
var layouts = []string{
	dateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Parse parses s and reports whether it carried only a calendar date
func Parse(s string) (t time.Time, dateOnlyValue bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, ErrInvalidDate
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout == dateOnly, nil
		}
	}
	return time.Time{}, false, ErrInvalidDate
}

// Valid reports whether s is an accepted ISO-8601 date or datetime
func Valid(s string) bool {
	_, _, err := Parse(s)
	return err == nil
}

// NotPast reports whether s is a valid date that is not before now.
// A date without a time is compared with the start of now's UTC day, so today is allowed.
func NotPast(s string, now time.Time) bool {
	t, isDate, err := Parse(s)
	if err != nil {
		return false
	}
	if isDate {
		today := now.UTC().Truncate(24 * time.Hour)
		return !t.Before(today)
	}
	return !t.Before(now)
}
