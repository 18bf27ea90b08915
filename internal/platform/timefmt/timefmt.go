// Package timefmt handles the legacy timestamp format the store carries.
// Timestamps are TEXT columns written either with a microsecond fraction or
// without one; both must parse, anything else is malformed data.
package timefmt

import (
	"errors"
	"time"
)

const (
	// LayoutFraction is what this system writes.
	LayoutFraction = "2006-01-02 15:04:05.000000"
	// LayoutPlain shows up in rows written by older tooling.
	LayoutPlain = "2006-01-02 15:04:05"
)

var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Parse tries the fractional layout first, then the plain one.
// The two-attempt order is part of the contract: a row that parses with
// neither is malformed and callers are expected to skip it, not abort.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(LayoutFraction, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(LayoutPlain, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrMalformedTimestamp
}

// Format renders t in the canonical stored layout.
func Format(t time.Time) string {
	return t.Format(LayoutFraction)
}

// Day renders just the calendar day of t, used for daily bucketing.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}
