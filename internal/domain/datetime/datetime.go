// Package datetime holds the single wire format used for every entity
// timestamp and the conversions between it and time.Time.
package datetime

import (
	"strings"
	"time"
)

// DateTimeFormat is the canonical wire layout for entity timestamps.
// Parsing also accepts fractional seconds.
const DateTimeFormat = time.RFC3339

// Format renders t in UTC using DateTimeFormat.
func Format(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

// Parse reads a wire timestamp.
func Parse(s string) (time.Time, error) {
	return time.Parse(DateTimeFormat, strings.TrimSpace(s))
}

// ToWire converts an optional in-memory timestamp. Absent stays absent.
func ToWire(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := Format(*t)
	return &s
}

// FromWire converts an optional wire timestamp. Absent, empty and malformed
// values all come back as nil.
func FromWire(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := Parse(*s)
	if err != nil {
		return nil
	}
	return &t
}
