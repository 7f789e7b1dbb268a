package model

import (
	"fmt"
	"time"
)

// Legacy assignment records carry dates in either DD-MM-YYYY or YYYY-MM-DD
// form. Normalization happens once, here, rather than ad hoc at each
// comparison site.
const (
	dateLayoutISO    = "2006-01-02"
	dateLayoutLegacy = "02-01-2006"
	clockLayout      = "15:04"
)

// NormalizeDate parses a legacy date string in either supported layout and
// returns it in YYYY-MM-DD form.
func NormalizeDate(raw string) (string, error) {
	if t, err := time.Parse(dateLayoutISO, raw); err == nil {
		return t.Format(dateLayoutISO), nil
	}
	if t, err := time.Parse(dateLayoutLegacy, raw); err == nil {
		return t.Format(dateLayoutISO), nil
	}
	return "", fmt.Errorf("unrecognized date format %q", raw)
}

// MinutesOfDay converts a local HH:MM clock string to minutes since midnight.
func MinutesOfDay(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("unrecognized time format %q", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DayKey formats a UTC instant as its YYYY-MM-DD calendar date, the form
// legacy schedule entries are compared against.
func DayKey(t time.Time) string {
	return t.UTC().Format(dateLayoutISO)
}

// MinuteOfDay returns the minutes since midnight of a UTC instant.
func MinuteOfDay(t time.Time) int {
	u := t.UTC()
	return u.Hour()*60 + u.Minute()
}
