package util

import (
	"time"
)

// DateLayout is the wire format for prediction dates.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the current date in YYYY-MM-DD form.
func Today() string {
	return time.Now().Format(DateLayout)
}
