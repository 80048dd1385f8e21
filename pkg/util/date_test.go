package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2026-02-15")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2026 || got.Month() != time.February || got.Day() != 15 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "15-02-2026", "2026-13-01", "2026-02-30", "tomorrow"} {
		if _, ok := ParseDate(s); ok {
			t.Fatalf("expected parse failure for %q", s)
		}
	}
}

func TestToday(t *testing.T) {
	got, ok := ParseDate(Today())
	if !ok {
		t.Fatalf("Today() not parsable")
	}
	now := time.Now()
	if got.Year() != now.Year() || got.YearDay() != now.YearDay() {
		t.Fatalf("unexpected today %v", got)
	}
}
