package dates

import (
	"testing"
	"time"
)

func TestDaysBetweenSigned(t *testing.T) {
	a := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := DaysBetween(b, a); got != -10 {
		t.Fatalf("expected -10, got %d", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 1 {
		t.Fatalf("expected 1 whole day across midnight, got %d", got)
	}
}

func TestAddDays(t *testing.T) {
	start := time.Date(2026, 2, 27, 15, 30, 0, 0, time.UTC)
	got := AddDays(start, 2)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOrdinalSuffix(t *testing.T) {
	cases := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd",
		101: "st", 111: "th",
	}
	for n, want := range cases {
		if got := OrdinalSuffix(n); got != want {
			t.Fatalf("OrdinalSuffix(%d): expected %q, got %q", n, want, got)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "N/A" {
		t.Fatalf("expected N/A for zero date, got %q", got)
	}

	value := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	formatted := FormatDate(value)
	if formatted != "3/5/2026" {
		t.Fatalf("expected 3/5/2026, got %q", formatted)
	}

	parsed, err := ParseDate(formatted)
	if err != nil {
		t.Fatalf("round-trip parse: %v", err)
	}
	if DaysBetween(parsed, value) != 0 {
		t.Fatalf("round-trip changed the calendar day: %v vs %v", parsed, value)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected error for junk date")
	}
}
