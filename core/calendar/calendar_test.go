package calendar

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfWeekMonday(t *testing.T) {
	// 2024-04-10 is a Wednesday.
	got := StartOfWeek(day(2024, 4, 10), time.Monday)
	if !got.Equal(day(2024, 4, 8)) {
		t.Fatalf("expected 2024-04-08, got %v", got)
	}
	// A Monday is its own week start.
	got = StartOfWeek(day(2024, 4, 8), time.Monday)
	if !got.Equal(day(2024, 4, 8)) {
		t.Fatalf("monday should be its own week start, got %v", got)
	}
	// Sunday belongs to the preceding Monday-start week.
	got = StartOfWeek(day(2024, 4, 14), time.Monday)
	if !got.Equal(day(2024, 4, 8)) {
		t.Fatalf("expected 2024-04-08 for sunday, got %v", got)
	}
}

func TestEndOfWeekViewSizes(t *testing.T) {
	start := day(2024, 4, 8)
	if got := EndOfWeek(start, 5); !got.Equal(day(2024, 4, 12)) {
		t.Fatalf("5-day view: expected friday, got %v", got)
	}
	if got := EndOfWeek(start, 7); !got.Equal(day(2024, 4, 14)) {
		t.Fatalf("7-day view: expected sunday, got %v", got)
	}
}

func TestEndOfMonth(t *testing.T) {
	if got := EndOfMonth(day(2024, 2, 10)); !got.Equal(day(2024, 2, 29)) {
		t.Fatalf("leap february: got %v", got)
	}
	if got := EndOfMonth(day(2024, 4, 30)); !got.Equal(day(2024, 4, 30)) {
		t.Fatalf("end of month is a fixpoint: got %v", got)
	}
}

func TestDateOnlyStripsTime(t *testing.T) {
	in := time.Date(2024, 4, 10, 16, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 || !SameDay(got, in) {
		t.Fatalf("unexpected truncation: %v", got)
	}
}

func TestIsWeekend(t *testing.T) {
	if IsWeekend(day(2024, 4, 12)) { // Friday
		t.Fatalf("friday is not a weekend")
	}
	if !IsWeekend(day(2024, 4, 13)) || !IsWeekend(day(2024, 4, 14)) {
		t.Fatalf("saturday/sunday not detected")
	}
}

func TestFixedClock(t *testing.T) {
	c := FixedClock{Day: time.Date(2024, 4, 10, 13, 30, 0, 0, time.UTC)}
	if !c.Today().Equal(day(2024, 4, 10)) {
		t.Fatalf("fixed clock should truncate: %v", c.Today())
	}
}
