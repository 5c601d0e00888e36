package calendar

import "time"

// DateOnly truncates t to midnight in its location. All board arithmetic
// works on these date values; time-of-day never participates.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Before reports whether a's calendar date is strictly before b's.
func Before(a, b time.Time) bool {
	return DateOnly(a).Before(DateOnly(b))
}

// StartOfWeek returns the first day of t's week given the configured week
// start. The week start is injected rather than taken from locale state so
// callers and tests can pin it.
func StartOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	t = DateOnly(t)
	diff := int(t.Weekday()) - int(weekStartsOn)
	if diff < 0 {
		diff += 7
	}
	return t.AddDate(0, 0, -diff)
}

// EndOfWeek returns the last visible day of the window starting at the
// week start: four days later for a 5-day view, six for a 7-day view.
func EndOfWeek(weekStart time.Time, viewDays int) time.Time {
	if viewDays != 5 && viewDays != 7 {
		viewDays = 5
	}
	return DateOnly(weekStart).AddDate(0, 0, viewDays-1)
}

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	t = DateOnly(t)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).
		AddDate(0, 1, -1)
}

// EndOfYear returns December 31st of t's year.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 12, 31, 0, 0, 0, 0, t.Location())
}

// AddMonths advances t by n calendar months.
func AddMonths(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, n, 0)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextDay returns the day after t.
func NextDay(t time.Time) time.Time {
	return DateOnly(t).AddDate(0, 0, 1)
}
