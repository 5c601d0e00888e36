package calendar

import "time"

// Clock supplies "today" for past-date policy checks. Engine operations
// query it at the start of every call instead of caching, since a board
// left open overnight must pick up the new date.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Today() time.Time { return DateOnly(time.Now()) }

// FixedClock pins today to a known date for tests.
type FixedClock struct {
	Day time.Time
}

func (c FixedClock) Today() time.Time { return DateOnly(c.Day) }
