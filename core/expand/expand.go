// Package expand materializes the date sequence a single board action
// fans out to when the user applies it to a period.
package expand

import (
	"fmt"
	"time"

	"github.com/depotops/crewboard/core/calendar"
)

// Kind enumerates the selectable periods.
type Kind string

const (
	Single         Kind = "single"
	Week           Kind = "week"
	FollowingWeek  Kind = "following_week"
	Custom         Kind = "custom"
	RemainderMonth Kind = "remainder_month"
	NextMonths     Kind = "next_months"
	RemainderYear  Kind = "remainder_year"
)

// Period selects how far an action fans out. Days is used by Custom,
// Months by NextMonths (2..6).
type Period struct {
	Kind   Kind
	Days   int
	Months int
}

// Options carries the board configuration an expansion depends on. All of
// it is injected so tests can pin the view window, the week start and the
// clock.
type Options struct {
	ViewDays     int          // 5 or 7
	WeekStartsOn time.Weekday // usually Monday
	WeekdayOnly  bool         // skip Saturdays and Sundays
	Clock        calendar.Clock
}

// MaxDates bounds any expansion. A malformed end date truncates the
// sequence here instead of erroring.
const MaxDates = 1000

// Expand returns the ordered target dates for the period, the source date
// excluded. Dates before today are filtered out: past dates are never
// targets of bulk creation, duplication or deletion.
func Expand(source time.Time, p Period, opts Options) ([]time.Time, error) {
	if opts.Clock == nil {
		opts.Clock = calendar.SystemClock{}
	}
	if opts.ViewDays != 7 {
		opts.ViewDays = 5
	}
	source = calendar.DateOnly(source)

	var first, last time.Time
	switch p.Kind {
	case Single:
		return nil, nil
	case Week:
		first = calendar.NextDay(source)
		last = calendar.EndOfWeek(calendar.StartOfWeek(source, opts.WeekStartsOn), opts.ViewDays)
	case FollowingWeek:
		// The whole next week, wherever the source sits in its own week.
		first = calendar.StartOfWeek(source, opts.WeekStartsOn).AddDate(0, 0, 7)
		last = calendar.EndOfWeek(first, opts.ViewDays)
	case Custom:
		if p.Days <= 0 {
			return nil, fmt.Errorf("custom period needs a positive day count, got %d", p.Days)
		}
		first = calendar.NextDay(source)
		last = source.AddDate(0, 0, p.Days)
	case RemainderMonth:
		first = calendar.NextDay(source)
		last = calendar.EndOfMonth(source)
	case NextMonths:
		if p.Months < 2 || p.Months > 6 {
			return nil, fmt.Errorf("next-months period supports 2..6 months, got %d", p.Months)
		}
		first = calendar.NextDay(source)
		last = calendar.AddMonths(source, p.Months)
	case RemainderYear:
		first = calendar.NextDay(source)
		last = calendar.EndOfYear(source)
	default:
		return nil, fmt.Errorf("unknown period %q", p.Kind)
	}

	today := opts.Clock.Today()
	var out []time.Time
	for d, n := first, 0; !d.After(last) && n < MaxDates; d, n = calendar.NextDay(d), n+1 {
		if opts.WeekdayOnly && calendar.IsWeekend(d) {
			continue
		}
		if d.Before(today) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
