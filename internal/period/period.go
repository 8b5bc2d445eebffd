// Package period models the day ranges used by every report and list
// filter.
package period

import (
	"fmt"
	"time"
)

// Range is the half-open interval [Start, End). Ranges built by this package
// start at midnight of the first day and end at midnight after the last one,
// so timestamps with sub-second precision late on the last day still fall
// inside.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days normalizes start and end to cover the whole of both days.
func Days(start, end time.Time) Range {
	return Range{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		End:   time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, end.Location()),
	}
}

// CurrentMonth is the default range of every list: first to last day of the
// month containing now.
func CurrentMonth(now time.Time) Range {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	return Days(first, last)
}

// Parse reads YYYY-MM-DD bounds. Empty values fall back to the bounds of the
// current month.
func Parse(start, end string, now time.Time) (Range, error) {
	def := CurrentMonth(now)

	s, e := def.Start, def.LastDay()

	if start != "" {
		t, err := time.ParseInLocation(time.DateOnly, start, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", start)
		}

		s = t
	}

	if end != "" {
		t, err := time.ParseInLocation(time.DateOnly, end, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", end)
		}

		e = t
	}

	if e.Before(s) {
		return Range{}, fmt.Errorf("end date %s is before start date %s", e.Format(time.DateOnly), s.Format(time.DateOnly))
	}

	return Days(s, e), nil
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// LastDay is the last calendar day inside the range.
func (r Range) LastDay() time.Time {
	return r.End.AddDate(0, 0, -1)
}

func (r Range) String() string {
	return r.Start.Format(time.DateOnly) + " - " + r.LastDay().Format(time.DateOnly)
}
