// Package daterange provides a calendar-date value type and a terminal
// date-range picker. Ranges produced here always satisfy Start <= End.
package daterange

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime truncates a timestamp to its calendar date.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar date in local time.
func Today() Date {
	return FromTime(time.Now())
}

// Parse reads an ISO calendar date (YYYY-MM-DD).
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse calendar date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Time returns midnight local time on the date. Out-of-range components
// normalise the way time.Date does, so arithmetic like month+1 day 0 is safe.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// AddDays shifts the date by n days, rolling over months and years.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths shifts the date by n months, clamping to the first of the month
// so month-length differences cannot skip a month.
func (d Date) AddMonths(n int) Date {
	t := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, n, 0)
	day := d.Day
	if max := DaysIn(t.Year(), t.Month()); day > max {
		day = max
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: day}
}

// Range is an inclusive pair of calendar dates with Start <= End.
type Range struct {
	Start Date
	End   Date
}

// NewRange orders the endpoints so the invariant holds regardless of the
// order the caller supplies them in.
func NewRange(a, b Date) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// LastMonths returns the default dashboard range: n months back from today.
func LastMonths(n int) Range {
	end := Today()
	return Range{Start: end.AddMonths(-n), End: end}
}

// Contains reports whether the date lies within the range, inclusive.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r Range) String() string {
	return r.Start.String() + " - " + r.End.String()
}
