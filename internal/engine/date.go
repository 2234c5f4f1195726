package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-agecalc/internal/config"
)

// Date is a calendar date with no time-of-day component.
// It is the unit every age computation works on: "today" is reduced to a Date
// in the caller's local calendar before any arithmetic happens.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate reads a birth date typed by a user or found in a vCard.
// Impossible calendar values such as 2023-02-30 are rejected rather than
// normalised into the following month.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, errors.New(config.ErrDateEmpty)
	}

	for _, layout := range config.DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}

	return Date{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}

// midnight anchors the date at 00:00 UTC. UTC has no DST jumps, so the
// difference between two anchors is always a whole number of days.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Time returns local midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.midnight().Before(other.midnight())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// DaysUntil returns the number of calendar days from d to other.
// The result is negative when other is earlier than d. Unix seconds are used
// because time.Duration saturates past roughly 292 years.
func (d Date) DaysUntil(other Date) int {
	return int((other.midnight().Unix() - d.midnight().Unix()) / config.SecondsPerDay)
}

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// AddMonthsClamped moves the date by n months as a single offset. When the day
// does not exist in the target month it is clamped to that month's last day
// (Jan 31 + 1 month = Feb 28), unlike time.AddDate which overflows.
func (d Date) AddMonthsClamped(n int) Date {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := min(d.Day, daysIn(first.Year(), first.Month()))
	return Date{Year: first.Year(), Month: first.Month(), Day: day}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.midnight().Format(time.DateOnly)
}

// daysIn returns the length of month m in year y.
// Day 0 of the following month is normalised by time.Date to the last day of m.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
