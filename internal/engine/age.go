package engine

import (
	"time"
)

// AgeResult is the calendar breakdown of the time elapsed since a birth date.
// The JSON keys are the wire format used by the HTTP API and the CLI.
type AgeResult struct {
	// Years, Months and Days are the calendar-accurate breakdown, not a
	// division of TotalDays by fixed month or year lengths.
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`

	// TotalDays is the number of calendar days between the birth date and today.
	TotalDays int `json:"totalDays"`

	// NextBirthdayDays is 0 when today is the birthday.
	NextBirthdayDays int `json:"nextBirthdayDays"`

	Zodiac Zodiac `json:"zodiac"`
}

// Calculator binds age computation to a clock so that "today" can be mocked.
type Calculator struct {
	Clock Clock
}

// NewCalculator returns a Calculator reading the real local clock.
func NewCalculator() *Calculator {
	return &Calculator{Clock: RealClock{}}
}

// Calculate parses input and computes the age relative to the calculator's clock.
// The boolean is false when the input is not a date or lies in the future.
func (c *Calculator) Calculate(input string) (AgeResult, bool) {
	return CalculateAge(input, c.Clock.Now())
}

// Today returns the current calendar date according to the clock.
func (c *Calculator) Today() Date {
	return DateOf(c.Clock.Now())
}

// CalculateAge parses input and computes the age as of the calendar date of now.
// It never panics: unparseable input and future dates both yield ok == false.
func CalculateAge(input string, now time.Time) (AgeResult, bool) {
	birth, err := ParseDate(input)
	if err != nil {
		return AgeResult{}, false
	}
	return Age(birth, DateOf(now))
}

// Age computes the breakdown between birth and today.
// ok is false when birth is strictly after today.
func Age(birth, today Date) (AgeResult, bool) {
	if birth.After(today) {
		return AgeResult{}, false
	}

	years := today.Year - birth.Year
	months := int(today.Month) - int(birth.Month)
	days := today.Day - birth.Day

	if days < 0 {
		// Borrow the real length of the month before today's month. The birth
		// day is clamped to that length so that e.g. Jan 31 -> Mar 1 reads as
		// "1 month (to Feb 28) and 1 day" instead of going negative.
		months--
		prev := today.Month - 1
		prevYear := today.Year
		if prev < time.January {
			prev = time.December
			prevYear--
		}
		borrowed := daysIn(prevYear, prev)
		days = today.Day + borrowed - min(birth.Day, borrowed)
	}

	if months < 0 {
		years--
		months += 12
	}

	return AgeResult{
		Years:            years,
		Months:           months,
		Days:             days,
		TotalDays:        birth.DaysUntil(today),
		NextBirthdayDays: today.DaysUntil(NextBirthday(birth, today)),
		Zodiac:           ZodiacSign(birth.Day, birth.Month),
	}, true
}

// NextBirthday returns the first occurrence of the birth month/day on or after today.
//
// Feb 29 birthdays fall on March 1 in non-leap years: time.Date normalises
// the impossible date forward, which is the policy used everywhere in this
// package (contacts list and calendar export included).
func NextBirthday(birth, today Date) Date {
	candidate := anniversary(birth, today.Year)
	if candidate.Before(today) {
		candidate = anniversary(birth, today.Year+1)
	}
	return candidate
}

// anniversary returns the birthday observed in year y.
func anniversary(birth Date, y int) Date {
	return DateOf(time.Date(y, birth.Month, birth.Day, 0, 0, 0, 0, time.UTC))
}

// AgeOn returns the age in whole years that a person born on birth reaches on day.
func AgeOn(birth, day Date) int {
	years := day.Year - birth.Year
	if anniversary(birth, day.Year).After(day) {
		years--
	}
	return years
}
