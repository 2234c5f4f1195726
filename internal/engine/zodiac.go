package engine

import "time"

// Zodiac is a Western tropical zodiac sign label.
type Zodiac string

const (
	Capricorn   Zodiac = "Capricorn"
	Aquarius    Zodiac = "Aquarius"
	Pisces      Zodiac = "Pisces"
	Aries       Zodiac = "Aries"
	Taurus      Zodiac = "Taurus"
	Gemini      Zodiac = "Gemini"
	Cancer      Zodiac = "Cancer"
	Leo         Zodiac = "Leo"
	Virgo       Zodiac = "Virgo"
	Libra       Zodiac = "Libra"
	Scorpio     Zodiac = "Scorpio"
	Sagittarius Zodiac = "Sagittarius"
)

// Signs lists all twelve signs starting with Capricorn.
var Signs = []Zodiac{
	Capricorn, Aquarius, Pisces, Aries, Taurus, Gemini,
	Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius,
}

// cusps holds, for each month, the day on which the next sign begins.
// Each month is split into exactly two ranges, so the table cannot overlap
// or leave a gap.
var cusps = [12]struct {
	day           int
	before, after Zodiac
}{
	{20, Capricorn, Aquarius},    // January
	{19, Aquarius, Pisces},       // February
	{21, Pisces, Aries},          // March
	{20, Aries, Taurus},          // April
	{21, Taurus, Gemini},         // May
	{21, Gemini, Cancer},         // June
	{23, Cancer, Leo},            // July
	{23, Leo, Virgo},             // August
	{23, Virgo, Libra},           // September
	{23, Libra, Scorpio},         // October
	{22, Scorpio, Sagittarius},   // November
	{22, Sagittarius, Capricorn}, // December
}

// ZodiacSign classifies a day and month (1 = January). Cusp days are inclusive
// on the side of the sign that starts on them. The year plays no part.
// An out-of-range month yields the empty Zodiac.
func ZodiacSign(day int, month time.Month) Zodiac {
	if month < time.January || month > time.December {
		return ""
	}
	c := cusps[month-1]
	if day >= c.day {
		return c.after
	}
	return c.before
}
