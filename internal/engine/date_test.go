package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
)

func TestParseDate_Errors(t *testing.T) {
	_, err := engine.ParseDate("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDateEmpty)

	_, err = engine.ParseDate("31.12.1999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDateParse)
}

func TestDate_Helpers(t *testing.T) {
	d := date(2024, time.January, 31)

	assert.Equal(t, "2024-01-31", d.String())
	assert.Equal(t, date(2024, time.February, 29), d.AddMonthsClamped(1))
	assert.Equal(t, date(2025, time.February, 28), d.AddMonthsClamped(13))
	assert.Equal(t, date(2023, time.December, 31), d.AddMonthsClamped(-1))
	assert.Equal(t, date(2024, time.March, 1), d.AddDays(30))
	assert.Equal(t, 30, d.DaysUntil(date(2024, time.March, 1)))
	assert.Equal(t, -30, date(2024, time.March, 1).DaysUntil(d))
	assert.True(t, d.Before(date(2024, time.February, 1)))
	assert.False(t, d.Before(d))
	assert.True(t, engine.Date{}.IsZero())
}

// TestDate_DaysUntil_DST checks that a daylight saving shift between the two
// dates does not shave a day off the count.
func TestDate_DaysUntil_DST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}
	before := engine.DateOf(time.Date(2025, time.March, 29, 12, 0, 0, 0, loc))
	after := engine.DateOf(time.Date(2025, time.March, 31, 0, 30, 0, 0, loc))

	assert.Equal(t, 2, before.DaysUntil(after))
}
