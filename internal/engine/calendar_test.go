package engine_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-agecalc/internal/engine"
)

func TestCalendarExporter_Export(t *testing.T) {
	exp := engine.NewCalendarExporter()
	exp.FormatSummary = func(age int) string { return fmt.Sprintf("Turning %d", age) }

	stamp := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	data, err := exp.Export(date(1990, time.December, 31), engine.DateOf(stamp), stamp)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20251231")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20261231")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20271231")
	assert.Contains(t, ics, "SUMMARY:Turning 35")
	assert.Contains(t, ics, "SUMMARY:Turning 37")
	assert.Equal(t, 3, strings.Count(ics, "BEGIN:VEVENT"))

	assert.Contains(t, ics, "BEGIN:VALARM")
	assert.Contains(t, ics, "TRIGGER:-P1D")
	assert.Contains(t, ics, "ACTION:DISPLAY")
}

func TestCalendarExporter_Leapling(t *testing.T) {
	exp := &engine.CalendarExporter{Years: 5}

	today := date(2025, time.June, 1)
	data, err := exp.Export(date(2000, time.February, 29), today, today.Time(time.UTC))
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260301")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20270301")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20280229", "Leap years keep Feb 29")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20300301")
	assert.NotContains(t, ics, "BEGIN:VALARM", "Empty trigger disables the alarm")
}

func TestCalendarExporter_FutureBirth(t *testing.T) {
	exp := engine.NewCalendarExporter()
	_, err := exp.Export(date(2030, time.January, 1), date(2025, time.January, 1), time.Now())
	assert.Error(t, err)
}
