package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-agecalc/internal/config"
)

// CalendarExporter renders upcoming birthdays as an iCalendar document.
type CalendarExporter struct {
	// FormatSummary lets the UI inject a localized event title.
	// It receives the age reached on that birthday.
	FormatSummary func(age int) string

	// ReminderTrigger is an ISO 8601 duration such as "-P1D".
	// An empty value disables the alarm.
	ReminderTrigger string

	// Years is the number of consecutive birthdays to emit.
	Years int
}

// NewCalendarExporter returns an exporter with the default reminder and range.
func NewCalendarExporter() *CalendarExporter {
	return &CalendarExporter{
		ReminderTrigger: config.DefaultReminderTrigger,
		Years:           config.CalendarYears,
	}
}

// Export emits one all-day event per birthday, starting with the next one.
// Each year is placed explicitly instead of using an RRULE so that Feb 29
// birthdays follow the same March 1 rule as NextBirthday.
func (e *CalendarExporter) Export(birth, today Date, stamp time.Time) ([]byte, error) {
	if birth.After(today) {
		return nil, fmt.Errorf("%s: %s", config.ErrFutureBirth, birth)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, config.ICalVersion)
	cal.Props.SetText(ical.PropProductID, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(ical.PropCalendarScale, config.ICalScale)
	cal.Props.SetText(ical.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(stamp.UTC())

	hash := sha256.Sum256([]byte(birth.String() + config.UIDSalt))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	years := e.Years
	if years <= 0 {
		years = config.CalendarYears
	}

	next := NextBirthday(birth, today)
	for i := range years {
		day := anniversary(birth, next.Year+i)
		age := AgeOn(birth, day)

		summary := fmt.Sprintf(config.FallbackSummaryAge, age)
		if e.FormatSummary != nil {
			summary = e.FormatSummary(age)
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf(config.FormatUID, uidBase, day.Year, config.ICalDomain))
		event.Props.SetText(ical.PropSummary, summary)
		event.Props.Set(dtStamp)

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDate(day.Time(time.UTC))
		event.Props.Set(dtStart)

		if e.ReminderTrigger != "" {
			addAlarm(event, e.ReminderTrigger, summary)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, config.ICalAction)
	alarm.Props.SetText(ical.PropDescription, description)

	// Assigned directly: SetText would add a VALUE=TEXT parameter.
	triggerProp := ical.NewProp(ical.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
