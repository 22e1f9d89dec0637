package schedule

import (
	"fmt"
	"io"
	"time"

	ical "github.com/emersion/go-ical"
)

// WriteICS exports the week's working shifts as an iCalendar so the
// employee can import the escala into a phone calendar. Days off and
// unscheduled days are skipped.
func WriteICS(w io.Writer, week []DailySchedule, employeeName string) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//ponto//escala//PT")

	now := time.Now()
	for _, day := range week {
		if !day.HasSchedule || day.IsDayOff || day.Shift == nil {
			continue
		}
		start, err := time.Parse(time.RFC3339, day.Shift.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, day.Shift.EndTime)
		if err != nil {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@ponto", day.Shift.ID))
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, end)
		event.Props.SetText(ical.PropSummary, "Turno: "+employeeName)
		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}
