package schedule

import (
	"time"

	"github.com/koresolucoes/ponto/internal/api"
)

// DailySchedule is one row of the weekly schedule view.
type DailySchedule struct {
	Date        time.Time
	DayName     string
	Shift       *api.Shift
	IsDayOff    bool
	HasSchedule bool
}

var dayNames = []string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// WeekStart returns the Monday of the week containing now.
func WeekStart(now time.Time) time.Time {
	weekday := int(now.Weekday())
	diff := weekday - 1
	if weekday == 0 {
		diff = 6
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -diff)
}

// BuildWeek filters the fetched schedules down to one employee and lays
// the shifts over seven days starting at weekStart. Days with no
// published shift get HasSchedule=false ("Sem escala").
func BuildWeek(escalas []api.Escala, employeeID string, weekStart time.Time) []DailySchedule {
	shiftsByDay := make(map[string]*api.Shift)
	dayOffByDay := make(map[string]bool)

	for _, escala := range escalas {
		if !escala.IsPublished {
			continue
		}
		for i := range escala.Shifts {
			shift := &escala.Shifts[i]
			if shift.EmployeeID != employeeID {
				continue
			}
			start, err := time.Parse(time.RFC3339, shift.StartTime)
			if err != nil {
				continue
			}
			key := start.Local().Format("2006-01-02")
			shiftsByDay[key] = shift
			dayOffByDay[key] = shift.IsDayOff
		}
	}

	week := make([]DailySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		shift, ok := shiftsByDay[key]
		week = append(week, DailySchedule{
			Date:        date,
			DayName:     dayNames[int(date.Weekday())],
			Shift:       shift,
			IsDayOff:    dayOffByDay[key],
			HasSchedule: ok,
		})
	}
	return week
}

// HasAny reports whether at least one day of the week carries a shift.
func HasAny(week []DailySchedule) bool {
	for _, day := range week {
		if day.HasSchedule {
			return true
		}
	}
	return false
}

// ShiftWindow renders "08:00 - 16:00" for a working day.
func ShiftWindow(shift *api.Shift) string {
	start, err := time.Parse(time.RFC3339, shift.StartTime)
	if err != nil {
		return "--:--"
	}
	end, err := time.Parse(time.RFC3339, shift.EndTime)
	if err != nil {
		return start.Local().Format("15:04") + " - --:--"
	}
	return start.Local().Format("15:04") + " - " + end.Local().Format("15:04")
}
