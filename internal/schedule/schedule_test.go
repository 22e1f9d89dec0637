package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/koresolucoes/ponto/internal/api"
)

func localRFC3339(t *testing.T, year int, month time.Month, day, hour int) string {
	t.Helper()
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local).Format(time.RFC3339)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"monday", time.Date(2026, 8, 3, 10, 0, 0, 0, time.Local), "2026-08-03"},
		{"friday", time.Date(2026, 8, 7, 23, 0, 0, 0, time.Local), "2026-08-03"},
		{"sunday stays in the running week", time.Date(2026, 8, 9, 1, 0, 0, 0, time.Local), "2026-08-03"},
		{"next monday starts a new week", time.Date(2026, 8, 10, 0, 0, 0, 0, time.Local), "2026-08-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.now).Format("2006-01-02"); got != tt.want {
				t.Errorf("WeekStart = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildWeek(t *testing.T) {
	weekStart := time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local)

	escalas := []api.Escala{
		{
			ID:          "esc-1",
			IsPublished: true,
			Shifts: []api.Shift{
				{ID: "s1", EmployeeID: "emp-1", StartTime: localRFC3339(t, 2026, 8, 3, 8), EndTime: localRFC3339(t, 2026, 8, 3, 16)},
				{ID: "s2", EmployeeID: "emp-1", StartTime: localRFC3339(t, 2026, 8, 5, 12), EndTime: localRFC3339(t, 2026, 8, 5, 20), IsDayOff: true},
				// Another employee's shift must not leak in.
				{ID: "s3", EmployeeID: "emp-2", StartTime: localRFC3339(t, 2026, 8, 4, 8), EndTime: localRFC3339(t, 2026, 8, 4, 16)},
			},
		},
		{
			ID:          "esc-draft",
			IsPublished: false,
			Shifts: []api.Shift{
				{ID: "s4", EmployeeID: "emp-1", StartTime: localRFC3339(t, 2026, 8, 6, 8), EndTime: localRFC3339(t, 2026, 8, 6, 16)},
			},
		},
	}

	week := BuildWeek(escalas, "emp-1", weekStart)
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}

	monday := week[0]
	if !monday.HasSchedule || monday.IsDayOff {
		t.Errorf("monday = %+v, want a working shift", monday)
	}
	if monday.DayName != "Segunda" {
		t.Errorf("monday.DayName = %q", monday.DayName)
	}
	if got := ShiftWindow(monday.Shift); got != "08:00 - 16:00" {
		t.Errorf("monday window = %q, want 08:00 - 16:00", got)
	}

	// Tuesday belongs to emp-2 only.
	if week[1].HasSchedule {
		t.Errorf("tuesday should have no schedule, got %+v", week[1])
	}

	wednesday := week[2]
	if !wednesday.HasSchedule || !wednesday.IsDayOff {
		t.Errorf("wednesday = %+v, want a day off", wednesday)
	}

	// Thursday's shift sits in an unpublished escala.
	if week[3].HasSchedule {
		t.Errorf("unpublished shift leaked into thursday: %+v", week[3])
	}

	if !HasAny(week) {
		t.Error("HasAny should report the scheduled week")
	}
	if HasAny(BuildWeek(nil, "emp-1", weekStart)) {
		t.Error("HasAny should be false for an empty week")
	}
}

func TestWriteICS(t *testing.T) {
	weekStart := time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local)
	escalas := []api.Escala{
		{
			ID:          "esc-1",
			IsPublished: true,
			Shifts: []api.Shift{
				{ID: "s1", EmployeeID: "emp-1", StartTime: localRFC3339(t, 2026, 8, 3, 8), EndTime: localRFC3339(t, 2026, 8, 3, 16)},
				{ID: "s2", EmployeeID: "emp-1", StartTime: localRFC3339(t, 2026, 8, 4, 8), EndTime: localRFC3339(t, 2026, 8, 4, 16), IsDayOff: true},
			},
		},
	}
	week := BuildWeek(escalas, "emp-1", weekStart)

	var out strings.Builder
	if err := WriteICS(&out, week, "Maria Silva"); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}

	ics := out.String()
	if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "END:VCALENDAR") {
		t.Error("missing calendar envelope")
	}
	if !strings.Contains(ics, "s1@ponto") {
		t.Error("missing working shift event")
	}
	// The day off must not become an event.
	if strings.Contains(ics, "s2@ponto") {
		t.Error("day off exported as an event")
	}
	if !strings.Contains(ics, "Turno: Maria Silva") {
		t.Error("missing event summary")
	}
}
