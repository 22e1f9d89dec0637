package timesheet

import (
	"testing"
	"time"

	"github.com/koresolucoes/ponto/internal/api"
)

func strPtr(s string) *string { return &s }

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		clockIn  string
		clockOut *string
		want     string
	}{
		{
			name:     "closed shift",
			clockIn:  "2026-08-03T08:00:00Z",
			clockOut: strPtr("2026-08-03T16:30:00Z"),
			want:     "08h 30m",
		},
		{
			name:     "short break",
			clockIn:  "2026-08-03T12:00:00Z",
			clockOut: strPtr("2026-08-03T12:45:00Z"),
			want:     "00h 45m",
		},
		{
			name:     "open entry",
			clockIn:  "2026-08-03T08:00:00Z",
			clockOut: nil,
			want:     InProgress,
		},
		{
			name:     "empty clock out",
			clockIn:  "2026-08-03T08:00:00Z",
			clockOut: strPtr(""),
			want:     InProgress,
		},
		{
			name:     "malformed clock in",
			clockIn:  "not-a-date",
			clockOut: strPtr("2026-08-03T16:00:00Z"),
			want:     Invalid,
		},
		{
			name:     "malformed clock out",
			clockIn:  "2026-08-03T08:00:00Z",
			clockOut: strPtr("garbage"),
			want:     Invalid,
		},
		{
			name:     "clock out before clock in",
			clockIn:  "2026-08-03T16:00:00Z",
			clockOut: strPtr("2026-08-03T08:00:00Z"),
			want:     Invalid,
		},
		{
			name:     "zero length interval",
			clockIn:  "2026-08-03T08:00:00Z",
			clockOut: strPtr("2026-08-03T08:00:00Z"),
			want:     Invalid,
		},
		{
			name:     "timestamp without zone",
			clockIn:  "2026-08-03T08:00:00",
			clockOut: strPtr("2026-08-03T09:15:00"),
			want:     "01h 15m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.clockIn, tt.clockOut)
			if got != tt.want {
				t.Errorf("FormatDuration(%q, %v) = %q, want %q", tt.clockIn, tt.clockOut, got, tt.want)
			}
		})
	}
}

func TestTotalHours(t *testing.T) {
	entries := []api.RegistroPonto{
		{ClockInTime: "2026-08-03T08:00:00Z", ClockOutTime: strPtr("2026-08-03T12:00:00Z")},
		{ClockInTime: "2026-08-03T13:00:00Z", ClockOutTime: strPtr("2026-08-03T17:30:00Z")},
		// Open and malformed entries must not contribute.
		{ClockInTime: "2026-08-04T08:00:00Z", ClockOutTime: nil},
		{ClockInTime: "bad", ClockOutTime: strPtr("2026-08-04T16:00:00Z")},
	}

	if got := TotalHours(entries); got != "08h 30m" {
		t.Errorf("TotalHours = %q, want %q", got, "08h 30m")
	}

	if got := TotalHours(nil); got != "00h 00m" {
		t.Errorf("TotalHours(nil) = %q, want %q", got, "00h 00m")
	}
}

func TestGroupByDay(t *testing.T) {
	entries := []api.RegistroPonto{
		{ID: "a", ClockInTime: "2026-08-03T10:00:00", ClockOutTime: strPtr("2026-08-03T12:00:00")},
		{ID: "b", ClockInTime: "2026-08-05T12:00:00"},
		{ID: "c", ClockInTime: "2026-08-03T13:00:00", ClockOutTime: strPtr("2026-08-03T17:00:00")},
		{ID: "d", ClockInTime: "2026-08-04T12:00:00", ClockOutTime: strPtr("2026-08-04T18:00:00")},
	}

	groups := GroupByDay(entries)
	if len(groups) != 3 {
		t.Fatalf("expected 3 day groups, got %d", len(groups))
	}

	// Most recent day first.
	wantDates := []string{"2026-08-05", "2026-08-04", "2026-08-03"}
	for i, want := range wantDates {
		if groups[i].Date != want {
			t.Errorf("group[%d].Date = %q, want %q", i, groups[i].Date, want)
		}
	}

	// Inside a day, most recent entry first.
	day := groups[2]
	if len(day.Entries) != 2 {
		t.Fatalf("expected 2 entries on 2026-08-03, got %d", len(day.Entries))
	}
	if day.Entries[0].ID != "c" || day.Entries[1].ID != "a" {
		t.Errorf("entries out of order: got %s, %s", day.Entries[0].ID, day.Entries[1].ID)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
	}{
		{
			name:      "wednesday",
			now:       time.Date(2026, 8, 5, 14, 0, 0, 0, time.UTC),
			wantStart: "2026-08-03",
		},
		{
			name:      "monday",
			now:       time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
			wantStart: "2026-08-03",
		},
		{
			name:      "sunday closes the week started six days earlier",
			now:       time.Date(2026, 8, 9, 23, 0, 0, 0, time.UTC),
			wantStart: "2026-08-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekRange(tt.now)
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.now.Format("2006-01-02") {
				t.Errorf("end = %s, want today %s", got, tt.now.Format("2006-01-02"))
			}
			if end.Hour() != 23 || end.Minute() != 59 {
				t.Errorf("end should be the last instant of today, got %s", end)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	start, end := MonthRange(now)

	if got := start.Format("2006-01-02"); got != "2026-08-01" {
		t.Errorf("start = %s, want 2026-08-01", got)
	}
	if got := end.Format("2006-01-02"); got != "2026-08-15" {
		t.Errorf("end = %s, want 2026-08-15", got)
	}
}
