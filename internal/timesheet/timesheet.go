package timesheet

import (
	"fmt"
	"sort"
	"time"

	"github.com/koresolucoes/ponto/internal/api"
)

// Display sentinels. "Em andamento" marks an open entry, "N/A" marks a
// malformed or non-positive interval; a negative duration is never
// rendered.
const (
	InProgress = "Em andamento"
	Invalid    = "N/A"
)

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDuration renders the closed interval between two wire
// timestamps as "HHh MMm".
func FormatDuration(clockIn string, clockOut *string) string {
	if clockOut == nil || *clockOut == "" {
		return InProgress
	}
	start, ok := parseTimestamp(clockIn)
	if !ok {
		return Invalid
	}
	end, ok := parseTimestamp(*clockOut)
	if !ok {
		return Invalid
	}
	diff := end.Sub(start)
	if diff <= 0 {
		return Invalid
	}
	return formatHoursMinutes(diff)
}

func formatHoursMinutes(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%02dh %02dm", hours, minutes)
}

// TotalHours sums the closed intervals of the given entries. Open or
// malformed entries contribute nothing.
func TotalHours(entries []api.RegistroPonto) string {
	var total time.Duration
	for _, e := range entries {
		if e.ClockOutTime == nil || *e.ClockOutTime == "" {
			continue
		}
		start, ok := parseTimestamp(e.ClockInTime)
		if !ok {
			continue
		}
		end, ok := parseTimestamp(*e.ClockOutTime)
		if !ok {
			continue
		}
		if diff := end.Sub(start); diff > 0 {
			total += diff
		}
	}
	if total <= 0 {
		return "00h 00m"
	}
	return formatHoursMinutes(total)
}

// DayGroup is one calendar day of entries, most recent entry first.
type DayGroup struct {
	Date    string // YYYY-MM-DD
	Entries []api.RegistroPonto
}

// GroupByDay groups entries by the calendar day of their clock-in,
// entries ordered clock-in descending inside each group and groups
// ordered most-recent-day-first. Entries with unparseable clock-ins
// group under their raw prefix so they stay visible.
func GroupByDay(entries []api.RegistroPonto) []DayGroup {
	sorted := make([]api.RegistroPonto, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ClockInTime > sorted[j].ClockInTime
	})

	groups := make(map[string][]api.RegistroPonto)
	var order []string
	for _, e := range sorted {
		key := dayKey(e.ClockInTime)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	result := make([]DayGroup, 0, len(order))
	for _, key := range order {
		result = append(result, DayGroup{Date: key, Entries: groups[key]})
	}
	return result
}

func dayKey(clockIn string) string {
	if t, ok := parseTimestamp(clockIn); ok {
		return t.Local().Format("2006-01-02")
	}
	if len(clockIn) >= 10 {
		return clockIn[:10]
	}
	return clockIn
}

// WeekRange returns the Monday-to-today window used by the weekly time
// sheet view. The end is the last instant of today.
func WeekRange(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	weekday := int(now.Weekday())
	diff := weekday - 1
	if weekday == 0 { // Sunday belongs to the week that started six days ago
		diff = 6
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -diff)
	return start, end
}

// MonthRange returns the first-of-month-to-today window.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return start, end
}
