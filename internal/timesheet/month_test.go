package timesheet

import (
	"testing"
	"time"
)

func TestMonthCursorNavigation(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	cursor := NewMonthCursor(now)

	if !cursor.AtCurrent() {
		t.Fatal("new cursor should sit on the current month")
	}
	if cursor.Month != 3 || cursor.Year != 2026 {
		t.Fatalf("cursor = %02d/%d, want 03/2026", cursor.Month, cursor.Year)
	}

	// Next at the current month is a no-op.
	if next := cursor.Next(); next.Month != 3 || next.Year != 2026 {
		t.Errorf("Next at current month moved to %02d/%d", next.Month, next.Year)
	}

	prev := cursor.Prev()
	if prev.Month != 2 || prev.Year != 2026 {
		t.Errorf("Prev = %02d/%d, want 02/2026", prev.Month, prev.Year)
	}
	if prev.AtCurrent() {
		t.Error("previous month must not report AtCurrent")
	}

	// Back at the current month after one forward step.
	back := prev.Next()
	if !back.AtCurrent() {
		t.Errorf("expected to return to current month, got %02d/%d", back.Month, back.Year)
	}
}

func TestMonthCursorYearRoll(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	cursor := NewMonthCursor(now)

	prev := cursor.Prev()
	if prev.Month != 12 || prev.Year != 2025 {
		t.Fatalf("Prev from January = %02d/%d, want 12/2025", prev.Month, prev.Year)
	}

	next := prev.Next()
	if next.Month != 1 || next.Year != 2026 {
		t.Fatalf("Next from December = %02d/%d, want 01/2026", next.Month, next.Year)
	}
}

func TestMonthCursorLabel(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cursor := NewMonthCursor(now)

	if got := cursor.Label(); got != "Março / 2026" {
		t.Errorf("Label = %q, want %q", got, "Março / 2026")
	}
	if got := cursor.Prev().Prev().Label(); got != "Janeiro / 2026" {
		t.Errorf("Label = %q, want %q", got, "Janeiro / 2026")
	}
}
