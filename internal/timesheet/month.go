package timesheet

import (
	"strings"
	"time"
)

// MonthCursor is the payslip period selector. It never advances past
// the current calendar month.
type MonthCursor struct {
	Month int // 1-12
	Year  int
	now   time.Time
}

func NewMonthCursor(now time.Time) MonthCursor {
	return MonthCursor{
		Month: int(now.Month()),
		Year:  now.Year(),
		now:   now,
	}
}

// AtCurrent reports whether the cursor sits on the current month.
func (c MonthCursor) AtCurrent() bool {
	return c.Year == c.now.Year() && c.Month == int(c.now.Month())
}

// Prev moves one month back, rolling January into December of the
// previous year.
func (c MonthCursor) Prev() MonthCursor {
	c.Month--
	if c.Month < 1 {
		c.Month = 12
		c.Year--
	}
	return c
}

// Next moves one month forward, clamped so the cursor never passes the
// current month. At the current month it is a no-op.
func (c MonthCursor) Next() MonthCursor {
	if c.AtCurrent() {
		return c
	}
	c.Month++
	if c.Month > 12 {
		c.Month = 1
		c.Year++
	}
	return c
}

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Label renders "Março / 2026".
func (c MonthCursor) Label() string {
	name := monthNames[c.Month-1]
	return strings.ToUpper(name[:1]) + name[1:] + " / " + c.date().Format("2006")
}

func (c MonthCursor) date() time.Time {
	return time.Date(c.Year, time.Month(c.Month), 1, 0, 0, 0, 0, time.Local)
}
