// Package period is the single authority for calendar-month windows.
//
// Every place that needs "the month of a transaction" or "the date range of a
// budget month" goes through this package with one fixed *time.Location, so a
// transaction's month attribution and a budget's query window can never
// disagree near month boundaries or under non-UTC system clocks.
package period

import (
	"fmt"
	"time"
)

// MonthLayout is the wire format for budget months
const MonthLayout = "2006-01"

// Window is the inclusive [Start, End] timestamp range of one calendar month.
// Start is the first day at 00:00:00.000, End is the last day at 23:59:59.999.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MonthOf returns the YYYY-MM month a timestamp belongs to, evaluated in loc.
func MonthOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(MonthLayout)
}

// CurrentMonth returns the YYYY-MM month of the present instant in loc.
func CurrentMonth(loc *time.Location) string {
	return MonthOf(time.Now(), loc)
}

// MonthWindow converts a YYYY-MM string to its calendar window in loc.
func MonthWindow(month string, loc *time.Location) (Window, error) {
	start, err := time.ParseInLocation(MonthLayout, month, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid month %q: %w", month, err)
	}

	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return Window{Start: start, End: end}, nil
}

// CurrentMonthWindow returns the window of the present calendar month in loc.
func CurrentMonthWindow(loc *time.Location) Window {
	w, _ := MonthWindow(CurrentMonth(loc), loc)
	return w
}

// TrailingWindow returns the window spanning the trailing monthsBack whole
// calendar months including the current one, in loc.
func TrailingWindow(monthsBack int, loc *time.Location) Window {
	if monthsBack < 1 {
		monthsBack = 1
	}

	now := time.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).
		AddDate(0, -(monthsBack - 1), 0)
	end := CurrentMonthWindow(loc).End

	return Window{Start: start, End: end}
}
