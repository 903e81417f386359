package core

import "time"

// PeriodTotals holds full-precision sums for the three rolling windows.
// Rounding to two digits is a presentation concern and happens in the HTTP
// layer, never here.
type PeriodTotals struct {
	Today float64
	Week  float64
	Month float64
}

// Summary is the per-type aggregation result.
type Summary struct {
	Income  PeriodTotals
	Expense PeriodTotals
}

// WeekBounds returns the 7-day window containing date for the given
// week-start day. Start is the most recent occurrence of weekStart at or
// before date's calendar day, at midnight; End is 6 days later at
// 23:59:59.999. The window is closed on both ends.
func WeekBounds(date time.Time, weekStart time.Weekday) (start, end time.Time) {
	diff := (int(date.Weekday()) - int(weekStart) + 7) % 7
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start = midnight.AddDate(0, 0, -diff)
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// Summarize computes the per-type sums of entry amounts over the calendar
// day, configurable-start week and calendar month containing now. The
// week-start day is always an explicit argument, never ambient state, so the
// function stays pure. Entries whose amount does not parse as a finite
// number are skipped silently: a summary over imperfect historical data
// beats no summary at all. An entry can contribute to all three windows at
// once; each window test is independent.
func Summarize(entries []Entry, now time.Time, weekStart time.Weekday) Summary {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStartAt, weekEndAt := WeekBounds(now, weekStart)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var s Summary
	for _, e := range entries {
		v, ok := AmountValue(e.Amount)
		if !ok {
			continue
		}
		totals := &s.Expense
		if e.Type == Income {
			totals = &s.Income
		}
		t := e.CreatedAt
		if !t.Before(dayStart) && t.Before(dayEnd) {
			totals.Today += v
		}
		if !t.Before(weekStartAt) && !t.After(weekEndAt) {
			totals.Week += v
		}
		if !t.Before(monthStart) && t.Before(monthEnd) {
			totals.Month += v
		}
	}
	return s
}
