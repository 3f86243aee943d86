package domain

import (
	"fmt"
	"time"
)

// Window is a closed-open [Start, End) date interval bounding the commit query.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates the interval. End may equal Start (a one-week grid).
func NewWindow(start, end time.Time) (Window, error) {
	if end.Before(start) {
		return Window{}, &ValidationError{
			Msg: fmt.Sprintf("end date %s is before start date %s",
				end.Format("2006-01-02"), start.Format("2006-01-02")),
		}
	}
	return Window{Start: start.UTC(), End: end.UTC()}, nil
}

// WeekStart returns the Monday 00:00 UTC on or before t.
// Every commit belongs to the week starting at the most recent Monday.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeekGrid returns the ordered week-start instants spanning the window:
// the Monday on or before Start through the Monday on or before End,
// stepping exactly 7 days. The grid always has at least one entry and is
// strictly increasing.
func (w Window) WeekGrid() []time.Time {
	first := WeekStart(w.Start)
	last := WeekStart(w.End)
	weeks := make([]time.Time, 0, int(last.Sub(first)/(7*24*time.Hour))+1)
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		weeks = append(weeks, cur)
	}
	return weeks
}
