package timesheet

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// LocalDay returns the calendar date of t in loc as YYYY-MM-DD.
func LocalDay(t time.Time, loc *time.Location) string {
	return t.In(location(loc)).Format(DateLayout)
}

// DayBounds returns [midnight, next midnight) of the local day containing t.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	l := t.In(location(loc))
	start := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, l.Location())
	return start, start.AddDate(0, 0, 1)
}

// ParseDate parses YYYY-MM-DD as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, location(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// RangeBounds turns an inclusive date range into [start midnight, end+1 midnight).
func RangeBounds(startDate, endDate string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseDate(startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be before or equal to end_date")
	}
	return start, end.AddDate(0, 0, 1), nil
}

// WeekOf returns Monday..Sunday of the week containing t.
func WeekOf(t time.Time, loc *time.Location) (time.Time, time.Time) {
	day, _ := DayBounds(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// Dates lists every date string from start to end inclusive.
func Dates(start, end time.Time, loc *time.Location) []string {
	var out []string
	s, _ := DayBounds(start, loc)
	for d := s; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out
}
