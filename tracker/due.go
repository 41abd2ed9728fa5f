package tracker

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the accepted layout for due dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// ClockLayout is the accepted layout for due times (24-hour HH:MM).
	ClockLayout = "15:04"
)

// ParseDue combines a date and a 24-hour clock time into a timestamp in loc.
// It fails when either part is malformed or when the wall-clock time does not
// name exactly one instant in loc (it falls in a DST gap or overlap).
func ParseDue(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidDue, date)
	}
	hm, err := time.Parse(ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidDue, clock)
	}

	year, month, dayOfMonth := day.Date()
	due := time.Date(year, month, dayOfMonth, hm.Hour(), hm.Minute(), 0, 0, loc)
	if !sameWallClock(due, year, month, dayOfMonth, hm.Hour(), hm.Minute()) {
		return time.Time{}, fmt.Errorf("%w: %s %s does not exist in %s", ErrInvalidDue, date, clock, loc)
	}
	if ambiguousWallClock(due, year, month, dayOfMonth, hm.Hour(), hm.Minute()) {
		return time.Time{}, fmt.Errorf("%w: %s %s is ambiguous in %s", ErrInvalidDue, date, clock, loc)
	}
	return due, nil
}

func sameWallClock(t time.Time, year int, month time.Month, day, hour, minute int) bool {
	y, m, d := t.Date()
	return y == year && m == month && d == day && t.Hour() == hour && t.Minute() == minute
}

// ambiguousWallClock reports whether another zone offset in effect near t
// maps the same wall-clock reading to a different instant.
func ambiguousWallClock(t time.Time, year int, month time.Month, day, hour, minute int) bool {
	_, offset := t.Zone()
	wall := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	for _, probe := range []time.Time{t.Add(-12 * time.Hour), t.Add(12 * time.Hour)} {
		_, other := probe.Zone()
		if other == offset {
			continue
		}
		candidate := wall.Add(-time.Duration(other) * time.Second).In(t.Location())
		if !candidate.Equal(t) && sameWallClock(candidate, year, month, day, hour, minute) {
			return true
		}
	}
	return false
}
