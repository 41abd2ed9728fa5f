package ui

import (
	"fmt"
	"time"
)

const (
	dayHeadingLayout = "Mon, Jan _2"
	classDueLayout   = "Mon, January _2,"
)

// DayNotice returns "TODAY" or "TOMORROW" when day falls on those dates
// relative to today, and "" otherwise.
func DayNotice(day, today time.Time) string {
	switch {
	case sameDate(day, today):
		return "TODAY"
	case sameDate(day, today.AddDate(0, 0, 1)):
		return "TOMORROW"
	default:
		return ""
	}
}

// DayHeading renders an agenda heading such as "Due Mon, Mar  3 (TODAY)".
func DayHeading(day, today time.Time) string {
	heading := "Due " + day.Format(dayHeadingLayout)
	if notice := DayNotice(day, today); notice != "" {
		heading += " (" + notice + ")"
	}
	return heading
}

// FormatClock renders a 12-hour clock padded to a fixed width, " 3:04 PM".
func FormatClock(t time.Time) string {
	return fmt.Sprintf("%8s", t.Format("3:04 PM"))
}

// FormatClassDue renders the due column of the class view,
// "Due Mon, January  2,  3:04 PM".
func FormatClassDue(t time.Time) string {
	return "Due " + t.Format(classDueLayout) + " " + FormatClock(t)
}

// CompletionBox renders a completion checkbox.
func CompletionBox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
