package tracker

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// AgendaItem is one assignment shown on an agenda day.
type AgendaItem struct {
	UID        UID        `json:"uid"`
	Class      string     `json:"class"`
	Assignment Assignment `json:"assignment"`
	Completed  bool       `json:"completed"`
	Ghost      bool       `json:"ghost"`
}

// AgendaDay groups the assignments due on one calendar date.
type AgendaDay struct {
	Date  time.Time    `json:"date"`
	Items []AgendaItem `json:"items"`
}

// Agenda returns the days from before days ahead of today through after days
// past it that have at least one assignment due, in date order. Items within
// a day are ordered by due time, then class, then name.
func (s *Store) Agenda(today time.Time, before, after int) []AgendaDay {
	first := civilDate(today).AddDate(0, 0, -before)
	last := civilDate(today).AddDate(0, 0, after)

	byDate := make(map[time.Time][]AgendaItem)
	for class, uids := range s.classes {
		for _, uid := range uids {
			a := s.assignments[uid]
			day := civilDate(a.Due)
			if day.Before(first) || day.After(last) {
				continue
			}
			byDate[day] = append(byDate[day], AgendaItem{
				UID:        uid,
				Class:      class,
				Assignment: a,
				Completed:  s.completion[uid],
				Ghost:      s.IsGhost(uid),
			})
		}
	}

	days := make([]AgendaDay, 0, len(byDate))
	for date, items := range byDate {
		slices.SortFunc(items, compareAgendaItems)
		days = append(days, AgendaDay{Date: date, Items: items})
	}
	slices.SortFunc(days, func(a, b AgendaDay) int {
		return a.Date.Compare(b.Date)
	})
	return days
}

func compareAgendaItems(a, b AgendaItem) int {
	if c := a.Assignment.Due.Compare(b.Assignment.Due); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Class, b.Class); c != 0 {
		return c
	}
	return cmp.Compare(a.Assignment.Name, b.Assignment.Name)
}

// ClassView returns the assignments of class due no earlier than before days
// ahead of today, ordered by due time then name. A negative before returns
// every assignment of the class.
func (s *Store) ClassView(class string, today time.Time, before int) ([]AgendaItem, error) {
	uids, ok := s.classes[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, class)
	}
	first := civilDate(today).AddDate(0, 0, -before)

	items := make([]AgendaItem, 0, len(uids))
	for _, uid := range uids {
		a := s.assignments[uid]
		if before >= 0 && civilDate(a.Due).Before(first) {
			continue
		}
		items = append(items, AgendaItem{
			UID:        uid,
			Class:      class,
			Assignment: a,
			Completed:  s.completion[uid],
			Ghost:      s.IsGhost(uid),
		})
	}
	slices.SortStableFunc(items, func(a, b AgendaItem) int {
		return CompareAssignments(a.Assignment, b.Assignment)
	})
	return items, nil
}
