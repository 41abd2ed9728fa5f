package tracker

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAgenda(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreateClass(t, store, "CS101")
	mustCreateClass(t, store, "MATH200")
	today := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	mustCreateAssignment(t, store, "MATH200", Assignment{Due: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), Name: "Set 3"})
	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), Name: "HW3"})
	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), Name: "Reading"})
	done := mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC), Name: "HW2"})
	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC), Name: "Too old"})
	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC), Name: "Too far"})
	if err := store.SetCompletion(done, true); err != nil {
		t.Fatalf("set completion: %v", err)
	}

	days := store.Agenda(today, 3, 10)

	if len(days) != 2 {
		t.Fatalf("expected 2 agenda days, got %d: %+v", len(days), days)
	}
	if !days[0].Date.Equal(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected first day 2025-03-07, got %s", days[0].Date)
	}
	if len(days[0].Items) != 1 || !days[0].Items[0].Completed {
		t.Fatalf("expected completed HW2 on the first day, got %+v", days[0].Items)
	}

	var order []string
	for _, item := range days[1].Items {
		order = append(order, item.Class+"/"+item.Assignment.Name)
	}
	if got := strings.Join(order, ","); got != "CS101/Reading,CS101/HW3,MATH200/Set 3" {
		t.Fatalf("unexpected order: %s", got)
	}
}

func TestClassView(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreateClass(t, store, "CS101")
	today := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC), Name: "Later"})
	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), Name: "Edge"})
	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 6, 23, 59, 0, 0, time.UTC), Name: "Old"})
	mustCreateAssignment(t, store, "CS101", Assignment{Due: time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC), Name: "Also later"})

	items, err := store.ClassView("CS101", today, 3)
	if err != nil {
		t.Fatalf("class view: %v", err)
	}

	var names []string
	for _, item := range items {
		names = append(names, item.Assignment.Name)
	}
	if got := strings.Join(names, ","); got != "Edge,Also later,Later" {
		t.Fatalf("unexpected class view %s", got)
	}

	all, err := store.ClassView("CS101", today, -1)
	if err != nil || len(all) != 4 {
		t.Fatalf("expected every assignment with a negative window, got %d (%v)", len(all), err)
	}

	if _, err := store.ClassView("MISSING", today, 3); !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}
