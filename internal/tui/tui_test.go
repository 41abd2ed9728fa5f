package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/classwork/internal/worker"
	"github.com/amonks/classwork/tracker"
)

var testNow = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (model, *worker.Worker) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "todolist")
	store, err := tracker.Open(context.Background(), path, tracker.OpenOptions{Location: time.UTC})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.CreateClass("CS101"); err != nil {
		t.Fatalf("create class: %v", err)
	}
	if _, err := store.CreateAssignment("CS101", tracker.Assignment{
		Due:  time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC),
		Name: "HW1",
	}); err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	w := worker.Start(store)
	t.Cleanup(func() {
		_ = w.Stop()
	})

	m := newModel(context.Background(), w, Options{
		Now:        func() time.Time { return testNow },
		DaysBefore: 3,
		DaysAfter:  10,
	})
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return run(t, m, m.Init()), w
}

func apply(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	next, cmd := m.Update(msg)
	return run(t, next.(model), cmd)
}

func run(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()

	for i := 0; cmd != nil; i++ {
		if i > 10 {
			t.Fatal("command chain did not settle")
		}
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		next, nextCmd := m.Update(msg)
		m = next.(model)
		cmd = nextCmd
	}
	return m
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()

	for _, key := range keys {
		m = apply(t, m, keyMsg(key))
	}
	return m
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()

	return apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func withStore(t *testing.T, w *worker.Worker, fn func(*tracker.Store) error) {
	t.Helper()

	if err := w.Do(context.Background(), fn); err != nil {
		t.Fatalf("store request: %v", err)
	}
}

func TestLoadShowsAgendaAndClasses(t *testing.T) {
	m, _ := newTestModel(t)

	items := m.classList.Items()
	if len(items) != 2 {
		t.Fatalf("expected agenda plus one class, got %d items", len(items))
	}
	if !items[0].(classItem).isAgenda() || items[1].(classItem).class != "CS101" {
		t.Fatalf("unexpected items %+v", items)
	}

	view := m.View()
	for _, want := range []string{agendaLabel, "CS101 (1)", "HW1", "TOMORROW"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestToggleCompletion(t *testing.T) {
	m, w := newTestModel(t)

	m = press(t, m, "enter", "space")

	withStore(t, w, func(s *tracker.Store) error {
		uid := tracker.DeriveUID(tracker.Assignment{Due: time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC), Name: "HW1"})
		completed, err := s.Completion(uid)
		if err != nil {
			return err
		}
		if !completed {
			t.Error("expected HW1 to be completed")
		}
		return nil
	})
	if !strings.Contains(m.View(), "[x]") {
		t.Fatalf("expected the agenda to show the completed box:\n%s", m.View())
	}
	if m.status != "Marked done" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestAddClassDialog(t *testing.T) {
	m, w := newTestModel(t)

	m = press(t, m, "c")
	if m.dialog.kind != dialogAddClass {
		t.Fatal("expected class dialog to open")
	}
	m = typeText(t, m, "MATH200")
	m = press(t, m, "enter")

	if m.dialog.kind != dialogNone {
		t.Fatal("expected dialog to close")
	}
	withStore(t, w, func(s *tracker.Store) error {
		if !s.HasClass("MATH200") {
			t.Error("expected MATH200 to be created")
		}
		return nil
	})
	if len(m.classList.Items()) != 3 {
		t.Fatalf("expected class list to reload, got %d items", len(m.classList.Items()))
	}
}

func TestAddAssignmentDialogDefaults(t *testing.T) {
	m, w := newTestModel(t)

	m = press(t, m, "down", "a")
	if m.dialog.kind != dialogAddAssignment {
		t.Fatal("expected assignment dialog to open")
	}
	data := m.dialog.assignmentData()
	if data.Class != "CS101" || data.Date != "2025-03-04" || data.Time != "08:00" {
		t.Fatalf("unexpected defaults %+v", data)
	}

	m = typeText(t, m, "Quiz")
	m = press(t, m, "enter", "enter", "enter")

	if m.dialog.kind != dialogNone {
		t.Fatalf("expected dialog to close, status %q", m.status)
	}
	withStore(t, w, func(s *tracker.Store) error {
		uid := tracker.DeriveUID(tracker.Assignment{Due: time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC), Name: "Quiz"})
		if _, err := s.Assignment(uid); err != nil {
			t.Errorf("expected Quiz to be created: %v", err)
		}
		return nil
	})
}

func TestAddAssignmentBadDateKeepsDialogOpen(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "down", "a")
	m = typeText(t, m, "Quiz")
	m = press(t, m, "enter", "ctrl+u")
	m = typeText(t, m, "tomorrow")
	m = press(t, m, "enter", "enter")

	if m.dialog.kind != dialogAddAssignment {
		t.Fatal("expected dialog to stay open")
	}
	if m.status != "formatting error with date/time" || m.statusLevel != statusError {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = press(t, m, "esc")
	if m.dialog.kind != dialogNone {
		t.Fatal("expected esc to cancel the dialog")
	}
	m = press(t, m, "esc")
	if m.status != "" {
		t.Fatalf("expected esc to dismiss the notice, got %q", m.status)
	}
}

func TestDeleteClassConfirm(t *testing.T) {
	m, w := newTestModel(t)

	m = press(t, m, "down", "d")
	if m.modal.kind != modalDeleteClass {
		t.Fatal("expected delete confirmation")
	}
	m = press(t, m, "y")

	withStore(t, w, func(s *tracker.Store) error {
		if s.HasClass("CS101") {
			t.Error("expected CS101 to be deleted")
		}
		return nil
	})
	if len(m.classList.Items()) != 1 {
		t.Fatalf("expected only the agenda entry, got %d items", len(m.classList.Items()))
	}
}

func TestDeleteAgendaIsRejected(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "d")

	if m.modal.kind != modalNone {
		t.Fatal("expected no confirmation for the agenda entry")
	}
	if m.statusLevel != statusError {
		t.Fatalf("expected an error notice, got %q", m.status)
	}
}

func TestSaveKey(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "s")

	if m.status != "Saved" {
		t.Fatalf("expected Saved status, got %q", m.status)
	}
}

func TestClassView(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "down")

	view := m.View()
	if !strings.Contains(view, "Due Tue, March  4,  8:00 AM") {
		t.Fatalf("expected class view due column:\n%s", view)
	}
}
