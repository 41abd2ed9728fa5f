// Package tui is the interactive front end: a class list, the weekly agenda
// or a class view, and dialogs for adding classes and assignments.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/classwork/internal/editor"
	internalstrings "github.com/amonks/classwork/internal/strings"
	"github.com/amonks/classwork/internal/worker"
	"github.com/amonks/classwork/tracker"
)

// Options configures the interactive front end.
type Options struct {
	// Title is shown in the title bar, usually the list file path.
	Title string
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// DaysBefore and DaysAfter bound the agenda around today.
	DaysBefore int
	DaysAfter  int
}

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDeleteClass
)

type model struct {
	ctx         context.Context
	worker      *worker.Worker
	opts        Options
	width       int
	height      int
	focus       focusPane
	classList   list.Model
	detail      detailModel
	dialog      dialogModel
	modal       confirmModal
	snapshot    snapshot
	status      string
	statusLevel statusLevel
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
	target      string
}

// snapshot is everything the views need, read in one worker request.
type snapshot struct {
	today   time.Time
	classes []string
	agenda  []tracker.AgendaDay
	byClass map[string][]tracker.AgendaItem
}

// Run starts the interactive front end against the store owned by w and
// returns when the user quits.
func Run(ctx context.Context, w *worker.Worker, opts Options) error {
	if w == nil {
		return fmt.Errorf("store worker is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, w, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, w *worker.Worker, opts Options) model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	classList := list.New(classItems(nil, nil), newClassItemDelegate(), 0, 0)
	classList.Title = "Classes"
	classList.SetShowStatusBar(false)
	classList.SetFilteringEnabled(false)
	classList.SetShowHelp(false)
	classList.SetShowPagination(false)

	return model{
		ctx:       ctx,
		worker:    w,
		opts:      opts,
		focus:     focusList,
		classList: classList,
		modal:     confirmModal{kind: modalNone},
	}
}

func (m model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case loadedMsg:
		m.handleLoaded(msg)
		return m, nil
	case mutatedMsg:
		return m.handleMutated(msg)
	case tea.KeyMsg:
		if m.dialog.kind != dialogNone {
			return m.updateDialog(msg)
		}
		if m.modal.kind != modalNone {
			return m.updateModal(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading classwork..."
	}
	contentHeight := max(m.height-3, 1)
	leftWidth, rightWidth := splitWidths(m.width)

	listPane := m.renderPane(m.classList.View(), leftWidth, contentHeight, m.focus == focusList)
	detailPane := m.renderPane(m.detail.View(), rightWidth, contentHeight, m.focus == focusDetail)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	view := strings.Join([]string{m.renderTitleBar(), m.renderHelpLine(), content, m.renderStatusLine()}, "\n")
	switch {
	case m.dialog.kind != dialogNone:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialog.View())
	case m.modal.kind != modalNone:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.modal = confirmModal{kind: modalHelp}
		return m, nil
	case "esc":
		if m.status != "" {
			m.setStatus("", statusNone)
			return m, nil
		}
		return m.setFocus(focusList), nil
	case "s":
		return m, m.saveCmd()
	case "c":
		m.dialog = newClassDialog()
		return m, nil
	case "a":
		return m.openAssignmentDialog(), nil
	}

	if m.focus == focusList {
		return m.handleListKey(key)
	}
	return m.handleDetailKey(key)
}

func (m model) handleListKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.moveClassSelection(-1)
	case "down", "j":
		m.moveClassSelection(1)
	case "home":
		m.moveClassSelection(-len(m.classList.Items()))
	case "end":
		m.moveClassSelection(len(m.classList.Items()))
	case "enter", "right", "l":
		return m.setFocus(focusDetail), nil
	case "d", "delete":
		item, ok := m.currentClassItem()
		if !ok || item.isAgenda() {
			m.setStatus("Select a class to delete", statusError)
			return m, nil
		}
		m.modal = confirmModal{
			kind:        modalDeleteClass,
			message:     fmt.Sprintf("Delete class %s and its assignments?", item.class),
			confirmText: "Delete",
			cancelText:  "Cancel",
			selected:    1,
			target:      item.class,
		}
	}
	return m, nil
}

func (m model) handleDetailKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.detail.Move(-1)
	case "down", "j":
		m.detail.Move(1)
	case "left", "h":
		return m.setFocus(focusList), nil
	case " ", "x", "enter":
		row, ok := m.detail.Selected()
		if !ok {
			return m, nil
		}
		return m, m.setCompletionCmd(row.UID, !row.Completed)
	}
	return m, nil
}

func (m model) setFocus(target focusPane) model {
	m.focus = target
	if target == focusDetail {
		m.detail.Focus()
	} else {
		m.detail.Blur()
	}
	return m
}

func (m *model) moveClassSelection(delta int) {
	items := m.classList.Items()
	if len(items) == 0 {
		return
	}
	next := min(max(m.classList.Index()+delta, 0), len(items)-1)
	m.classList.Select(next)
	m.refreshDetail()
}

func (m model) currentClassItem() (classItem, bool) {
	item := m.classList.SelectedItem()
	if item == nil {
		return classItem{}, false
	}
	current, ok := item.(classItem)
	return current, ok
}

func (m model) openAssignmentDialog() model {
	class := ""
	if item, ok := m.currentClassItem(); ok && !item.isAgenda() {
		class = item.class
	} else if row, ok := m.detail.Selected(); ok && m.focus == focusDetail {
		class = row.Class
	}
	m.dialog = newAssignmentDialog(editor.DefaultAssignmentData(class, m.today()))
	return m
}

func (m model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	dialog, action := m.dialog.Update(msg)
	m.dialog = dialog
	switch action {
	case dialogCancel:
		m.dialog = dialogModel{}
		return m, nil
	case dialogSubmit:
		return m.submitDialog()
	}
	return m, nil
}

func (m model) submitDialog() (tea.Model, tea.Cmd) {
	switch m.dialog.kind {
	case dialogAddClass:
		name := strings.TrimSpace(m.dialog.value(0))
		if name == "" {
			m.setStatus(tracker.ErrEmptyClassName.Error(), statusError)
			return m, nil
		}
		m.dialog = dialogModel{}
		return m, m.createClassCmd(name)
	case dialogAddAssignment:
		parsed, err := editor.ParseAssignmentData(m.dialog.assignmentData(), m.location())
		if err != nil {
			m.setStatus(describeError(err), statusError)
			return m, nil
		}
		m.dialog = dialogModel{}
		return m, m.createAssignmentCmd(parsed.Class, parsed.Assignment)
	}
	m.dialog = dialogModel{}
	return m, nil
}

func (m model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal.kind == modalHelp {
		switch msg.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}
	switch msg.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		m.modal.selected = 1 - m.modal.selected
		return m, nil
	case "y":
		return m.resolveModal(true)
	case "n", "esc":
		return m.resolveModal(false)
	case "enter":
		return m.resolveModal(m.modal.selected == 0)
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	modal := m.modal
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		return m, nil
	}
	if modal.kind == modalDeleteClass {
		return m, m.deleteClassCmd(modal.target)
	}
	return m, nil
}

func (m *model) handleLoaded(msg loadedMsg) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Load failed: %s", describeError(msg.err)), statusError)
		return
	}
	m.snapshot = msg.snapshot

	selected := ""
	if item, ok := m.currentClassItem(); ok {
		selected = item.class
	}
	counts := make(map[string]int, len(msg.snapshot.classes))
	for class, items := range msg.snapshot.byClass {
		counts[class] = len(items)
	}
	m.classList.SetItems(classItems(msg.snapshot.classes, counts))
	m.classList.Select(0)
	for i, item := range m.classList.Items() {
		if item.(classItem).class == selected {
			m.classList.Select(i)
			break
		}
	}
	m.refreshDetail()
}

func (m *model) refreshDetail() {
	item, ok := m.currentClassItem()
	if !ok || item.isAgenda() {
		m.detail.SetAgenda(m.snapshot.agenda, m.snapshot.today)
		return
	}
	m.detail.SetClass(item.class, m.snapshot.byClass[item.class])
}

func (m model) handleMutated(msg mutatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(describeError(msg.err), statusError)
		return m, m.loadCmd()
	}
	m.setStatus(msg.status, statusInfo)
	return m, m.loadCmd()
}

func (m *model) resize() {
	contentHeight := max(m.height-3, 1)
	leftWidth, rightWidth := splitWidths(m.width)
	m.classList.SetSize(max(leftWidth-4, 1), max(contentHeight-2, 1))
	m.detail.SetSize(max(rightWidth-4, 1), max(contentHeight-2, 1))
}

func splitWidths(width int) (int, int) {
	left := width / 3
	if left < 24 {
		left = 24
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) renderTitleBar() string {
	content := titleStyle.Render("classwork")
	if m.opts.Title != "" {
		content += " " + m.opts.Title
	}
	helpHint := valueMuted.Render("Press ? for help")
	spacer := strings.Repeat(" ", max(m.width-lipgloss.Width(content)-lipgloss.Width(helpHint), 1))
	return titleBarStyle.Width(m.width).Render(content + spacer + helpHint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	return style.Width(max(width, 0)).Height(max(height, 0)).Render(content)
}

func (m model) renderStatusLine() string {
	if strings.TrimSpace(m.status) == "" {
		return ""
	}
	style := valueMuted
	switch m.statusLevel {
	case statusError:
		style = statusErrorStyle
	case statusInfo:
		style = statusSuccessStyle
	}
	return style.Render(truncateText(m.status, m.width))
}

func (m model) renderHelpLine() string {
	return helpBarStyle.Width(m.width).Render(truncateText(m.helpSummary(), m.width))
}

func (m model) helpSummary() string {
	if m.focus == focusDetail {
		return "Keys: up/down move | space toggle done | a add | s save | esc back | ? help | q quit"
	}
	return "Keys: up/down move | enter open | c new class | a add | d delete class | s save | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) modalView() string {
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	if m.modal.kind == modalHelp {
		return modalStyle.Render(helpContent())
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	return modalStyle.Render(strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n"))
}

func helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"s: save",
		"c: new class",
		"a: new assignment",
		"?: toggle help",
		"",
		labelStyle.Render("Classes"),
		"up/down or j/k: move selection",
		"enter: focus assignments",
		"d: delete class",
		"",
		labelStyle.Render("Assignments"),
		"space: toggle completion",
		"esc: back to classes",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

func (m model) today() time.Time {
	return m.opts.Now().In(m.location())
}

func (m model) location() *time.Location {
	if m.snapshot.today.IsZero() {
		return time.Local
	}
	return m.snapshot.today.Location()
}

// describeError turns store errors into one-line notices.
func describeError(err error) string {
	if errors.Is(err, editor.ErrDueFormat) {
		return editor.ErrDueFormat.Error()
	}
	return internalstrings.FirstLine(err.Error())
}

func (m model) loadCmd() tea.Cmd {
	now := m.opts.Now()
	before, after := m.opts.DaysBefore, m.opts.DaysAfter
	return func() tea.Msg {
		var snap snapshot
		err := m.worker.Do(m.ctx, func(s *tracker.Store) error {
			snap.today = now.In(s.Location())
			snap.classes = s.Classes()
			snap.agenda = s.Agenda(snap.today, before, after)
			snap.byClass = make(map[string][]tracker.AgendaItem, len(snap.classes))
			for _, class := range snap.classes {
				items, err := s.ClassView(class, snap.today, before)
				if err != nil {
					return err
				}
				snap.byClass[class] = items
			}
			return nil
		})
		return loadedMsg{snapshot: snap, err: err}
	}
}

func (m model) mutateCmd(status string, fn func(*tracker.Store) error) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{status: status, err: m.worker.Do(m.ctx, fn)}
	}
}

func (m model) setCompletionCmd(uid tracker.UID, completed bool) tea.Cmd {
	status := "Marked not done"
	if completed {
		status = "Marked done"
	}
	return m.mutateCmd(status, func(s *tracker.Store) error {
		return s.SetCompletion(uid, completed)
	})
}

func (m model) createClassCmd(name string) tea.Cmd {
	return m.mutateCmd("Added class "+name, func(s *tracker.Store) error {
		return s.CreateClass(name)
	})
}

func (m model) createAssignmentCmd(class string, a tracker.Assignment) tea.Cmd {
	return m.mutateCmd("Added "+a.Name, func(s *tracker.Store) error {
		_, err := s.CreateAssignment(class, a)
		return err
	})
}

func (m model) deleteClassCmd(name string) tea.Cmd {
	return m.mutateCmd("Deleted class "+name, func(s *tracker.Store) error {
		return s.DeleteClass(name)
	})
}

func (m model) saveCmd() tea.Cmd {
	return m.mutateCmd("Saved", func(s *tracker.Store) error {
		return s.Save()
	})
}

type loadedMsg struct {
	snapshot snapshot
	err      error
}

type mutatedMsg struct {
	status string
	err    error
}
