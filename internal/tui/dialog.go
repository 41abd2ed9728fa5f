package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/classwork/internal/editor"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAddClass
	dialogAddAssignment
)

type dialogAction int

const (
	dialogContinue dialogAction = iota
	dialogSubmit
	dialogCancel
)

// dialogModel is a small form of labeled text inputs.
type dialogModel struct {
	kind   dialogKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(value string) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 200
	input.Width = 40
	input.Cursor.SetMode(cursor.CursorStatic)
	input.SetValue(value)
	return input
}

func newClassDialog() dialogModel {
	d := dialogModel{
		kind:   dialogAddClass,
		title:  "New class",
		labels: []string{"Name"},
		inputs: []textinput.Model{newInput("")},
	}
	d.setFocus(0)
	return d
}

func newAssignmentDialog(data editor.AssignmentData) dialogModel {
	d := dialogModel{
		kind:   dialogAddAssignment,
		title:  "New assignment",
		labels: []string{"Class", "Name", "Date", "Time"},
		inputs: []textinput.Model{
			newInput(data.Class),
			newInput(data.Name),
			newInput(data.Date),
			newInput(data.Time),
		},
	}
	d.inputs[2].Placeholder = "YYYY-MM-DD"
	d.inputs[3].Placeholder = "HH:MM"
	start := 1
	if strings.TrimSpace(data.Class) == "" {
		start = 0
	}
	d.setFocus(start)
	return d
}

func (d *dialogModel) setFocus(index int) {
	if len(d.inputs) == 0 {
		return
	}
	index = (index + len(d.inputs)) % len(d.inputs)
	for i := range d.inputs {
		if i == index {
			d.inputs[i].Focus()
		} else {
			d.inputs[i].Blur()
		}
	}
	d.focus = index
}

func (d dialogModel) Update(msg tea.KeyMsg) (dialogModel, dialogAction) {
	switch msg.String() {
	case "esc":
		return d, dialogCancel
	case "tab", "down":
		d.setFocus(d.focus + 1)
		return d, dialogContinue
	case "shift+tab", "backtab", "up":
		d.setFocus(d.focus - 1)
		return d, dialogContinue
	case "enter":
		if d.focus == len(d.inputs)-1 {
			return d, dialogSubmit
		}
		d.setFocus(d.focus + 1)
		return d, dialogContinue
	}

	var input textinput.Model
	input, _ = d.inputs[d.focus].Update(msg)
	d.inputs[d.focus] = input
	return d, dialogContinue
}

func (d dialogModel) value(index int) string {
	if index < 0 || index >= len(d.inputs) {
		return ""
	}
	return d.inputs[index].Value()
}

// assignmentData reads the assignment form back.
func (d dialogModel) assignmentData() editor.AssignmentData {
	return editor.AssignmentData{
		Class: d.value(0),
		Name:  d.value(1),
		Date:  d.value(2),
		Time:  d.value(3),
	}
}

func (d dialogModel) View() string {
	width := 0
	for _, label := range d.labels {
		width = max(width, lipgloss.Width(label))
	}
	lines := []string{labelStyle.Render(d.title), ""}
	for i, label := range d.labels {
		marker := "  "
		if i == d.focus {
			marker = selectedBorder.Render("> ")
		}
		padded := label + strings.Repeat(" ", width-lipgloss.Width(label))
		lines = append(lines, marker+padded+"  "+d.inputs[i].View())
	}
	lines = append(lines, "", valueMuted.Render("enter next/submit | tab move | esc cancel"))
	return lipgloss.NewStyle().Border(borderASCII).Padding(1, 2).Render(strings.Join(lines, "\n"))
}
