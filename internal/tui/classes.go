package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// classItem is a row of the left pane. The zero class is the weekly agenda.
type classItem struct {
	class string
	count int
}

func (item classItem) FilterValue() string {
	return item.class
}

func (item classItem) isAgenda() bool {
	return item.class == ""
}

type classItemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
}

func newClassItemDelegate() classItemDelegate {
	return classItemDelegate{
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: selectedStyle,
	}
}

func (d classItemDelegate) Height() int                             { return 1 }
func (d classItemDelegate) Spacing() int                            { return 0 }
func (d classItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d classItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(classItem)
	if !ok {
		return
	}

	style := d.normalStyle
	if index == m.Index() {
		style = d.selectedStyle
	}
	fmt.Fprint(w, style.Render(formatClassItem(item, m.Width())))
}

func formatClassItem(item classItem, width int) string {
	line := agendaLabel
	if !item.isAgenda() {
		line = fmt.Sprintf("%s (%d)", item.class, item.count)
	}
	return truncateText(line, width)
}

func truncateText(value string, width int) string {
	if width <= 0 || lipgloss.Width(value) <= width {
		return value
	}
	if width <= 3 {
		return truncate.String(value, uint(width))
	}
	return truncate.StringWithTail(value, uint(width), "...")
}

func classItems(classes []string, counts map[string]int) []list.Item {
	items := make([]list.Item, 0, len(classes)+1)
	items = append(items, classItem{})
	for _, class := range classes {
		items = append(items, classItem{class: class, count: counts[class]})
	}
	return items
}
