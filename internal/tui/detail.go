package tui

import (
	"strings"
	"time"

	"github.com/amonks/classwork/internal/ui"
	"github.com/amonks/classwork/tracker"
)

const agendaLabel = "TODO This Week"

type detailLine struct {
	text string
	// row indexes detailModel.rows, or -1 for headings and spacers.
	row int
}

// detailModel is the right pane: the weekly agenda or one class.
type detailModel struct {
	width   int
	height  int
	focused bool
	title   string
	lines   []detailLine
	rows    []tracker.AgendaItem
	cursor  int
}

func (d *detailModel) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *detailModel) Focus() { d.focused = true }
func (d *detailModel) Blur()  { d.focused = false }

// SetAgenda shows the agenda days. The cursor stays on the same uid when it
// is still present.
func (d *detailModel) SetAgenda(days []tracker.AgendaDay, today time.Time) {
	selected, hadSelection := d.Selected()
	d.title = agendaLabel
	d.lines = nil
	d.rows = nil
	for i, day := range days {
		if i > 0 {
			d.lines = append(d.lines, detailLine{row: -1})
		}
		heading := "Due " + day.Date.Format("Mon, Jan _2")
		if notice := ui.DayNotice(day.Date, today); notice != "" {
			heading += " " + noticeStyle.Render("("+notice+")")
		}
		d.lines = append(d.lines, detailLine{text: labelStyle.Render(heading), row: -1})
		for _, item := range day.Items {
			text := ui.CompletionBox(item.Completed) + " " + ui.FormatClock(item.Assignment.Due) + "  " + item.Class + "  " + item.Assignment.Name
			d.appendRow(item, text)
		}
	}
	d.restoreCursor(selected, hadSelection)
}

// SetClass shows the assignments of one class.
func (d *detailModel) SetClass(class string, items []tracker.AgendaItem) {
	selected, hadSelection := d.Selected()
	d.title = class
	d.lines = nil
	d.rows = nil
	for _, item := range items {
		text := ui.CompletionBox(item.Completed) + " " + item.Assignment.Name + "  " + ui.FormatClassDue(item.Assignment.Due)
		d.appendRow(item, text)
	}
	d.restoreCursor(selected, hadSelection)
}

func (d *detailModel) appendRow(item tracker.AgendaItem, text string) {
	if item.Ghost {
		text += " " + valueMuted.Render("(generated)")
	}
	d.lines = append(d.lines, detailLine{text: text, row: len(d.rows)})
	d.rows = append(d.rows, item)
}

func (d *detailModel) restoreCursor(selected tracker.AgendaItem, hadSelection bool) {
	if hadSelection {
		for i, row := range d.rows {
			if row.UID == selected.UID && row.Class == selected.Class {
				d.cursor = i
				return
			}
		}
	}
	d.cursor = min(d.cursor, max(len(d.rows)-1, 0))
}

// Selected returns the row under the cursor.
func (d detailModel) Selected() (tracker.AgendaItem, bool) {
	if d.cursor < 0 || d.cursor >= len(d.rows) {
		return tracker.AgendaItem{}, false
	}
	return d.rows[d.cursor], true
}

// Move shifts the cursor by delta rows, clamped to the list.
func (d *detailModel) Move(delta int) {
	if len(d.rows) == 0 {
		d.cursor = 0
		return
	}
	d.cursor = min(max(d.cursor+delta, 0), len(d.rows)-1)
}

func (d detailModel) View() string {
	header := labelStyle.Render(d.title)
	if len(d.rows) == 0 {
		return header + "\n\n" + valueMuted.Render("Nothing due.")
	}

	cursorLine := 0
	rendered := make([]string, 0, len(d.lines))
	for i, line := range d.lines {
		text := truncateText(line.text, d.width)
		if line.row >= 0 && line.row == d.cursor {
			cursorLine = i
			if d.focused {
				text = selectedStyle.Render(text)
			}
		}
		rendered = append(rendered, text)
	}

	visible := max(d.height-2, 1)
	offset := 0
	if cursorLine >= visible {
		offset = cursorLine - visible + 1
	}
	end := min(offset+visible, len(rendered))
	return header + "\n\n" + strings.Join(rendered[offset:end], "\n")
}
