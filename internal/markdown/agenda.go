package markdown

import (
	"strings"
	"time"

	"github.com/amonks/classwork/internal/ui"
	"github.com/amonks/classwork/tracker"
)

// AgendaTitle heads the weekly agenda.
const AgendaTitle = "TODO This Week"

// Agenda builds the weekly agenda as markdown: one section per day, one task
// list item per assignment.
func Agenda(days []tracker.AgendaDay, today time.Time) string {
	var b strings.Builder
	b.WriteString(Heading(1, AgendaTitle))
	b.WriteString("\n")
	if len(days) == 0 {
		b.WriteString("\nNothing due.\n")
		return b.String()
	}
	for _, day := range days {
		b.WriteString("\n")
		b.WriteString(Heading(2, ui.DayHeading(day.Date, today)))
		b.WriteString("\n\n")
		for _, item := range day.Items {
			b.WriteString("- ")
			b.WriteString(ui.CompletionBox(item.Completed))
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(ui.FormatClock(item.Assignment.Due)))
			b.WriteString(" **")
			b.WriteString(Escape(item.Class))
			b.WriteString("** ")
			b.WriteString(Escape(item.Assignment.Name))
			if item.Ghost {
				b.WriteString(" _(generated)_")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
