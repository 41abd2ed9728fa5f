package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/classwork/internal/listflags"
	"github.com/amonks/classwork/internal/markdown"
	"github.com/amonks/classwork/internal/ui"
	"github.com/amonks/classwork/tracker"
)

var weekCmd = &cobra.Command{
	Use:     "week",
	Short:   "Show what is due this week",
	Aliases: []string{"agenda"},
	Long: `Show assignments due from a few days ago through the coming days,
grouped by day.

With --markdown the agenda is written as markdown, rendered when stdout is a
terminal.`,
	Args: cobra.NoArgs,
	RunE: runWeek,
}

var (
	weekMarkdown bool
	weekJSON     bool
	weekBefore   int
	weekAfter    int
)

var rangeCmd = &cobra.Command{
	Use:   "range <start> [end]",
	Short: "List assignments due between two dates, inclusive",
	Long: `List assignments due between two dates (YYYY-MM-DD), inclusive, grouped
by class. The end defaults to a few weeks after the start.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRange,
}

var rangeJSON bool

func init() {
	rootCmd.AddCommand(weekCmd, rangeCmd)

	weekCmd.Flags().BoolVarP(&weekMarkdown, "markdown", "m", false, "Write the agenda as markdown")
	weekCmd.Flags().IntVar(&weekBefore, "before", -1, "Days before today to include (default from config)")
	weekCmd.Flags().IntVar(&weekAfter, "after", -1, "Days after today to include (default from config)")
	listflags.AddJSONFlag(weekCmd, &weekJSON)
	listflags.AddJSONFlag(rangeCmd, &rangeJSON)
}

func runWeek(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, s *settings) error {
		before := s.config.Agenda.DaysBefore
		if weekBefore >= 0 {
			before = weekBefore
		}
		after := s.config.Agenda.DaysAfter
		if weekAfter >= 0 {
			after = weekAfter
		}

		today := time.Now()
		days := store.Agenda(today, before, after)
		w := cmd.OutOrStdout()

		switch {
		case weekJSON:
			return encodeJSON(w, agendaJSON(days))
		case weekMarkdown:
			source := markdown.Agenda(days, today)
			if width := terminalWidth(); width > 0 {
				_, err := w.Write(markdown.SafeRender(width, 0, []byte(source)))
				return err
			}
			_, err := io.WriteString(w, source)
			return err
		default:
			writeAgenda(w, days, today, store.UIDPrefixLengths())
			return nil
		}
	})
}

type agendaDayJSON struct {
	Date        string           `json:"date"`
	Assignments []assignmentJSON `json:"assignments"`
}

func agendaJSON(days []tracker.AgendaDay) []agendaDayJSON {
	out := make([]agendaDayJSON, 0, len(days))
	for _, day := range days {
		out = append(out, agendaDayJSON{
			Date:        day.Date.Format(tracker.DateLayout),
			Assignments: toAssignmentsJSON(day.Items),
		})
	}
	return out
}

func writeAgenda(w io.Writer, days []tracker.AgendaDay, today time.Time, prefixes map[tracker.UID]int) {
	fmt.Fprintln(w, ui.Header(markdown.AgendaTitle))
	if len(days) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, agendaEmptyListMessage())
		return
	}
	for _, day := range days {
		fmt.Fprintln(w)
		heading := ui.DayHeading(day.Date, today)
		if ui.DayNotice(day.Date, today) != "" {
			heading = ui.Notice(heading)
		}
		fmt.Fprintln(w, heading)

		rows := make([][]string, 0, len(day.Items))
		for _, item := range day.Items {
			name := item.Assignment.Name
			if item.Ghost {
				name += " " + ui.Muted("(generated)")
			}
			rows = append(rows, []string{
				"  " + ui.CompletionBox(item.Completed),
				ui.HighlightID(item.UID.String(), prefixes[item.UID]),
				ui.FormatClock(item.Assignment.Due),
				item.Class,
				name,
			})
		}
		fmt.Fprint(w, ui.FormatTable(nil, rows))
	}
}

func runRange(cmd *cobra.Command, args []string) error {
	start, err := time.ParseInLocation(tracker.DateLayout, strings.TrimSpace(args[0]), time.Local)
	if err != nil {
		return fmt.Errorf("%w: start date %q", tracker.ErrInvalidDue, args[0])
	}

	return withStore(cmd, func(store *tracker.Store, s *settings) error {
		end := start.AddDate(0, 0, s.config.Agenda.RangeAfter)
		if len(args) == 2 {
			end, err = time.ParseInLocation(tracker.DateLayout, strings.TrimSpace(args[1]), time.Local)
			if err != nil {
				return fmt.Errorf("%w: end date %q", tracker.ErrInvalidDue, args[1])
			}
		}

		byClass := store.AssignmentsInRange(start, end)
		classes := make([]string, 0, len(byClass))
		for class := range byClass {
			classes = append(classes, class)
		}
		slices.Sort(classes)

		items := make(map[string][]tracker.AgendaItem, len(byClass))
		for _, class := range classes {
			assignments := byClass[class]
			tracker.SortAssignments(assignments)
			classItems := make([]tracker.AgendaItem, 0, len(assignments))
			for _, a := range assignments {
				uid := a.UID()
				completed, err := store.Completion(uid)
				if err != nil {
					return err
				}
				classItems = append(classItems, tracker.AgendaItem{
					UID:        uid,
					Class:      class,
					Assignment: a,
					Completed:  completed,
					Ghost:      store.IsGhost(uid),
				})
			}
			items[class] = classItems
		}

		w := cmd.OutOrStdout()
		if rangeJSON {
			out := make(map[string][]assignmentJSON, len(items))
			for class, classItems := range items {
				out[class] = toAssignmentsJSON(classItems)
			}
			return encodeJSON(w, out)
		}

		if len(classes) == 0 {
			fmt.Fprintln(w, classEmptyListMessage())
			return nil
		}
		prefixes := store.UIDPrefixLengths()
		for i, class := range classes {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, ui.Header(class))
			if len(items[class]) == 0 {
				fmt.Fprintln(w, "  "+agendaEmptyListMessage())
				continue
			}
			rows := make([][]string, 0, len(items[class]))
			for _, item := range items[class] {
				rows = append(rows, []string{
					"  " + ui.CompletionBox(item.Completed),
					ui.HighlightID(item.UID.String(), prefixes[item.UID]),
					item.Assignment.Due.Format(tracker.DateLayout + " " + tracker.ClockLayout),
					item.Assignment.Name,
				})
			}
			fmt.Fprint(w, ui.FormatTable(nil, rows))
		}
		return nil
	})
}
