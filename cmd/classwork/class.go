package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/classwork/internal/listflags"
	"github.com/amonks/classwork/internal/ui"
	"github.com/amonks/classwork/tracker"
)

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Manage classes",
}

var classListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List classes",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runClassList,
}

var classListJSON bool

var classAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add one or more classes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassAdd,
}

var classRemoveCmd = &cobra.Command{
	Use:     "rm <name>...",
	Short:   "Delete classes and the assignments only they list",
	Aliases: []string{"delete"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runClassRemove,
}

var classShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the assignments of a class",
	Long: `Show the assignments of a class, ordered by due date.

Assignments due more than a few days ago are hidden unless --all is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassShow,
}

var classShowAll bool

func init() {
	rootCmd.AddCommand(classCmd)
	classCmd.AddCommand(classListCmd, classAddCmd, classRemoveCmd, classShowCmd)

	listflags.AddJSONFlag(classListCmd, &classListJSON)
	listflags.AddAllFlag(classShowCmd, &classShowAll, "Include assignments due long ago")
}

type classJSON struct {
	Name        string `json:"name"`
	Assignments int    `json:"assignments"`
}

func runClassList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, _ *settings) error {
		classes := store.Classes()
		out := make([]classJSON, 0, len(classes))
		for _, class := range classes {
			uids, err := store.ClassAssignmentUIDs(class)
			if err != nil {
				return err
			}
			out = append(out, classJSON{Name: class, Assignments: len(uids)})
		}

		w := cmd.OutOrStdout()
		if classListJSON {
			return encodeJSON(w, out)
		}
		if len(out) == 0 {
			fmt.Fprintln(w, classEmptyListMessage())
			return nil
		}
		builder := ui.NewTableBuilder([]string{"CLASS", "ASSIGNMENTS"}, len(out))
		for _, class := range out {
			builder.AddRow(class.Name, fmt.Sprint(class.Assignments))
		}
		fmt.Fprint(w, builder.String())
		return nil
	})
}

func runClassAdd(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, _ *settings) error {
		for _, name := range args {
			name = strings.TrimSpace(name)
			if err := store.CreateClass(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added class %s\n", name)
		}
		return nil
	})
}

func runClassRemove(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, _ *settings) error {
		for _, name := range args {
			if err := store.DeleteClass(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted class %s\n", name)
		}
		return nil
	})
}

func runClassShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, s *settings) error {
		class := args[0]
		before := s.config.Agenda.DaysBefore
		if classShowAll {
			before = -1
		}
		items, err := store.ClassView(class, time.Now(), before)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, ui.Header(class))
		if len(items) == 0 {
			fmt.Fprintln(w, assignmentEmptyListMessage(class, classShowAll))
			return nil
		}
		writeClassView(w, items, store.UIDPrefixLengths(), terminalWidth())
		return nil
	})
}

// writeClassView prints one line per assignment: box, uid, due, name. Long
// names wrap under themselves when width is known.
func writeClassView(w io.Writer, items []tracker.AgendaItem, prefixes map[tracker.UID]int, width int) {
	for _, item := range items {
		box := ui.CompletionBox(item.Completed)
		uid := item.UID.String()
		due := ui.FormatClassDue(item.Assignment.Due)
		prefix := fmt.Sprintf("%s %s  %s  ", box, ui.HighlightID(uid, prefixes[item.UID]), due)
		hang := len(box) + 1 + len(uid) + 2 + len(due) + 2
		name := item.Assignment.Name
		if item.Ghost {
			name += " " + ui.Muted("(generated)")
		}
		fmt.Fprintln(w, prefix+ui.WrapIndented(name, width, hang))
	}
}
