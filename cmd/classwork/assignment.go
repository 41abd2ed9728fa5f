package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/classwork/internal/editor"
	"github.com/amonks/classwork/internal/listflags"
	"github.com/amonks/classwork/internal/ui"
	"github.com/amonks/classwork/tracker"
)

var assignmentCmd = &cobra.Command{
	Use:     "assignment",
	Short:   "Manage assignments",
	Aliases: []string{"a"},
}

var assignmentAddCmd = &cobra.Command{
	Use:   "add <class> [name...]",
	Short: "Add an assignment to a class",
	Long: `Add an assignment to a class.

The due date defaults to tomorrow at 08:00. Without a name, or with --edit,
the assignment is opened in $EDITOR as a TOML form.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAssignmentAdd,
}

var (
	assignmentAddDate string
	assignmentAddTime string
	assignmentAddEdit bool
)

var assignmentListCmd = &cobra.Command{
	Use:     "list <class>",
	Short:   "List the assignments of a class as a table",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE:    runAssignmentList,
}

var (
	assignmentListJSON bool
	assignmentListAll  bool
)

var assignmentDoneCmd = &cobra.Command{
	Use:   "done <uid>...",
	Short: "Mark assignments complete",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssignmentSetCompletion(cmd, args, true)
	},
}

var assignmentUndoCmd = &cobra.Command{
	Use:   "undo <uid>...",
	Short: "Mark assignments not complete",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssignmentSetCompletion(cmd, args, false)
	},
}

var assignmentStatusCmd = &cobra.Command{
	Use:   "status <uid>",
	Short: "Show whether an assignment is complete",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssignmentStatus,
}

var assignmentStatusJSON bool

func init() {
	rootCmd.AddCommand(assignmentCmd)
	assignmentCmd.AddCommand(assignmentAddCmd, assignmentListCmd, assignmentDoneCmd, assignmentUndoCmd, assignmentStatusCmd)

	addFlags := assignmentAddCmd.Flags()
	addFlags.StringVarP(&assignmentAddDate, "date", "d", "", "Due date, YYYY-MM-DD (default tomorrow)")
	addFlags.StringVarP(&assignmentAddTime, "time", "t", "", "Due time, HH:MM 24-hour (default "+editor.DefaultClock+")")
	addFlags.BoolVarP(&assignmentAddEdit, "edit", "e", false, "Open $EDITOR (default if no name given)")

	listflags.AddJSONFlag(assignmentListCmd, &assignmentListJSON)
	listflags.AddAllFlag(assignmentListCmd, &assignmentListAll, "Include assignments due long ago")
	listflags.AddJSONFlag(assignmentStatusCmd, &assignmentStatusJSON)
}

func runAssignmentAdd(cmd *cobra.Command, args []string) error {
	data := editor.DefaultAssignmentData(args[0], time.Now())
	data.Name = strings.Join(args[1:], " ")
	if assignmentAddDate != "" {
		data.Date = assignmentAddDate
	}
	if assignmentAddTime != "" {
		data.Time = assignmentAddTime
	}

	useEditor := assignmentAddEdit || data.Name == ""
	if useEditor && !editor.IsInteractive() {
		return errors.New("assignment name is required when not running interactively")
	}

	return withStore(cmd, func(store *tracker.Store, _ *settings) error {
		var (
			parsed *editor.ParsedAssignment
			err    error
		)
		if useEditor {
			parsed, err = editor.EditAssignment(data, store.Location())
		} else {
			parsed, err = editor.ParseAssignmentData(data, store.Location())
		}
		if err != nil {
			return err
		}

		uid, err := store.CreateAssignment(parsed.Class, parsed.Assignment)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s: %s\n", uid, parsed.Class, parsed.Assignment.Name)
		return nil
	})
}

func runAssignmentList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, s *settings) error {
		class := args[0]
		before := s.config.Agenda.DaysBefore
		if assignmentListAll {
			before = -1
		}
		items, err := store.ClassView(class, time.Now(), before)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if assignmentListJSON {
			return encodeJSON(w, toAssignmentsJSON(items))
		}
		if len(items) == 0 {
			fmt.Fprintln(w, assignmentEmptyListMessage(class, assignmentListAll))
			return nil
		}

		prefixes := store.UIDPrefixLengths()
		builder := ui.NewTableBuilder([]string{"UID", "DUE", "NAME", "DONE"}, len(items))
		for _, item := range items {
			name := item.Assignment.Name
			if item.Ghost {
				name += " " + ui.Muted("(generated)")
			}
			builder.AddRow(
				ui.HighlightID(item.UID.String(), prefixes[item.UID]),
				item.Assignment.Due.Format(tracker.DateLayout+" "+tracker.ClockLayout),
				name,
				ui.CompletionBox(item.Completed),
			)
		}
		fmt.Fprint(w, builder.String())
		return nil
	})
}

func runAssignmentSetCompletion(cmd *cobra.Command, args []string, completed bool) error {
	verb := "Completed"
	if !completed {
		verb = "Reopened"
	}
	return withStore(cmd, func(store *tracker.Store, _ *settings) error {
		for _, prefix := range args {
			uid, err := store.ResolveUID(prefix)
			if err != nil {
				return err
			}
			if err := store.SetCompletion(uid, completed); err != nil {
				return err
			}
			a, err := store.Assignment(uid)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, uid, a.Name)
		}
		return nil
	})
}

func runAssignmentStatus(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, _ *settings) error {
		uid, err := store.ResolveUID(args[0])
		if err != nil {
			return err
		}
		a, err := store.Assignment(uid)
		if err != nil {
			return err
		}
		completed, err := store.Completion(uid)
		if err != nil {
			return err
		}
		class, _ := store.ClassOf(uid)
		item := tracker.AgendaItem{
			UID:        uid,
			Class:      class,
			Assignment: a,
			Completed:  completed,
			Ghost:      store.IsGhost(uid),
		}

		w := cmd.OutOrStdout()
		if assignmentStatusJSON {
			return encodeJSON(w, toAssignmentJSON(item))
		}
		state := "pending"
		if completed {
			state = "complete"
		}
		fmt.Fprintf(w, "%s %s %s: %s\n", ui.CompletionBox(completed), state, class, a.Name)
		return nil
	})
}
