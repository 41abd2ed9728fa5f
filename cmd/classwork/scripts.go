package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/classwork/internal/listflags"
	"github.com/amonks/classwork/internal/ui"
	"github.com/amonks/classwork/tracker"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Run the generator scripts and show what they emit",
	Long: `Run every executable in the scripts directory and show the assignments
parsed from their output, without touching the list file.

Use --verbose to see which scripts and lines were skipped.`,
	Args: cobra.NoArgs,
	RunE: runScripts,
}

var scriptsJSON bool

func init() {
	rootCmd.AddCommand(scriptsCmd)
	listflags.AddJSONFlag(scriptsCmd, &scriptsJSON)
}

type scriptEntryJSON struct {
	Script string `json:"script"`
	assignmentJSON
}

func runScripts(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	entries := tracker.RunScripts(commandContext(cmd), s.scriptsDir, tracker.ScriptOptions{
		Timeout:  s.config.Scripts.Timeout.Duration,
		Location: s.openOptions().Location,
		Logger:   s.logger,
	})
	slices.SortStableFunc(entries, func(a, b tracker.ScriptEntry) int {
		if c := strings.Compare(a.Class, b.Class); c != 0 {
			return c
		}
		return tracker.CompareAssignments(a.Assignment, b.Assignment)
	})

	w := cmd.OutOrStdout()
	if scriptsJSON {
		out := make([]scriptEntryJSON, 0, len(entries))
		for _, entry := range entries {
			out = append(out, scriptEntryJSON{
				Script: entry.Script,
				assignmentJSON: toAssignmentJSON(tracker.AgendaItem{
					UID:        entry.Assignment.UID(),
					Class:      entry.Class,
					Assignment: entry.Assignment,
					Ghost:      true,
				}),
			})
		}
		return encodeJSON(w, out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, scriptsEmptyListMessage(s.scriptsDir))
		return nil
	}
	builder := ui.NewTableBuilder([]string{"CLASS", "DUE", "NAME", "SCRIPT"}, len(entries))
	for _, entry := range entries {
		builder.AddRow(
			entry.Class,
			entry.Assignment.Due.Format(tracker.DateLayout+" "+tracker.ClockLayout),
			entry.Assignment.Name,
			ui.Muted(entry.Script),
		)
	}
	fmt.Fprint(w, builder.String())
	return nil
}
