package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/amonks/classwork/internal/editor"
	"github.com/amonks/classwork/internal/tui"
	"github.com/amonks/classwork/internal/worker"
	"github.com/amonks/classwork/tracker"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse classes and assignments interactively",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !editor.IsInteractive() {
		return errors.New("tui requires an interactive terminal")
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	store, err := tracker.Open(ctx, s.listPath, s.openOptions())
	if err != nil {
		return err
	}

	w := worker.Start(store)
	runErr := tui.Run(ctx, w, tui.Options{
		Title:      s.listPath,
		DaysBefore: s.config.Agenda.DaysBefore,
		DaysAfter:  s.config.Agenda.DaysAfter,
	})
	return errors.Join(runErr, w.Stop())
}
