package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/classwork/tracker"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Rewrite the list file in the current format",
	Long: `Load the list and write it back. Older list files are upgraded to the
current format. Generated assignments are not written unless completed.`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store *tracker.Store, _ *settings) error {
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", store.Path())
		return nil
	})
}
