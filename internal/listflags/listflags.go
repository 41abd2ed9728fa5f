// Package listflags holds flags shared by listing commands.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool, usage string) {
	if usage == "" {
		usage = "Include everything, not just recent entries"
	}
	if target == nil {
		cmd.Flags().Bool("all", false, usage)
		return
	}

	cmd.Flags().BoolVar(target, "all", false, usage)
}

// AddJSONFlag adds a shared --json flag to commands with machine-readable output.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output JSON")
}
