// Package main implements the classwork CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "classwork",
	Short: "Classwork - track assignments for your classes",
	Long: `Track assignments for your classes.

The list is kept in ~/.todolist. Executable scripts in ~/.todolistrc may
print lines of the form "class,name,YYYY-MM-DD,HH:MM"; those assignments
are shown but only saved once completed.`,
	SilenceUsage: true,
}

var (
	rootListPath   string
	rootScriptsDir string
	rootConfigPath string
	rootNoScripts  bool
	rootVerbose    bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootListPath, "file", "f", "", "List file (default ~/.todolist, or $CLASSWORK_FILE)")
	flags.StringVar(&rootScriptsDir, "scripts", "", "Generator scripts directory (default ~/.todolistrc, or $CLASSWORK_SCRIPTS)")
	flags.StringVar(&rootConfigPath, "config", "", "Config file (default ~/.config/classwork/config.toml)")
	flags.BoolVar(&rootNoScripts, "no-scripts", false, "Do not run generator scripts")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Log script and store diagnostics to stderr")

	// Persistent flags are merged into every subcommand's flag set.
	rootCmd.SetGlobalNormalizationFunc(aliasNormalizeFunc(listFlagAliases, nil))
}
