package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// These are set during build time using -ldflags.
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Flags persistent across commands.
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "identify",
	Short: "Classifies filesystem entries into tag sets.",
	Long: `identify maps files, directories, and other filesystem entries to a
set of descriptive tags: entry type, executable mode, text/binary
encoding, and file format (language, tooling, data format).

Classification uses the filename catalog first, then the shebang line
for executable scripts, and finally a bounded content sniff when the
name alone cannot settle text vs binary. It can also match license
texts against the SPDX corpus and bulk-scan whole directory trees.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and runs it.
// Cobra prints the error and we exit non-zero if a RunE fails.
func Execute() {
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "identify version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is to search ., $HOME/.config/identify/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging output (disables TUI)")
	rootCmd.AddCommand(versionCmd)
}
