package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starthal/identify/pkg/classify/license"
)

var licenseCmd = &cobra.Command{
	Use:   "license PATH",
	Short: "Identify the license text in a file.",
	Long: `Reads the file at PATH, normalizes its text, and matches it against
the bundled SPDX license corpus. Prints the SPDX identifier on a match;
fails when no catalog entry comes close enough.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matcher, err := license.DefaultMatcher()
		if err != nil {
			return fmt.Errorf("loading license corpus: %w", err)
		}
		id, ok, err := matcher.IdentifyFile(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no license match for %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(licenseCmd)
}
