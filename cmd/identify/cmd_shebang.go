package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starthal/identify/pkg/classify/shebang"
)

var shebangCmd = &cobra.Command{
	Use:   "shebang PATH",
	Short: "Print the interpreter command parsed from a script's shebang line.",
	Long: `Parses the #! line of the file at PATH and prints the resulting
command, with env indirection and nix-shell wrappers resolved. Prints
nothing (successfully) when the file carries no usable shebang.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxNixLines, _ := cmd.Flags().GetInt("max-nix-shell-lines")
		parser := shebang.Parser{MaxNixShellLines: maxNixLines}
		command, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}
		if len(command) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(command, " "))
		}
		return nil
	},
}

func init() {
	shebangCmd.Flags().Int("max-nix-shell-lines", shebang.DefaultMaxNixShellLines, "Line budget when scanning nix-shell headers for the real interpreter")
	rootCmd.AddCommand(shebangCmd)
}
