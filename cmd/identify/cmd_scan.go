package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/starthal/identify/internal/cli"
	"github.com/starthal/identify/internal/cli/config"
	"github.com/starthal/identify/pkg/classify"
	"github.com/starthal/identify/pkg/classify/shebang"
)

var scanCmd = &cobra.Command{
	Use:   "scan [DIR]",
	Short: "Classify every entry under a directory tree.",
	Long: `Walks the tree rooted at DIR (default: the current directory),
classifies every entry in parallel, and prints a summary report.

On a terminal the run shows an interactive TUI; --no-tui switches to a
progress bar, and --verbose to plain log lines. --output-format json
emits the full machine-readable report on stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		opts, logger, err := config.LoadAndValidate(cfgFile, version, verbose, cmd.Flags())
		if err != nil {
			return err
		}

		input := "."
		if len(args) == 1 {
			input = args[0]
		}
		absInput, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("resolving scan path '%s': %w", input, err)
		}
		opts.InputPath = absInput

		// Give the TUI a moment to take over the terminal before the
		// walker starts emitting events.
		if term.IsTerminal(int(os.Stderr.Fd())) && !opts.Verbose && opts.TuiEnabled {
			time.Sleep(100 * time.Millisecond)
		}

		return cli.Run(ctx, opts, logger)
	},
}

func init() {
	scanCmd.Flags().Bool("no-tui", false, "Disable the interactive terminal UI even on a TTY")
	scanCmd.Flags().StringArray("ignore", []string{}, "Glob patterns for entries to skip (can be repeated)")
	scanCmd.Flags().String("onError", string(classify.DefaultOnErrorMode), `Behavior on per-entry errors ("continue" or "stop")`)
	scanCmd.Flags().Int("concurrency", classify.DefaultConcurrency, "Number of parallel workers (0 for auto-detect CPU cores)")
	scanCmd.Flags().Bool("git-tracked-only", false, "Classify only files tracked in the enclosing git repository")
	scanCmd.Flags().Bool("detect-languages", false, "Report a detected language for text entries")
	scanCmd.Flags().String("catalog-override", "", "Path to a catalog override file (YAML, TOML, or JSON)")
	scanCmd.Flags().String("output-format", string(classify.DefaultOutputFormat), `Final report format ("text" or "json")`)
	scanCmd.Flags().Int("max-nix-shell-lines", shebang.DefaultMaxNixShellLines, "Line budget when scanning nix-shell headers for the real interpreter")
	rootCmd.AddCommand(scanCmd)
}
