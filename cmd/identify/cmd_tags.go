package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starthal/identify/pkg/classify"
)

var tagsCmd = &cobra.Command{
	Use:   "tags PATH",
	Short: "Print the tag set for a filesystem entry.",
	Long: `Classifies the entry at PATH and prints its sorted tag set.

With --filename-only the path is treated as a bare filename: only the
catalog lookup runs, the filesystem is never touched, and mode and
encoding tags derived from the entry itself are absent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filenameOnly, _ := cmd.Flags().GetBool("filename-only")
		asJSON, _ := cmd.Flags().GetBool("json")

		c, err := newClassifier()
		if err != nil {
			return err
		}

		var tags classify.TagSet
		if filenameOnly {
			tags = c.TagsFromFilename(args[0])
		} else {
			tags, err = c.TagsFromPath(args[0])
			if err != nil {
				return err
			}
		}
		return printTags(cmd, tags.Slice(), asJSON)
	},
}

func newClassifier() (*classify.Classifier, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return classify.New(classify.Options{Logger: handler})
}

func printTags(cmd *cobra.Command, tags []string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(tags)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tags, " "))
	return nil
}

func init() {
	tagsCmd.Flags().Bool("filename-only", false, "Classify the name alone without touching the filesystem")
	tagsCmd.Flags().Bool("json", false, "Print the tag set as a JSON array")
	rootCmd.AddCommand(tagsCmd)
}
