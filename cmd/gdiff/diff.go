package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	diff "github.com/ibrahimAlii/java-diff-utils"
	"github.com/ibrahimAlii/java-diff-utils/myers"
)

var (
	diffContext int
	diffGutter  bool
)

var diffCmd = &cobra.Command{
	Use:   "diff file1 file2",
	Short: "Compute and print the shortest edit script between two files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hasDiff, err := runDiff(cmd.OutOrStdout(), args[0], args[1], diffContext, diffGutter)
		if err != nil {
			exitCode = 2
			return err
		}
		if hasDiff {
			exitCode = 1
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().IntVarP(&diffContext, "context", "U", 3, "output NUM lines of unified context")
	diffCmd.Flags().BoolVar(&diffGutter, "gutter", false, "show line numbers and visible whitespace instead of a unified-diff hunk header")
	rootCmd.AddCommand(diffCmd)
}

// runDiff reads oldFile and newFile, diffs them line by line, and writes a
// rendering of the result to w. It reports whether any difference was found.
func runDiff(w io.Writer, oldFile, newFile string, context int, gutter bool) (bool, error) {
	oldStat, err := os.Stat(oldFile)
	if err != nil {
		return false, err
	}
	newStat, err := os.Stat(newFile)
	if err != nil {
		return false, err
	}

	oldData, err := os.ReadFile(oldFile)
	if err != nil {
		return false, err
	}
	newData, err := os.ReadFile(newFile)
	if err != nil {
		return false, err
	}

	p, err := myers.DiffLines(string(oldData), string(newData))
	if err != nil {
		return false, err
	}
	if len(p.Deltas()) == 0 {
		return false, nil
	}

	oldLines := myers.SplitLines(string(oldData))
	edits := diff.EditsFromPatch(oldLines, p, func(s string) string { return s })

	if gutter {
		if err := diff.WriteGutter(w, edits, context); err != nil {
			return false, err
		}
		return true, nil
	}

	if err := writeFileHeader(w, oldFile, oldStat.ModTime(), newFile, newStat.ModTime()); err != nil {
		return false, err
	}
	if err := diff.WriteUnified(w, edits, context); err != nil {
		return false, err
	}
	return true, nil
}

func writeFileHeader(w io.Writer, oldName string, oldTime time.Time, newName string, newTime time.Time) error {
	const timeFormat = "2006-01-02 15:04:05.000000000 -0700"
	_, err := fmt.Fprintf(w, "--- %s\t%s\n+++ %s\t%s\n",
		oldName, oldTime.Format(timeFormat),
		newName, newTime.Format(timeFormat))
	return err
}
