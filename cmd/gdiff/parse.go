package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ibrahimAlii/java-diff-utils/unifieddiff"
)

var parseCmd = &cobra.Command{
	Use:   "parse file",
	Short: "Parse a unified diff text file and print a summary of its contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runParse(cmd.OutOrStdout(), args[0]); err != nil {
			exitCode = 2
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// runParse reads file, parses it as a unified diff document, and writes a
// summary of it to w: the file count, then one line per file giving its
// hunk count, followed by whether a header preamble or trailer was present.
func runParse(w io.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := unifieddiff.Parse(f)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d file(s)\n", len(doc.Files)); err != nil {
		return err
	}
	for _, uf := range doc.Files {
		deltas := uf.Patch.Deltas()
		from := uf.FromFile
		if from == "" {
			from = "/dev/null"
		}
		to := uf.ToFile
		if to == "" {
			to = "/dev/null"
		}
		if _, err := fmt.Fprintf(w, "%s -> %s: %d hunk(s)\n", from, to, len(deltas)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "header: %v, tail: %v\n", doc.Header != "", doc.Tail != ""); err != nil {
		return err
	}
	return nil
}
