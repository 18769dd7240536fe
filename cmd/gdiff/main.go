// Command gdiff computes shortest edit scripts between text files and
// parses unified diff documents, driven by the patch/myers/unifieddiff
// packages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exitCode int

var rootCmd = &cobra.Command{
	Use:           "gdiff",
	Short:         "gdiff computes and parses unified diffs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = 2
		}
	}
	os.Exit(exitCode)
}
