// Package cli defines the Cobra command tree for the subtok CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "subtok",
	Short: "Train and use byte-level BPE tokenizers",
	Long: `Subtok trains byte-level Byte Pair Encoding tokenizers on a text
corpus and uses them to convert text to and from integer token IDs.

A trained model is a single JSON file holding the learned merge rules
in training order, plus any registered special tokens. Encoding is
deterministic and exactly reversible.

Run 'subtok train --corpus data.txt --model tok.json' to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newTrainCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newVocabCmd(),
		newCountCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("subtok %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
