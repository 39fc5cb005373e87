// Command tycheck is the standalone driver for the type checker core:
// `tycheck check <file.json>` runs the full module driver over a
// JSON-encoded Core AST program, and `tycheck repl` is a small liner-backed
// loop for poking at the built-in environment (SPEC_FULL.md §2.3).
package main

import (
	"fmt"
	"os"

	"github.com/mbcrawfo/corelang-tyck/internal/checker"
	"github.com/spf13/cobra"
)

var cliOpts = checker.DefaultOptions()
var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tycheck",
		Short: "A level-based Hindley-Milner type checker for the Core AST",
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (overlaid by the flags below)")
	root.PersistentFlags().StringVar(&cliOpts.Stdlib, "stdlib", cliOpts.Stdlib, "built-in environment to seed: Full or Minimal")
	root.PersistentFlags().BoolVar(&cliOpts.DenyAny, "deny-any", cliOpts.DenyAny, "reject any top-level binding whose scheme has an escaping type variable")
	root.PersistentFlags().IntVar(&cliOpts.LevenshteinThreshold, "levenshtein", cliOpts.LevenshteinThreshold, "max edit distance for \"did you mean\" suggestions (0 disables)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newReplCmd())
	return root
}

// resolveOptions loads --config if given, then re-applies any flag the user
// set explicitly on top of it, so a CLI flag always wins over the file.
func resolveOptions(cmd *cobra.Command) (checker.Options, error) {
	if configPath == "" {
		return cliOpts, nil
	}
	opts, err := checker.LoadOptions(configPath)
	if err != nil {
		return opts, fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("stdlib") {
		opts.Stdlib = cliOpts.Stdlib
	}
	if cmd.Flags().Changed("deny-any") {
		opts.DenyAny = cliOpts.DenyAny
	}
	if cmd.Flags().Changed("levenshtein") {
		opts.LevenshteinThreshold = cliOpts.LevenshteinThreshold
	}
	return opts, nil
}
