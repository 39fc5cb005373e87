package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mbcrawfo/corelang-tyck/internal/checker"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
	"github.com/spf13/cobra"
)

var (
	kindColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	hintColor   = color.New(color.FgYellow).SprintFunc()
	nameColor   = color.New(color.FgCyan).SprintFunc()
	schemeColor = color.New(color.FgGreen).SprintFunc()
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.json>",
		Short: "Type-check a JSON-encoded Core AST program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, path string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	prog, err := decodeProgram(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	result, err := checker.CheckProgram(prog, opts)
	if err != nil {
		printReport(cmd, err)
		return err
	}

	for _, decl := range result.Decls {
		fmt.Fprintf(cmd.OutOrStdout(), "%s : %s\n", nameColor(decl.Name), schemeColor(types.PrettyPrint(decl.Scheme)))
	}
	return nil
}

// printReport renders a *tcerrors.Report the way SPEC_FULL.md §2.2 asks:
// spec.md §6's textual shape, colorized (red kind, yellow hint) when the
// error interface permits it — color.NoColor already handles the
// non-TTY/NO_COLOR fallback to plain text for us.
func printReport(cmd *cobra.Command, err error) {
	report, ok := err.(*tcerrors.Report)
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "%s at %s\n  %s\n", kindColor(string(report.Kind)), report.Location, report.Message)
	if report.Expected != "" || report.Actual != "" {
		fmt.Fprintf(out, "  Expected: %s\n  Actual:   %s\n", report.Expected, report.Actual)
	}
	if report.Hint != "" {
		fmt.Fprintf(out, "  Hint: %s\n", hintColor(report.Hint))
	}
}
