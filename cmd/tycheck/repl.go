package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/checker"
	"github.com/mbcrawfo/corelang-tyck/internal/infer"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

var (
	replGreen = color.New(color.FgGreen).SprintFunc()
	replBold  = color.New(color.Bold).SprintFunc()
	replDim   = color.New(color.Faint).SprintFunc()
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Look up built-in schemes, or type-check a one-line expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			runRepl(cmd.OutOrStdout(), opts)
			return nil
		},
	}
}

// runRepl is the teacher's internal/repl.REPL.Start shape, trimmed to this
// checker's one job: resolve a name in the built-in environment, or type a
// tiny one-line expression. Not a full language REPL (SPEC_FULL.md §2.3).
func runRepl(out io.Writer, opts checker.Options) {
	env := types.GetBuiltinEnv(builtinStdlib(opts))

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".tycheck_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", replBold("tycheck repl"))
	fmt.Fprintln(out, replDim("Enter a bound name to see its scheme, a literal/variable/application one-liner to type it, or :quit"))

	for {
		input, err := line.Prompt("tycheck> ")
		if err == io.EOF {
			fmt.Fprintln(out, replGreen("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" || input == ":q" {
			fmt.Fprintln(out, replGreen("Goodbye!"))
			break
		}
		evalReplLine(out, env, input)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func builtinStdlib(opts checker.Options) types.Stdlib {
	if opts.Stdlib == "Minimal" {
		return types.StdlibMinimal
	}
	return types.StdlibFull
}

func evalReplLine(out io.Writer, env *types.TypeEnv, input string) {
	if binding, ok := env.LookupValue(input); ok {
		fmt.Fprintln(out, replGreen(input+" : "+prettyBinding(binding)))
		return
	}

	expr, err := parseReplExpr(input)
	if err != nil {
		fmt.Fprintf(out, "parse error: %v\n", err)
		return
	}

	ctx := infer.NewContext()
	ty, err := ctx.Infer(expr, env)
	if err != nil {
		if report, ok := err.(*tcerrors.Report); ok {
			fmt.Fprintf(out, "%s: %s\n", report.Kind, report.Message)
		} else {
			fmt.Fprintln(out, err)
		}
		return
	}
	fmt.Fprintln(out, replGreen(input+" : "+types.PrettyPrintType(ctx.Zonk(ty))))
}

func prettyBinding(b types.ValueBinding) string {
	switch b := b.(type) {
	case types.ValueScheme:
		return types.PrettyPrint(b.Scheme)
	case types.ExternalBinding:
		return types.PrettyPrint(b.Scheme)
	case types.ExternalOverloadBinding:
		parts := make([]string, len(b.Entries))
		for i, e := range b.Entries {
			parts[i] = fmt.Sprintf("(%d) %s", e.Arity, types.PrettyPrint(e.Scheme))
		}
		return strings.Join(parts, " | ")
	default:
		return "?"
	}
}

// parseReplExpr parses a tiny one-liner: an int/float/string/bool literal, a
// bare identifier, or a single- or multi-argument curried application
// `f(a, b)`. Anything richer belongs in `tycheck check` against a real
// JSON-encoded program, not this debugging aid.
func parseReplExpr(s string) (ast.Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty expression")
	}

	if open := strings.IndexByte(s, '('); open != -1 && strings.HasSuffix(s, ")") {
		name := strings.TrimSpace(s[:open])
		if !isIdent(name) {
			return nil, fmt.Errorf("not a valid function name: %q", name)
		}
		argsStr := s[open+1 : len(s)-1]
		var args []ast.Expr
		if strings.TrimSpace(argsStr) != "" {
			for _, part := range strings.Split(argsStr, ",") {
				arg, err := parseReplAtom(strings.TrimSpace(part))
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
		var result ast.Expr = &ast.Var{Name: name}
		for _, arg := range args {
			result = &ast.App{Func: result, Arg: arg}
		}
		return result, nil
	}

	return parseReplAtom(s)
}

func parseReplAtom(s string) (ast.Expr, error) {
	switch {
	case s == "true" || s == "false":
		return &ast.Literal{Kind: ast.BoolLit, Value: s == "true"}, nil
	case s == "()":
		return &ast.Literal{Kind: ast.UnitLit, Value: nil}, nil
	case strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2:
		return &ast.Literal{Kind: ast.StringLit, Value: s[1 : len(s)-1]}, nil
	case isIdent(s):
		return &ast.Var{Name: s}, nil
	default:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &ast.Literal{Kind: ast.IntLit, Value: i}, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &ast.Literal{Kind: ast.FloatLit, Value: f}, nil
		}
		return nil, fmt.Errorf("cannot parse %q", s)
	}
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}
