package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eyelash/aiken/internal/flat"
	"github.com/eyelash/aiken/uplc/ast"
	"github.com/eyelash/aiken/uplc/machine"
	"github.com/eyelash/aiken/uplc/parser"
)

// newUplcCmd creates the `aiken uplc` command group.
func newUplcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uplc",
		Short: "work with standalone UPLC programs",
	}
	cmd.AddCommand(newUplcEvalCmd())
	return cmd
}

// newUplcEvalCmd creates `aiken uplc eval SCRIPT [--flat] [ARG...]`
// (spec.md §6 "Eval output prints, in order: the pretty-printed result
// term (or error), consumed cost (cpu, memory), residual budget (cpu,
// memory), and any logs. Exit status 0 on successful evaluation (even
// if the term itself evaluates to an error value), non-zero on parse
// or I/O failure.").
func newUplcEvalCmd() *cobra.Command {
	var useFlat bool

	cmd := &cobra.Command{
		Use:   "eval SCRIPT [ARG...]",
		Short: "evaluate a UPLC program against zero or more arguments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUplcEval(cmd, args[0], args[1:], useFlat)
		},
	}

	cmd.Flags().BoolVar(&useFlat, "flat", false, "SCRIPT is a flat-encoded binary program")
	return cmd
}

func runUplcEval(cmd *cobra.Command, script string, argTexts []string, useFlat bool) error {
	runID := uuid.New()
	data, err := os.ReadFile(script)
	if err != nil {
		return fmt.Errorf("reading %s: %w", script, err)
	}

	prog, err := loadProgram(data, useFlat)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", script, err)
	}
	slog.Debug("uplc eval loaded program", "run_id", runID, "version", prog.Version.String())

	for _, argText := range argTexts {
		argNameTerm, err := parser.ParseTerm([]byte(argText))
		if err != nil {
			return fmt.Errorf("parsing argument %q: %w", argText, err)
		}
		argTerm, err := ast.ToNamedDeBruijn(argNameTerm)
		if err != nil {
			return fmt.Errorf("resolving argument %q: %w", argText, err)
		}
		prog = ast.ApplyTermProgram(prog, argTerm)
	}

	result, consumed, logs, evalErr := machine.Eval(prog, machine.DefaultExBudget)
	out := cmd.OutOrStdout()
	if evalErr != nil {
		fmt.Fprintf(out, "error: %v\n", evalErr)
	} else {
		fmt.Fprintln(out, result.Pretty())
	}
	residual := machine.DefaultExBudget.Sub(consumed)
	fmt.Fprintf(out, "consumed: cpu %d, mem %d\n", consumed.CPU, consumed.Mem)
	fmt.Fprintf(out, "budget:   cpu %d, mem %d\n", residual.CPU, residual.Mem)
	if len(logs) > 0 {
		fmt.Fprintln(out, "logs:")
		for _, l := range logs {
			fmt.Fprintln(out, "  "+strings.ReplaceAll(l, "\n", "\n  "))
		}
	}
	return nil
}

func loadProgram(data []byte, useFlat bool) (ast.Program[ast.NamedDeBruijn], error) {
	if useFlat {
		fakeProg, err := flat.Default.Decode(data)
		if err != nil {
			return ast.Program[ast.NamedDeBruijn]{}, err
		}
		return ast.Program[ast.NamedDeBruijn]{
			Version: fakeProg.Version,
			Term:    ast.FromFakeNamedDeBruijn(fakeProg.Term),
		}, nil
	}

	nameProg, err := parser.ParseProgram(data)
	if err != nil {
		return ast.Program[ast.NamedDeBruijn]{}, err
	}
	return ast.ProgramToNamedDeBruijn(nameProg)
}
