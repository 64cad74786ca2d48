package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eyelash/aiken/lang/ast"
	"github.com/eyelash/aiken/lang/parser"
)

// newCheckCmd creates the `aiken check` command (spec.md §6 "Input:
// surface-language source ... Output of check: structured diagnostics
// on error; zero exit code on success").
func newCheckCmd() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "parse every module under a project directory",
		Long: `check parses each .ak source file under --directory into an untyped
module AST. Type-checking itself is an external collaborator (out of
scope per the front-end core this command exercises); check reports
only lexer/parser diagnostics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, directory)
		},
	}

	cmd.Flags().StringVar(&directory, "directory", ".", "project root to scan for .ak sources")
	return cmd
}

func runCheck(cmd *cobra.Command, directory string) error {
	runID := uuid.New()
	slog.Debug("check starting", "run_id", runID, "directory", directory)

	var files []string
	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ak") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", directory, err)
	}

	failed := false
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".ak")
		if _, err := parser.ParseModule(name, ast.LibraryModule, src); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
			failed = true
			continue
		}
		slog.Debug("parsed module", "run_id", runID, "path", path)
	}

	if failed {
		return fmt.Errorf("check failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "checked %d module(s)\n", len(files))
	return nil
}
