// Package cmd builds the aiken CLI's cobra command tree, matching
// cmd/cue/cmd's newXxxCmd() *cobra.Command factory-function style and
// root.go-level command registration (SPEC_FULL.md §12).
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// NewRootCmd constructs the aiken root command with check and uplc
// wired in as subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aiken",
		Short:         "aiken compiles and evaluates a small functional language targeting UPLC",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newUplcCmd())
	return root
}
