// Command aiken is the CLI surface named in spec.md §6: `check` for
// the surface-language parser and `uplc eval` for the UPLC evaluator.
// Project-layout resolution, disk-I/O policy beyond reading the given
// paths, and the type checker itself are external collaborators (§1
// Out of scope) — this binary only wires the core packages together.
package main

import (
	"os"

	"github.com/eyelash/aiken/cmd/aiken/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
