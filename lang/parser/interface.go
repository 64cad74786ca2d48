// Package parser implements the trivia splitter (C3) and the
// recursive-descent grammar parser (C4) for the surface language: it
// turns a token stream from lang/scanner into an untyped lang/ast.Module.
package parser

import (
	"github.com/eyelash/aiken/lang/ast"
)

// ParseModule parses a complete source file into an untyped Module.
// name is the module's dotted path (e.g. "foo/bar"), used only to
// populate Module.Name; kind selects library vs. script parsing (the
// grammar itself does not differ between the two).
func ParseModule(name string, kind ast.ModuleKind, src []byte) (mod *ast.Module, err error) {
	var p parser
	defer func() {
		if r := recover(); r != nil {
			if b, ok := r.(bailout); ok {
				err = b.err
				return
			}
			panic(r)
		}
	}()
	p.init(src)
	mod = p.parseModule(name, kind)
	return mod, nil
}
