package parser

import (
	"testing"

	"github.com/eyelash/aiken/lang/ast"
	qt "github.com/go-quicktest/qt"
)

func TestParsePublicIdentityFn(t *testing.T) {
	mod, err := ParseModule("test", ast.LibraryModule, []byte(`pub fn id(x) { x }`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(mod.Definitions, 1))

	fn, ok := mod.Definitions[0].(*ast.Fn)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(fn.Name, "id"))
	qt.Assert(t, qt.IsTrue(fn.Public))
	qt.Assert(t, qt.HasLen(fn.Arguments, 1))
	qt.Assert(t, qt.Equals(fn.Arguments[0].Name, "x"))

	v, ok := fn.Body.(*ast.VarExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Name, "x"))
}

func TestParseEmptyFunctionBodyDesugarsToTodo(t *testing.T) {
	mod, err := ParseModule("test", ast.LibraryModule, []byte(`fn unimplemented() { }`))
	qt.Assert(t, qt.IsNil(err))
	fn := mod.Definitions[0].(*ast.Fn)
	todo, ok := fn.Body.(*ast.TodoExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(todo.Kind, ast.EmptyFunction))
}

func TestParseCallArgumentCapture(t *testing.T) {
	mod, err := ParseModule("test", ast.LibraryModule, []byte(`fn g() { f(1, _, 3) }`))
	qt.Assert(t, qt.IsNil(err))
	fn := mod.Definitions[0].(*ast.Fn)

	capture, ok := fn.Body.(*ast.FnExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(capture.IsCapture))
	qt.Assert(t, qt.HasLen(capture.Arguments, 1))
	qt.Assert(t, qt.Equals(capture.Arguments[0].Name, "_capture__1"))

	call, ok := capture.Body.(*ast.CallExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(call.Arguments, 3))
	v, ok := call.Arguments[1].Value.(*ast.VarExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Name, "_capture__1"))
}

func TestParseRecordSugarMatchesExplicitConstructor(t *testing.T) {
	sugar, err := ParseModule("test", ast.LibraryModule, []byte(`type Point { x: Int, y: Int }`))
	qt.Assert(t, qt.IsNil(err))
	explicit, err := ParseModule("test", ast.LibraryModule, []byte(`type Point { Point { x: Int, y: Int } }`))
	qt.Assert(t, qt.IsNil(err))

	sugarType := sugar.Definitions[0].(*ast.DataType)
	explicitType := explicit.Definitions[0].(*ast.DataType)

	qt.Assert(t, qt.HasLen(sugarType.Constructors, 1))
	qt.Assert(t, qt.HasLen(explicitType.Constructors, 1))
	qt.Assert(t, qt.IsTrue(sugarType.Constructors[0].Sugar))
	qt.Assert(t, qt.IsFalse(explicitType.Constructors[0].Sugar))
	qt.Assert(t, qt.Equals(sugarType.Constructors[0].Name, explicitType.Constructors[0].Name))
	qt.Assert(t, qt.Equals(len(sugarType.Constructors[0].Arguments), len(explicitType.Constructors[0].Arguments)))
}

func TestParseSequenceIsLeftAssociative(t *testing.T) {
	mod, err := ParseModule("test", ast.LibraryModule, []byte(`fn f() { a b c }`))
	qt.Assert(t, qt.IsNil(err))
	fn := mod.Definitions[0].(*ast.Fn)

	outer, ok := fn.Body.(*ast.SequenceExpr)
	qt.Assert(t, qt.IsTrue(ok))
	inner, ok := outer.First.(*ast.SequenceExpr)
	qt.Assert(t, qt.IsTrue(ok))

	a := inner.First.(*ast.VarExpr)
	b := inner.Then.(*ast.VarExpr)
	c := outer.Then.(*ast.VarExpr)
	qt.Assert(t, qt.Equals(a.Name, "a"))
	qt.Assert(t, qt.Equals(b.Name, "b"))
	qt.Assert(t, qt.Equals(c.Name, "c"))
}

func TestParseIfElseIfElseChain(t *testing.T) {
	mod, err := ParseModule("test", ast.LibraryModule, []byte(`fn f() { if a { 1 } else if b { 2 } else { 3 } }`))
	qt.Assert(t, qt.IsNil(err))
	fn := mod.Definitions[0].(*ast.Fn)
	ifExpr, ok := fn.Body.(*ast.IfExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(ifExpr.Branches, 2))
	qt.Assert(t, qt.IsNotNil(ifExpr.FinalElse))
}

func TestParseUnexpectedTokenFails(t *testing.T) {
	_, err := ParseModule("test", ast.LibraryModule, []byte(`fn f( { }`))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseTrivia(t *testing.T) {
	src := []byte("// a comment\n\nfn f() { x }\n")
	mod, err := ParseModule("test", ast.LibraryModule, src)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(mod.Extra.Comments, 1))
	qt.Assert(t, qt.HasLen(mod.Extra.EmptyLines, 1))
}

func TestTriviaSpansDoNotOverlapTokens(t *testing.T) {
	src := []byte("/// doc\nfn f() { x } // trailing\n")
	mod, err := ParseModule("test", ast.LibraryModule, src)
	qt.Assert(t, qt.IsNil(err))
	fnSpan := mod.Definitions[0].Span()
	for _, c := range mod.Extra.Comments {
		overlap := c.Start < fnSpan.End && c.End > fnSpan.Start
		qt.Assert(t, qt.IsFalse(overlap))
	}
	for _, c := range mod.Extra.DocComments {
		overlap := c.Start < fnSpan.End && c.End > fnSpan.Start
		qt.Assert(t, qt.IsFalse(overlap))
	}
}
