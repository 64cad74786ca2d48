package parser

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/eyelash/aiken/uplc/ast"
)

func TestParseProgramConstant(t *testing.T) {
	prog, err := ParseProgram([]byte(`(program 11.22.33 (con integer 11))`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(prog.Version.String(), "11.22.33"))
	qt.Assert(t, qt.Equals(prog.Term.TagKind(), ast.ConstantTerm))
	qt.Assert(t, qt.Equals(prog.Term.Constant.String(), "11"))
}

func TestParseApplySingleArgument(t *testing.T) {
	term, err := ParseTerm([]byte(`[ (lam x x) (con integer 42) ]`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(term.TagKind(), ast.ApplyTerm))
	lam := term.Function
	qt.Assert(t, qt.Equals(lam.TagKind(), ast.LambdaTerm))
	qt.Assert(t, qt.Equals(term.Argument.Constant.String(), "42"))
}

func TestParseForceDelay(t *testing.T) {
	term, err := ParseTerm([]byte(`(force (delay (con unit ())))`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(term.TagKind(), ast.ForceTerm))
	qt.Assert(t, qt.Equals(term.Body.TagKind(), ast.DelayTerm))
	qt.Assert(t, qt.Equals(term.Body.Body.Constant.Kind, ast.UnitKind))
}

func TestParseError(t *testing.T) {
	term, err := ParseTerm([]byte(`(error )`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(term.TagKind(), ast.ErrorTerm))
}

func TestParseBuiltin(t *testing.T) {
	term, err := ParseTerm([]byte(`(builtin addInteger)`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(term.TagKind(), ast.BuiltinTerm))
	qt.Assert(t, qt.Equals(term.Builtin, ast.AddInteger))
}

func TestParseByteStringConstant(t *testing.T) {
	term, err := ParseTerm([]byte(`(con bytestring #deadbeef)`))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(term.Constant.Bytes, []byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestParseLambdaReusesUniqueForSameName(t *testing.T) {
	term, err := ParseTerm([]byte(`(lam x [ x x ])`))
	qt.Assert(t, qt.IsNil(err))
	apply := term.Body
	qt.Assert(t, qt.Equals(apply.Function.Var.Unique, term.Parameter.Unique))
	qt.Assert(t, qt.Equals(apply.Argument.Var.Unique, term.Parameter.Unique))
}

func TestParseUnknownBuiltinFails(t *testing.T) {
	_, err := ParseTerm([]byte(`(builtin notARealBuiltin)`))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseMalformedProgramFails(t *testing.T) {
	_, err := ParseProgram([]byte(`(program 1.0.0 (con integer))`))
	qt.Assert(t, qt.IsNotNil(err))
}
