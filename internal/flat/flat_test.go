package flat

import (
	"math/big"
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/eyelash/aiken/uplc/ast"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	prog := ast.Program[ast.FakeNamedDeBruijn]{
		Version: ast.Version{Major: 1, Minor: 0, Patch: 0},
		Term: ast.NewApply(
			ast.NewLambda(ast.FakeNamedDeBruijn{Index: 0}, ast.NewVar(ast.FakeNamedDeBruijn{Index: 1})),
			ast.NewConstant[ast.FakeNamedDeBruijn](ast.NewIntegerConstant(big.NewInt(-42))),
		),
	}

	data := Encode(prog)
	got, err := Default.Decode(data)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.Version, prog.Version))
	qt.Assert(t, qt.Equals(got.Term.TagKind(), ast.ApplyTerm))
	qt.Assert(t, qt.Equals(got.Term.Argument.Constant.Integer.Int64(), int64(-42)))
}

func TestDecodeTruncatedInputFails(t *testing.T) {
	_, err := Default.Decode([]byte{0x01})
	qt.Assert(t, qt.IsNotNil(err))
}
