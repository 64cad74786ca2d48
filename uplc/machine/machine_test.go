package machine

import (
	"testing"

	qt "github.com/go-quicktest/qt"

	"github.com/eyelash/aiken/uplc/ast"
	"github.com/eyelash/aiken/uplc/parser"
)

func evalText(t *testing.T, src string) (*ast.Term[ast.NamedDeBruijn], ExBudget, []string, EvalError) {
	t.Helper()
	prog, err := parser.ParseProgram([]byte(src))
	qt.Assert(t, qt.IsNil(err))
	nprog, err := ast.ProgramToNamedDeBruijn(prog)
	qt.Assert(t, qt.IsNil(err))
	result, consumed, logs, evalErr := Eval(nprog, DefaultExBudget)
	return result, consumed, logs, evalErr
}

func TestEvalConstant(t *testing.T) {
	result, consumed, _, err := evalText(t, `(program 11.22.33 (con integer 11))`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(result.Constant.String(), "11"))
	qt.Assert(t, qt.IsTrue(consumed.CPU > 0))
}

func TestEvalBetaReduction(t *testing.T) {
	result, _, _, err := evalText(t, `(program 1.0.0 [ (lam x x) (con integer 42) ])`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(result.Constant.String(), "42"))
}

func TestEvalForceDelay(t *testing.T) {
	result, _, _, err := evalText(t, `(program 1.0.0 (force (delay (con unit ()))))`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(result.Constant.Kind, ast.UnitKind))
}

func TestEvalErrorTerm(t *testing.T) {
	result, consumed, logs, err := evalText(t, `(program 1.0.0 (error ))`)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsNil(result))
	qt.Assert(t, qt.IsTrue(consumed.CPU > 0))
	qt.Assert(t, qt.HasLen(logs, 0))
	_, isUserError := err.(*UserErrorTerm)
	qt.Assert(t, qt.IsTrue(isUserError))
}

func TestEvalAddIntegerBuiltin(t *testing.T) {
	result, _, _, err := evalText(t, `(program 1.0.0 [ [ (builtin addInteger) (con integer 2) ] (con integer 40) ])`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(result.Constant.String(), "42"))
}

func TestEvalTraceAccumulatesLogs(t *testing.T) {
	_, _, logs, err := evalText(t, `(program 1.0.0 [ [ (force (builtin trace)) (con string "hello") ] (con integer 1) ])`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(logs, []string{"hello"}))
}

func TestEvalOutOfBudget(t *testing.T) {
	prog, err := parser.ParseProgram([]byte(`(program 1.0.0 (con integer 1))`))
	qt.Assert(t, qt.IsNil(err))
	nprog, err := ast.ProgramToNamedDeBruijn(prog)
	qt.Assert(t, qt.IsNil(err))
	_, _, _, evalErr := Eval(nprog, ExBudget{CPU: 1, Mem: 1})
	qt.Assert(t, qt.IsNotNil(evalErr))
	_, isBudget := evalErr.(*OutOfBudgetError)
	qt.Assert(t, qt.IsTrue(isBudget))
}

func TestEvalFreeVariable(t *testing.T) {
	prog, err := parser.ParseProgram([]byte(`(program 1.0.0 x)`))
	qt.Assert(t, qt.IsNil(err))
	_, convErr := ast.ProgramToNamedDeBruijn(prog)
	qt.Assert(t, qt.IsNotNil(convErr))
}
