package machine

import (
	"github.com/eyelash/aiken/uplc/ast"
)

// valueTag discriminates Value the same way ast.Term uses a tag
// instead of a Go interface/type-switch sum type.
type valueTag int

const (
	constantValue valueTag = iota
	delayValue
	lambdaValue
	builtinValue
)

// env is a de Bruijn environment: the last element is the innermost
// binding and env[0] the outermost.
// Indexing follows NamedDeBruijn's 1-based "distance from use site"
// convention, so lookup(env, i) reads env[len(env)-i].
type env []Value

func (e env) lookup(index int) (Value, bool) {
	if index <= 0 || index > len(e) {
		return Value{}, false
	}
	return e[len(e)-index], true
}

// Value is a CEK machine value: a constant, a suspended Delay
// closure, a Lambda closure, or a partially (or fully) applied
// builtin.
type Value struct {
	tag valueTag

	Constant ast.Constant

	// delayValue: Body is the delayed term itself.
	Body *ast.Term[ast.NamedDeBruijn]

	// lambdaValue: Term is the whole Lambda node (Parameter + Body).
	Term *ast.Term[ast.NamedDeBruijn]

	// delayValue / lambdaValue: the captured closure environment.
	Env env

	// builtinValue
	Builtin ast.DefaultFunction
	Forces  int // number of `force` applications consumed so far
	Args    []Value
}

func constVal(c ast.Constant) Value { return Value{tag: constantValue, Constant: c} }
func delayVal(body *ast.Term[ast.NamedDeBruijn], e env) Value {
	return Value{tag: delayValue, Body: body, Env: e}
}
func lambdaVal(t *ast.Term[ast.NamedDeBruijn], e env) Value {
	return Value{tag: lambdaValue, Term: t, Env: e}
}
func builtinVal(fn ast.DefaultFunction) Value { return Value{tag: builtinValue, Builtin: fn} }

func (v Value) typeName() string {
	switch v.tag {
	case constantValue:
		return "constant"
	case delayValue:
		return "delay"
	case lambdaValue:
		return "lambda"
	case builtinValue:
		return "builtin"
	default:
		return "<unknown>"
	}
}

// asTerm re-embeds a Value back into a Term, used when the final
// Return value is converted into the machine's result term.
func (v Value) asTerm() *ast.Term[ast.NamedDeBruijn] {
	switch v.tag {
	case constantValue:
		return ast.NewConstant[ast.NamedDeBruijn](v.Constant)
	case delayValue:
		return ast.NewDelay(rebuildWithEnv(v.Body, v.Env))
	case lambdaValue:
		return ast.NewLambda(v.Term.Parameter, rebuildWithEnv(v.Term.Body, v.Env))
	case builtinValue:
		t := ast.NewBuiltin[ast.NamedDeBruijn](v.Builtin)
		for _, a := range v.Args {
			t = ast.NewApply(t, a.asTerm())
		}
		return t
	default:
		panic("unreachable value tag")
	}
}

// rebuildWithEnv substitutes each free variable's environment-captured
// value back into term, so a closure value can be re-expressed as a
// standalone, closed term for display/pretty-printing purposes. This
// is display-only; the evaluator itself never needs a substituted term
// because it carries the environment alongside the body.
func rebuildWithEnv(t *ast.Term[ast.NamedDeBruijn], e env) *ast.Term[ast.NamedDeBruijn] {
	return rebuildAt(t, e, 0)
}

func rebuildAt(t *ast.Term[ast.NamedDeBruijn], e env, depth int) *ast.Term[ast.NamedDeBruijn] {
	switch t.TagKind() {
	case ast.VarTerm:
		idx := t.Var.Index
		if idx <= depth {
			return t
		}
		if v, ok := e.lookup(idx - depth); ok {
			return v.asTerm()
		}
		return t
	case ast.LambdaTerm:
		return ast.NewLambda(t.Parameter, rebuildAt(t.Body, e, depth+1))
	case ast.ApplyTerm:
		return ast.NewApply(rebuildAt(t.Function, e, depth), rebuildAt(t.Argument, e, depth))
	case ast.DelayTerm:
		return ast.NewDelay(rebuildAt(t.Body, e, depth))
	case ast.ForceTerm:
		return ast.NewForce(rebuildAt(t.Body, e, depth))
	default:
		return t
	}
}
