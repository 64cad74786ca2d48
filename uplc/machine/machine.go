package machine

import (
	"github.com/eyelash/aiken/uplc/ast"
)

// Machine holds one evaluation's mutable state: remaining budget and
// the accumulated trace log. A Machine is single-use; construct a
// fresh one per Eval call (spec.md §5 "no shared mutable state outside
// the per-invocation ... evaluator state").
type Machine struct {
	costs    MachineCosts
	builtins map[ast.DefaultFunction]BuiltinCostEntry
	budget   ExBudget
	logs     []string
}

// NewMachine constructs a Machine with the given starting budget and
// the default per-step/per-builtin cost tables.
func NewMachine(budget ExBudget) *Machine {
	return &Machine{
		costs:    DefaultMachineCosts,
		builtins: DefaultBuiltinCosts,
		budget:   budget,
	}
}

func (m *Machine) spend(cost ExBudget) EvalError {
	m.budget = m.budget.Sub(cost)
	if m.budget.Negative() {
		return &OutOfBudgetError{}
	}
	return nil
}

// Eval reduces prog's term to normal form under the given budget,
// returning the result term, the cost actually consumed (default −
// remaining), and the accumulated logs (§4.5). The CEK machine's
// Control/Environment/Kontinuation triple is realized here as ordinary
// Go recursion: compute/force/applyFun mutually recurse the way the
// spec's Return-state unwinding would pop Kontinuation frames, which
// is observationally equivalent for a single-threaded, non-tail-call
// evaluator with no coroutine boundary to cross (§5 "no suspension
// points").
func Eval(prog ast.Program[ast.NamedDeBruijn], budget ExBudget) (result *ast.Term[ast.NamedDeBruijn], consumed ExBudget, logs []string, evalErr EvalError) {
	m := NewMachine(budget)
	if err := m.spend(m.costs.Startup); err != nil {
		return nil, budget.Sub(m.budget), m.logs, err
	}

	v, err := m.compute(prog.Term, nil)
	consumed = budget.Sub(m.budget)
	if err != nil {
		return nil, consumed, m.logs, err
	}
	return v.asTerm(), consumed, m.logs, nil
}

// compute is Control=Compute(term) under environment e, run to a
// resolved Value (Control=Return).
func (m *Machine) compute(term *ast.Term[ast.NamedDeBruijn], e env) (Value, EvalError) {
	switch term.TagKind() {
	case ast.VarTerm:
		if err := m.spend(m.costs.Var); err != nil {
			return Value{}, err
		}
		v, ok := e.lookup(term.Var.Index)
		if !ok {
			return Value{}, &FreeVariableError{Index: term.Var.Index}
		}
		return v, nil
	case ast.LambdaTerm:
		if err := m.spend(m.costs.Lambda); err != nil {
			return Value{}, err
		}
		return lambdaVal(term, e), nil
	case ast.DelayTerm:
		if err := m.spend(m.costs.Delay); err != nil {
			return Value{}, err
		}
		return delayVal(term.Body, e), nil
	case ast.ConstantTerm:
		if err := m.spend(m.costs.Constant); err != nil {
			return Value{}, err
		}
		return constVal(term.Constant), nil
	case ast.BuiltinTerm:
		if err := m.spend(m.costs.Builtin); err != nil {
			return Value{}, err
		}
		return builtinVal(term.Builtin), nil
	case ast.ErrorTerm:
		return Value{}, &UserErrorTerm{}
	case ast.ApplyTerm:
		if err := m.spend(m.costs.Apply); err != nil {
			return Value{}, err
		}
		fn, err := m.compute(term.Function, e)
		if err != nil {
			return Value{}, err
		}
		argVal, err := m.compute(term.Argument, e)
		if err != nil {
			return Value{}, err
		}
		return m.applyFun(fn, argVal)
	case ast.ForceTerm:
		if err := m.spend(m.costs.Force); err != nil {
			return Value{}, err
		}
		inner, err := m.compute(term.Body, e)
		if err != nil {
			return Value{}, err
		}
		return m.force(inner)
	default:
		panic("unreachable term tag")
	}
}

// force reduces a Delay value by resuming its suspended body, or, if
// v is a not-yet-saturated builtin, records one more satisfied force
// requirement (§4.5 "Compute/Force pushes Force").
func (m *Machine) force(v Value) (Value, EvalError) {
	switch v.tag {
	case delayValue:
		return m.compute(v.Body, v.Env)
	case builtinValue:
		nv := v
		nv.Forces++
		return nv, nil
	default:
		return Value{}, &TypeMismatchError{Expected: "delay or builtin", Got: v.typeName()}
	}
}

// applyFun applies fn to arg: a Lambda extends its captured
// environment and evaluates its body; a Builtin accumulates the
// argument and, once its arity and force count are both satisfied,
// invokes the primitive (§4.5 "Fun(Builtin) accumulates arguments
// until ... satisfied, then invokes the primitive").
func (m *Machine) applyFun(fn Value, arg Value) (Value, EvalError) {
	switch fn.tag {
	case lambdaValue:
		ne := append(append(env{}, fn.Env...), arg)
		return m.compute(fn.Term.Body, ne)
	case builtinValue:
		args := append(append([]Value{}, fn.Args...), arg)
		if len(args) < fn.Builtin.Arity() || fn.Forces < fn.Builtin.ForceCount() {
			return Value{tag: builtinValue, Builtin: fn.Builtin, Forces: fn.Forces, Args: args}, nil
		}
		if fn.Builtin == ast.Trace {
			if s, ok := stringOf(args[0]); ok {
				m.logs = append(m.logs, s)
			}
			return args[1], nil
		}
		cost := m.builtinCost(fn.Builtin, args)
		if err := m.spend(cost); err != nil {
			return Value{}, err
		}
		return applyBuiltin(fn.Builtin, args)
	default:
		return Value{}, &TypeMismatchError{Expected: "lambda or builtin", Got: fn.typeName()}
	}
}

// sizeOf approximates a constant's cost-model "size" in machine
// words, used by builtinCost to evaluate a CostFunction.
func sizeOf(v Value) int64 {
	if v.tag != constantValue {
		return 1
	}
	switch v.Constant.Kind {
	case ast.IntegerKind:
		return int64((v.Constant.Integer.BitLen()+63)/64) + 1
	case ast.ByteStringKind:
		return int64((len(v.Constant.Bytes) + 7) / 8)
	case ast.StringKind:
		return int64((len(v.Constant.Str) + 7) / 8)
	default:
		return 1
	}
}

func (m *Machine) builtinCost(fn ast.DefaultFunction, args []Value) ExBudget {
	entry, ok := m.builtins[fn]
	if !ok {
		return ExBudget{}
	}
	sizes := make([]int64, len(args))
	for i, a := range args {
		sizes[i] = sizeOf(a)
	}
	for len(sizes) < 2 {
		sizes = append(sizes, 0)
	}
	return ExBudget{CPU: entry.CPU.apply(sizes...), Mem: entry.Mem.apply(sizes...)}
}
