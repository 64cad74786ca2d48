package ast

import "fmt"

// FreeVariableError reports that a term referenced a de Bruijn index
// with no corresponding binder in scope, per §3.3 "the reverse
// direction may fail with FreeVariable(index)".
type FreeVariableError struct {
	Index int
}

func (e *FreeVariableError) Error() string {
	return fmt.Sprintf("free variable at index %d", e.Index)
}

// scope tracks, outermost-first (innermost last), the Name of each Lambda binder
// currently in scope, so a Var(Name) can be rewritten to its distance
// from the use site.
type scope []Name

func (s scope) indexOf(n Name) (int, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Unique == n.Unique {
			return len(s) - 1 - i, true
		}
	}
	return 0, false
}

// ToNamedDeBruijn converts a Name-indexed term into a NamedDeBruijn
// term, replacing each Var's Unique with its lexical distance from its
// binder. This conversion is total: every well-scoped term converts
// successfully (§3.3 "Name → NamedDeBruijn → DeBruijn erases name text
// but keeps indices").
func ToNamedDeBruijn(t *Term[Name]) (*Term[NamedDeBruijn], error) {
	return toNamedDeBruijn(t, nil)
}

// ProgramToNamedDeBruijn converts a whole Program, carrying its
// Version across unchanged.
func ProgramToNamedDeBruijn(p Program[Name]) (Program[NamedDeBruijn], error) {
	t, err := ToNamedDeBruijn(p.Term)
	if err != nil {
		return Program[NamedDeBruijn]{}, err
	}
	return Program[NamedDeBruijn]{Version: p.Version, Term: t}, nil
}

func toNamedDeBruijn(t *Term[Name], sc scope) (*Term[NamedDeBruijn], error) {
	switch t.TagKind() {
	case VarTerm:
		idx, ok := sc.indexOf(t.Var)
		if !ok {
			return nil, &FreeVariableError{Index: 0}
		}
		return NewVar(NamedDeBruijn{Text: t.Var.Text, Index: idx + 1}), nil
	case LambdaTerm:
		body, err := toNamedDeBruijn(t.Body, append(sc, t.Parameter))
		if err != nil {
			return nil, err
		}
		return NewLambda(NamedDeBruijn{Text: t.Parameter.Text, Index: 0}, body), nil
	case ApplyTerm:
		fn, err := toNamedDeBruijn(t.Function, sc)
		if err != nil {
			return nil, err
		}
		arg, err := toNamedDeBruijn(t.Argument, sc)
		if err != nil {
			return nil, err
		}
		return NewApply(fn, arg), nil
	case DelayTerm:
		body, err := toNamedDeBruijn(t.Body, sc)
		if err != nil {
			return nil, err
		}
		return NewDelay(body), nil
	case ForceTerm:
		body, err := toNamedDeBruijn(t.Body, sc)
		if err != nil {
			return nil, err
		}
		return NewForce(body), nil
	case ConstantTerm:
		return NewConstant[NamedDeBruijn](t.Constant), nil
	case BuiltinTerm:
		return NewBuiltin[NamedDeBruijn](t.Builtin), nil
	case ErrorTerm:
		return NewError[NamedDeBruijn](), nil
	default:
		panic("unreachable term tag")
	}
}

// FromFakeNamedDeBruijn is the total direction of the
// FakeNamedDeBruijn → NamedDeBruijn conversion (§3.3): the wire format
// already carries indices, so this is a structural recursion with no
// failure mode.
func FromFakeNamedDeBruijn(t *Term[FakeNamedDeBruijn]) *Term[NamedDeBruijn] {
	switch t.TagKind() {
	case VarTerm:
		return NewVar(NamedDeBruijn{Text: t.Var.Text, Index: t.Var.Index})
	case LambdaTerm:
		return NewLambda(NamedDeBruijn{Text: t.Parameter.Text, Index: t.Parameter.Index}, FromFakeNamedDeBruijn(t.Body))
	case ApplyTerm:
		return NewApply(FromFakeNamedDeBruijn(t.Function), FromFakeNamedDeBruijn(t.Argument))
	case DelayTerm:
		return NewDelay(FromFakeNamedDeBruijn(t.Body))
	case ForceTerm:
		return NewForce(FromFakeNamedDeBruijn(t.Body))
	case ConstantTerm:
		return NewConstant[NamedDeBruijn](t.Constant)
	case BuiltinTerm:
		return NewBuiltin[NamedDeBruijn](t.Builtin)
	case ErrorTerm:
		return NewError[NamedDeBruijn]()
	default:
		panic("unreachable term tag")
	}
}

// ToDeBruijn erases display text from a NamedDeBruijn term, keeping
// only indices (the final, text-free link of §3.3's lattice).
func ToDeBruijn(t *Term[NamedDeBruijn]) *Term[DeBruijn] {
	switch t.TagKind() {
	case VarTerm:
		return NewVar(DeBruijn(t.Var.Index))
	case LambdaTerm:
		return NewLambda(DeBruijn(t.Parameter.Index), ToDeBruijn(t.Body))
	case ApplyTerm:
		return NewApply(ToDeBruijn(t.Function), ToDeBruijn(t.Argument))
	case DelayTerm:
		return NewDelay(ToDeBruijn(t.Body))
	case ForceTerm:
		return NewForce(ToDeBruijn(t.Body))
	case ConstantTerm:
		return NewConstant[DeBruijn](t.Constant)
	case BuiltinTerm:
		return NewBuiltin[DeBruijn](t.Builtin)
	case ErrorTerm:
		return NewError[DeBruijn]()
	default:
		panic("unreachable term tag")
	}
}

// FromNamedDeBruijn converts back to Name-indexed form by resolving
// each index against the stack of binder Names in scope. This is the
// partial direction of the lattice: an out-of-range index yields
// FreeVariableError.
func FromNamedDeBruijn(t *Term[NamedDeBruijn], nextUnique *Unique) (*Term[Name], error) {
	return fromNamedDeBruijn(t, nil, nextUnique)
}

func fromNamedDeBruijn(t *Term[NamedDeBruijn], sc []Name, nextUnique *Unique) (*Term[Name], error) {
	switch t.TagKind() {
	case VarTerm:
		if t.Var.Index <= 0 || t.Var.Index > len(sc) {
			return nil, &FreeVariableError{Index: t.Var.Index}
		}
		return NewVar(sc[len(sc)-t.Var.Index]), nil
	case LambdaTerm:
		name := Name{Text: t.Parameter.Text, Unique: *nextUnique}
		*nextUnique++
		body, err := fromNamedDeBruijn(t.Body, append(sc, name), nextUnique)
		if err != nil {
			return nil, err
		}
		return NewLambda(name, body), nil
	case ApplyTerm:
		fn, err := fromNamedDeBruijn(t.Function, sc, nextUnique)
		if err != nil {
			return nil, err
		}
		arg, err := fromNamedDeBruijn(t.Argument, sc, nextUnique)
		if err != nil {
			return nil, err
		}
		return NewApply(fn, arg), nil
	case DelayTerm:
		body, err := fromNamedDeBruijn(t.Body, sc, nextUnique)
		if err != nil {
			return nil, err
		}
		return NewDelay(body), nil
	case ForceTerm:
		body, err := fromNamedDeBruijn(t.Body, sc, nextUnique)
		if err != nil {
			return nil, err
		}
		return NewForce(body), nil
	case ConstantTerm:
		return NewConstant[Name](t.Constant), nil
	case BuiltinTerm:
		return NewBuiltin[Name](t.Builtin), nil
	case ErrorTerm:
		return NewError[Name](), nil
	default:
		panic("unreachable term tag")
	}
}
