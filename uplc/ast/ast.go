// Package ast defines the UPLC term/program model (C6): the Term and
// Program types parameterized over a naming scheme, Constant values,
// and the DefaultFunction primitive table, adapted from cue/ast's
// interface-per-category node style to a lambda-calculus IR.
package ast

import (
	"fmt"
	"math/big"
)

// Unique is a non-negative integer identity distinguishing
// alpha-equivalent occurrences of a name after interning. Allocation is
// scoped to a single parse call (SPEC_FULL.md §9).
type Unique int

// Name pairs display text with its interned Unique. Two Names are
// considered equal iff their Uniques are equal; Text is retained only
// for display.
type Name struct {
	Text   string
	Unique Unique
}

func (n Name) String() string { return n.Text }

// Equal compares two Names by Unique, per §3.3's equality rule.
func (n Name) Equal(o Name) bool { return n.Unique == o.Unique }

// NamedDeBruijn is a display name paired with a de Bruijn index,
// produced by converting a Name-indexed term.
type NamedDeBruijn struct {
	Text  string
	Index int
}

func (n NamedDeBruijn) String() string { return n.Text }

// FakeNamedDeBruijn is the wire-format naming scheme used by the flat
// decoder: a NamedDeBruijn whose index has not yet been validated
// against its binding depth.
type FakeNamedDeBruijn struct {
	Text  string
	Index int
}

// DeBruijn is a pure de Bruijn index with no retained display text.
type DeBruijn int

// ConstantKind enumerates the closed set of UPLC constant types.
type ConstantKind int

const (
	IntegerKind ConstantKind = iota
	ByteStringKind
	StringKind
	UnitKind
	BoolKind
)

// Constant is a UPLC literal value: Integer, ByteString, String, Unit,
// or Bool (§3.3).
type Constant struct {
	Kind    ConstantKind
	Integer *big.Int
	Bytes   []byte
	Str     string
	Bool    bool
}

func NewIntegerConstant(i *big.Int) Constant   { return Constant{Kind: IntegerKind, Integer: i} }
func NewByteStringConstant(b []byte) Constant  { return Constant{Kind: ByteStringKind, Bytes: b} }
func NewStringConstant(s string) Constant      { return Constant{Kind: StringKind, Str: s} }
func NewUnitConstant() Constant                { return Constant{Kind: UnitKind} }
func NewBoolConstant(b bool) Constant          { return Constant{Kind: BoolKind, Bool: b} }

func (c Constant) String() string {
	switch c.Kind {
	case IntegerKind:
		return c.Integer.String()
	case ByteStringKind:
		return fmt.Sprintf("#%x", c.Bytes)
	case StringKind:
		return fmt.Sprintf("%q", c.Str)
	case UnitKind:
		return "()"
	case BoolKind:
		if c.Bool {
			return "True"
		}
		return "False"
	default:
		return "<invalid constant>"
	}
}

// Equal reports structural equality of two constants, used by the
// machine's builtin implementations and by tests.
func (c Constant) Equal(o Constant) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case IntegerKind:
		return c.Integer.Cmp(o.Integer) == 0
	case ByteStringKind:
		if len(c.Bytes) != len(o.Bytes) {
			return false
		}
		for i := range c.Bytes {
			if c.Bytes[i] != o.Bytes[i] {
				return false
			}
		}
		return true
	case StringKind:
		return c.Str == o.Str
	case UnitKind:
		return true
	case BoolKind:
		return c.Bool == o.Bool
	}
	return false
}

// TermTag discriminates the Term sum type (§3.3).
type TermTag int

const (
	VarTerm TermTag = iota
	LambdaTerm
	ApplyTerm
	DelayTerm
	ForceTerm
	ConstantTerm
	BuiltinTerm
	ErrorTerm
)

// Term is a UPLC term parameterized over a naming scheme N (one of
// Name, NamedDeBruijn, FakeNamedDeBruijn, DeBruijn), mirroring
// spec.md §3.3's Term<N>. Only the fields relevant to Tag are
// meaningful; this mirrors a tagged union the way an arena-indexed
// sum type would in a systems language, without requiring a type
// switch per variant at every call site.
type Term[N any] struct {
	tag TermTag

	Var       N
	Parameter N
	Body      *Term[N]
	Function  *Term[N]
	Argument  *Term[N]
	Constant  Constant
	Builtin   DefaultFunction
}

func (t *Term[N]) TagKind() TermTag { return t.tag }

func NewVar[N any](n N) *Term[N] { return &Term[N]{tag: VarTerm, Var: n} }

func NewLambda[N any](parameter N, body *Term[N]) *Term[N] {
	return &Term[N]{tag: LambdaTerm, Parameter: parameter, Body: body}
}

func NewApply[N any](function, argument *Term[N]) *Term[N] {
	return &Term[N]{tag: ApplyTerm, Function: function, Argument: argument}
}

func NewDelay[N any](body *Term[N]) *Term[N] { return &Term[N]{tag: DelayTerm, Body: body} }

func NewForce[N any](body *Term[N]) *Term[N] { return &Term[N]{tag: ForceTerm, Body: body} }

func NewConstant[N any](c Constant) *Term[N] { return &Term[N]{tag: ConstantTerm, Constant: c} }

func NewBuiltin[N any](b DefaultFunction) *Term[N] { return &Term[N]{tag: BuiltinTerm, Builtin: b} }

func NewError[N any]() *Term[N] { return &Term[N]{tag: ErrorTerm} }

// Version is the three-component UPLC program version (§3.3).
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch) }

// Program is a versioned UPLC term (§3.3).
type Program[N any] struct {
	Version Version
	Term    *Term[N]
}

// ApplyTermProgram prepends an application to p, nesting left-deep on
// successive calls (§4.5 "apply_term").
func ApplyTermProgram[N any](p Program[N], arg *Term[N]) Program[N] {
	return Program[N]{Version: p.Version, Term: NewApply(p.Term, arg)}
}
