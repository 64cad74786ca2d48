package ast

import "github.com/eyelash/aiken/lang/token"

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// IntExpr is an integer literal.
type IntExpr struct {
	baseNode
	Value string
}

func (*IntExpr) exprNode() {}

func NewIntExpr(span token.Span, value string) *IntExpr {
	return &IntExpr{baseNode: newBase(span), Value: value}
}

// StringExpr is a string literal.
type StringExpr struct {
	baseNode
	Value string
}

func (*StringExpr) exprNode() {}

func NewStringExpr(span token.Span, value string) *StringExpr {
	return &StringExpr{baseNode: newBase(span), Value: value}
}

// VarExpr is a bare identifier reference, optionally module-qualified.
type VarExpr struct {
	baseNode
	Module string
	Name   string
}

func (*VarExpr) exprNode() {}

func NewVarExpr(span token.Span, module, name string) *VarExpr {
	return &VarExpr{baseNode: newBase(span), Module: module, Name: name}
}

// ListExpr is a list literal, optionally with a spread tail
// (`[e1, e2, ..tail]`).
type ListExpr struct {
	baseNode
	Elements []Expr
	Tail     Expr // nil if no tail
}

func (*ListExpr) exprNode() {}

func NewListExpr(span token.Span, elements []Expr, tail Expr) *ListExpr {
	return &ListExpr{baseNode: newBase(span), Elements: elements, Tail: tail}
}

// FnExpr is an anonymous function literal. IsCapture is true when this
// node was synthesized by the call-argument-hole rewrite (§4.4).
type FnExpr struct {
	baseNode
	Arguments        []Arg
	Body             Expr
	IsCapture        bool
	ReturnAnnotation Annotation // nil if omitted
}

func (*FnExpr) exprNode() {}

func NewFnExpr(span token.Span, args []Arg, body Expr, isCapture bool, ret Annotation) *FnExpr {
	return &FnExpr{baseNode: newBase(span), Arguments: args, Body: body, IsCapture: isCapture, ReturnAnnotation: ret}
}

// CallArg is one argument of a Call, preserving the `(label, value)`
// pairing verbatim regardless of argument order.
type CallArg struct {
	Label string // empty if positional
	Value Expr
	Hole  bool // true for a bare `_` placeholder prior to capture rewrite
}

// CallExpr is a function call / constructor application.
type CallExpr struct {
	baseNode
	Fun       Expr
	Arguments []CallArg
}

func (*CallExpr) exprNode() {}

func NewCallExpr(span token.Span, fun Expr, args []CallArg) *CallExpr {
	return &CallExpr{baseNode: newBase(span), Fun: fun, Arguments: args}
}

// BinOpName enumerates the infix operators recognized by the
// expression grammar's precedence cascade.
type BinOpName int

const (
	OpAnd BinOpName = iota
	OpOr
	OpEq
	OpNotEq
	OpLtInt
	OpLtEqInt
	OpGtInt
	OpGtEqInt
	OpAddInt
	OpSubInt
	OpMultInt
	OpDivInt
	OpModInt
)

// BinOpExpr is an infix binary operator application.
type BinOpExpr struct {
	baseNode
	Name  BinOpName
	Left  Expr
	Right Expr
}

func (*BinOpExpr) exprNode() {}

func NewBinOpExpr(span token.Span, name BinOpName, left, right Expr) *BinOpExpr {
	return &BinOpExpr{baseNode: newBase(span), Name: name, Left: left, Right: right}
}

// PipeLineExpr is a `a |> b |> c` chain; Expressions is left-associative
// and always has at least one element beyond the initial subject.
type PipeLineExpr struct {
	baseNode
	Expressions []Expr // non-empty; Expressions[0] is the initial subject
}

func (*PipeLineExpr) exprNode() {}

func NewPipeLineExpr(span token.Span, expressions []Expr) *PipeLineExpr {
	return &PipeLineExpr{baseNode: newBase(span), Expressions: expressions}
}

// AssignmentKind distinguishes `let`, `assert`, and `check` bindings.
type AssignmentKind int

const (
	Let AssignmentKind = iota
	Assert
	Check
)

// AssignmentExpr is a `let/assert/check pattern[: annotation] = value`
// binding. Its continuation is spliced in separately by
// AppendInSequence; Assignment itself has no `then` field.
type AssignmentExpr struct {
	baseNode
	Kind       AssignmentKind
	Pattern    Pattern
	Annotation Annotation // nil if omitted
	Value      Expr
}

func (*AssignmentExpr) exprNode() {}

func NewAssignmentExpr(span token.Span, kind AssignmentKind, pattern Pattern, ann Annotation, value Expr) *AssignmentExpr {
	return &AssignmentExpr{baseNode: newBase(span), Kind: kind, Pattern: pattern, Annotation: ann, Value: value}
}

// TryExpr is a `try pattern[: annotation] = value` binding with an
// explicit continuation, used for monadic-style early-exit patterns.
type TryExpr struct {
	baseNode
	Pattern    Pattern
	Annotation Annotation // nil if omitted
	Value      Expr
	Then       Expr
}

func (*TryExpr) exprNode() {}

func NewTryExpr(span token.Span, pattern Pattern, ann Annotation, value, then Expr) *TryExpr {
	return &TryExpr{baseNode: newBase(span), Pattern: pattern, Annotation: ann, Value: value, Then: then}
}

// Clause is one `pattern, ... | pattern, ... [if guard] -> expr` arm of
// a When expression.
type Clause struct {
	Pattern            []Pattern
	AlternativePatterns [][]Pattern
	Guard              Expr // nil if no guard
	Then               Expr
}

// WhenExpr is a `when subjects is { clauses }` pattern match. Both
// Subjects and Clauses may be empty at parse time; rejecting that is a
// semantic-layer concern (DESIGN.md "Open Question decisions").
type WhenExpr struct {
	baseNode
	Subjects []Expr
	Clauses  []Clause
}

func (*WhenExpr) exprNode() {}

func NewWhenExpr(span token.Span, subjects []Expr, clauses []Clause) *WhenExpr {
	return &WhenExpr{baseNode: newBase(span), Subjects: subjects, Clauses: clauses}
}

// IfBranch is one `cond { body }` arm of an If chain.
type IfBranch struct {
	Condition Expr
	Body      Expr
}

// IfExpr is an `if cond {} else if cond {} ... else {}` chain; Branches
// is non-empty and FinalElse is mandatory.
type IfExpr struct {
	baseNode
	Branches  []IfBranch
	FinalElse Expr
}

func (*IfExpr) exprNode() {}

func NewIfExpr(span token.Span, branches []IfBranch, finalElse Expr) *IfExpr {
	return &IfExpr{baseNode: newBase(span), Branches: branches, FinalElse: finalElse}
}

// FieldAccessExpr is `container.label`.
type FieldAccessExpr struct {
	baseNode
	Container Expr
	Label     string
}

func (*FieldAccessExpr) exprNode() {}

func NewFieldAccessExpr(span token.Span, container Expr, label string) *FieldAccessExpr {
	return &FieldAccessExpr{baseNode: newBase(span), Container: container, Label: label}
}

// RecordUpdateArg is one `label: value` override in a RecordUpdateExpr.
type RecordUpdateArg struct {
	Label string
	Value Expr
}

// RecordUpdateExpr is `Constructor { ..spread, label: value, ... }`.
type RecordUpdateExpr struct {
	baseNode
	Constructor Expr
	Spread      Expr
	Arguments   []RecordUpdateArg
}

func (*RecordUpdateExpr) exprNode() {}

func NewRecordUpdateExpr(span token.Span, constructor, spread Expr, args []RecordUpdateArg) *RecordUpdateExpr {
	return &RecordUpdateExpr{baseNode: newBase(span), Constructor: constructor, Spread: spread, Arguments: args}
}

// NegateExpr is a prefix `!value`; whether this denotes boolean or
// arithmetic negation is left for the (out-of-scope) type checker to
// decide (DESIGN.md "Open Question decisions").
type NegateExpr struct {
	baseNode
	Value Expr
}

func (*NegateExpr) exprNode() {}

func NewNegateExpr(span token.Span, value Expr) *NegateExpr {
	return &NegateExpr{baseNode: newBase(span), Value: value}
}

// TodoKind distinguishes an explicit `todo` expression from the
// implicit one synthesized for an empty function body.
type TodoKind int

const (
	ExplicitTodo TodoKind = iota
	EmptyFunction
)

// TodoExpr is `todo[("label")]`, or the implicit placeholder for an
// omitted function body.
type TodoExpr struct {
	baseNode
	Kind  TodoKind
	Label string // empty if omitted
}

func (*TodoExpr) exprNode() {}

func NewTodoExpr(span token.Span, kind TodoKind, label string) *TodoExpr {
	return &TodoExpr{baseNode: newBase(span), Kind: kind, Label: label}
}

// SequenceExpr is a left-associative chain of expressions written one
// after another within a block, separated only by whitespace: `a b c`
// parses as Sequence{Sequence{a, b}, c}.
type SequenceExpr struct {
	baseNode
	First Expr
	Then  Expr
}

func (*SequenceExpr) exprNode() {}

func NewSequenceExpr(span token.Span, first, then Expr) *SequenceExpr {
	return &SequenceExpr{baseNode: newBase(span), First: first, Then: then}
}

// AppendInSequence implements the grammar's statement-chaining rule
// (§4.3 "Sequencing"): a `try` expression splices the remaining
// expressions of the block into its own Then continuation instead of
// forming a flat Sequence node with them. `let`/`assert`/`check`
// assignments have no continuation field and are chained with the rest
// of the block through ordinary Sequence nodes. The fold is
// left-associative: `a b c` builds Sequence{Sequence{a, b}, c}.
func AppendInSequence(first Expr, rest []Expr) Expr {
	acc := first
	for _, next := range rest {
		acc = appendExpr(acc, next)
	}
	return acc
}

// appendExpr appends next after acc. An open try binding splices next
// into its continuation (recursing if that continuation is itself
// already filled); otherwise acc becomes the First of a new Sequence
// with next as Then.
func appendExpr(acc, next Expr) Expr {
	if e, ok := acc.(*TryExpr); ok {
		if e.Then == nil {
			e.Then = next
		} else {
			e.Then = appendExpr(e.Then, next)
		}
		e.baseNode = newBase(token.Union(e.Span(), e.Then.Span()))
		return e
	}
	span := token.Union(acc.Span(), next.Span())
	return NewSequenceExpr(span, acc, next)
}
