package ast

import "github.com/eyelash/aiken/lang/token"

// Pattern is implemented by every pattern node usable in a `let`
// binding, function argument, or `when` clause.
type Pattern interface {
	Node
	patternNode()
}

// VarPattern binds the matched value to a name.
type VarPattern struct {
	baseNode
	Name string
}

func (*VarPattern) patternNode() {}

func NewVarPattern(span token.Span, name string) *VarPattern {
	return &VarPattern{baseNode: newBase(span), Name: name}
}

// DiscardPattern matches anything and binds nothing.
type DiscardPattern struct {
	baseNode
	Name string // the underscore-prefixed spelling, e.g. "_" or "_foo"
}

func (*DiscardPattern) patternNode() {}

func NewDiscardPattern(span token.Span, name string) *DiscardPattern {
	return &DiscardPattern{baseNode: newBase(span), Name: name}
}

// IntPattern matches an exact integer literal.
type IntPattern struct {
	baseNode
	Value string
}

func (*IntPattern) patternNode() {}

func NewIntPattern(span token.Span, value string) *IntPattern {
	return &IntPattern{baseNode: newBase(span), Value: value}
}

// StringPattern matches an exact string literal.
type StringPattern struct {
	baseNode
	Value string
}

func (*StringPattern) patternNode() {}

func NewStringPattern(span token.Span, value string) *StringPattern {
	return &StringPattern{baseNode: newBase(span), Value: value}
}

// ListPattern matches a list, optionally with a tail pattern capturing
// the remainder (`[e1, e2, ..tail]`).
type ListPattern struct {
	baseNode
	Elements []Pattern
	Tail     Pattern // nil if no tail
}

func (*ListPattern) patternNode() {}

func NewListPattern(span token.Span, elements []Pattern, tail Pattern) *ListPattern {
	return &ListPattern{baseNode: newBase(span), Elements: elements, Tail: tail}
}

// ConstructorPatternArg is one argument of a ConstructorPattern, in
// either brace (record, label-aware) or paren (positional) form.
type ConstructorPatternArg struct {
	Label   string // empty if positional
	Pattern Pattern
}

// ConstructorPattern matches a data-type constructor application.
type ConstructorPattern struct {
	baseNode
	Module      string
	Name        string
	Arguments   []ConstructorPatternArg
	WithSpread  bool // trailing `..` present
	IsRecord    bool // brace-style argument list
}

func (*ConstructorPattern) patternNode() {}

func NewConstructorPattern(span token.Span, module, name string, args []ConstructorPatternArg, withSpread, isRecord bool) *ConstructorPattern {
	return &ConstructorPattern{baseNode: newBase(span), Module: module, Name: name, Arguments: args, WithSpread: withSpread, IsRecord: isRecord}
}

// AssignPattern binds the whole match to Name while also matching the
// nested Pattern (`pattern as Name`).
type AssignPattern struct {
	baseNode
	Name    string
	Pattern Pattern
}

func (*AssignPattern) patternNode() {}

func NewAssignPattern(span token.Span, name string, pattern Pattern) *AssignPattern {
	return &AssignPattern{baseNode: newBase(span), Name: name, Pattern: pattern}
}
