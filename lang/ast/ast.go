// Package ast defines the untyped surface-language AST: modules,
// definitions, expressions, patterns, and type annotations, each
// carrying the source Span it was parsed from.
package ast

import "github.com/eyelash/aiken/lang/token"

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

type baseNode struct {
	span token.Span
}

func (b baseNode) Span() token.Span { return b.span }

func newBase(span token.Span) baseNode { return baseNode{span: span} }

// ModuleKind distinguishes a library module from a script (validator)
// module.
type ModuleKind int

const (
	LibraryModule ModuleKind = iota
	ScriptModule
)

func (k ModuleKind) String() string {
	if k == ScriptModule {
		return "script"
	}
	return "lib"
}

// ModuleExtra collects the trivia (comments, blank lines) separated out
// of the token stream by the parser before grammar nodes are built.
// Trivia spans never overlap a code-token span, and each slice is
// ordered by Start.
type ModuleExtra struct {
	Comments       []token.Span
	DocComments    []token.Span
	ModuleComments []token.Span
	EmptyLines     []int
}

// Module is the root AST node produced by parsing one source file.
type Module struct {
	Name        string
	Kind        ModuleKind
	Definitions []Definition
	Docs        []string
	Extra       ModuleExtra
}

// Definition is implemented by every top-level declaration.
type Definition interface {
	Node
	definitionNode()
}

// UnqualifiedImport is a single `name [as alias]` member of a `use`
// import list.
type UnqualifiedImport struct {
	Name   string
	AsName string // empty if no alias
}

// Use is a `use module/path[.{members}][ as alias]` import.
type Use struct {
	baseNode
	Module      []string
	Unqualified []UnqualifiedImport
	AsName      string
}

func (*Use) definitionNode() {}

// NewUse constructs a Use definition.
func NewUse(span token.Span, module []string, unqualified []UnqualifiedImport, asName string) *Use {
	return &Use{baseNode: newBase(span), Module: module, Unqualified: unqualified, AsName: asName}
}

// TypeAlias is a `[pub] type Name(params) = Annotation` definition.
type TypeAlias struct {
	baseNode
	Alias      string
	Parameters []string
	Annotation Annotation
	Public     bool
}

func (*TypeAlias) definitionNode() {}

func NewTypeAlias(span token.Span, alias string, params []string, ann Annotation, public bool) *TypeAlias {
	return &TypeAlias{baseNode: newBase(span), Alias: alias, Parameters: params, Annotation: ann, Public: public}
}

// RecordConstructorArg is one field of a RecordConstructor: either
// labeled (`label: Annotation`) or positional (`Annotation`).
type RecordConstructorArg struct {
	Label      string // empty if positional
	Annotation Annotation
	Doc        string
	Location   token.Span
}

// RecordConstructor is one constructor alternative of a DataType.
type RecordConstructor struct {
	Name      string
	Arguments []RecordConstructorArg
	Sugar     bool // true when promoted from a bare labeled-field list
	Location  token.Span
}

// DataType is a `[pub] [opaque] type Name(params) { constructors }`
// definition.
type DataType struct {
	baseNode
	Name         string
	Parameters   []string
	Opaque       bool
	Public       bool
	Constructors []RecordConstructor
	Doc          string
}

func (*DataType) definitionNode() {}

func NewDataType(span token.Span, name string, params []string, opaque, public bool, ctors []RecordConstructor, doc string) *DataType {
	return &DataType{baseNode: newBase(span), Name: name, Parameters: params, Opaque: opaque, Public: public, Constructors: ctors, Doc: doc}
}

// Arg is one parameter of an Fn: `[label] name[: Annotation]` or a
// discarded `_name`.
type Arg struct {
	Label      string // empty if positional
	Name       string
	Discard    bool
	Annotation Annotation // nil if omitted
	Location   token.Span
}

// Fn is a `[pub] fn Name(args) [-> Annotation] { body }` definition.
// An empty body desugars to Todo{Kind: EmptyFunction} at parse time.
type Fn struct {
	baseNode
	Name              string
	Arguments         []Arg
	Body              Expr
	ReturnAnnotation  Annotation // nil if omitted
	Public            bool
	EndPosition       int
}

func (*Fn) definitionNode() {}

func NewFn(span token.Span, name string, args []Arg, body Expr, ret Annotation, public bool, end int) *Fn {
	return &Fn{baseNode: newBase(span), Name: name, Arguments: args, Body: body, ReturnAnnotation: ret, Public: public, EndPosition: end}
}

// Validator is a top-level `validator { fn* }` block. It is a
// supplemental form (see SPEC_FULL.md §8): the original language
// accepts validator blocks grouping one or more entry-point functions
// sharing the same argument/body grammar as Fn.
type Validator struct {
	baseNode
	Name string // optional label before the brace, empty if absent
	Fns  []*Fn
}

func (*Validator) definitionNode() {}

func NewValidator(span token.Span, name string, fns []*Fn) *Validator {
	return &Validator{baseNode: newBase(span), Name: name, Fns: fns}
}

// Test is a top-level `test name() { body }` definition: syntactically
// an Fn with no arguments and no return annotation, kept as a distinct
// node so downstream tooling can tell tests from regular functions
// without inspecting naming conventions.
type Test struct {
	baseNode
	Name string
	Body Expr
}

func (*Test) definitionNode() {}

func NewTest(span token.Span, name string, body Expr) *Test {
	return &Test{baseNode: newBase(span), Name: name, Body: body}
}

// Annotation is a surface-syntax type annotation.
type Annotation interface {
	Node
	annotationNode()
}

// HoleAnnotation is an elided annotation such as a wildcard type hole.
type HoleAnnotation struct {
	baseNode
	Name string
}

func (*HoleAnnotation) annotationNode() {}

func NewHoleAnnotation(span token.Span, name string) *HoleAnnotation {
	return &HoleAnnotation{baseNode: newBase(span), Name: name}
}

// FnAnnotation is a function type `fn(args) -> ret`.
type FnAnnotation struct {
	baseNode
	Arguments []Annotation
	Return    Annotation
}

func (*FnAnnotation) annotationNode() {}

func NewFnAnnotation(span token.Span, args []Annotation, ret Annotation) *FnAnnotation {
	return &FnAnnotation{baseNode: newBase(span), Arguments: args, Return: ret}
}

// ConstructorAnnotation is a named type application, optionally
// qualified by a module: `[module.]Name[(args)]`.
type ConstructorAnnotation struct {
	baseNode
	Module    string
	Name      string
	Arguments []Annotation
}

func (*ConstructorAnnotation) annotationNode() {}

func NewConstructorAnnotation(span token.Span, module, name string, args []Annotation) *ConstructorAnnotation {
	return &ConstructorAnnotation{baseNode: newBase(span), Module: module, Name: name, Arguments: args}
}

// VarAnnotation is a type variable reference.
type VarAnnotation struct {
	baseNode
	Name string
}

func (*VarAnnotation) annotationNode() {}

func NewVarAnnotation(span token.Span, name string) *VarAnnotation {
	return &VarAnnotation{baseNode: newBase(span), Name: name}
}
