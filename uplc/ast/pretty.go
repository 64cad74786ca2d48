package ast

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
)

// Pretty renders t as an indented s-expression close to the surface
// syntax parsed by uplc/parser, for use in `aiken uplc eval` output and
// in test failure messages. Name and NamedDeBruijn print their Text
// via their String methods; FakeNamedDeBruijn and DeBruijn have no
// String method and print in fmt's default %v form.
func (t *Term[N]) Pretty() string {
	var b strings.Builder
	writeTerm(&b, t, 0)
	return b.String()
}

func writeTerm[N any](b *strings.Builder, t *Term[N], depth int) {
	indent := strings.Repeat("  ", depth)
	switch t.TagKind() {
	case VarTerm:
		fmt.Fprintf(b, "%v", t.Var)
	case LambdaTerm:
		fmt.Fprintf(b, "(lam %v\n%s", t.Parameter, indent+"  ")
		writeTerm(b, t.Body, depth+1)
		b.WriteString(")")
	case ApplyTerm:
		b.WriteString("[\n" + indent + "  ")
		writeTerm(b, t.Function, depth+1)
		b.WriteString("\n" + indent + "  ")
		writeTerm(b, t.Argument, depth+1)
		b.WriteString("\n" + indent + "]")
	case DelayTerm:
		b.WriteString("(delay\n" + indent + "  ")
		writeTerm(b, t.Body, depth+1)
		b.WriteString(")")
	case ForceTerm:
		b.WriteString("(force\n" + indent + "  ")
		writeTerm(b, t.Body, depth+1)
		b.WriteString(")")
	case ConstantTerm:
		fmt.Fprintf(b, "(con %s)", t.Constant.String())
	case BuiltinTerm:
		fmt.Fprintf(b, "(builtin %s)", t.Builtin.String())
	case ErrorTerm:
		b.WriteString("(error)")
	}
}

// Dump renders t with kr/pretty's Go-syntax formatter, exposing the
// raw field layout untouched by Pretty's s-expression rendering.
func (t *Term[N]) Dump() string {
	return fmt.Sprintf("%# v", pretty.Formatter(t))
}
