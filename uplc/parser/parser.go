// Package parser implements the UPLC textual-syntax parser (C5):
// `program VERSION TERM`, the s-expression term grammar, and the
// `con` constant sub-grammar, grounded on aiken's
// crates/uplc/src/parser.rs and styled after lang/parser's
// hand-written recursive descent with a bailout-on-first-error model.
package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/eyelash/aiken/internal/errors"
	"github.com/eyelash/aiken/lang/token"
	"github.com/eyelash/aiken/uplc/ast"
)

// bailout unwinds to ParseProgram on the first parse error, matching
// lang/parser's fail-fast design (spec.md §4.3's "no recovery past the
// first failure" carries over to C5's grammar too).
type bailout struct{ err error }

// ParseProgram parses a complete `(program VERSION TERM)` text into a
// Program[ast.Name]. Each call gets its own identifier-interning
// table, so Uniques are comparable only within the Term tree returned
// from one call (SPEC_FULL.md §9, mirroring the Rust parser's
// per-parse `ParserState{identifiers, current}`).
func ParseProgram(src []byte) (prog ast.Program[ast.Name], err error) {
	var p parser
	defer func() {
		if r := recover(); r != nil {
			if b, ok := r.(bailout); ok {
				err = b.err
				return
			}
			panic(r)
		}
	}()
	p.init(src)
	prog = p.parseProgram()
	p.expectEOF()
	return prog, nil
}

// ParseTerm parses a single standalone term, used by tests and by
// `aiken uplc eval` to parse each ARG term applied to the program.
func ParseTerm(src []byte) (t *ast.Term[ast.Name], err error) {
	var p parser
	defer func() {
		if r := recover(); r != nil {
			if b, ok := r.(bailout); ok {
				err = b.err
				return
			}
			panic(r)
		}
	}()
	p.init(src)
	t = p.parseTerm()
	p.expectEOF()
	return t, nil
}

type parser struct {
	src []byte
	pos int // byte offset of the next unread byte

	identifiers map[string]ast.Unique
	next        ast.Unique

	// RunID tags this parse for correlation in diagnostic/log output
	// (SPEC_FULL.md §2), mirroring the teacher's use of uuid for
	// registry blob identifiers applied to a new domain.
	RunID uuid.UUID
}

func (p *parser) init(src []byte) {
	p.src = src
	p.pos = 0
	p.identifiers = make(map[string]ast.Unique)
	p.RunID = uuid.New()
}

func (p *parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	span := token.Span{Start: p.pos, End: p.pos}
	panic(bailout{err: &errors.ParseError{Span: span, Msg: fmt.Sprintf("[%s] %s", p.RunID, msg)}})
}

// intern returns the Unique for name, allocating a fresh one on first
// use within this parse (the Rust parser's ParserState::intern).
func (p *parser) intern(name string) ast.Unique {
	if u, ok := p.identifiers[name]; ok {
		return u
	}
	u := p.next
	p.next++
	p.identifiers[name] = u
	return u
}

// ----------------------------------------------------------------------------
// low-level scanning: byte-oriented, single-token lookahead via peekByte

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peekByte() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peekByte()) {
		p.pos++
	}
}

func (p *parser) expectEOF() {
	p.skipSpace()
	if !p.eof() {
		p.errorf("unexpected trailing input")
	}
}

// expectByte consumes exactly b, skipping leading whitespace first.
func (p *parser) expectByte(b byte) {
	p.skipSpace()
	if p.eof() || p.src[p.pos] != b {
		p.errorf("expected %q", string(b))
	}
	p.pos++
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '\'' || b == '!' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// scanIdent reads a bare keyword/identifier token after skipping
// leading whitespace: used for `program`, `lam`, `delay`, `force`,
// `con`, `builtin`, `error`, constant-type names, bound names, and
// builtin names alike (the grammar is whitespace-delimited, not
// punctuation-delimited, once past the outer parens).
func (p *parser) scanIdent() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() && isIdentByte(p.peekByte()) {
		p.pos++
	}
	if p.pos == start {
		p.errorf("expected an identifier")
	}
	return string(p.src[start:p.pos])
}

// expectKeyword scans an identifier and requires it equal kw.
func (p *parser) expectKeyword(kw string) {
	start := p.pos
	got := p.scanIdent()
	if got != kw {
		p.pos = start
		p.errorf("expected %q, found %q", kw, got)
	}
}

func (p *parser) scanDigits() string {
	p.skipSpace()
	start := p.pos
	if !p.eof() && p.peekByte() == '-' {
		p.pos++
	}
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		p.errorf("expected digits")
	}
	return string(p.src[start:p.pos])
}

// ----------------------------------------------------------------------------
// program ::= '(' 'program' ws version ws term ')'

func (p *parser) parseProgram() ast.Program[ast.Name] {
	p.expectByte('(')
	p.expectKeyword("program")
	v := p.parseVersion()
	t := p.parseTerm()
	p.expectByte(')')
	return ast.Program[ast.Name]{Version: v, Term: t}
}

// version ::= digits '.' digits '.' digits
func (p *parser) parseVersion() ast.Version {
	p.skipSpace()
	start := p.pos
	for !p.eof() && (p.peekByte() == '.' || (p.peekByte() >= '0' && p.peekByte() <= '9')) {
		p.pos++
	}
	s := string(p.src[start:p.pos])
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		p.errorf("malformed version %q", s)
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			p.errorf("malformed version component %q", part)
		}
		nums[i] = n
	}
	return ast.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}
}

// ----------------------------------------------------------------------------
// term ::= var
//        | '(' 'delay' ws term ')'
//        | '(' 'force' ws term ')'
//        | '(' 'lam' ws ident ws term ')'
//        | '[' term ws term (ws term)* ']'
//        | '(' 'builtin' ws ident ')'
//        | '(' 'error' ws ')'
//        | '(' 'con' ws constant ')'

func (p *parser) parseTerm() *ast.Term[ast.Name] {
	p.skipSpace()
	switch p.peekByte() {
	case '[':
		return p.parseApplyChain()
	case '(':
		return p.parseParenTerm()
	default:
		return p.parseVar()
	}
}

func (p *parser) parseVar() *ast.Term[ast.Name] {
	name := p.scanIdent()
	u := p.intern(name)
	return ast.NewVar(ast.Name{Text: name, Unique: u})
}

// parseApplyChain parses `[ f a0 a1 ... aN ]`, left-associating
// successive arguments the way ApplyTermProgram nests applications.
func (p *parser) parseApplyChain() *ast.Term[ast.Name] {
	p.expectByte('[')
	fn := p.parseTerm()
	p.skipSpace()
	if p.peekByte() == ']' {
		p.errorf("application requires at least one argument")
	}
	for {
		p.skipSpace()
		if p.peekByte() == ']' {
			break
		}
		arg := p.parseTerm()
		fn = ast.NewApply(fn, arg)
	}
	p.expectByte(']')
	return fn
}

func (p *parser) parseParenTerm() *ast.Term[ast.Name] {
	p.expectByte('(')
	kw := p.scanIdent()
	var t *ast.Term[ast.Name]
	switch kw {
	case "delay":
		t = ast.NewDelay(p.parseTerm())
	case "force":
		t = ast.NewForce(p.parseTerm())
	case "lam":
		name := p.scanIdent()
		u := p.intern(name)
		body := p.parseTerm()
		t = ast.NewLambda(ast.Name{Text: name, Unique: u}, body)
	case "builtin":
		name := p.scanIdent()
		fn, ok := ast.LookupBuiltin(name)
		if !ok {
			p.errorf("unknown builtin %q", name)
		}
		t = ast.NewBuiltin[ast.Name](fn)
	case "error":
		t = ast.NewError[ast.Name]()
	case "con":
		t = ast.NewConstant[ast.Name](p.parseConstant())
	default:
		p.errorf("expected delay, force, lam, builtin, error, or con, found %q", kw)
	}
	p.expectByte(')')
	return t
}

// ----------------------------------------------------------------------------
// constant ::= 'integer' ws digits
//            | 'bytestring' ws '#' hexdigits
//            | 'string' ws '"' .* '"'
//            | 'unit' ws '()'
//            | 'bool' ws ('True'|'False')

func (p *parser) parseConstant() ast.Constant {
	kind := p.scanIdent()
	switch kind {
	case "integer":
		digits := p.scanDigits()
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			p.errorf("malformed integer literal %q", digits)
		}
		return ast.NewIntegerConstant(n)
	case "bytestring":
		return ast.NewByteStringConstant(p.parseHexBytes())
	case "string":
		return ast.NewStringConstant(p.parseQuotedString())
	case "unit":
		p.expectByte('(')
		p.expectByte(')')
		return ast.NewUnitConstant()
	case "bool":
		b := p.scanIdent()
		switch b {
		case "True":
			return ast.NewBoolConstant(true)
		case "False":
			return ast.NewBoolConstant(false)
		default:
			p.errorf("expected True or False, found %q", b)
		}
	default:
		p.errorf("unknown constant type %q", kind)
	}
	panic("unreachable")
}

func (p *parser) parseHexBytes() []byte {
	p.expectByte('#')
	start := p.pos
	for !p.eof() && isHexDigit(p.src[p.pos]) {
		p.pos++
	}
	hex := string(p.src[start:p.pos])
	if len(hex)%2 != 0 {
		p.errorf("bytestring literal has odd number of hex digits")
	}
	out := make([]byte, len(hex)/2)
	for i := 0; i < len(out); i++ {
		hi := hexVal(hex[2*i])
		lo := hexVal(hex[2*i+1])
		out[i] = hi<<4 | lo
	}
	return out
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

func (p *parser) parseQuotedString() string {
	p.expectByte('"')
	start := p.pos
	for !p.eof() && p.src[p.pos] != '"' {
		p.pos++
	}
	if p.eof() {
		p.errorf("unterminated string literal")
	}
	s := string(p.src[start:p.pos])
	p.pos++ // closing quote
	return s
}
