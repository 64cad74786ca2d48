package parser

import (
	"fmt"

	"github.com/eyelash/aiken/internal/errors"
	"github.com/eyelash/aiken/lang/ast"
	"github.com/eyelash/aiken/lang/scanner"
	"github.com/eyelash/aiken/lang/token"
)

// bailout unwinds the recursive-descent stack to ParseModule on the
// first unrecoverable parse error, matching spec.md §4.3's "parser
// does not attempt recovery past the first failure within an
// alternative".
type bailout struct{ err error }

// parser holds the grammar parser's state: a single-token lookahead
// over the scanner's output, with trivia tokens drained into extra as
// they're encountered (C3, folded into next the way cue/parser drains
// comments into commentState in its own next()).
type parser struct {
	src     []byte
	file    *token.File
	sc      scanner.Scanner
	extra   ast.ModuleExtra

	pos token.Span
	tok token.Token
	lit string

	captureCount int // hole index for the current call's synthetic params

	// noBraceExpr suppresses postfix record-update parsing so that
	// `if cond { ... }` and `when subject is { ... }` can tell their
	// condition/subject expression apart from the following block.
	noBraceExpr bool
}

func (p *parser) init(src []byte) {
	p.src = src
	p.file = token.NewFile("", len(src))
	p.sc.Init(p.file, src)
	p.next()
}

func (p *parser) errorf(span token.Span, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	panic(bailout{err: &errors.ParseError{Span: span, Msg: msg}})
}

// next advances to the next non-trivia token, stashing any trivia
// tokens encountered along the way into p.extra (C3).
func (p *parser) next() {
	for {
		tok, span, lit := p.sc.Scan()
		switch tok {
		case token.COMMENT:
			p.extra.Comments = append(p.extra.Comments, span)
			continue
		case token.DOC_COMMENT:
			p.extra.DocComments = append(p.extra.DocComments, span)
			continue
		case token.MODULE_COMMENT:
			p.extra.ModuleComments = append(p.extra.ModuleComments, span)
			continue
		case token.EMPTY_LINE:
			p.extra.EmptyLines = append(p.extra.EmptyLines, span.Start)
			continue
		case token.ILLEGAL:
			panic(bailout{err: &errors.LexError{Span: span, Msg: "illegal character"}})
		}
		p.pos, p.tok, p.lit = span, tok, lit
		return
	}
}

func (p *parser) expect(tok token.Token) token.Span {
	span := p.pos
	if p.tok != tok {
		p.errorf(p.pos, "expected %s, found %s", tok, p.tok)
	}
	p.next()
	return span
}

func (p *parser) accept(tok token.Token) (token.Span, bool) {
	if p.tok == tok {
		span := p.pos
		p.next()
		return span, true
	}
	return token.NoSpan, false
}

func (p *parser) expectName() (string, token.Span) {
	if p.tok != token.NAME {
		p.errorf(p.pos, "expected identifier, found %s", p.tok)
	}
	lit, span := p.lit, p.pos
	p.next()
	return lit, span
}

func (p *parser) expectUpName() (string, token.Span) {
	if p.tok != token.UPNAME {
		p.errorf(p.pos, "expected type/constructor name, found %s", p.tok)
	}
	lit, span := p.lit, p.pos
	p.next()
	return lit, span
}

func (p *parser) expectDiscardName() (string, token.Span) {
	if p.tok != token.DISCARD {
		p.errorf(p.pos, "expected discard name, found %s", p.tok)
	}
	lit, span := p.lit, p.pos
	p.next()
	return lit, span
}

// ----------------------------------------------------------------------------
// Module

func (p *parser) parseModule(name string, kind ast.ModuleKind) *ast.Module {
	var defs []ast.Definition
	for p.tok != token.EOF {
		defs = append(defs, p.parseDefinition())
	}
	return &ast.Module{Name: name, Kind: kind, Definitions: defs, Extra: p.extra}
}

func (p *parser) parseDefinition() ast.Definition {
	switch p.tok {
	case token.USE:
		return p.parseUse()
	case token.TYPE:
		return p.parseTypeDefinition(false, false, token.NoSpan)
	case token.PUB:
		start := p.pos
		p.next()
		if _, ok := p.accept(token.OPAQUE); ok {
			return p.parseTypeDefinition(true, true, start)
		}
		if p.tok == token.TYPE {
			return p.parseTypeDefinition(true, false, start)
		}
		return p.parseFnPublic(start)
	case token.FN:
		return p.parseFn(false, p.pos)
	case token.VALIDATOR:
		return p.parseValidator()
	case token.TEST:
		return p.parseTest()
	default:
		p.errorf(p.pos, "expected a definition, found %s", p.tok)
		panic("unreachable")
	}
}

// ----------------------------------------------------------------------------
// use

func (p *parser) parseUse() *ast.Use {
	start := p.expect(token.USE)
	var segments []string
	seg, _ := p.parseModuleSegment()
	segments = append(segments, seg)
	for {
		if _, ok := p.accept(token.SLASH); ok {
			seg, _ := p.parseModuleSegment()
			segments = append(segments, seg)
			continue
		}
		break
	}

	var unqualified []ast.UnqualifiedImport
	if _, ok := p.accept(token.DOT); ok {
		p.expect(token.LBRACE)
		for p.tok != token.RBRACE {
			member, _ := p.parseModuleSegment()
			asName := ""
			if _, ok := p.accept(token.AS); ok {
				asName, _ = p.parseModuleSegment()
			}
			unqualified = append(unqualified, ast.UnqualifiedImport{Name: member, AsName: asName})
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.RBRACE)
	}

	asName := ""
	if _, ok := p.accept(token.AS); ok {
		asName, _ = p.parseModuleSegment()
	}

	end := p.pos
	return ast.NewUse(token.Span{Start: start.Start, End: end.Start}, segments, unqualified, asName)
}

// parseModuleSegment accepts a Name or UpName, used for path segments,
// import members, and aliases.
func (p *parser) parseModuleSegment() (string, token.Span) {
	switch p.tok {
	case token.NAME, token.UPNAME:
		lit, span := p.lit, p.pos
		p.next()
		return lit, span
	default:
		p.errorf(p.pos, "expected identifier, found %s", p.tok)
		panic("unreachable")
	}
}

// ----------------------------------------------------------------------------
// type alias / data type

func (p *parser) parseTypeDefinition(public, opaque bool, start token.Span) ast.Definition {
	typeStart := p.expect(token.TYPE)
	if !public {
		start = typeStart
	}
	name, _ := p.expectUpName()
	params := p.parseOptionalTypeParams()

	if _, ok := p.accept(token.EQUAL); ok {
		ann := p.parseAnnotation()
		return ast.NewTypeAlias(token.Span{Start: start.Start, End: ann.Span().End}, name, params, ann, public)
	}

	return p.parseDataTypeBody(start, name, params, public, opaque)
}

func (p *parser) parseOptionalTypeParams() []string {
	if _, ok := p.accept(token.LPAREN); !ok {
		return nil
	}
	var params []string
	for p.tok != token.RPAREN {
		n, _ := p.expectName()
		params = append(params, n)
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *parser) parseDataTypeBody(start token.Span, name string, params []string, public, opaque bool) *ast.DataType {
	p.expect(token.LBRACE)

	var ctors []ast.RecordConstructor
	if p.tok == token.NAME {
		// record-sugar: a bare labeled-field list, promoted to a
		// synthetic constructor whose name equals the type name.
		fields := p.parseLabeledFieldList()
		ctors = append(ctors, ast.RecordConstructor{Name: name, Arguments: fields, Sugar: true, Location: start})
	} else {
		for p.tok != token.RBRACE {
			ctors = append(ctors, p.parseConstructor())
		}
	}
	end := p.expect(token.RBRACE)

	return ast.NewDataType(token.Span{Start: start.Start, End: end.End}, name, params, opaque, public, ctors, "")
}

func (p *parser) parseConstructor() ast.RecordConstructor {
	name, start := p.expectUpName()
	var args []ast.RecordConstructorArg
	switch p.tok {
	case token.LBRACE:
		p.next()
		args = p.parseLabeledFieldList()
		p.expect(token.RBRACE)
	case token.LPAREN:
		p.next()
		for p.tok != token.RPAREN {
			ann := p.parseAnnotation()
			args = append(args, ast.RecordConstructorArg{Annotation: ann, Location: ann.Span()})
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	return ast.RecordConstructor{Name: name, Arguments: args, Sugar: false, Location: start}
}

func (p *parser) parseLabeledFieldList() []ast.RecordConstructorArg {
	var args []ast.RecordConstructorArg
	for p.tok == token.NAME {
		label, start := p.expectName()
		p.expect(token.COLON)
		ann := p.parseAnnotation()
		args = append(args, ast.RecordConstructorArg{Label: label, Annotation: ann, Location: token.Span{Start: start.Start, End: ann.Span().End}})
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	return args
}

// ----------------------------------------------------------------------------
// Annotation

func (p *parser) parseAnnotation() ast.Annotation {
	switch p.tok {
	case token.DISCARD:
		name, span := p.expectDiscardName()
		return ast.NewHoleAnnotation(span, name)
	case token.FN:
		start := p.pos
		p.next()
		p.expect(token.LPAREN)
		var args []ast.Annotation
		for p.tok != token.RPAREN {
			args = append(args, p.parseAnnotation())
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.RPAREN)
		p.expect(token.ARROW)
		ret := p.parseAnnotation()
		return ast.NewFnAnnotation(token.Span{Start: start.Start, End: ret.Span().End}, args, ret)
	case token.NAME:
		name, span := p.expectName()
		return ast.NewVarAnnotation(span, name)
	case token.UPNAME:
		module := ""
		name, start := p.expectUpName()
		if _, ok := p.accept(token.DOT); ok {
			module = name
			name, _ = p.expectUpName()
		}
		var args []ast.Annotation
		end := start
		if _, ok := p.accept(token.LPAREN); ok {
			for p.tok != token.RPAREN {
				args = append(args, p.parseAnnotation())
				if _, ok := p.accept(token.COMMA); !ok {
					break
				}
			}
			end = p.expect(token.RPAREN)
		}
		return ast.NewConstructorAnnotation(token.Span{Start: start.Start, End: end.End}, module, name, args)
	default:
		p.errorf(p.pos, "expected a type annotation, found %s", p.tok)
		panic("unreachable")
	}
}

// ----------------------------------------------------------------------------
// fn

func (p *parser) parseFnPublic(start token.Span) *ast.Fn {
	return p.parseFn(true, start)
}

func (p *parser) parseFn(public bool, start token.Span) *ast.Fn {
	fnStart := p.expect(token.FN)
	if !public {
		start = fnStart
	}
	name, _ := p.expectName()
	args := p.parseArgList()

	var ret ast.Annotation
	if _, ok := p.accept(token.ARROW); ok {
		ret = p.parseAnnotation()
	}

	body, end := p.parseFnBody()
	return ast.NewFn(token.Span{Start: start.Start, End: end}, name, args, body, ret, public, end)
}

// parseArgList parses a function or anonymous-fn parameter list:
// `Name`, `Name Name`, `Name _Name`, `_Name`, each optionally followed
// by `: Annotation`.
func (p *parser) parseArgList() []ast.Arg {
	p.expect(token.LPAREN)
	var args []ast.Arg
	for p.tok != token.RPAREN {
		args = append(args, p.parseArg())
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *parser) parseArg() ast.Arg {
	start := p.pos
	var label string
	var name string
	discard := false

	switch p.tok {
	case token.DISCARD:
		name, _ = p.expectDiscardName()
		discard = true
	case token.NAME:
		first, _ := p.expectName()
		switch p.tok {
		case token.NAME:
			label = first
			name, _ = p.expectName()
		case token.DISCARD:
			label = first
			name, _ = p.expectDiscardName()
			discard = true
		default:
			name = first
		}
	default:
		p.errorf(p.pos, "expected a parameter, found %s", p.tok)
	}

	var ann ast.Annotation
	end := p.pos
	if _, ok := p.accept(token.COLON); ok {
		ann = p.parseAnnotation()
		end = ann.Span()
	}

	return ast.Arg{Label: label, Name: name, Discard: discard, Annotation: ann, Location: token.Span{Start: start.Start, End: end.End}}
}

// parseFnBody parses the `{ ... }` function body, desugaring an empty
// body to Todo{Kind: EmptyFunction} per spec.md §4.3.
func (p *parser) parseFnBody() (ast.Expr, int) {
	start := p.expect(token.LBRACE)
	if end, ok := p.accept(token.RBRACE); ok {
		return ast.NewTodoExpr(token.Span{Start: start.Start, End: end.End}, ast.EmptyFunction, ""), end.End
	}
	body := p.parseSequence()
	end := p.expect(token.RBRACE)
	return body, end.End
}

// ----------------------------------------------------------------------------
// validator / test (supplemental, §SPEC_FULL.md §8)

func (p *parser) parseValidator() *ast.Validator {
	start := p.expect(token.VALIDATOR)
	name := ""
	if p.tok == token.NAME {
		name, _ = p.expectName()
	}
	p.expect(token.LBRACE)
	var fns []*ast.Fn
	for p.tok != token.RBRACE {
		fns = append(fns, p.parseFn(false, p.pos))
	}
	end := p.expect(token.RBRACE)
	return ast.NewValidator(token.Span{Start: start.Start, End: end.End}, name, fns)
}

func (p *parser) parseTest() *ast.Test {
	start := p.expect(token.TEST)
	name, _ := p.expectName()
	p.expect(token.LPAREN)
	p.expect(token.RPAREN)
	body, end := p.parseFnBody()
	return ast.NewTest(token.Span{Start: start.Start, End: end}, name, body)
}
