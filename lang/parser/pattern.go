package parser

import (
	"github.com/eyelash/aiken/lang/ast"
	"github.com/eyelash/aiken/lang/token"
)

// parsePattern parses one pattern, including a trailing `as Name`
// whole-match binding (§4.3 "Patterns").
func (p *parser) parsePattern() ast.Pattern {
	pat := p.parsePatternAtom()
	if _, ok := p.accept(token.AS); ok {
		name, span := p.expectName()
		return ast.NewAssignPattern(token.Span{Start: pat.Span().Start, End: span.End}, name, pat)
	}
	return pat
}

func (p *parser) parsePatternAtom() ast.Pattern {
	switch p.tok {
	case token.DISCARD:
		name, span := p.expectDiscardName()
		return ast.NewDiscardPattern(span, name)
	case token.NAME:
		name, span := p.expectName()
		return ast.NewVarPattern(span, name)
	case token.INT:
		v, span := p.lit, p.pos
		p.next()
		return ast.NewIntPattern(span, v)
	case token.STRING:
		v, span := p.lit, p.pos
		p.next()
		return ast.NewStringPattern(span, v)
	case token.LBRACK:
		return p.parseListPattern()
	case token.UPNAME:
		return p.parseConstructorPattern()
	default:
		p.errorf(p.pos, "expected a pattern, found %s", p.tok)
		panic("unreachable")
	}
}

func (p *parser) parseListPattern() ast.Pattern {
	start := p.expect(token.LBRACK)
	var elems []ast.Pattern
	var tail ast.Pattern
	for p.tok != token.RBRACK {
		if dotdot, ok := p.accept(token.DOTDOT); ok {
			if p.tok != token.RBRACK {
				tail = p.parsePattern()
			} else {
				tail = ast.NewDiscardPattern(dotdot, "_")
			}
			break
		}
		elems = append(elems, p.parsePattern())
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end := p.expect(token.RBRACK)
	return ast.NewListPattern(token.Span{Start: start.Start, End: end.End}, elems, tail)
}

func (p *parser) parseConstructorPattern() ast.Pattern {
	name, start := p.expectUpName()
	module := ""
	if _, ok := p.accept(token.DOT); ok {
		module = name
		name, _ = p.expectUpName()
	}

	var args []ast.ConstructorPatternArg
	withSpread := false
	isRecord := false
	end := start

	switch p.tok {
	case token.LBRACE:
		isRecord = true
		p.next()
		for p.tok != token.RBRACE {
			if _, ok := p.accept(token.DOTDOT); ok {
				withSpread = true
				break
			}
			label, _ := p.expectName()
			var pat ast.Pattern
			if _, ok := p.accept(token.COLON); ok {
				pat = p.parsePattern()
			} else {
				pat = ast.NewVarPattern(p.pos, label)
			}
			args = append(args, ast.ConstructorPatternArg{Label: label, Pattern: pat})
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
		end = p.expect(token.RBRACE)
	case token.LPAREN:
		p.next()
		for p.tok != token.RPAREN {
			if _, ok := p.accept(token.DOTDOT); ok {
				withSpread = true
				break
			}
			pat := p.parsePattern()
			args = append(args, ast.ConstructorPatternArg{Pattern: pat})
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
		}
		end = p.expect(token.RPAREN)
	}

	return ast.NewConstructorPattern(token.Span{Start: start.Start, End: end.End}, module, name, args, withSpread, isRecord)
}
