package parser

import (
	"fmt"

	"github.com/eyelash/aiken/lang/ast"
	"github.com/eyelash/aiken/lang/token"
)

// parseSequence parses a whitespace-separated run of expressions inside
// a brace block or top-level body, splicing them together via
// ast.AppendInSequence (§4.3 "Sequencing").
func (p *parser) parseSequence() ast.Expr {
	first := p.parseExpr()
	var rest []ast.Expr
	for p.tok != token.RBRACE && p.tok != token.EOF {
		rest = append(rest, p.parseExpr())
	}
	return ast.AppendInSequence(first, rest)
}

func (p *parser) parseExpr() ast.Expr {
	switch p.tok {
	case token.LET:
		return p.parseAssignment(ast.Let)
	case token.ASSERT:
		return p.parseAssignment(ast.Assert)
	case token.CHECK:
		return p.parseAssignment(ast.Check)
	case token.TRY:
		return p.parseTry()
	}
	return p.parsePipeline()
}

func (p *parser) parseAssignment(kind ast.AssignmentKind) ast.Expr {
	start := p.pos
	p.next() // consume let/assert/check
	pattern := p.parsePattern()
	var ann ast.Annotation
	if _, ok := p.accept(token.COLON); ok {
		ann = p.parseAnnotation()
	}
	p.expect(token.EQUAL)
	value := p.parsePipeline()
	return ast.NewAssignmentExpr(token.Span{Start: start.Start, End: value.Span().End}, kind, pattern, ann, value)
}

func (p *parser) parseTry() ast.Expr {
	start := p.expect(token.TRY)
	pattern := p.parsePattern()
	var ann ast.Annotation
	if _, ok := p.accept(token.COLON); ok {
		ann = p.parseAnnotation()
	}
	p.expect(token.EQUAL)
	value := p.parsePipeline()
	// Then is filled in by AppendInSequence as subsequent expressions
	// in the enclosing block are spliced in.
	return ast.NewTryExpr(token.Span{Start: start.Start, End: value.Span().End}, pattern, ann, value, nil)
}

// ----------------------------------------------------------------------------
// precedence cascade (weakest to strongest): §4.3

func (p *parser) parsePipeline() ast.Expr {
	left := p.parseLogical()
	if p.tok != token.PIPEGT {
		return left
	}
	exprs := []ast.Expr{left}
	for {
		if _, ok := p.accept(token.PIPEGT); !ok {
			break
		}
		exprs = append(exprs, p.parseLogical())
	}
	return ast.NewPipeLineExpr(token.Span{Start: left.Span().Start, End: exprs[len(exprs)-1].Span().End}, exprs)
}

func (p *parser) parseLogical() ast.Expr {
	left := p.parseComparison()
	for {
		var name ast.BinOpName
		switch p.tok {
		case token.ANDAND:
			name = ast.OpAnd
		case token.OROR:
			name = ast.OpOr
		default:
			return left
		}
		p.next()
		right := p.parseComparison()
		left = ast.NewBinOpExpr(token.Span{Start: left.Span().Start, End: right.Span().End}, name, left, right)
	}
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for {
		var name ast.BinOpName
		switch p.tok {
		case token.EQ:
			name = ast.OpEq
		case token.NOTEQ:
			name = ast.OpNotEq
		case token.LT:
			name = ast.OpLtInt
		case token.LTEQ:
			name = ast.OpLtEqInt
		case token.GT:
			name = ast.OpGtInt
		case token.GTEQ:
			name = ast.OpGtEqInt
		default:
			return left
		}
		p.next()
		right := p.parseAdditive()
		left = ast.NewBinOpExpr(token.Span{Start: left.Span().Start, End: right.Span().End}, name, left, right)
	}
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var name ast.BinOpName
		switch p.tok {
		case token.PLUS:
			name = ast.OpAddInt
		case token.MINUS:
			name = ast.OpSubInt
		default:
			return left
		}
		p.next()
		right := p.parseMultiplicative()
		left = ast.NewBinOpExpr(token.Span{Start: left.Span().Start, End: right.Span().End}, name, left, right)
	}
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var name ast.BinOpName
		switch p.tok {
		case token.STAR:
			name = ast.OpMultInt
		case token.SLASH:
			name = ast.OpDivInt
		case token.PERCENT:
			name = ast.OpModInt
		default:
			return left
		}
		p.next()
		right := p.parseUnary()
		left = ast.NewBinOpExpr(token.Span{Start: left.Span().Start, End: right.Span().End}, name, left, right)
	}
}

func (p *parser) parseUnary() ast.Expr {
	if start, ok := p.accept(token.BANG); ok {
		value := p.parseUnary()
		return ast.NewNegateExpr(token.Span{Start: start.Start, End: value.Span().End}, value)
	}
	return p.parsePostfix()
}

// parsePostfix parses the chained postfix suffixes on an atom: call,
// field access, and record update (§4.3 level 7).
func (p *parser) parsePostfix() ast.Expr {
	expr := p.parseAtom()
	for {
		switch p.tok {
		case token.LPAREN:
			expr = p.parseCall(expr)
		case token.DOT:
			p.next()
			var label string
			switch p.tok {
			case token.NAME:
				label, _ = p.expectName()
			case token.UPNAME:
				label, _ = p.expectUpName()
			default:
				p.errorf(p.pos, "expected a field name, found %s", p.tok)
			}
			expr = ast.NewFieldAccessExpr(token.Span{Start: expr.Span().Start, End: p.pos.Start}, expr, label)
		case token.LBRACE:
			if p.noBraceExpr || !p.looksLikeRecordUpdate() {
				return expr
			}
			expr = p.parseRecordUpdate(expr)
		default:
			return expr
		}
	}
}

// looksLikeRecordUpdate peeks at whether an LBRACE immediately
// following an expression opens a record-update block (`{ ..spread,
// label: v }`) rather than an unrelated brace belonging to an
// enclosing construct. Record-update blocks always start with `..` or
// a labeled field.
func (p *parser) looksLikeRecordUpdate() bool {
	if p.tok != token.LBRACE {
		return false
	}
	save := p.sc
	defer func() { p.sc = save }()
	switch tok, _, _ := p.sc.Scan(); tok {
	case token.DOTDOT:
		return true
	case token.NAME:
		next, _, _ := p.sc.Scan()
		return next == token.COLON
	}
	return false
}

func (p *parser) parseRecordUpdate(constructor ast.Expr) ast.Expr {
	start := p.expect(token.LBRACE)
	var spread ast.Expr
	if _, ok := p.accept(token.DOTDOT); ok {
		spread = p.parsePipeline()
		p.accept(token.COMMA)
	}
	var args []ast.RecordUpdateArg
	for p.tok != token.RBRACE {
		label, _ := p.expectName()
		p.expect(token.COLON)
		value := p.parsePipeline()
		args = append(args, ast.RecordUpdateArg{Label: label, Value: value})
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end := p.expect(token.RBRACE)
	return ast.NewRecordUpdateExpr(token.Span{Start: start.Start, End: end.End}, constructor, spread, args)
}

// parseCall parses a call argument list, applying the hole-capture
// rewrite of §4.4: any bare `_` argument becomes a synthetic parameter
// of an enclosing anonymous function.
func (p *parser) parseCall(fun ast.Expr) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.CallArg
	var holeIndexes []int
	for p.tok != token.RPAREN {
		label := ""
		if p.tok == token.NAME && p.peekIsColonLabel() {
			label, _ = p.expectName()
			p.expect(token.COLON)
		}
		if p.tok == token.DISCARD && p.lit == "_" {
			p.next()
			holeIndexes = append(holeIndexes, len(args))
			args = append(args, ast.CallArg{Label: label, Hole: true})
		} else {
			value := p.parsePipeline()
			args = append(args, ast.CallArg{Label: label, Value: value})
		}
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end := p.expect(token.RPAREN)
	span := token.Span{Start: fun.Span().Start, End: end.End}
	call := ast.NewCallExpr(span, fun, args)

	if len(holeIndexes) == 0 {
		return call
	}
	return p.rewriteCapture(call, holeIndexes)
}

// peekIsColonLabel reports whether the token after the current Name is
// a ':', i.e. whether the call argument is written `label: value`. It
// scans one token ahead on a copy of the scanner state and then
// restores that state, so the parser's own lookahead is unchanged.
func (p *parser) peekIsColonLabel() bool {
	// A single token of lookahead is insufficient to distinguish
	// `label: value` from a bare `Name` expression used positionally.
	// The grammar in practice always labels with a trailing colon
	// directly after the bare name token, so we scan ahead using a
	// scanner snapshot restricted to this call only.
	save := p.sc
	saveExtra := p.extra
	tok2, _, _ := p.sc.Scan()
	p.sc = save
	p.extra = saveExtra
	return tok2 == token.COLON
}

// rewriteCapture lifts the hole arguments of call into a synthetic
// enclosing `fn(_capture__k) { call }`, one parameter per hole in
// left-to-right order (§4.4).
func (p *parser) rewriteCapture(call *ast.CallExpr, holeIndexes []int) ast.Expr {
	var args []ast.Arg
	for _, idx := range holeIndexes {
		name := fmt.Sprintf("_capture__%d", idx)
		call.Arguments[idx].Value = ast.NewVarExpr(call.Span(), "", name)
		call.Arguments[idx].Hole = false
		args = append(args, ast.Arg{Name: name, Location: call.Span()})
	}
	return ast.NewFnExpr(call.Span(), args, call, true, nil)
}

// ----------------------------------------------------------------------------
// atoms (§4.3 level 8)

func (p *parser) parseAtom() ast.Expr {
	switch p.tok {
	case token.INT:
		v, span := p.lit, p.pos
		p.next()
		return ast.NewIntExpr(span, v)
	case token.STRING:
		v, span := p.lit, p.pos
		p.next()
		return ast.NewStringExpr(span, v)
	case token.NAME:
		name, span := p.expectName()
		if _, ok := p.accept(token.DOT); ok {
			// could be module-qualified var: `module.name`
			if p.tok == token.NAME {
				field, fspan := p.expectName()
				return ast.NewVarExpr(token.Span{Start: span.Start, End: fspan.End}, name, field)
			}
			p.errorf(p.pos, "expected identifier after '.'")
		}
		return ast.NewVarExpr(span, "", name)
	case token.UPNAME:
		name, span := p.expectUpName()
		return ast.NewVarExpr(span, "", name)
	case token.DISCARD:
		name, span := p.expectDiscardName()
		return ast.NewVarExpr(span, "", name)
	case token.TODO:
		start := p.pos
		p.next()
		label := ""
		if _, ok := p.accept(token.LPAREN); ok {
			if p.tok == token.STRING {
				label = p.lit
				p.next()
			}
			p.expect(token.RPAREN)
		}
		return ast.NewTodoExpr(start, ast.ExplicitTodo, label)
	case token.LBRACK:
		return p.parseListExpr()
	case token.FN:
		return p.parseAnonFn()
	case token.LBRACE:
		p.expect(token.LBRACE)
		body := p.parseSequence()
		p.expect(token.RBRACE)
		return body
	case token.WHEN:
		return p.parseWhen()
	case token.IF:
		return p.parseIf()
	default:
		p.errorf(p.pos, "expected an expression, found %s", p.tok)
		panic("unreachable")
	}
}

func (p *parser) parseListExpr() ast.Expr {
	start := p.expect(token.LBRACK)
	var elems []ast.Expr
	var tail ast.Expr
	for p.tok != token.RBRACK {
		if _, ok := p.accept(token.DOTDOT); ok {
			tail = p.parsePipeline()
			break
		}
		elems = append(elems, p.parsePipeline())
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
	}
	end := p.expect(token.RBRACK)
	return ast.NewListExpr(token.Span{Start: start.Start, End: end.End}, elems, tail)
}

func (p *parser) parseAnonFn() ast.Expr {
	start := p.expect(token.FN)
	args := p.parseArgList()
	var ret ast.Annotation
	if _, ok := p.accept(token.ARROW); ok {
		ret = p.parseAnnotation()
	}
	body, end := p.parseFnBody()
	return ast.NewFnExpr(token.Span{Start: start.Start, End: end}, args, body, false, ret)
}

func (p *parser) parseWhen() ast.Expr {
	start := p.expect(token.WHEN)

	prevNoBrace := p.noBraceExpr
	p.noBraceExpr = true
	var subjects []ast.Expr
	if p.tok != token.IS {
		subjects = append(subjects, p.parsePipeline())
		for {
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
			subjects = append(subjects, p.parsePipeline())
		}
	}
	p.noBraceExpr = prevNoBrace

	p.expect(token.IS)
	p.expect(token.LBRACE)
	var clauses []ast.Clause
	for p.tok != token.RBRACE {
		clauses = append(clauses, p.parseClause())
	}
	end := p.expect(token.RBRACE)
	return ast.NewWhenExpr(token.Span{Start: start.Start, End: end.End}, subjects, clauses)
}

func (p *parser) parseClause() ast.Clause {
	patterns := p.parsePatternList()
	var alts [][]ast.Pattern
	for {
		if _, ok := p.accept(token.PIPE); !ok {
			break
		}
		alts = append(alts, p.parsePatternList())
	}
	var guard ast.Expr
	if _, ok := p.accept(token.IF); ok {
		guard = p.parsePipeline()
	}
	p.expect(token.ARROW)
	then := p.parseSequence2()
	return ast.Clause{Pattern: patterns, AlternativePatterns: alts, Guard: guard, Then: then}
}

// parseSequence2 parses the single expression (or brace block) that
// follows a when-clause's `->`.
func (p *parser) parseSequence2() ast.Expr {
	if _, ok := p.accept(token.LBRACE); ok {
		body := p.parseSequence()
		p.expect(token.RBRACE)
		return body
	}
	return p.parseExpr()
}

func (p *parser) parsePatternList() []ast.Pattern {
	var pats []ast.Pattern
	pats = append(pats, p.parsePattern())
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		pats = append(pats, p.parsePattern())
	}
	return pats
}

func (p *parser) parseIf() ast.Expr {
	start := p.pos
	p.expect(token.IF)
	var branches []ast.IfBranch
	cond := p.parseCondition()
	p.expect(token.LBRACE)
	body := p.parseSequence()
	p.expect(token.RBRACE)
	branches = append(branches, ast.IfBranch{Condition: cond, Body: body})

	for {
		if _, ok := p.accept(token.ELSE); !ok {
			p.errorf(p.pos, "if expression requires a final else branch")
		}
		if _, ok := p.accept(token.IF); ok {
			cond := p.parseCondition()
			p.expect(token.LBRACE)
			body := p.parseSequence()
			end := p.expect(token.RBRACE)
			branches = append(branches, ast.IfBranch{Condition: cond, Body: body})
			_ = end
			continue
		}
		p.expect(token.LBRACE)
		finalElse := p.parseSequence()
		end := p.expect(token.RBRACE)
		return ast.NewIfExpr(token.Span{Start: start.Start, End: end.End}, branches, finalElse)
	}
}

func (p *parser) parseCondition() ast.Expr {
	prev := p.noBraceExpr
	p.noBraceExpr = true
	cond := p.parsePipeline()
	p.noBraceExpr = prev
	return cond
}
