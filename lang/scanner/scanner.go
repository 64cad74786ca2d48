// Package scanner implements the surface-language lexer. It takes a
// []byte source and converts it into a stream of (Token, Span, literal)
// triples through repeated calls to Scan, the way cue/scanner.Scanner
// tokenizes CUE source.
package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/eyelash/aiken/internal/errors"
	"github.com/eyelash/aiken/lang/token"
)

// Scanner holds the lexer's internal state while processing a given
// source buffer. Init must be called before Scan.
type Scanner struct {
	file *token.File
	src  []byte
	err  errors.List

	ch       rune
	offset   int
	rdOffset int

	pendingEmptyLines []int // offsets of blank lines detected by skipSpaces, not yet returned
}

const bom = 0xFEFF

// Init prepares s to tokenize src. file is used only to record line
// starts for later position formatting; it is not required to match
// src's length the way cue/token.File's size check does, since this
// lexer is purely byte-offset based.
func (s *Scanner) Init(file *token.File, src []byte) {
	s.file = file
	s.src = src
	s.err = errors.List{}
	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.pendingEmptyLines = nil
	s.next()
	if s.ch == bom {
		s.next()
	}
}

// Errors returns the accumulated lexical errors. Scan does not stop on
// a lexical error: it returns an ILLEGAL token and later calls go on
// scanning; lang/parser aborts on the first ILLEGAL token.
func (s *Scanner) Errors() *errors.List { return &s.err }

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		s.ch = -1
	}
}

func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentRune(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

// Scan reads the next token from the source. literal is the exact
// source text of the token (empty for pure punctuation).
func (s *Scanner) Scan() (tok token.Token, span token.Span, literal string) {
	if len(s.pendingEmptyLines) > 0 {
		offs := s.pendingEmptyLines[0]
		s.pendingEmptyLines = s.pendingEmptyLines[1:]
		return token.EMPTY_LINE, token.Span{Start: offs, End: offs}, ""
	}

	s.skipSpaces()
	if len(s.pendingEmptyLines) > 0 {
		offs := s.pendingEmptyLines[0]
		s.pendingEmptyLines = s.pendingEmptyLines[1:]
		return token.EMPTY_LINE, token.Span{Start: offs, End: offs}, ""
	}
	offs := s.offset

	ch := s.ch
	switch {
	case ch == -1:
		return token.EOF, token.Span{Start: offs, End: offs}, ""
	case isLetter(ch) || ch == '_':
		lit := s.scanIdentifier()
		tok = token.Lookup(lit)
		return tok, token.Span{Start: offs, End: s.offset}, lit
	case isDigit(ch):
		lit := s.scanNumber()
		return token.INT, token.Span{Start: offs, End: s.offset}, lit
	}

	s.next()
	switch ch {
	case '"':
		lit, ok := s.scanString(offs)
		if !ok {
			return token.ILLEGAL, token.Span{Start: offs, End: s.offset}, lit
		}
		return token.STRING, token.Span{Start: offs, End: s.offset}, lit
	case '(':
		return token.LPAREN, token.Span{Start: offs, End: s.offset}, ""
	case ')':
		return token.RPAREN, token.Span{Start: offs, End: s.offset}, ""
	case '{':
		return token.LBRACE, token.Span{Start: offs, End: s.offset}, ""
	case '}':
		return token.RBRACE, token.Span{Start: offs, End: s.offset}, ""
	case '[':
		return token.LBRACK, token.Span{Start: offs, End: s.offset}, ""
	case ']':
		return token.RBRACK, token.Span{Start: offs, End: s.offset}, ""
	case ',':
		return token.COMMA, token.Span{Start: offs, End: s.offset}, ""
	case ':':
		return token.COLON, token.Span{Start: offs, End: s.offset}, ""
	case '.':
		if s.ch == '.' {
			s.next()
			return token.DOTDOT, token.Span{Start: offs, End: s.offset}, ".."
		}
		return token.DOT, token.Span{Start: offs, End: s.offset}, ""
	case '/':
		if s.ch == '/' {
			tok, lit := s.scanComment(offs)
			return tok, token.Span{Start: offs, End: s.offset}, lit
		}
		return token.SLASH, token.Span{Start: offs, End: s.offset}, ""
	case '-':
		if s.ch == '>' {
			s.next()
			return token.ARROW, token.Span{Start: offs, End: s.offset}, "->"
		}
		return token.MINUS, token.Span{Start: offs, End: s.offset}, ""
	case '=':
		if s.ch == '=' {
			s.next()
			return token.EQ, token.Span{Start: offs, End: s.offset}, "=="
		}
		return token.EQUAL, token.Span{Start: offs, End: s.offset}, ""
	case '!':
		if s.ch == '=' {
			s.next()
			return token.NOTEQ, token.Span{Start: offs, End: s.offset}, "!="
		}
		return token.BANG, token.Span{Start: offs, End: s.offset}, ""
	case '<':
		if s.ch == '=' {
			s.next()
			return token.LTEQ, token.Span{Start: offs, End: s.offset}, "<="
		}
		return token.LT, token.Span{Start: offs, End: s.offset}, ""
	case '>':
		if s.ch == '=' {
			s.next()
			return token.GTEQ, token.Span{Start: offs, End: s.offset}, ">="
		}
		return token.GT, token.Span{Start: offs, End: s.offset}, ""
	case '+':
		return token.PLUS, token.Span{Start: offs, End: s.offset}, ""
	case '*':
		return token.STAR, token.Span{Start: offs, End: s.offset}, ""
	case '%':
		return token.PERCENT, token.Span{Start: offs, End: s.offset}, ""
	case '|':
		if s.ch == '>' {
			s.next()
			return token.PIPEGT, token.Span{Start: offs, End: s.offset}, "|>"
		}
		if s.ch == '|' {
			s.next()
			return token.OROR, token.Span{Start: offs, End: s.offset}, "||"
		}
		return token.PIPE, token.Span{Start: offs, End: s.offset}, ""
	case '&':
		if s.ch == '&' {
			s.next()
			return token.ANDAND, token.Span{Start: offs, End: s.offset}, "&&"
		}
	}

	s.error(offs, "illegal character")
	return token.ILLEGAL, token.Span{Start: offs, End: s.offset}, string(ch)
}

func (s *Scanner) error(offs int, msg string) {
	s.err.AddNewf(token.Span{Start: offs, End: offs}, "%s", msg)
}

// skipSpaces consumes whitespace, recording the offset of each blank
// line (a '\n' immediately following another, modulo intervening
// horizontal whitespace) into pendingEmptyLines so Scan can surface it
// as an EMPTY_LINE trivia token (§3.1).
func (s *Scanner) skipSpaces() {
	newlines := 0
	for {
		switch s.ch {
		case ' ', '\t', '\r':
			s.next()
			continue
		case '\n':
			newlines++
			if newlines >= 2 {
				s.pendingEmptyLines = append(s.pendingEmptyLines, s.offset)
			}
			s.file.AddLine(s.offset + 1)
			s.next()
			continue
		}
		return
	}
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isIdentRune(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanNumber() string {
	offs := s.offset
	for isDigit(s.ch) || s.ch == '_' {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

// scanString scans a double-quoted string literal; the opening quote
// has already been consumed by Scan. It returns the literal (including
// quotes) and whether the string was properly terminated.
func (s *Scanner) scanString(offs int) (string, bool) {
	for s.ch != '"' {
		if s.ch < 0 || s.ch == '\n' {
			s.error(offs, "string literal not terminated")
			return string(s.src[offs:s.offset]), false
		}
		if s.ch == '\\' {
			s.next()
		}
		s.next()
	}
	s.next() // consume closing quote
	return string(s.src[offs:s.offset]), true
}

// scanComment classifies `//`, `///`, and `////`-prefixed line comments
// into COMMENT, DOC_COMMENT, and MODULE_COMMENT respectively (§3.1).
// The first '/' has already been consumed; s.ch == '/'.
func (s *Scanner) scanComment(offs int) (token.Token, string) {
	slashes := 1 // the one already consumed
	for s.ch == '/' {
		slashes++
		s.next()
	}
	for s.ch != '\n' && s.ch >= 0 {
		s.next()
	}
	lit := string(s.src[offs:s.offset])
	switch {
	case slashes >= 4:
		return token.MODULE_COMMENT, lit
	case slashes == 3:
		return token.DOC_COMMENT, lit
	default:
		return token.COMMENT, lit
	}
}
