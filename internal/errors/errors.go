// Package errors defines the shared error types produced by the
// surface-language and UPLC parsers, adapted from cue/errors to the
// byte-Span position model of lang/token instead of cue/token's
// line-table Pos.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/eyelash/aiken/lang/token"
)

// New is a convenience wrapper for stdlib errors.New. It does not
// return a positioned Error.
func New(msg string) error { return errors.New(msg) }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain assignable to target.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Unwrap returns the result of calling Unwrap on err, if implemented.
func Unwrap(err error) error { return errors.Unwrap(err) }

// Error is the interface implemented by every positioned diagnostic
// produced in this module.
type Error interface {
	error
	Position() token.Span
}

// posError is the concrete Error implementation used by Newf.
type posError struct {
	span token.Span
	msg  string
}

func (e *posError) Error() string          { return e.msg }
func (e *posError) Position() token.Span   { return e.span }
func (e *posError) Unwrap() error          { return nil }

// Newf creates a positioned error for human consumption.
func Newf(span token.Span, format string, args ...interface{}) Error {
	return &posError{span: span, msg: fmt.Sprintf(format, args...)}
}

// LexError reports a character lang/scanner cannot classify; lang/parser
// returns it when the scanner yields an ILLEGAL token. It is fatal to
// the parse (SPEC_FULL.md §13).
type LexError struct {
	Span token.Span
	Msg  string
}

func (e *LexError) Error() string        { return fmt.Sprintf("%s: %s", e.Span, e.Msg) }
func (e *LexError) Position() token.Span { return e.Span }

// ParseError is returned by lang/parser or uplc/parser when a
// combinator/production cannot match the input. It is fatal to the
// parse; Expected, if non-empty, names the token(s) that would have
// allowed the parse to continue.
type ParseError struct {
	Span     token.Span
	Msg      string
	Expected []string
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: %s", e.Span, e.Msg)
	}
	return fmt.Sprintf("%s: %s (expected %s)", e.Span, e.Msg, strings.Join(e.Expected, ", "))
}

func (e *ParseError) Position() token.Span { return e.Span }

// List accumulates positioned errors during a single parse, the way
// cue/errors.list backs cue/parser's error recovery bookkeeping. This
// module's parsers never recover past the first failure, but List is
// kept so a future incremental parser, or a caller collecting warnings,
// has somewhere to put them.
type List struct {
	errs []Error
}

// AddNewf appends a new positioned error built from format/args.
func (l *List) AddNewf(span token.Span, format string, args ...interface{}) {
	l.errs = append(l.errs, Newf(span, format, args...))
}

// Add appends err as-is.
func (l *List) Add(err Error) {
	l.errs = append(l.errs, err)
}

// Reset empties the list.
func (l *List) Reset() { l.errs = l.errs[:0] }

// Len reports the number of accumulated errors.
func (l *List) Len() int { return len(l.errs) }

// Err returns nil if the list is empty, or the list itself as an error
// otherwise (sorted by position).
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	sorted := append([]Error(nil), l.errs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position().Start < sorted[j].Position().Start
	})
	return errList(sorted)
}

type errList []Error

func (l errList) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}
