// Package parser defines the typed rule algebra and the language entry point.
//
// A Rule is a parser with a typed result. Executing a rule against an
// lexer.Input yields one of three outcomes: a match carrying the result,
// a no-match (ordinary control flow, the input position is restored), or a
// fatal error (a lexical fault or an error raised by a transform).
package parser

import (
	"regexp"

	"github.com/ceymard/pegp/lexer"
)

// Rule is a parser producing a value of type T. Rules are values: they are
// built once, may be shared between grammars and across concurrent parses,
// and never change after construction.
type Rule[T any] struct {
	name string
	body func(in *lexer.Input) (T, bool, error)
}

func newRule[T any](name string, body func(in *lexer.Input) (T, bool, error)) Rule[T] {
	return Rule[T]{name: name, body: body}
}

// Name returns the display name used in diagnostics, may be empty.
func (r Rule[T]) Name() string {
	return r.name
}

// Named returns a copy of the rule carrying a display name.
func (r Rule[T]) Named(name string) Rule[T] {
	r.name = name
	return r
}

// Apply executes the rule. ok reports a match; on no-match or error the
// input cursor is exactly where it was before the call.
//
// Every rule body runs inside a save/commit/rollback bracket, so a rule
// never has to clean up the cursor itself and a failing alternative can
// never leave the input half-advanced.
func (r Rule[T]) Apply(in *lexer.Input) (res T, ok bool, err error) {
	in.Save()
	res, ok, err = r.body(in)
	if ok && err == nil {
		in.Commit()
	} else {
		in.Rollback()
	}
	return
}

// Term matches the next non-skippable lexeme iff it was produced by t.
// If t itself is skippable, the lookup is forced to see it; the grammar can
// therefore ask for a whitespace or comment token explicitly.
func Term(t *lexer.TokenRule) Rule[*lexer.Lexeme] {
	return newRule(t.Name(), func(in *lexer.Input) (*lexer.Lexeme, bool, error) {
		if t.Skippable() {
			in.Force(t)
		}
		l, e := in.Next()
		if e != nil {
			return nil, false, e
		}
		if l == nil || l.Token() != t {
			return nil, false, nil
		}
		return l, true, nil
	})
}

// Text is Term transformed to the matched text.
func Text(t *lexer.TokenRule) Rule[string] {
	return Map(Term(t), (*lexer.Lexeme).Text).Named(t.Name())
}

// As matches a lexeme of t whose text equals one of the given strings.
func As(t *lexer.TokenRule, texts ...string) Rule[*lexer.Lexeme] {
	return Transform(Term(t), func(l *lexer.Lexeme) (*lexer.Lexeme, bool, error) {
		for _, s := range texts {
			if l.Text() == s {
				return l, true, nil
			}
		}
		return nil, false, nil
	})
}

// AsMatch matches a lexeme of t whose whole text matches pattern.
// Panics on an invalid pattern, like regexp.MustCompile.
func AsMatch(t *lexer.TokenRule, pattern string) Rule[*lexer.Lexeme] {
	re := regexp.MustCompile(`\A(?s:` + pattern + `)\z`)
	return Transform(Term(t), func(l *lexer.Lexeme) (*lexer.Lexeme, bool, error) {
		if !re.MatchString(l.Text()) {
			return nil, false, nil
		}
		return l, true, nil
	})
}

// Any consumes one lexeme of any non-skippable kind; no-match at the end of input.
func Any() Rule[*lexer.Lexeme] {
	return newRule("-any-", func(in *lexer.Input) (*lexer.Lexeme, bool, error) {
		l, e := in.Next()
		if e != nil {
			return nil, false, e
		}
		return l, l != nil, e
	})
}

// Transform maps the result of r through f. f may signal no-match by
// returning ok=false, in which case the input is rolled back as if r had
// not matched; an error from f is fatal and aborts the parse.
func Transform[T, U any](r Rule[T], f func(T) (U, bool, error)) Rule[U] {
	return newRule(r.name, func(in *lexer.Input) (res U, ok bool, err error) {
		v, ok, err := r.Apply(in)
		if !ok || err != nil {
			return res, false, err
		}
		return f(v)
	})
}

// Map is Transform for functions that cannot fail.
func Map[T, U any](r Rule[T], f func(T) U) Rule[U] {
	return newRule(r.name, func(in *lexer.Input) (res U, ok bool, err error) {
		v, ok, err := r.Apply(in)
		if !ok || err != nil {
			return res, false, err
		}
		return f(v), true, nil
	})
}
