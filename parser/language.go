package parser

import (
	"github.com/ceymard/pegp/lexer"
	"github.com/ceymard/pegp/source"
)

// Language binds a top-level rule to its token alphabet and is the entry
// point of a grammar. A Language is immutable and may run any number of
// concurrent parses; each Parse call owns a fresh Input.
type Language[T any] struct {
	top    Rule[T]
	tokens *lexer.TokenList
}

// NewLanguage creates a Language parsing sources with top over tokens.
func NewLanguage[T any](top Rule[T], tokens *lexer.TokenList) *Language[T] {
	return &Language[T]{top: top, tokens: tokens}
}

// Tokens returns the language's alphabet.
func (l *Language[T]) Tokens() *lexer.TokenList {
	return l.tokens
}

// Parse parses src and returns the top rule's result.
// On failure it returns a *pegp.Error: IllegalInputError if some byte could
// not be tokenized, ParseFailedError if the top rule did not match, and
// UnexpectedInputError if it matched but non-skippable input remains.
// The reported position is the furthest lexeme reached during the parse,
// which after backtracking is far more useful than the final cursor position.
func (l *Language[T]) Parse(src string) (T, error) {
	return l.ParseNamed("", src)
}

// ParseNamed is Parse with a source name used in error messages.
func (l *Language[T]) ParseNamed(name, src string) (res T, err error) {
	s := source.New(name, src)
	in := lexer.NewInput(l.tokens, s)

	res, ok, err := l.top.Apply(in)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		var zero T
		return zero, parseFailedError(name, s, in.Furthest())
	}

	left, err := in.Peek()
	if err != nil {
		var zero T
		return zero, err
	}
	if left != nil {
		var zero T
		return zero, unexpectedInputError(in.Furthest())
	}
	return res, nil
}

// Embed turns a whole Language into a rule, switching the token alphabet
// for the embedded region. The current input is cloned at its byte offset
// with the nested alphabet, the nested top rule consumes whatever prefix it
// matches (no leftover check), and the outer input resumes right after it.
//
// A no-match of the nested rule is an ordinary no-match of the Embed rule.
// A successful embed consumes its bytes permanently: backtracking across it
// and re-reading the region under the outer alphabet is not supported.
func Embed[T any](lang *Language[T]) Rule[T] {
	return newRule("", func(in *lexer.Input) (T, bool, error) {
		sub := in.CloneAt(lang.tokens)
		res, ok, err := lang.top.Apply(sub)
		if !ok || err != nil {
			var zero T
			return zero, false, err
		}
		in.Resume(sub.Offset())
		return res, true, nil
	})
}
