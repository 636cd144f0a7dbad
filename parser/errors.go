package parser

import (
	"github.com/ceymard/pegp"
	"github.com/ceymard/pegp/lexer"
	"github.com/ceymard/pegp/source"
)

// Error codes used by parser:
const (
	// ParseFailedError indicates that the top rule of a language produced no match.
	ParseFailedError = pegp.SyntaxErrors + iota

	// UnexpectedInputError indicates that the top rule matched but input remains.
	UnexpectedInputError
)

func parseFailedError(name string, src *source.Source, furthest *lexer.Lexeme) *pegp.Error {
	if furthest != nil {
		return pegp.FormatErrorPos(furthest, ParseFailedError, "parse failed, unexpected %q", furthest.Text())
	}
	line, col := src.LineCol(src.Len())
	return pegp.NewError(ParseFailedError, "parse failed, unexpected end of input", name, line, col)
}

func unexpectedInputError(furthest *lexer.Lexeme) *pegp.Error {
	return pegp.FormatErrorPos(furthest, UnexpectedInputError, "unexpected %q", furthest.Text())
}
