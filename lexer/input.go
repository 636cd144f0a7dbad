// Package lexer defines the token alphabet and the lazy backtracking input
// the parser reads lexemes from.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/ceymard/pegp"
	"github.com/ceymard/pegp/source"
)

// Error codes used by lexer:
const (
	// IllegalInputError indicates that no token rule matched at the current offset.
	// Error message contains the rune at that offset.
	IllegalInputError = pegp.LexicalErrors + iota
)

func illegalInputError(src *source.Source, pos int) *pegp.Error {
	r, _ := utf8.DecodeRuneInString(src.Content()[pos:])
	msg := fmt.Sprintf("illegal input %q (u+%x)", r, r)
	return pegp.FormatErrorPos(source.NewPos(src, pos), IllegalInputError, msg)
}

// Input is the lazy lexer and backtracking cursor over a single source.
// Lexemes are produced on demand by trying the alphabet's rules in priority
// order at the current byte offset and are kept for the lifetime of the
// Input: a rollback only moves the cursor, so each byte is tokenized at
// most once per alphabet no matter how much the parser backtracks.
//
// An Input belongs to exactly one parse and is not safe for concurrent use;
// the alphabet it reads is never written to and may be shared.
type Input struct {
	src    *source.Source
	tokens *TokenList

	lexemes   []*Lexeme
	lexPos    int // number of the last consumed lexeme, -1 before the first Next
	lastIndex int // next byte offset to tokenize from
	stack     []int
	furthest  *Lexeme
	forced    *TokenRule

	cutBase int // lexeme number of lexemes[0], raised by Cut
	start   int // byte offset of the first unconsumed byte when no consumed lexeme records it
}

// NewInput creates an Input reading src with the given alphabet.
func NewInput(tokens *TokenList, src *source.Source) *Input {
	return &Input{src: src, tokens: tokens, lexPos: -1, cutBase: 0}
}

func (in *Input) Source() *source.Source {
	return in.src
}

// Tokens returns the active alphabet.
func (in *Input) Tokens() *TokenList {
	return in.tokens
}

// Pos returns the current cursor value. It only ever needs to be compared
// for equality or order: combinators use it to detect whether an attempt
// consumed anything.
func (in *Input) Pos() int {
	return in.lexPos
}

// Depth returns the current save stack depth.
func (in *Input) Depth() int {
	return len(in.stack)
}

// Furthest returns the maximum-index lexeme ever returned by Next or Peek,
// or nil if none was. Error reporting uses it: after a chain of rollbacks
// it points at where parsing got stuck rather than where the cursor ended up.
func (in *Input) Furthest() *Lexeme {
	return in.furthest
}

// Save pushes the cursor onto the save stack.
func (in *Input) Save() {
	in.stack = append(in.stack, in.lexPos)
}

// Rollback pops the save stack and restores the cursor. The lexeme vector
// is left intact, so a retry reuses already-produced lexemes.
func (in *Input) Rollback() {
	n := len(in.stack) - 1
	in.lexPos = in.stack[n]
	in.stack = in.stack[:n]
}

// Commit pops the save stack and keeps the cursor.
func (in *Input) Commit() {
	in.stack = in.stack[:len(in.stack)-1]
}

// Force arms a one-shot override: the next single lexeme lookup treats t as
// non-skippable, so a grammar can ask for a token that is otherwise in the
// skip set. The override is consumed by the lookup itself whether or not it
// finds t, so a failing rule cannot leak it.
func (in *Input) Force(t *TokenRule) {
	in.forced = t
}

// Next returns the next non-skippable lexeme and advances the cursor.
// Returns nil at the end of input and a *pegp.Error with IllegalInputError
// code if a byte cannot be tokenized.
func (in *Input) Next() (*Lexeme, error) {
	return in.nextLexeme(true, true)
}

// Peek is Next without advancing the cursor.
func (in *Input) Peek() (*Lexeme, error) {
	return in.nextLexeme(false, true)
}

// NextAny returns the next lexeme regardless of skippability and advances the cursor.
func (in *Input) NextAny() (*Lexeme, error) {
	return in.nextLexeme(true, false)
}

// PeekAny is NextAny without advancing the cursor.
func (in *Input) PeekAny() (*Lexeme, error) {
	return in.nextLexeme(false, false)
}

func (in *Input) nextLexeme(updatePos, skip bool) (*Lexeme, error) {
	forced := in.forced
	in.forced = nil

	pos := in.lexPos + 1
	for {
		for pos-in.cutBase < len(in.lexemes) {
			l := in.lexemes[pos-in.cutBase]
			if !skip || !l.token.skippable || l.token == forced {
				if updatePos {
					in.lexPos = pos
				}
				in.noteFurthest(l)
				return l, nil
			}
			pos++
		}

		l, e := in.tokenize()
		if e != nil {
			return nil, e
		}
		if l == nil {
			return nil, nil
		}
	}
}

// tokenize extends the lexeme vector by one lexeme, trying every rule of the
// alphabet in priority order at lastIndex. Returns nil at the end of input.
func (in *Input) tokenize() (*Lexeme, error) {
	if in.lastIndex >= in.src.Len() {
		return nil, nil
	}

	content := in.src.Content()
	for _, t := range in.tokens.rules {
		m := t.match(content, in.lastIndex)
		if m == nil {
			continue
		}

		line, col := in.src.LineCol(in.lastIndex)
		var groups []string
		if len(m) > 2 {
			groups = make([]string, 0, len(m)/2-1)
			for i := 2; i < len(m); i += 2 {
				if m[i] < 0 {
					groups = append(groups, "")
				} else {
					groups = append(groups, content[in.lastIndex+m[i]:in.lastIndex+m[i+1]])
				}
			}
		}
		l := &Lexeme{
			src:    in.src,
			token:  t,
			text:   content[in.lastIndex : in.lastIndex+m[1]],
			index:  in.lastIndex,
			line:   line,
			col:    col,
			groups: groups,
		}
		in.lexemes = append(in.lexemes, l)
		in.lastIndex += m[1]
		return l, nil
	}

	return nil, illegalInputError(in.src, in.lastIndex)
}

func (in *Input) noteFurthest(l *Lexeme) {
	if in.furthest == nil || l.index > in.furthest.index {
		in.furthest = l
	}
}

// Offset returns the byte offset of the first unconsumed byte: the end of
// the last consumed lexeme, regardless of how far tokenization ran ahead.
func (in *Input) Offset() int {
	if in.lexPos >= in.cutBase {
		if end := in.lexemes[in.lexPos-in.cutBase].End(); end > in.start {
			return end
		}
	}
	return in.start
}

// CloneAt creates an independent Input over the same source starting at the
// current Offset with a different alphabet. The clone has its own lexeme
// vector; nothing tokenized by the parent is visible to it.
func (in *Input) CloneAt(tokens *TokenList) *Input {
	off := in.Offset()
	return &Input{src: in.src, tokens: tokens, lexPos: -1, lastIndex: off, start: off}
}

// Resume moves the input past bytes consumed by a clone: every unconsumed
// lexeme is dropped (they were tokenized under this input's alphabet and may
// not align with offset) and tokenization restarts at offset.
//
// Resume commits those bytes permanently: rolling the cursor back across a
// resume point and re-reading the region under this input's alphabet is not
// supported.
func (in *Input) Resume(offset int) {
	if offset < in.Offset() {
		return
	}
	in.lexemes = in.lexemes[:in.lexPos+1-in.cutBase]
	in.lastIndex = offset
	in.start = offset
}

// Cut discards lexemes that are already consumed, releasing their memory.
// It is a no-op unless the save stack is empty: with saved positions on the
// stack a rollback could still need them.
func (in *Input) Cut() {
	if len(in.stack) > 0 {
		return
	}
	n := in.lexPos + 1 - in.cutBase
	if n <= 0 {
		return
	}
	in.start = in.Offset()
	in.lexemes = append([]*Lexeme{}, in.lexemes[n:]...)
	in.cutBase += n
}
