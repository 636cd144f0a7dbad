package lexer

import (
	"regexp"

	"github.com/ceymard/pegp/source"
)

// TokenRule is a named regular expression recognizing one kind of lexeme.
// Rules are created through a TokenList and matched against lexemes by
// identity: a Lexeme remembers the exact *TokenRule that produced it.
// A TokenRule is immutable once its TokenList is in use, so any number of
// concurrent parses may share it.
type TokenRule struct {
	name      string
	re        *regexp.Regexp
	skippable bool
}

// NewTokenRule compiles pattern as a regular expression.
// The pattern is wrapped in (?s:...) so that . crosses line boundaries;
// matching is always attempted at the current input offset only.
// Panics on an invalid pattern, like regexp.MustCompile.
func NewTokenRule(pattern string) *TokenRule {
	return &TokenRule{name: pattern, re: regexp.MustCompile("(?s:" + pattern + ")")}
}

// NewLiteral creates a rule matching text exactly; regexp metacharacters
// in text are quoted.
func NewLiteral(text string) *TokenRule {
	return &TokenRule{name: text, re: regexp.MustCompile(regexp.QuoteMeta(text))}
}

// Name returns the display name used in diagnostics, the pattern text by default.
func (t *TokenRule) Name() string {
	return t.name
}

// Named sets the display name and returns the rule itself.
func (t *TokenRule) Named(name string) *TokenRule {
	t.name = name
	return t
}

// Skippable reports whether lexemes of this rule are elided by default.
func (t *TokenRule) Skippable() bool {
	return t.skippable
}

// match attempts the rule at content[pos:]. Submatch indexes are returned
// relative to pos, nil if the rule does not match there. Zero-length
// matches are rejected.
func (t *TokenRule) match(content string, pos int) []int {
	m := t.re.FindStringSubmatchIndex(content[pos:])
	if len(m) == 0 || m[0] != 0 || m[1] <= 0 {
		return nil
	}
	return m
}

// TokenList is an ordered token alphabet. Addition order is match priority:
// the lexer tries rules in list order and takes the first one matching a
// non-empty prefix at the current offset.
type TokenList struct {
	rules []*TokenRule
}

func NewTokenList() *TokenList {
	return &TokenList{}
}

// Add appends a rule compiled from a regexp pattern and returns it.
func (l *TokenList) Add(pattern string) *TokenRule {
	return l.AddRule(NewTokenRule(pattern))
}

// AddLiteral appends a rule matching text exactly and returns it.
func (l *TokenList) AddLiteral(text string) *TokenRule {
	return l.AddRule(NewLiteral(text))
}

// Skip is Add followed by marking the rule skippable.
func (l *TokenList) Skip(pattern string) *TokenRule {
	t := l.Add(pattern)
	t.skippable = true
	return t
}

// SkipLiteral is AddLiteral followed by marking the rule skippable.
func (l *TokenList) SkipLiteral(text string) *TokenRule {
	t := l.AddLiteral(text)
	t.skippable = true
	return t
}

// AddRule appends an existing rule and returns it.
func (l *TokenList) AddRule(t *TokenRule) *TokenRule {
	l.rules = append(l.rules, t)
	return t
}

// Rules returns the rules in priority order. The returned slice must not be modified.
func (l *TokenList) Rules() []*TokenRule {
	return l.rules
}

// Lexeme is a single token occurrence in the source: the matched text, the
// rule that produced it, and its position. Lexemes are created by Input
// while extending its lexeme vector and never mutated afterwards.
type Lexeme struct {
	src       *source.Source
	token     *TokenRule
	text      string
	index     int
	line, col int
	groups    []string
}

// Text returns the matched text.
func (l *Lexeme) Text() string {
	return l.text
}

// Token returns the rule that produced this lexeme.
func (l *Lexeme) Token() *TokenRule {
	return l.token
}

// Index returns the byte offset of the lexeme in the source.
func (l *Lexeme) Index() int {
	return l.index
}

// End returns the byte offset just past the lexeme.
func (l *Lexeme) End() int {
	return l.index + len(l.text)
}

func (l *Lexeme) Source() *source.Source {
	return l.src
}

func (l *Lexeme) SourceName() string {
	if l.src == nil {
		return ""
	}
	return l.src.Name()
}

func (l *Lexeme) Line() int {
	return l.line
}

func (l *Lexeme) Col() int {
	return l.col
}

// Groups returns the texts captured by the rule's submatch groups, one entry
// per group, empty strings for groups that did not participate in the match.
// Returns nil when the pattern has no groups.
func (l *Lexeme) Groups() []string {
	return l.groups
}
