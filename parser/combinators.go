package parser

import (
	"github.com/ceymard/pegp/lexer"
)

// Pair is the result of Seq2.
type Pair[A, B any] struct {
	A A
	B B
}

// Triple is the result of Seq3.
type Triple[A, B, C any] struct {
	A A
	B B
	C C
}

// Quad is the result of Seq4.
type Quad[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Seq runs rules of a common result type in order and collects their
// results; no-match on the first failing rule, rolling back to before the
// sequence.
func Seq[T any](rules ...Rule[T]) Rule[[]T] {
	return newRule("", func(in *lexer.Input) ([]T, bool, error) {
		res := make([]T, 0, len(rules))
		for _, r := range rules {
			v, ok, e := r.Apply(in)
			if !ok || e != nil {
				return nil, false, e
			}
			res = append(res, v)
		}
		return res, true, nil
	})
}

// Seq2 runs a then b, keeping both results.
func Seq2[A, B any](a Rule[A], b Rule[B]) Rule[Pair[A, B]] {
	return newRule("", func(in *lexer.Input) (res Pair[A, B], ok bool, err error) {
		res.A, ok, err = a.Apply(in)
		if !ok || err != nil {
			return res, false, err
		}
		res.B, ok, err = b.Apply(in)
		if !ok || err != nil {
			return res, false, err
		}
		return res, true, nil
	})
}

// Seq3 runs a, b, then c, keeping all three results.
func Seq3[A, B, C any](a Rule[A], b Rule[B], c Rule[C]) Rule[Triple[A, B, C]] {
	r := Seq2(a, Seq2(b, c))
	return Map(r, func(v Pair[A, Pair[B, C]]) Triple[A, B, C] {
		return Triple[A, B, C]{v.A, v.B.A, v.B.B}
	})
}

// Seq4 runs a, b, c, then d, keeping all four results.
func Seq4[A, B, C, D any](a Rule[A], b Rule[B], c Rule[C], d Rule[D]) Rule[Quad[A, B, C, D]] {
	r := Seq2(Seq2(a, b), Seq2(c, d))
	return Map(r, func(v Pair[Pair[A, B], Pair[C, D]]) Quad[A, B, C, D] {
		return Quad[A, B, C, D]{v.A.A, v.A.B, v.B.A, v.B.B}
	})
}

// Either tries the rules in order and commits to the first match; no-match
// only if all of them fail.
func Either[T any](rules ...Rule[T]) Rule[T] {
	return newRule("", func(in *lexer.Input) (res T, ok bool, err error) {
		for _, r := range rules {
			res, ok, err = r.Apply(in)
			if ok || err != nil {
				return
			}
		}
		return res, false, nil
	})
}

// ZeroOrMore runs r until it fails; always matches, possibly with an empty
// result. An iteration that consumes nothing stops the loop, so a rule that
// can match empty does not spin forever.
func ZeroOrMore[T any](r Rule[T]) Rule[[]T] {
	return newRule("", func(in *lexer.Input) ([]T, bool, error) {
		res := make([]T, 0)
		for {
			before := in.Pos()
			v, ok, e := r.Apply(in)
			if e != nil {
				return nil, false, e
			}
			if !ok {
				return res, true, nil
			}
			res = append(res, v)
			if in.Pos() == before {
				return res, true, nil
			}
		}
	})
}

// OneOrMore is ZeroOrMore that fails on an empty result.
func OneOrMore[T any](r Rule[T]) Rule[[]T] {
	rest := ZeroOrMore(r)
	return newRule("", func(in *lexer.Input) ([]T, bool, error) {
		first, ok, e := r.Apply(in)
		if !ok || e != nil {
			return nil, false, e
		}
		more, _, e := rest.Apply(in)
		if e != nil {
			return nil, false, e
		}
		return append([]T{first}, more...), true, nil
	})
}

// Maybe is the result of Optional: the value of the inner rule and whether
// it actually matched.
type Maybe[T any] struct {
	Value   T
	Defined bool
}

// Optional runs r and matches whether or not r did.
func Optional[T any](r Rule[T]) Rule[Maybe[T]] {
	return newRule("", func(in *lexer.Input) (Maybe[T], bool, error) {
		v, ok, e := r.Apply(in)
		if e != nil {
			return Maybe[T]{}, false, e
		}
		return Maybe[T]{Value: v, Defined: ok}, true, nil
	})
}

// LookAhead runs r and restores the input position whatever the outcome;
// the outcome itself is passed through unchanged.
func LookAhead[T any](r Rule[T]) Rule[T] {
	return newRule(r.name, func(in *lexer.Input) (T, bool, error) {
		in.Save()
		v, ok, e := r.Apply(in)
		in.Rollback()
		return v, ok, e
	})
}

// Not succeeds iff r fails; the input position is always restored.
func Not[T any](r Rule[T]) Rule[struct{}] {
	return newRule("", func(in *lexer.Input) (struct{}, bool, error) {
		in.Save()
		_, ok, e := r.Apply(in)
		in.Rollback()
		if e != nil {
			return struct{}{}, false, e
		}
		return struct{}{}, !ok, nil
	})
}

// Forward defers rule resolution to execution time, breaking the
// construction cycle of recursive and mutually recursive grammars:
//
//	var expr parser.Rule[int]
//	atom := parser.Either(number, parser.Seq3(open, parser.Forward(func() parser.Rule[int] { return expr }), close) ...)
//	expr = ...atom...
func Forward[T any](f func() Rule[T]) Rule[T] {
	return newRule("", func(in *lexer.Input) (T, bool, error) {
		return f().Apply(in)
	})
}

// List matches one or more items separated by sep, collecting the item
// results: item (sep item)*.
func List[T, S any](item Rule[T], sep Rule[S]) Rule[[]T] {
	rest := ZeroOrMore(Seq2(sep, item))
	return Map(Seq2(item, rest), func(v Pair[T, []Pair[S, T]]) []T {
		res := make([]T, 0, len(v.B)+1)
		res = append(res, v.A)
		for _, p := range v.B {
			res = append(res, p.B)
		}
		return res
	})
}
