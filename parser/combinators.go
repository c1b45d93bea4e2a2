package parser

import (
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// rule is the shape every grammar rule takes: given a point, produce a
// value and the point after it, or fail leaving the point for the caller to
// reuse. Rules record their expectations into the parser's monotonic
// aggregate as they fail; combinators never have to.
type rule[T any] func(pt point) (T, point, bool)

// alternate tries branches in declared order; the first success wins. The
// error surfaced on total failure is the union the branches recorded at the
// furthest point.
func alternate[T any](pt point, rules ...rule[T]) (T, point, bool) {
	for _, r := range rules {
		if v, npt, ok := r(pt); ok {
			return v, npt, true
		}
	}
	var zero T
	return zero, pt, false
}

// optional runs r and reports whether it matched; on failure the original
// point is kept and r's expectations stay in the aggregate.
func optional[T any](pt point, r rule[T]) (T, bool, point) {
	if v, npt, ok := r(pt); ok {
		return v, true, npt
	}
	var zero T
	return zero, false, pt
}

// optionalPtr is optional for rules whose absence is naturally a nil
// pointer.
func optionalPtr[T any](pt point, r rule[T]) (*T, point) {
	if v, npt, ok := r(pt); ok {
		return &v, npt
	}
	return nil, pt
}

// zeroOrMore repeats r until it fails. A successful iteration that does not
// advance stops the loop rather than spinning.
func zeroOrMore[T any](pt point, r rule[T]) ([]T, point) {
	var values []T
	for {
		v, npt, ok := r(pt)
		if !ok || !pt.before(npt) {
			return values, pt
		}
		values = append(values, v)
		pt = npt
	}
}

// oneOrMore is zeroOrMore requiring at least one match.
func oneOrMore[T any](pt point, r rule[T]) ([]T, point, bool) {
	first, npt, ok := r(pt)
	if !ok {
		return nil, pt, false
	}
	rest, npt := zeroOrMore(npt, r)
	return append([]T{first}, rest...), npt, true
}

// tailed is the result of the separator-interspersed combinators. The
// bookkeeping lets callers distinguish `a, b` from `a, b,`.
type tailed[T any] struct {
	Values           []T
	SeparatorCount   int
	LastHadSeparator bool
}

// zeroOrMoreTailedValues parses a possibly empty value (sep value)* sep?
// sequence.
func zeroOrMoreTailedValues[T any](p *parser, pt point, sep lexer.TokenType, r rule[T]) (tailed[T], point) {
	var t tailed[T]
	for {
		v, npt, ok := r(pt)
		if !ok || !pt.before(npt) {
			return t, pt
		}
		t.Values = append(t.Values, v)
		t.LastHadSeparator = false
		pt = npt

		if _, npt, ok := p.expect(pt, sep); ok {
			t.SeparatorCount++
			t.LastHadSeparator = true
			pt = npt
		} else {
			return t, pt
		}
	}
}

// oneOrMoreTailedValues is zeroOrMoreTailedValues requiring at least one
// value.
func oneOrMoreTailedValues[T any](p *parser, pt point, sep lexer.TokenType, r rule[T]) (tailed[T], point, bool) {
	t, npt := zeroOrMoreTailedValues(p, pt, sep, r)
	if len(t.Values) == 0 {
		return t, pt, false
	}
	return t, npt, true
}

// zeroOrMoreTailedValuesResume continues a tailed sequence after the caller
// already consumed the first value: it picks up only when the separator
// follows.
func zeroOrMoreTailedValuesResume[T any](p *parser, pt point, sep lexer.TokenType, first T, r rule[T]) (tailed[T], point) {
	t := tailed[T]{Values: []T{first}}
	for {
		_, npt, ok := p.expect(pt, sep)
		if !ok {
			return t, pt
		}
		t.SeparatorCount++
		t.LastHadSeparator = true
		pt = npt

		v, npt, ok := r(pt)
		if !ok {
			return t, pt
		}
		t.Values = append(t.Values, v)
		t.LastHadSeparator = false
		pt = npt
	}
}

// notFollowedBy succeeds iff the effective token at pt is not typ. It
// consumes nothing.
func (p *parser) notFollowedBy(pt point, typ lexer.TokenType, ex Expectation) bool {
	if p.peekIs(pt, typ) {
		p.fail(pt, ex)
		return false
	}
	return true
}

// parseNestedUntil consumes tokens while tracking the nesting depth of
// open/close pairs, stopping at the first close at depth zero without
// consuming it. The consumed region is returned verbatim as an extent; this
// is how attribute and macro bodies are captured.
func (p *parser) parseNestedUntil(pt point, open, close lexer.TokenType) (source.Extent, point, bool) {
	spt := pt
	depth := 0
	for {
		tok := p.at(pt)
		switch tok.Type {
		case lexer.EndOfFile:
			p.fail(pt, ExpectedToken(close))
			return source.Extent{}, spt, false
		case open:
			depth++
		case close:
			if depth == 0 {
				return p.spanFrom(spt, pt), pt, true
			}
			depth--
		}
		pt = point{idx: pt.idx + 1}
	}
}
