package parser

import (
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// point is a position in the token stream: a token index plus a sub-offset
// naming a position strictly inside a split multi-symbol token. Points are
// cheap values; combinators backtrack by keeping the incoming point and
// returning it untouched on failure.
type point struct {
	idx int
	sub int
}

// before orders points lexicographically.
func (pt point) before(o point) bool {
	if pt.idx != o.idx {
		return pt.idx < o.idx
	}
	return pt.sub < o.sub
}

// at returns the effective token at pt: the whole token when the sub-offset
// is zero, otherwise the suffix the splitter recovers at that sub-offset.
func (p *parser) at(pt point) lexer.Token {
	tok := p.tokens[pt.idx]
	if pt.sub == 0 {
		return tok
	}
	_, suffix, ok := lexer.Split(tok, pt.sub-1)
	if !ok {
		// A non-zero sub-offset is only ever produced by a successful
		// split, so the suffix must exist.
		panic("parser: sub-offset inside an unsplittable token")
	}
	return suffix
}

// expect matches a whole-token expectation at pt. If the effective token
// does not match, it asks the splitter for a split at the next sub-offset
// and tests the prefix; when the splits are exhausted the match fails and
// the expectation is recorded.
func (p *parser) expect(pt point, typ lexer.TokenType) (lexer.Token, point, bool) {
	eff := p.at(pt)
	if eff.Type == typ {
		return eff, point{idx: pt.idx + 1}, true
	}
	if prefix, _, ok := lexer.Split(eff, 0); ok && prefix.Type == typ {
		return prefix, point{idx: pt.idx, sub: pt.sub + 1}, true
	}
	p.fail(pt, ExpectedToken(typ))
	return lexer.Token{}, pt, false
}

// peekIs reports whether the effective token at pt has the given type,
// without advancing and without recording an expectation.
func (p *parser) peekIs(pt point, typ lexer.TokenType) bool {
	return p.at(pt).Type == typ
}

// spanFrom resolves the extent covered between a rule's entry point and the
// point after its last consumed token. Sub-offsets shift the boundary into
// the interior of a split token. This is the single source of node extents.
func (p *parser) spanFrom(spt, ept point) source.Extent {
	start := p.tokens[spt.idx].Extent.Start + spt.sub
	if ept == spt {
		return source.NewExtent(start, start)
	}
	var end int
	if ept.sub > 0 {
		end = p.tokens[ept.idx].Extent.Start + ept.sub
	} else {
		end = p.tokens[ept.idx-1].Extent.End
	}
	if end < start {
		end = start
	}
	return source.NewExtent(start, end)
}
