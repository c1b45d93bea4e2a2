package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxparse-dev/oxparse/lexer"
)

func TestAlternateFirstSuccessWins(t *testing.T) {
	_ = testParser(t, "a")

	calls := 0
	first := func(pt point) (string, point, bool) {
		calls++
		return "first", point{idx: pt.idx + 1}, true
	}
	second := func(pt point) (string, point, bool) {
		t.Fatal("second branch must not run after a success")
		return "", pt, false
	}

	v, _, ok := alternate(point{}, first, second)
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, calls)
}

func TestAlternateReturnsOriginalPointOnFailure(t *testing.T) {
	failing := func(pt point) (int, point, bool) {
		return 0, point{idx: pt.idx + 3}, false
	}
	_, pt, ok := alternate(point{idx: 1}, failing, failing)
	assert.False(t, ok)
	assert.Equal(t, point{idx: 1}, pt, "failure leaves the point untouched")
}

func TestOptionalKeepsPointOnFailure(t *testing.T) {
	fail := func(pt point) (int, point, bool) { return 0, pt, false }
	succeed := func(pt point) (int, point, bool) { return 7, point{idx: pt.idx + 1}, true }

	v, present, pt := optional(point{idx: 2}, succeed)
	assert.True(t, present)
	assert.Equal(t, 7, v)
	assert.Equal(t, point{idx: 3}, pt)

	_, present, pt = optional(point{idx: 2}, fail)
	assert.False(t, present)
	assert.Equal(t, point{idx: 2}, pt)
}

func TestZeroOrMoreStopsWithoutProgress(t *testing.T) {
	// A rule that succeeds without advancing must not spin forever.
	sticky := func(pt point) (int, point, bool) { return 1, pt, true }
	values, pt := zeroOrMore(point{idx: 4}, sticky)
	assert.Empty(t, values)
	assert.Equal(t, point{idx: 4}, pt)
}

func TestOneOrMoreRequiresOne(t *testing.T) {
	fail := func(pt point) (int, point, bool) { return 0, pt, false }
	_, _, ok := oneOrMore(point{}, fail)
	assert.False(t, ok)

	n := 0
	three := func(pt point) (int, point, bool) {
		if n >= 3 {
			return 0, pt, false
		}
		n++
		return n, point{idx: pt.idx + 1}, true
	}
	values, pt, ok := oneOrMore(point{}, three)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, values)
	assert.Equal(t, point{idx: 3}, pt)
}

func TestTailedBookkeeping(t *testing.T) {
	// a, b  versus  a, b,  are distinguished by LastHadSeparator.
	p := testParser(t, "a, b")
	tl, _ := zeroOrMoreTailedValues(p, point{}, lexer.Comma, p.ident)
	assert.Len(t, tl.Values, 2)
	assert.Equal(t, 1, tl.SeparatorCount)
	assert.False(t, tl.LastHadSeparator)

	p = testParser(t, "a, b,")
	tl, _ = zeroOrMoreTailedValues(p, point{}, lexer.Comma, p.ident)
	assert.Len(t, tl.Values, 2)
	assert.Equal(t, 2, tl.SeparatorCount)
	assert.True(t, tl.LastHadSeparator)

	p = testParser(t, "")
	tl, _ = zeroOrMoreTailedValues(p, point{}, lexer.Comma, p.ident)
	assert.Empty(t, tl.Values)
}

func TestTailedResume(t *testing.T) {
	// Resume picks up only when the separator follows the first value.
	input := "a, b, c"
	p := testParser(t, input)
	first, pt, ok := p.ident(point{})
	require.True(t, ok)

	tl, pt := zeroOrMoreTailedValuesResume(p, pt, lexer.Comma, first, p.ident)
	assert.Len(t, tl.Values, 3)
	assert.Equal(t, lexer.EndOfFile, p.at(pt).Type)

	// No separator: the sequence is just the first value.
	p = testParser(t, "a b")
	first, pt, ok = p.ident(point{})
	require.True(t, ok)
	tl, pt = zeroOrMoreTailedValuesResume(p, pt, lexer.Comma, first, p.ident)
	assert.Len(t, tl.Values, 1)
	assert.Equal(t, lexer.Ident, p.at(pt).Type)
}

func TestParseNestedUntilTracksDepth(t *testing.T) {
	input := "a ( b ) c ) rest"
	p := testParser(t, input)

	ext, pt, ok := p.parseNestedUntil(point{}, lexer.LeftParen, lexer.RightParen)
	require.True(t, ok)
	assert.Equal(t, "a ( b ) c", ext.Of(input))
	assert.Equal(t, lexer.RightParen, p.at(pt).Type, "the closing token is not consumed")
}

func TestParseNestedUntilFailsAtEOF(t *testing.T) {
	p := testParser(t, "( unclosed")
	_, _, ok := p.parseNestedUntil(point{}, lexer.LeftParen, lexer.RightParen)
	assert.False(t, ok)
}

func TestNotFollowedBy(t *testing.T) {
	p := testParser(t, "fn")
	assert.False(t, p.notFollowedBy(point{}, lexer.Fn, ExpectedIdent))
	assert.True(t, p.notFollowedBy(point{}, lexer.Struct, ExpectedIdent))
}

func TestExpectSplitsGreedyTokens(t *testing.T) {
	// >>= yields three tokens through successive splits.
	p := testParser(t, ">>=")

	tok, pt, ok := p.expect(point{}, lexer.GreaterThan)
	require.True(t, ok)
	assert.Equal(t, point{idx: 0, sub: 1}, pt)
	assert.Equal(t, 1, tok.Extent.End)

	tok, pt, ok = p.expect(pt, lexer.GreaterThan)
	require.True(t, ok)
	assert.Equal(t, point{idx: 0, sub: 2}, pt)
	assert.Equal(t, 2, tok.Extent.End)

	tok, pt, ok = p.expect(pt, lexer.Equals)
	require.True(t, ok)
	assert.Equal(t, point{idx: 1, sub: 0}, pt)
	assert.Equal(t, 3, tok.Extent.End)

	assert.Equal(t, lexer.EndOfFile, p.at(pt).Type)
}

func TestExpectWholeTokenPreferred(t *testing.T) {
	// When the whole token matches, no split happens.
	p := testParser(t, ">>")
	_, pt, ok := p.expect(point{}, lexer.DoubleGreaterThan)
	require.True(t, ok)
	assert.Equal(t, point{idx: 1}, pt)
}

func TestExpectFailureLeavesPoint(t *testing.T) {
	p := testParser(t, "+")
	_, pt, ok := p.expect(point{}, lexer.Minus)
	assert.False(t, ok)
	assert.Equal(t, point{}, pt)
}
