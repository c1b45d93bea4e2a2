package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
)

// parsePattern drives the pattern rule over the whole input.
func parsePattern(t *testing.T, input string) ast.Pattern {
	t.Helper()
	p := testParser(t, input)
	pat, pt, ok := p.pattern(point{})
	require.True(t, ok, "pattern failed: %v", p.failureError())
	require.Equal(t, lexer.EndOfFile, p.at(pt).Type,
		"pattern did not consume the whole input %q", input)
	return pat
}

func TestPatternIdentForms(t *testing.T) {
	pat := parsePattern(t, "x")
	ident, ok := pat.Kind.(*ast.PatternIdent)
	require.True(t, ok)
	assert.False(t, ident.Ref)
	assert.False(t, ident.Mut)

	pat = parsePattern(t, "ref mut x")
	ident, ok = pat.Kind.(*ast.PatternIdent)
	require.True(t, ok)
	assert.True(t, ident.Ref)
	assert.True(t, ident.Mut)

	pat = parsePattern(t, "Some")
	_, ok = pat.Kind.(*ast.PatternIdent)
	assert.True(t, ok)

	pat = parsePattern(t, "Option::None")
	ident, ok = pat.Kind.(*ast.PatternIdent)
	require.True(t, ok)
	assert.Len(t, ident.Path.Components, 2)
}

func TestPatternBinding(t *testing.T) {
	input := "name @ 1..=9"
	pat := parsePattern(t, input)
	require.NotNil(t, pat.Name)
	assert.Equal(t, "name", pat.Name.Name.Name(input))
	_, ok := pat.Kind.(*ast.PatternRangeInclusive)
	assert.True(t, ok)
}

func TestPatternTupleStruct(t *testing.T) {
	pat := parsePattern(t, "Some(x)")
	tuple, ok := pat.Kind.(*ast.PatternTuple)
	require.True(t, ok)
	require.NotNil(t, tuple.Path)
	assert.Len(t, tuple.Members, 1)
}

func TestPatternTupleWithWildcard(t *testing.T) {
	pat := parsePattern(t, "(a, .., z)")
	tuple, ok := pat.Kind.(*ast.PatternTuple)
	require.True(t, ok)
	assert.Nil(t, tuple.Path)
	require.Len(t, tuple.Members, 3)
	_, isWild := tuple.Members[1].(*ast.PatternMemberWildcard)
	assert.True(t, isWild)
}

func TestPatternStruct(t *testing.T) {
	pat := parsePattern(t, "Point { x: 0, y, .. }")
	st, ok := pat.Kind.(*ast.PatternStruct)
	require.True(t, ok)
	require.Len(t, st.Fields, 2)
	assert.NotNil(t, st.Fields[0].Pattern, "long form")
	assert.Nil(t, st.Fields[1].Pattern, "short form")
	assert.True(t, st.Wildcard)
}

func TestPatternSlice(t *testing.T) {
	pat := parsePattern(t, "[first, .., last]")
	sl, ok := pat.Kind.(*ast.PatternSlice)
	require.True(t, ok)
	require.Len(t, sl.Members, 3)
	_, isWild := sl.Members[1].(*ast.PatternMemberWildcard)
	assert.True(t, isWild)
}

func TestPatternReference(t *testing.T) {
	pat := parsePattern(t, "&mut x")
	ref, ok := pat.Kind.(*ast.PatternReference)
	require.True(t, ok)
	assert.True(t, ref.Mutable)

	// && splits into nested reference patterns.
	pat = parsePattern(t, "&&x")
	outer, ok := pat.Kind.(*ast.PatternReference)
	require.True(t, ok)
	_, ok = outer.Inner.Kind.(*ast.PatternReference)
	assert.True(t, ok)
}

func TestPatternBox(t *testing.T) {
	pat := parsePattern(t, "box x")
	_, ok := pat.Kind.(*ast.PatternBox)
	assert.True(t, ok)
}

func TestPatternLiterals(t *testing.T) {
	tests := []struct {
		input string
		check func(k ast.PatternKind) bool
	}{
		{"'c'", func(k ast.PatternKind) bool { _, ok := k.(*ast.PatternCharacter); return ok }},
		{"b'x'", func(k ast.PatternKind) bool { _, ok := k.(*ast.PatternByte); return ok }},
		{`"lit"`, func(k ast.PatternKind) bool { _, ok := k.(*ast.PatternString); return ok }},
		{`b"lit"`, func(k ast.PatternKind) bool { _, ok := k.(*ast.PatternByteString); return ok }},
		{"42", func(k ast.PatternKind) bool { _, ok := k.(*ast.PatternNumber); return ok }},
		{"-42", func(k ast.PatternKind) bool {
			n, ok := k.(*ast.PatternNumber)
			return ok && n.Negated
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pat := parsePattern(t, tt.input)
			assert.True(t, tt.check(pat.Kind), "got %T", pat.Kind)
		})
	}
}

func TestPatternRanges(t *testing.T) {
	pat := parsePattern(t, "0..9")
	_, ok := pat.Kind.(*ast.PatternRangeExclusive)
	assert.True(t, ok)

	pat = parsePattern(t, "0..=9")
	_, ok = pat.Kind.(*ast.PatternRangeInclusive)
	assert.True(t, ok)

	// The legacy triple-dot spelling is inclusive.
	pat = parsePattern(t, "'a'...'z'")
	_, ok = pat.Kind.(*ast.PatternRangeInclusive)
	assert.True(t, ok)

	pat = parsePattern(t, "MIN..=MAX")
	rng, ok := pat.Kind.(*ast.PatternRangeInclusive)
	require.True(t, ok)
	_, ok = rng.Start.(*ast.PatternIdent)
	assert.True(t, ok)
}

func TestPatternMacroCall(t *testing.T) {
	pat := parsePattern(t, "matches!(x)")
	_, ok := pat.Kind.(*ast.PatternMacroCall)
	assert.True(t, ok)
}
