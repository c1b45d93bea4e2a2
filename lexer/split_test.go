package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitToken(t *testing.T, input string) Token {
	t.Helper()
	tokens := tokenize(t, input)
	require.Len(t, tokens, 2)
	return tokens[0]
}

func TestSplitTable(t *testing.T) {
	tests := []struct {
		input  string
		n      int
		prefix TokenType
		suffix TokenType
	}{
		{"<<", 0, LessThan, LessThan},
		{">>", 0, GreaterThan, GreaterThan},
		{">>=", 0, GreaterThan, GreaterThanOrEquals},
		{">>=", 1, GreaterThan, Equals},
		{">=", 0, GreaterThan, Equals},
		{"||", 0, Pipe, Pipe},
		{"&&", 0, Ampersand, Ampersand},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := splitToken(t, tt.input)
			prefix, suffix, ok := Split(tok, tt.n)
			require.True(t, ok)
			assert.Equal(t, tt.prefix, prefix.Type)
			assert.Equal(t, tt.suffix, suffix.Type)

			// The pieces cover adjacent slices of the original extent.
			assert.Equal(t, prefix.Extent.End, suffix.Extent.Start)
			assert.Equal(t, tok.Extent.End, suffix.Extent.End)
			assert.Less(t, prefix.Extent.Start, suffix.Extent.Start)
			if tt.n == 0 {
				assert.Equal(t, tok.Extent.Start, prefix.Extent.Start,
					"a position-zero split covers the whole token")
			}
		})
	}
}

func TestSplitUnlistedCombinationsFail(t *testing.T) {
	tests := []struct {
		input string
		n     int
	}{
		{"<<", 1},
		{">>", 1},
		{">=", 1},
		{"||", 1},
		{"&&", 1},
		{">>=", 2},
		{"<<=", 0},
		{"+", 0},
		{"==", 0},
		{"..", 0},
		{"->", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := splitToken(t, tt.input)
			_, _, ok := Split(tok, tt.n)
			assert.False(t, ok)
		})
	}
}

func TestSplitIsPure(t *testing.T) {
	tok := splitToken(t, ">>=")
	p1, s1, ok1 := Split(tok, 0)
	p2, s2, ok2 := Split(tok, 0)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
}

func TestSplitPositions(t *testing.T) {
	assert.Equal(t, 2, SplitPositions(ShiftRightEquals))
	assert.Equal(t, 1, SplitPositions(DoubleGreaterThan))
	assert.Equal(t, 1, SplitPositions(DoubleLessThan))
	assert.Equal(t, 1, SplitPositions(GreaterThanOrEquals))
	assert.Equal(t, 1, SplitPositions(DoublePipe))
	assert.Equal(t, 1, SplitPositions(DoubleAmpersand))
	assert.Equal(t, 0, SplitPositions(Plus))
	assert.Equal(t, 0, SplitPositions(ShiftLeftEquals))
}
