package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtentBasics(t *testing.T) {
	e := NewExtent(2, 5)
	assert.Equal(t, 3, e.Len())
	assert.False(t, e.IsEmpty())
	assert.Equal(t, "cde", e.Of("abcdefg"))
	assert.Equal(t, "(2, 5)", e.String())

	assert.True(t, NewExtent(0, 10).Contains(e))
	assert.True(t, e.Contains(e))
	assert.False(t, e.Contains(NewExtent(1, 4)))
	assert.True(t, NewExtent(3, 3).IsEmpty())
}

func TestLocate(t *testing.T) {
	input := "one\ntwo\nthree"

	pos := Locate(input, 0)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 1, pos.Column)

	pos = Locate(input, 5)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 2, pos.Column)

	pos = Locate(input, len(input))
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 6, pos.Column)

	// Columns count runes, not bytes.
	pos = Locate("héllo", 3)
	assert.Equal(t, 3, pos.Column)
}

func TestLine(t *testing.T) {
	input := "one\ntwo\nthree"
	assert.Equal(t, "one", Line(input, 1))
	assert.Equal(t, "two", Line(input, 5))
	assert.Equal(t, "three", Line(input, len(input)))
}

func TestCursorWalk(t *testing.T) {
	c := NewCursor("ab")

	r, size := c.Peek()
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, size)
	assert.Equal(t, 0, c.Offset())

	c.Next()
	c.Next()
	assert.True(t, c.AtEnd())
	assert.Equal(t, byte(0), c.PeekByte())

	_, size = c.Peek()
	assert.Equal(t, 0, size)
}

func TestCursorTakeWhile(t *testing.T) {
	c := NewCursor("aaabbb")
	ext := c.TakeWhile(func(b byte) bool { return b == 'a' })
	assert.Equal(t, NewExtent(0, 3), ext)
	assert.Equal(t, 3, c.Offset())
}

func TestCursorTakeString(t *testing.T) {
	c := NewCursor("r#ident")
	require.True(t, c.TakeString("r#"))
	assert.Equal(t, 2, c.Offset())
	assert.False(t, c.TakeString("zz"))
	assert.Equal(t, 2, c.Offset())
}

func TestCursorUnicode(t *testing.T) {
	c := NewCursor("λx")
	r, size := c.Next()
	assert.Equal(t, 'λ', r)
	assert.Equal(t, 2, size)
	assert.Equal(t, 2, c.Offset())
}

func TestIdentClasses(t *testing.T) {
	assert.True(t, IsIdentStart('a'))
	assert.True(t, IsIdentStart('_'))
	assert.True(t, IsIdentStart('λ'))
	assert.False(t, IsIdentStart('1'))
	assert.True(t, IsIdentContinue('1'))
	assert.False(t, IsIdentContinue('-'))
}
