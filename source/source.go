// Package source holds the byte-extent primitives shared by the tokenizer,
// parser, and syntax tree: the Extent range type, diagnostic position
// resolution, and the rune-aware cursor the tokenizer walks.
package source

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extent is a half-open [Start, End) byte range into the original input.
// Every token and every syntax node carries one.
type Extent struct {
	Start int
	End   int
}

// NewExtent returns the extent [start, end).
func NewExtent(start, end int) Extent {
	return Extent{Start: start, End: end}
}

// Len returns the number of bytes the extent covers.
func (e Extent) Len() int {
	return e.End - e.Start
}

// IsEmpty reports whether the extent covers no bytes.
func (e Extent) IsEmpty() bool {
	return e.Start >= e.End
}

// Contains reports whether other lies entirely inside e.
func (e Extent) Contains(other Extent) bool {
	return e.Start <= other.Start && other.End <= e.End
}

// Of resolves the extent against the original input.
func (e Extent) Of(input string) string {
	return input[e.Start:e.End]
}

func (e Extent) String() string {
	return fmt.Sprintf("(%d, %d)", e.Start, e.End)
}

// Position is a resolved source location, 1-based for both line and column,
// used only when rendering diagnostics.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Locate resolves a byte offset against the input into a Position.
// Column counts runes, not bytes, so a caret rendered under the line is
// stable for multi-byte input.
func Locate(input string, offset int) Position {
	if offset > len(input) {
		offset = len(input)
	}
	line := 1 + strings.Count(input[:offset], "\n")
	lineStart := strings.LastIndexByte(input[:offset], '\n') + 1
	column := 1 + utf8.RuneCountInString(input[lineStart:offset])
	return Position{Line: line, Column: column, Offset: offset}
}

// Line returns the full text of the line containing offset, without its
// trailing newline.
func Line(input string, offset int) string {
	if offset > len(input) {
		offset = len(input)
	}
	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := strings.IndexByte(input[start:], '\n')
	if end < 0 {
		return input[start:]
	}
	return input[start : start+end]
}

// Cursor is a rune-aware byte cursor over the input. The tokenizer advances
// it left to right, rewinding only to re-lex a raw identifier; extents are
// produced from saved offsets.
type Cursor struct {
	input  string
	offset int
}

// NewCursor returns a cursor positioned at the start of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input}
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// Input returns the full input the cursor walks.
func (c *Cursor) Input() string {
	return c.input
}

// AtEnd reports whether the cursor has consumed the entire input.
func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.input)
}

// Peek decodes the rune at the cursor without advancing. At end of input it
// returns utf8.RuneError with size 0.
func (c *Cursor) Peek() (rune, int) {
	if c.AtEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.input[c.offset:])
}

// PeekByte returns the byte at the cursor, or 0 at end of input. Fast path
// for the ASCII-heavy tokenizer loops.
func (c *Cursor) PeekByte() byte {
	if c.AtEnd() {
		return 0
	}
	return c.input[c.offset]
}

// PeekByteAt returns the byte at the given lookahead distance, or 0 past the
// end of input.
func (c *Cursor) PeekByteAt(ahead int) byte {
	if c.offset+ahead >= len(c.input) {
		return 0
	}
	return c.input[c.offset+ahead]
}

// Next decodes and consumes the rune at the cursor.
func (c *Cursor) Next() (rune, int) {
	r, size := c.Peek()
	c.offset += size
	return r, size
}

// Advance moves the cursor by n bytes (backward when n is negative),
// clamped at the end of input. The caller is responsible for keeping the
// cursor on a rune boundary.
func (c *Cursor) Advance(n int) {
	c.offset += n
	if c.offset > len(c.input) {
		c.offset = len(c.input)
	}
}

// TakeString consumes the literal s if the input continues with it.
func (c *Cursor) TakeString(s string) bool {
	if strings.HasPrefix(c.input[c.offset:], s) {
		c.offset += len(s)
		return true
	}
	return false
}

// TakeWhile consumes the longest run of bytes satisfying pred and returns
// its extent.
func (c *Cursor) TakeWhile(pred func(byte) bool) Extent {
	start := c.offset
	for !c.AtEnd() && pred(c.input[c.offset]) {
		c.offset++
	}
	return Extent{Start: start, End: c.offset}
}

// Since returns the extent from start to the current offset.
func (c *Cursor) Since(start int) Extent {
	return Extent{Start: start, End: c.offset}
}

// IsIdentStart reports whether r can begin an identifier. The source
// language uses XID_Start plus the leading-underscore allowance; the unicode
// package's derived classes are the closest stdlib match.
func IsIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentContinue reports whether r can continue an identifier.
func IsIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
