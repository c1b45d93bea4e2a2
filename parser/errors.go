package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// Expectation is one entry of the closed expectation vocabulary: a token the
// parser would have accepted, or one of the composite categories below.
// Token-shaped expectations mirror the token type codes; composites start
// above them.
type Expectation int

const (
	ExpectedExpression Expectation = iota + 1000
	ExpectedIdent
	ExpectedLifetime
	ExpectedNumber
	ExpectedType
	ExpectedPattern
	ExpectedItem
	ExpectedStatement
	BlockNotAllowedHere
)

// ExpectedToken is the expectation for one concrete token type.
func ExpectedToken(t lexer.TokenType) Expectation {
	return Expectation(t)
}

func (e Expectation) String() string {
	switch e {
	case ExpectedExpression:
		return "ExpectedExpression"
	case ExpectedIdent:
		return "ExpectedIdent"
	case ExpectedLifetime:
		return "ExpectedLifetime"
	case ExpectedNumber:
		return "ExpectedNumber"
	case ExpectedType:
		return "ExpectedType"
	case ExpectedPattern:
		return "ExpectedPattern"
	case ExpectedItem:
		return "ExpectedItem"
	case ExpectedStatement:
		return "ExpectedStatement"
	case BlockNotAllowedHere:
		return "BlockNotAllowedHere"
	}
	return "Expected" + lexer.TokenType(e).String()
}

// Describe renders the expectation for a human: the literal spelling for
// fixed tokens, a category name otherwise.
func (e Expectation) Describe() string {
	if e < 1000 {
		if sym := lexer.TokenType(e).Symbol(); sym != "" {
			return fmt.Sprintf("`%s`", sym)
		}
		switch lexer.TokenType(e) {
		case lexer.Ident:
			return "an identifier"
		case lexer.Lifetime:
			return "a lifetime"
		case lexer.Number:
			return "a number"
		case lexer.Character:
			return "a character literal"
		case lexer.String, lexer.StringRaw:
			return "a string literal"
		case lexer.Byte:
			return "a byte literal"
		case lexer.ByteString, lexer.ByteStringRaw:
			return "a byte string literal"
		case lexer.EndOfFile:
			return "end of input"
		}
		return lexer.TokenType(e).String()
	}
	switch e {
	case ExpectedExpression:
		return "an expression"
	case ExpectedIdent:
		return "an identifier"
	case ExpectedLifetime:
		return "a lifetime"
	case ExpectedNumber:
		return "a number"
	case ExpectedType:
		return "a type"
	case ExpectedPattern:
		return "a pattern"
	case ExpectedItem:
		return "an item"
	case ExpectedStatement:
		return "a statement"
	case BlockNotAllowedHere:
		return "no block in this position"
	}
	return e.String()
}

// fail records a recoverable failure. The aggregate is monotonic: a failure
// beyond the furthest point seen so far resets the set, a failure at the
// same point joins it, an earlier failure is dropped.
func (p *parser) fail(pt point, ex Expectation) {
	if p.failure.before(pt) {
		p.failure = pt
		clear(p.expected)
	} else if pt.before(p.failure) {
		return
	}
	p.expected[ex] = struct{}{}
}

// failureError materializes the aggregate into the surfaced error.
func (p *parser) failureError() *Error {
	expected := make([]Expectation, 0, len(p.expected))
	for ex := range p.expected {
		expected = append(expected, ex)
	}
	sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })

	tok := p.tokens[p.failure.idx]
	offset := tok.Extent.Start + p.failure.sub
	return &Error{
		Input:    p.input,
		Offset:   offset,
		Expected: expected,
		at:       tok,
	}
}

// Error is a failed parse: the furthest byte offset reached and the sorted,
// deduplicated set of expectations recorded there.
type Error struct {
	Input    string
	Offset   int
	Expected []Expectation

	at lexer.Token
}

// Error renders the diagnostic: a location line, the offending source line,
// a caret line under the error column, and the sorted enumeration of
// expectations. When the offending
// token is an identifier that closely resembles a keyword, a suggestion line
// is appended.
func (e *Error) Error() string {
	pos := source.Locate(e.Input, e.Offset)
	line := source.Line(e.Input, e.Offset)

	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d\n", pos.Line, pos.Column)
	fmt.Fprintf(&b, "  %s\n", line)
	fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", pos.Column-1))

	descs := make([]string, len(e.Expected))
	for i, ex := range e.Expected {
		descs[i] = ex.Describe()
	}
	fmt.Fprintf(&b, "expected one of: %s", strings.Join(descs, ", "))

	if s := e.suggestion(); s != "" {
		fmt.Fprintf(&b, "\ndid you mean `%s`?", s)
	}
	return b.String()
}

// Position resolves the error offset to a line and column.
func (e *Error) Position() source.Position {
	return source.Locate(e.Input, e.Offset)
}

// keywordSpellings is the suggestion corpus for near-miss identifiers.
var keywordSpellings = []string{
	"as", "box", "break", "const", "continue", "crate", "default", "else",
	"enum", "extern", "fn", "for", "if", "impl", "in", "let", "loop",
	"match", "mod", "move", "mut", "pub", "ref", "return", "self", "Self",
	"static", "struct", "trait", "type", "unsafe", "use", "where",
	"while",
}

func (e *Error) suggestion() string {
	if e.at.Type != lexer.Ident {
		return ""
	}
	text := e.at.Text(e.Input)
	best, bestDist := "", 3
	for _, kw := range keywordSpellings {
		if d := fuzzy.LevenshteinDistance(text, kw); d < bestDist {
			best, bestDist = kw, d
		}
	}
	if best == text {
		return ""
	}
	return best
}
