package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxparse-dev/oxparse/lexer"
)

// parseErr parses input expecting failure and returns the parser error.
func parseErr(t *testing.T, input string) *Error {
	t.Helper()
	_, err := ParseFile(input)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	return perr
}

func TestErrorReportsFurthestPoint(t *testing.T) {
	// The failure is inside the function body, well past the first token.
	err := parseErr(t, "fn main() { let x = ; }")
	assert.Greater(t, err.Offset, 10)
	assert.NotEmpty(t, err.Expected)
}

func TestErrorExpectationsSortedAndDeduplicated(t *testing.T) {
	err := parseErr(t, "fn main() { let ; }")

	for i := 1; i < len(err.Expected); i++ {
		assert.Less(t, err.Expected[i-1], err.Expected[i],
			"expectations must be strictly increasing (sorted, deduplicated)")
	}
}

func TestErrorRendering(t *testing.T) {
	err := parseErr(t, "fn main() {\n    let x = ;\n}")
	rendered := err.Error()

	pos := err.Position()
	assert.Equal(t, 2, pos.Line)
	assert.Contains(t, rendered, "parse error at 2:")
	assert.Contains(t, rendered, "let x = ;")
	assert.Contains(t, rendered, "^")
	assert.Contains(t, rendered, "expected one of:")
}

func TestErrorCaretColumn(t *testing.T) {
	err := parseErr(t, "fn f() { let = 1; }")
	lines := strings.Split(err.Error(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	caretLine := lines[2]
	caret := strings.IndexByte(caretLine, '^')
	require.GreaterOrEqual(t, caret, 0)
	// The rendered source line is prefixed by two spaces; the caret sits
	// under the error column.
	assert.Equal(t, err.Position().Column+1, caret)
}

func TestKeywordSuggestion(t *testing.T) {
	err := parseErr(t, "fnn main() {}")
	assert.Contains(t, err.Error(), "did you mean `fn`?")
}

func TestNoSuggestionForDistantIdent(t *testing.T) {
	err := parseErr(t, "zzqqy main() {}")
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestTokenizerErrorsAreFatal(t *testing.T) {
	_, err := ParseFile(`fn main() { "unterminated }`)
	require.Error(t, err)
	var lexErr *lexer.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, lexer.UnterminatedString, lexErr.Kind)
}

func TestEmptyInputParses(t *testing.T) {
	file, err := ParseFile("")
	require.NoError(t, err)
	assert.Empty(t, file.Items)
}

func TestExpectationDescriptions(t *testing.T) {
	assert.Equal(t, "`fn`", ExpectedToken(lexer.Fn).Describe())
	assert.Equal(t, "`>>=`", ExpectedToken(lexer.ShiftRightEquals).Describe())
	assert.Equal(t, "an expression", ExpectedExpression.Describe())
	assert.Equal(t, "an identifier", ExpectedIdent.Describe())
	assert.Equal(t, "ExpectedFn", ExpectedToken(lexer.Fn).String())
	assert.Equal(t, "BlockNotAllowedHere", BlockNotAllowedHere.String())
}

func TestFailAggregationIsMonotonic(t *testing.T) {
	p := testParser(t, "a b c")

	p.fail(point{idx: 1}, ExpectedIdent)
	p.fail(point{idx: 0}, ExpectedExpression) // earlier: dropped
	p.fail(point{idx: 1}, ExpectedLifetime)   // same point: joined
	p.fail(point{idx: 1}, ExpectedIdent)      // duplicate: deduplicated

	err := p.failureError()
	assert.Equal(t, []Expectation{ExpectedIdent, ExpectedLifetime}, err.Expected)

	p.fail(point{idx: 2}, ExpectedNumber) // further: resets
	err = p.failureError()
	assert.Equal(t, []Expectation{ExpectedNumber}, err.Expected)
}

func TestPointOrdering(t *testing.T) {
	assert.True(t, point{idx: 1}.before(point{idx: 2}))
	assert.True(t, point{idx: 1}.before(point{idx: 1, sub: 1}))
	assert.True(t, point{idx: 1, sub: 1}.before(point{idx: 1, sub: 2}))
	assert.False(t, point{idx: 2}.before(point{idx: 1, sub: 5}))
	assert.False(t, point{idx: 1}.before(point{idx: 1}))
}
