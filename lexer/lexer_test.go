package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenize is a test helper that fails the test on lexer errors.
func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	return tokens
}

// types strips extents for shape-only assertions.
func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"fn main() {}",
		"let x: Vec<Vec<u8>> = vec![];",
		"a >>= b",
		"// comment\nfn f() {}\n",
		"/* nested /* block */ comment */",
		"'a 'static 'x'",
		"r#\"raw \"quoted\" string\"#",
		"b'x' b\"bytes\" br#\"raw\"#",
		"1_000.5e-3f64 0xFF_u8 0b1010 0o777",
		"impl<'a,T>Foo<'a,T>for Bar<'a,T>{}",
		"#![feature(sweet)]",
	}

	for _, input := range inputs {
		tokens := tokenize(t, input)

		var rebuilt string
		offset := 0
		for _, tok := range tokens {
			require.Equal(t, offset, tok.Extent.Start,
				"token extents must tile the input: %q", input)
			rebuilt += tok.Text(input)
			offset = tok.Extent.End
		}
		assert.Equal(t, input, rebuilt)
		assert.Equal(t, EndOfFile, tokens[len(tokens)-1].Type)
	}
}

func TestGreedyMaximalMunch(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{">>=", ShiftRightEquals},
		{"<<=", ShiftLeftEquals},
		{">>", DoubleGreaterThan},
		{"<<", DoubleLessThan},
		{">=", GreaterThanOrEquals},
		{"<=", LessThanOrEquals},
		{"&&", DoubleAmpersand},
		{"||", DoublePipe},
		{"==", DoubleEquals},
		{"!=", NotEquals},
		{"..=", DoublePeriodEquals},
		{"...", TriplePeriod},
		{"..", DoublePeriod},
		{"::", DoubleColon},
		{"->", ThinArrow},
		{"=>", ThickArrow},
		{"+=", PlusEquals},
		{"|=", PipeEquals},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			require.Len(t, tokens, 2, "one token plus EOF")
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, len(tt.input), tokens[0].Extent.End)
		})
	}
}

func TestKeywords(t *testing.T) {
	tokens := tokenize(t, "fn impl trait where match loop")
	assert.Equal(t,
		[]TokenType{Fn, Whitespace, Impl, Whitespace, Trait, Whitespace, Where, Whitespace, Match, Whitespace, Loop, EndOfFile},
		types(tokens))
}

func TestUnionIsNotReserved(t *testing.T) {
	// union is contextual; the tokenizer always produces an identifier and
	// the parser matches the spelling at item position.
	tokens := tokenize(t, "union")
	require.Len(t, tokens, 2)
	assert.Equal(t, Ident, tokens[0].Type)
}

func TestKeywordSuperstringIsIdent(t *testing.T) {
	// An identifier whose name merely starts with a keyword must not lex as
	// the keyword.
	for spelling := range keywords {
		input := spelling + "x"
		tokens := tokenize(t, input)
		require.Len(t, tokens, 2)
		assert.Equal(t, Ident, tokens[0].Type, "%q should be an identifier", input)
	}
}

func TestRawIdentifier(t *testing.T) {
	tokens := tokenize(t, "r#match")
	require.Len(t, tokens, 2)
	assert.Equal(t, Ident, tokens[0].Type)
	assert.Equal(t, "r#match", tokens[0].Text("r#match"))
}

func TestLifetimeVersusCharacter(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"'a", Lifetime},
		{"'static", Lifetime},
		{"'a'", Character},
		{"'\\n'", Character},
		{"'longer'", Character},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			require.NotEmpty(t, tokens)
			assert.Equal(t, tt.want, tokens[0].Type)
		})
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TokenType
	}{
		{"line", "// plain", Comment},
		{"doc line", "/// doc", DocComment},
		{"inner doc line", "//! doc", DocComment},
		{"four slashes", "//// not doc", Comment},
		{"block", "/* block */", CommentBlock},
		{"doc block", "/** doc */", DocCommentBlock},
		{"inner doc block", "/*! doc */", DocCommentBlock},
		{"nested block", "/* a /* b */ c */", CommentBlock},
		{"shebang", "#!/usr/bin/env runner", Comment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			require.NotEmpty(t, tokens)
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, len(tt.input), tokens[0].Extent.End)
		})
	}
}

func TestShebangAttributeIsNotAComment(t *testing.T) {
	// #![...] at the start of input is an inner attribute, not a shebang.
	tokens := tokenize(t, "#![feature(x)]")
	assert.Equal(t, Hash, tokens[0].Type)
	assert.Equal(t, Bang, tokens[1].Type)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{`"plain"`, String},
		{`"with \" escape"`, String},
		{`r"raw"`, StringRaw},
		{`r#"with "quotes""#`, StringRaw},
		{`r##"double "# hash"##`, StringRaw},
		{`b"bytes"`, ByteString},
		{`br"raw bytes"`, ByteStringRaw},
		{`br#"hash bytes"#`, ByteStringRaw},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, len(tt.input), tokens[0].Extent.End)
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"unterminated string", `"oops`, UnterminatedString},
		{"unterminated raw string", `r#"oops`, UnterminatedRawString},
		{"unterminated char", `'`, UnterminatedCharacter},
		{"unterminated byte string", `b"oops`, UnterminatedByteString},
		{"unterminated block comment", "/* oops", UnterminatedBlockComment},
		{"illegal character", "\x00", IllegalCharacter},
		{"empty binary literal", "0b", BadNumber},
		{"empty hex literal", "0x", BadNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.kind, lexErr.Kind)
		})
	}
}

func TestRelexIdempotence(t *testing.T) {
	// Tokenizing the bytes spanned by a self-contained slice of the input
	// yields the same token sequence as the original slice.
	input := "fn foo() { bar(1, 2) }"
	tokens := tokenize(t, input)

	slice := tokens[0].Extent
	slice.End = tokens[len(tokens)-2].Extent.End
	again := tokenize(t, slice.Of(input))

	require.Equal(t, len(tokens), len(again))
	for i := range again {
		assert.Equal(t, tokens[i].Type, again[i].Type)
	}
}
