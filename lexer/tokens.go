package lexer

import "github.com/oxparse-dev/oxparse/source"

// TokenType identifies a lexeme category. Every keyword and every distinct
// operator arity gets its own type so the parser never re-inspects text.
type TokenType int

const (
	// Special tokens
	EndOfFile TokenType = iota
	Illegal

	// Trivia (partitioned out of the token vector before parsing)
	Whitespace
	Comment
	CommentBlock
	DocComment
	DocCommentBlock

	// Identifier-shaped lexemes
	Ident
	Lifetime

	// Literals
	Character
	String
	StringRaw
	Byte
	ByteString
	ByteStringRaw
	Number

	// Keywords
	As
	Box
	Break
	Const
	Continue
	Crate
	Default
	Else
	Enum
	Extern
	Fn
	For
	If
	Impl
	In
	Let
	Loop
	Match
	Mod
	Move
	Mut
	Pub
	Ref
	Return
	SelfIdent
	SelfType
	Static
	Struct
	Trait
	Type
	Unsafe
	Use
	Where
	While

	// Punctuation and operators, one type per arity
	Ampersand
	DoubleAmpersand
	AmpersandEquals
	Asterisk
	AsteriskEquals
	At
	Bang
	Caret
	CaretEquals
	Colon
	DoubleColon
	Comma
	Dollar
	Equals
	DoubleEquals
	NotEquals
	GreaterThan
	GreaterThanOrEquals
	DoubleGreaterThan
	ShiftRightEquals
	LessThan
	LessThanOrEquals
	DoubleLessThan
	ShiftLeftEquals
	Minus
	MinusEquals
	Percent
	PercentEquals
	Period
	DoublePeriod
	DoublePeriodEquals
	TriplePeriod
	Pipe
	DoublePipe
	PipeEquals
	Plus
	PlusEquals
	Question
	Semicolon
	Slash
	SlashEquals
	ThinArrow
	ThickArrow
	Hash
	LeftParen
	RightParen
	LeftSquare
	RightSquare
	LeftCurly
	RightCurly
)

// NumberBase is the radix of a numeric literal.
type NumberBase int

const (
	Decimal NumberBase = iota
	Binary
	Octal
	Hexadecimal
)

// NumberParts records the sub-extents of a numeric literal. The digits are
// never converted; downstream tools resolve the extents against the input.
type NumberParts struct {
	Base       NumberBase
	Integral   source.Extent
	Fractional *source.Extent
	Exponent   *source.Extent
	Suffix     *source.Extent
}

// Token is a single lexeme. It owns its extent; the text is recovered from
// the original input on demand.
type Token struct {
	Type   TokenType
	Extent source.Extent

	// Number carries digit sub-extents for Number tokens, nil otherwise.
	Number *NumberParts
}

// Text resolves the token's extent against the input.
func (t Token) Text(input string) string {
	return t.Extent.Of(input)
}

// IsTrivia reports whether the token is whitespace or any comment form.
// Trivia is lexed like everything else but never reaches the grammar.
func (t Token) IsTrivia() bool {
	switch t.Type {
	case Whitespace, Comment, CommentBlock, DocComment, DocCommentBlock:
		return true
	}
	return false
}

// keywords maps reserved spellings to their token types. Keyword recognition
// takes precedence over generic identifiers, but only on exact match: a
// superstring like "form" stays an identifier. "union" is contextual and is
// deliberately absent: it lexes as an identifier and the parser matches its
// spelling at item position.
var keywords = map[string]TokenType{
	"as":       As,
	"box":      Box,
	"break":    Break,
	"const":    Const,
	"continue": Continue,
	"crate":    Crate,
	"default":  Default,
	"else":     Else,
	"enum":     Enum,
	"extern":   Extern,
	"fn":       Fn,
	"for":      For,
	"if":       If,
	"impl":     Impl,
	"in":       In,
	"let":      Let,
	"loop":     Loop,
	"match":    Match,
	"mod":      Mod,
	"move":     Move,
	"mut":      Mut,
	"pub":      Pub,
	"ref":      Ref,
	"return":   Return,
	"self":     SelfIdent,
	"Self":     SelfType,
	"static":   Static,
	"struct":   Struct,
	"trait":    Trait,
	"type":     Type,
	"unsafe":   Unsafe,
	"use":      Use,
	"where":    Where,
	"while":    While,
}

// String returns a stable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Symbol returns the literal spelling of a fixed-spelling token type, or ""
// for identifier/literal categories whose spelling varies.
func (t TokenType) Symbol() string {
	return tokenSymbols[t]
}

var tokenNames = map[TokenType]string{
	EndOfFile:           "EndOfFile",
	Illegal:             "Illegal",
	Whitespace:          "Whitespace",
	Comment:             "Comment",
	CommentBlock:        "CommentBlock",
	DocComment:          "DocComment",
	DocCommentBlock:     "DocCommentBlock",
	Ident:               "Ident",
	Lifetime:            "Lifetime",
	Character:           "Character",
	String:              "String",
	StringRaw:           "StringRaw",
	Byte:                "Byte",
	ByteString:          "ByteString",
	ByteStringRaw:       "ByteStringRaw",
	Number:              "Number",
	As:                  "As",
	Box:                 "Box",
	Break:               "Break",
	Const:               "Const",
	Continue:            "Continue",
	Crate:               "Crate",
	Default:             "Default",
	Else:                "Else",
	Enum:                "Enum",
	Extern:              "Extern",
	Fn:                  "Fn",
	For:                 "For",
	If:                  "If",
	Impl:                "Impl",
	In:                  "In",
	Let:                 "Let",
	Loop:                "Loop",
	Match:               "Match",
	Mod:                 "Mod",
	Move:                "Move",
	Mut:                 "Mut",
	Pub:                 "Pub",
	Ref:                 "Ref",
	Return:              "Return",
	SelfIdent:           "SelfIdent",
	SelfType:            "SelfType",
	Static:              "Static",
	Struct:              "Struct",
	Trait:               "Trait",
	Type:                "Type",
	Unsafe:              "Unsafe",
	Use:                 "Use",
	Where:               "Where",
	While:               "While",
	Ampersand:           "Ampersand",
	DoubleAmpersand:     "DoubleAmpersand",
	AmpersandEquals:     "AmpersandEquals",
	Asterisk:            "Asterisk",
	AsteriskEquals:      "AsteriskEquals",
	At:                  "At",
	Bang:                "Bang",
	Caret:               "Caret",
	CaretEquals:         "CaretEquals",
	Colon:               "Colon",
	DoubleColon:         "DoubleColon",
	Comma:               "Comma",
	Dollar:              "Dollar",
	Equals:              "Equals",
	DoubleEquals:        "DoubleEquals",
	NotEquals:           "NotEquals",
	GreaterThan:         "GreaterThan",
	GreaterThanOrEquals: "GreaterThanOrEquals",
	DoubleGreaterThan:   "DoubleGreaterThan",
	ShiftRightEquals:    "ShiftRightEquals",
	LessThan:            "LessThan",
	LessThanOrEquals:    "LessThanOrEquals",
	DoubleLessThan:      "DoubleLessThan",
	ShiftLeftEquals:     "ShiftLeftEquals",
	Minus:               "Minus",
	MinusEquals:         "MinusEquals",
	Percent:             "Percent",
	PercentEquals:       "PercentEquals",
	Period:              "Period",
	DoublePeriod:        "DoublePeriod",
	DoublePeriodEquals:  "DoublePeriodEquals",
	TriplePeriod:        "TriplePeriod",
	Pipe:                "Pipe",
	DoublePipe:          "DoublePipe",
	PipeEquals:          "PipeEquals",
	Plus:                "Plus",
	PlusEquals:          "PlusEquals",
	Question:            "Question",
	Semicolon:           "Semicolon",
	Slash:               "Slash",
	SlashEquals:         "SlashEquals",
	ThinArrow:           "ThinArrow",
	ThickArrow:          "ThickArrow",
	Hash:                "Hash",
	LeftParen:           "LeftParen",
	RightParen:          "RightParen",
	LeftSquare:          "LeftSquare",
	RightSquare:         "RightSquare",
	LeftCurly:           "LeftCurly",
	RightCurly:          "RightCurly",
}

var tokenSymbols = map[TokenType]string{
	As:                  "as",
	Box:                 "box",
	Break:               "break",
	Const:               "const",
	Continue:            "continue",
	Crate:               "crate",
	Default:             "default",
	Else:                "else",
	Enum:                "enum",
	Extern:              "extern",
	Fn:                  "fn",
	For:                 "for",
	If:                  "if",
	Impl:                "impl",
	In:                  "in",
	Let:                 "let",
	Loop:                "loop",
	Match:               "match",
	Mod:                 "mod",
	Move:                "move",
	Mut:                 "mut",
	Pub:                 "pub",
	Ref:                 "ref",
	Return:              "return",
	SelfIdent:           "self",
	SelfType:            "Self",
	Static:              "static",
	Struct:              "struct",
	Trait:               "trait",
	Type:                "type",
	Unsafe:              "unsafe",
	Use:                 "use",
	Where:               "where",
	While:               "while",
	Ampersand:           "&",
	DoubleAmpersand:     "&&",
	AmpersandEquals:     "&=",
	Asterisk:            "*",
	AsteriskEquals:      "*=",
	At:                  "@",
	Bang:                "!",
	Caret:               "^",
	CaretEquals:         "^=",
	Colon:               ":",
	DoubleColon:         "::",
	Comma:               ",",
	Dollar:              "$",
	Equals:              "=",
	DoubleEquals:        "==",
	NotEquals:           "!=",
	GreaterThan:         ">",
	GreaterThanOrEquals: ">=",
	DoubleGreaterThan:   ">>",
	ShiftRightEquals:    ">>=",
	LessThan:            "<",
	LessThanOrEquals:    "<=",
	DoubleLessThan:      "<<",
	ShiftLeftEquals:     "<<=",
	Minus:               "-",
	MinusEquals:         "-=",
	Percent:             "%",
	PercentEquals:       "%=",
	Period:              ".",
	DoublePeriod:        "..",
	DoublePeriodEquals:  "..=",
	TriplePeriod:        "...",
	Pipe:                "|",
	DoublePipe:          "||",
	PipeEquals:          "|=",
	Plus:                "+",
	PlusEquals:          "+=",
	Question:            "?",
	Semicolon:           ";",
	Slash:               "/",
	SlashEquals:         "/=",
	ThinArrow:           "->",
	ThickArrow:          "=>",
	Hash:                "#",
	LeftParen:           "(",
	RightParen:          ")",
	LeftSquare:          "[",
	RightSquare:         "]",
	LeftCurly:           "{",
	RightCurly:          "}",
}
