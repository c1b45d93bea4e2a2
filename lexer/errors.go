package lexer

import (
	"fmt"

	"github.com/oxparse-dev/oxparse/source"
)

// ErrorKind classifies tokenizer failures.
type ErrorKind int

const (
	IllegalCharacter ErrorKind = iota
	UnterminatedCharacter
	UnterminatedString
	UnterminatedRawString
	UnterminatedByte
	UnterminatedByteString
	UnterminatedBlockComment
	BadNumber
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalCharacter:
		return "illegal character"
	case UnterminatedCharacter:
		return "unterminated character literal"
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedRawString:
		return "unterminated raw string literal"
	case UnterminatedByte:
		return "unterminated byte literal"
	case UnterminatedByteString:
		return "unterminated byte string literal"
	case UnterminatedBlockComment:
		return "unterminated block comment"
	case BadNumber:
		return "invalid numeric literal"
	default:
		return "lex error"
	}
}

// LexError is a recoverable tokenizer failure at a byte offset. The parser
// treats it as fatal for the whole input.
type LexError struct {
	Offset int
	Kind   ErrorKind
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

// Position resolves the error offset against the input.
func (e *LexError) Position(input string) source.Position {
	return source.Locate(input, e.Offset)
}
