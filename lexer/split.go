package lexer

import "github.com/oxparse-dev/oxparse/source"

// SplitPositions returns how many in-token positions the splitter handles
// for this token type, or zero when the token cannot be split.
func SplitPositions(typ TokenType) int {
	switch typ {
	case ShiftRightEquals:
		return 2
	case DoubleLessThan, DoubleGreaterThan, GreaterThanOrEquals, DoublePipe, DoubleAmpersand:
		return 1
	}
	return 0
}

// Split decomposes a multi-symbol token at in-token position n into a
// prefix/suffix pair covering adjacent slices of the original extent. It is
// pure: the token vector is never mutated, callers hold the pieces by value.
//
//	<<  0 -> <  <
//	>>  0 -> >  >
//	>>= 0 -> >  >=
//	>>= 1 -> >  =
//	>=  0 -> >  =
//	||  0 -> |  |
//	&&  0 -> &  &
//
// Unlisted (token, n) combinations fail.
func Split(tok Token, n int) (prefix, suffix Token, ok bool) {
	var prefixType, suffixType TokenType
	switch {
	case tok.Type == DoubleLessThan && n == 0:
		prefixType, suffixType = LessThan, LessThan
	case tok.Type == DoubleGreaterThan && n == 0:
		prefixType, suffixType = GreaterThan, GreaterThan
	case tok.Type == ShiftRightEquals && n == 0:
		prefixType, suffixType = GreaterThan, GreaterThanOrEquals
	case tok.Type == ShiftRightEquals && n == 1:
		prefixType, suffixType = GreaterThan, Equals
	case tok.Type == GreaterThanOrEquals && n == 0:
		prefixType, suffixType = GreaterThan, Equals
	case tok.Type == DoublePipe && n == 0:
		prefixType, suffixType = Pipe, Pipe
	case tok.Type == DoubleAmpersand && n == 0:
		prefixType, suffixType = Ampersand, Ampersand
	default:
		return Token{}, Token{}, false
	}

	cut := tok.Extent.Start + n + 1
	prefix = Token{Type: prefixType, Extent: source.NewExtent(tok.Extent.Start+n, cut)}
	suffix = Token{Type: suffixType, Extent: source.NewExtent(cut, tok.Extent.End)}
	return prefix, suffix, true
}
