package lexer

import (
	"log/slog"
	"os"

	"github.com/oxparse-dev/oxparse/source"
)

// ASCII lookup tables for fast classification. Non-ASCII input falls back to
// the unicode tables in the source package.
var (
	isDigit      [128]bool
	isHexDigit   [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isSpace      [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isDigit[i] = '0' <= ch && ch <= '9'
		isHexDigit[i] = isDigit[i] || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
		isIdentStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
		isSpace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
	}
}

// operators holds the fixed-spelling lexemes grouped by leading byte, longest
// spelling first so the maximal munch falls out of the scan order.
var operators = map[byte][]struct {
	text string
	typ  TokenType
}{
	'<': {{"<<=", ShiftLeftEquals}, {"<=", LessThanOrEquals}, {"<<", DoubleLessThan}, {"<", LessThan}},
	'>': {{">>=", ShiftRightEquals}, {">=", GreaterThanOrEquals}, {">>", DoubleGreaterThan}, {">", GreaterThan}},
	'&': {{"&&", DoubleAmpersand}, {"&=", AmpersandEquals}, {"&", Ampersand}},
	'|': {{"||", DoublePipe}, {"|=", PipeEquals}, {"|", Pipe}},
	'=': {{"==", DoubleEquals}, {"=>", ThickArrow}, {"=", Equals}},
	'!': {{"!=", NotEquals}, {"!", Bang}},
	'+': {{"+=", PlusEquals}, {"+", Plus}},
	'-': {{"-=", MinusEquals}, {"->", ThinArrow}, {"-", Minus}},
	'*': {{"*=", AsteriskEquals}, {"*", Asterisk}},
	'/': {{"/=", SlashEquals}, {"/", Slash}},
	'%': {{"%=", PercentEquals}, {"%", Percent}},
	'^': {{"^=", CaretEquals}, {"^", Caret}},
	'.': {{"...", TriplePeriod}, {"..=", DoublePeriodEquals}, {"..", DoublePeriod}, {".", Period}},
	':': {{"::", DoubleColon}, {":", Colon}},
	'@': {{"@", At}},
	'#': {{"#", Hash}},
	'$': {{"$", Dollar}},
	'?': {{"?", Question}},
	';': {{";", Semicolon}},
	',': {{",", Comma}},
	'(': {{"(", LeftParen}},
	')': {{")", RightParen}},
	'[': {{"[", LeftSquare}},
	']': {{"]", RightSquare}},
	'{': {{"{", LeftCurly}},
	'}': {{"}", RightCurly}},
}

// Lexer produces a lazy, restartable token sequence over a single input.
type Lexer struct {
	cursor *source.Cursor
	done   bool

	logger *slog.Logger
	debug  bool
}

// Opt configures a Lexer.
type Opt func(*Lexer)

// WithDebug enables slog tracing of each produced token.
func WithDebug() Opt {
	return func(l *Lexer) {
		l.debug = true
	}
}

// New returns a lexer over the input. Debug tracing is also enabled when the
// OXPARSE_DEBUG environment variable is set.
func New(input string, opts ...Opt) *Lexer {
	l := &Lexer{cursor: source.NewCursor(input)}
	for _, opt := range opts {
		opt(l)
	}
	if os.Getenv("OXPARSE_DEBUG") != "" {
		l.debug = true
	}
	if l.debug {
		l.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
					return slog.Attr{}
				}
				return a
			},
		}))
	}
	return l
}

// Init resets the lexer over a new input, keeping its configuration.
func (l *Lexer) Init(input string) {
	l.cursor = source.NewCursor(input)
	l.done = false
}

// Tokenize runs a lexer to completion, returning every token including
// trivia, terminated by the EndOfFile sentinel. The concatenated extents
// reconstruct the input byte for byte.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EndOfFile {
			return tokens, nil
		}
	}
}

// Next produces the next token. After the EndOfFile sentinel has been
// returned once, further calls keep returning it.
func (l *Lexer) Next() (Token, error) {
	tok, err := l.next()
	if err != nil {
		return Token{}, err
	}
	if l.debug {
		l.logger.Debug("token",
			"type", tok.Type.String(),
			"start", tok.Extent.Start,
			"end", tok.Extent.End)
	}
	return tok, nil
}

func (l *Lexer) next() (Token, error) {
	c := l.cursor
	start := c.Offset()

	if c.AtEnd() {
		return Token{Type: EndOfFile, Extent: c.Since(start)}, nil
	}

	ch := c.PeekByte()
	switch {
	case ch < 128 && isSpace[ch]:
		c.TakeWhile(func(b byte) bool { return b < 128 && isSpace[b] })
		return Token{Type: Whitespace, Extent: c.Since(start)}, nil

	case ch == '/' && c.PeekByteAt(1) == '/':
		return l.lexLineComment(start), nil

	case ch == '/' && c.PeekByteAt(1) == '*':
		return l.lexBlockComment(start)

	case ch == '#' && start == 0 && c.PeekByteAt(1) == '!' && c.PeekByteAt(2) != '[':
		// Shebang line.
		c.TakeWhile(func(b byte) bool { return b != '\n' })
		return Token{Type: Comment, Extent: c.Since(start)}, nil

	case ch == 'r' && (c.PeekByteAt(1) == '"' || c.PeekByteAt(1) == '#'):
		if tok, ok, err := l.lexRawString(start, StringRaw, 1); ok {
			return tok, err
		}

	case ch == 'b':
		switch c.PeekByteAt(1) {
		case '\'':
			return l.lexCharacterLike(start, Byte, 1)
		case '"':
			return l.lexQuoted(start, ByteString, 1)
		case 'r':
			if c.PeekByteAt(2) == '"' || c.PeekByteAt(2) == '#' {
				if tok, ok, err := l.lexRawString(start, ByteStringRaw, 2); ok {
					return tok, err
				}
			}
		}

	case ch == '"':
		return l.lexQuoted(start, String, 0)

	case ch == '\'':
		return l.lexTickLeading(start)

	case ch < 128 && isDigit[ch]:
		return l.lexNumber(start)
	}

	if ch < 128 && isIdentStart[ch] {
		return l.lexIdent(start), nil
	}
	if ch >= 128 {
		if r, _ := c.Peek(); source.IsIdentStart(r) {
			return l.lexIdent(start), nil
		}
	}

	if ops, ok := operators[ch]; ok {
		for _, op := range ops {
			if c.TakeString(op.text) {
				return Token{Type: op.typ, Extent: c.Since(start)}, nil
			}
		}
	}

	return Token{}, &LexError{Offset: start, Kind: IllegalCharacter}
}

func (l *Lexer) lexLineComment(start int) Token {
	c := l.cursor
	c.TakeWhile(func(b byte) bool { return b != '\n' })
	ext := c.Since(start)
	text := ext.Of(c.Input())

	typ := Comment
	switch {
	case len(text) >= 3 && text[:3] == "//!":
		typ = DocComment
	case len(text) >= 3 && text[:3] == "///":
		// A run of four or more slashes is an ordinary comment.
		if len(text) == 3 || text[3] != '/' {
			typ = DocComment
		}
	}
	return Token{Type: typ, Extent: ext}
}

func (l *Lexer) lexBlockComment(start int) (Token, error) {
	c := l.cursor
	c.Advance(2)

	typ := CommentBlock
	if b := c.PeekByte(); b == '!' {
		typ = DocCommentBlock
	} else if b == '*' && c.PeekByteAt(1) != '*' && c.PeekByteAt(1) != '/' {
		typ = DocCommentBlock
	}

	depth := 1
	for depth > 0 {
		if c.AtEnd() {
			return Token{}, &LexError{Offset: start, Kind: UnterminatedBlockComment}
		}
		switch {
		case c.TakeString("/*"):
			depth++
		case c.TakeString("*/"):
			depth--
		default:
			c.Next()
		}
	}
	return Token{Type: typ, Extent: c.Since(start)}, nil
}

// lexTickLeading disambiguates character literals from lifetimes. A tick
// followed by identifier characters is a lifetime unless a closing tick
// immediately follows them.
func (l *Lexer) lexTickLeading(start int) (Token, error) {
	c := l.cursor
	c.Advance(1)

	if c.PeekByte() != '\\' {
		r, _ := c.Peek()
		if source.IsIdentStart(r) {
			identStart := c.Offset()
			for {
				r, _ := c.Peek()
				if !source.IsIdentContinue(r) {
					break
				}
				c.Next()
			}
			if c.PeekByte() == '\'' && c.Offset() > identStart {
				// 'a' is a character literal, not a one-letter lifetime.
				c.Advance(1)
				return Token{Type: Character, Extent: c.Since(start)}, nil
			}
			return Token{Type: Lifetime, Extent: c.Since(start)}, nil
		}
	}
	return l.finishCharacterLike(start, Character)
}

func (l *Lexer) lexCharacterLike(start int, typ TokenType, skip int) (Token, error) {
	l.cursor.Advance(skip + 1)
	return l.finishCharacterLike(start, typ)
}

// finishCharacterLike consumes the body and closing tick of a character or
// byte literal after the opening tick.
func (l *Lexer) finishCharacterLike(start int, typ TokenType) (Token, error) {
	c := l.cursor
	kind := UnterminatedCharacter
	if typ == Byte {
		kind = UnterminatedByte
	}
	if c.AtEnd() {
		return Token{}, &LexError{Offset: start, Kind: kind}
	}
	if c.PeekByte() == '\\' {
		c.Advance(1)
		if c.AtEnd() {
			return Token{}, &LexError{Offset: start, Kind: kind}
		}
		c.Next()
	} else {
		c.Next()
	}
	if c.PeekByte() != '\'' {
		return Token{}, &LexError{Offset: start, Kind: kind}
	}
	c.Advance(1)
	return Token{Type: typ, Extent: c.Since(start)}, nil
}

func (l *Lexer) lexQuoted(start int, typ TokenType, skip int) (Token, error) {
	c := l.cursor
	c.Advance(skip + 1)

	kind := UnterminatedString
	if typ == ByteString {
		kind = UnterminatedByteString
	}
	for {
		if c.AtEnd() {
			return Token{}, &LexError{Offset: start, Kind: kind}
		}
		switch c.PeekByte() {
		case '\\':
			c.Advance(1)
			if c.AtEnd() {
				return Token{}, &LexError{Offset: start, Kind: kind}
			}
			c.Next()
		case '"':
			c.Advance(1)
			return Token{Type: typ, Extent: c.Since(start)}, nil
		default:
			c.Next()
		}
	}
}

// lexRawString handles r"...", r#"..."#, and their byte forms, honoring a
// balanced hash count. The bool result is false when the r/br prefix turns
// out not to begin a raw string, so the caller can fall through to
// identifier lexing.
func (l *Lexer) lexRawString(start int, typ TokenType, skip int) (Token, bool, error) {
	c := l.cursor
	c.Advance(skip)

	hashes := 0
	for c.PeekByte() == '#' {
		hashes++
		c.Advance(1)
	}
	if c.PeekByte() != '"' {
		// Rewind: this was an identifier like r#foo (raw identifier).
		c.Advance(start - c.Offset())
		return Token{}, false, nil
	}
	c.Advance(1)

	kind := UnterminatedRawString
	if typ == ByteStringRaw {
		kind = UnterminatedByteString
	}
	closing := "\""
	for i := 0; i < hashes; i++ {
		closing += "#"
	}
	for {
		if c.AtEnd() {
			return Token{}, true, &LexError{Offset: start, Kind: kind}
		}
		if c.PeekByte() == '"' && c.TakeString(closing) {
			return Token{Type: typ, Extent: c.Since(start)}, true, nil
		}
		c.Next()
	}
}

func (l *Lexer) lexIdent(start int) Token {
	c := l.cursor

	// Raw identifier prefix: the r# is part of the extent but not of the
	// semantic spelling.
	c.TakeString("r#")
	for {
		r, _ := c.Peek()
		if !source.IsIdentContinue(r) {
			break
		}
		c.Next()
	}
	ext := c.Since(start)
	text := ext.Of(c.Input())

	if typ, ok := keywords[text]; ok {
		return Token{Type: typ, Extent: ext}
	}
	return Token{Type: Ident, Extent: ext}
}

func (l *Lexer) lexNumber(start int) (Token, error) {
	c := l.cursor
	parts := &NumberParts{Base: Decimal}

	digit := func(b byte) bool { return b < 128 && isDigit[b] || b == '_' }
	if c.PeekByte() == '0' {
		switch c.PeekByteAt(1) {
		case 'b', 'B':
			parts.Base = Binary
			digit = func(b byte) bool { return b == '0' || b == '1' || b == '_' }
		case 'o', 'O':
			parts.Base = Octal
			digit = func(b byte) bool { return '0' <= b && b <= '7' || b == '_' }
		case 'x', 'X':
			parts.Base = Hexadecimal
			digit = func(b byte) bool { return b < 128 && isHexDigit[b] || b == '_' }
		}
		if parts.Base != Decimal {
			c.Advance(2)
		}
	}

	parts.Integral = c.TakeWhile(digit)
	if parts.Base != Decimal && parts.Integral.IsEmpty() {
		return Token{}, &LexError{Offset: start, Kind: BadNumber}
	}

	// Fractional tail only when a digit follows the dot: 1..2 is a range and
	// 1.foo is a field access.
	if parts.Base == Decimal && c.PeekByte() == '.' {
		if nxt := c.PeekByteAt(1); nxt < 128 && isDigit[nxt] {
			c.Advance(1)
			frac := c.TakeWhile(digit)
			parts.Fractional = &frac
		}
	}

	// Exponent: e/E with optional sign and at least one digit. A bare e runs
	// into the type suffix instead.
	if parts.Base == Decimal && (c.PeekByte() == 'e' || c.PeekByte() == 'E') {
		ahead := 1
		if c.PeekByteAt(1) == '+' || c.PeekByteAt(1) == '-' {
			ahead = 2
		}
		if d := c.PeekByteAt(ahead); d < 128 && isDigit[d] {
			expStart := c.Offset()
			c.Advance(ahead)
			c.TakeWhile(digit)
			exp := c.Since(expStart)
			parts.Exponent = &exp
		}
	}

	if b := c.PeekByte(); b < 128 && isIdentStart[b] {
		suffix := c.TakeWhile(func(b byte) bool { return b < 128 && isIdentPart[b] })
		parts.Suffix = &suffix
	}

	return Token{Type: Number, Extent: c.Since(start), Number: parts}, nil
}
