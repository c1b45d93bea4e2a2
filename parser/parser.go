package parser

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// Option configures a parse.
type Option func(*config)

type config struct {
	debug     bool
	telemetry *Telemetry
}

// WithDebug enables slog rule tracing. The OXPARSE_DEBUG environment
// variable enables it as well.
func WithDebug() Option {
	return func(c *config) {
		c.debug = true
	}
}

// WithTelemetry records timing and counts of the parse into t.
func WithTelemetry(t *Telemetry) Option {
	return func(c *config) {
		c.telemetry = t
	}
}

// Telemetry holds parse performance metrics.
type Telemetry struct {
	LexTime    time.Duration
	ParseTime  time.Duration
	TotalTime  time.Duration
	TokenCount int
	ItemCount  int
}

// ProgressError reports a successful sub-parse that failed to advance the
// parse point. It is a programming error in the grammar, not a property of
// the input.
type ProgressError struct {
	Offset int
}

func (e *ProgressError) Error() string {
	return fmt.Sprintf("parser made no progress at offset %d", e.Offset)
}

// parser is the state threaded through every grammar rule. Backtracking is
// by point value-copy; the only mutation that survives a failed alternative
// is the monotonic error aggregate.
type parser struct {
	input  string
	tokens []lexer.Token

	failure  point
	expected map[Expectation]struct{}

	// noStructLit disallows Path { ... } struct literals while parsing a
	// condition head, where the brace belongs to the following block.
	noStructLit bool

	debug  bool
	logger *slog.Logger
	depth  int
}

// ParseFile parses a whole input into a File. On failure it returns a
// *lexer.LexError, a *parser.Error, or a *ProgressError.
func ParseFile(input string, opts ...Option) (*ast.File, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if os.Getenv("OXPARSE_DEBUG") != "" {
		cfg.debug = true
	}

	startTotal := time.Now()
	raw, err := lexer.Tokenize(input)
	lexTime := time.Since(startTotal)
	if err != nil {
		return nil, err
	}

	// Partition trivia out before the grammar runs; the EndOfFile sentinel
	// stays so every point indexes a real token.
	tokens := make([]lexer.Token, 0, len(raw))
	for _, tok := range raw {
		if !tok.IsTrivia() {
			tokens = append(tokens, tok)
		}
	}

	p := &parser{
		input:    input,
		tokens:   tokens,
		expected: make(map[Expectation]struct{}),
		debug:    cfg.debug,
	}
	if p.debug {
		p.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
					return slog.Attr{}
				}
				return a
			},
		}))
	}

	startParse := time.Now()
	file, err := p.file()
	if cfg.telemetry != nil {
		cfg.telemetry.LexTime = lexTime
		cfg.telemetry.ParseTime = time.Since(startParse)
		cfg.telemetry.TotalTime = time.Since(startTotal)
		cfg.telemetry.TokenCount = len(tokens)
		if file != nil {
			cfg.telemetry.ItemCount = len(file.Items)
		}
	}
	return file, err
}

// file iterates attributed items to end-of-input, asserting progress after
// every success.
func (p *parser) file() (*ast.File, error) {
	pt := point{}
	var items []ast.Attributed[ast.Item]
	for p.at(pt).Type != lexer.EndOfFile {
		item, npt, ok := p.attributedItem(pt)
		if !ok {
			return nil, p.failureError()
		}
		if !pt.before(npt) {
			return nil, &ProgressError{Offset: p.tokens[pt.idx].Extent.Start}
		}
		items = append(items, item)
		pt = npt
	}
	return &ast.File{
		Extent: source.NewExtent(0, len(p.input)),
		Items:  items,
	}, nil
}

// trace logs rule entry when debug is on; the hot path pays one branch.
func (p *parser) trace(name string, pt point) {
	if !p.debug {
		return
	}
	p.logger.Debug("rule",
		"name", name,
		"token", pt.idx,
		"sub", pt.sub,
		"depth", p.depth)
}

// conditionCtx runs f with struct literals disallowed, restoring the previous
// state on exit. Used for if/while/for/match heads.
func conditionCtx[T any](p *parser, f func() (T, point, bool)) (T, point, bool) {
	prev := p.noStructLit
	p.noStructLit = true
	v, pt, ok := f()
	p.noStructLit = prev
	return v, pt, ok
}

// grouped runs f with struct literals allowed again, for parenthesized or
// bracketed subexpressions inside a condition.
func grouped[T any](p *parser, f func() (T, point, bool)) (T, point, bool) {
	prev := p.noStructLit
	p.noStructLit = false
	v, pt, ok := f()
	p.noStructLit = prev
	return v, pt, ok
}
