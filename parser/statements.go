package parser

import (
	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
)

// block parses { statements } and derives the trailing expression post-hoc:
// an expression-shaped final statement without a terminating semicolon is
// lifted into the block's expression slot.
func (p *parser) block(pt point) (*ast.Block, point, bool) {
	p.trace("block", pt)
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}

	return grouped(p, func() (*ast.Block, point, bool) {
		var stmts []ast.Statement
		var trailing ast.Expression

		for !p.peekIs(pt, lexer.RightCurly) {
			stmt, npt, ok := p.statement(pt)
			if !ok {
				return nil, spt, false
			}
			if !pt.before(npt) {
				return nil, spt, false
			}
			pt = npt

			// An expression statement without its semicolon either closes
			// the block as the trailing expression or, for the block-like
			// shapes, acts as an implicitly separated statement.
			if se, isExpr := stmt.(*ast.StatementExpression); isExpr && !se.Terminated {
				if p.peekIs(pt, lexer.RightCurly) {
					trailing = se.Expression
					break
				}
				if !se.Expression.MayTerminateStatement() {
					p.fail(pt, ExpectedToken(lexer.Semicolon))
					return nil, spt, false
				}
			}
			stmts = append(stmts, stmt)
		}

		_, pt, ok := p.expect(pt, lexer.RightCurly)
		if !ok {
			return nil, spt, false
		}
		return &ast.Block{
			Extent:     p.spanFrom(spt, pt),
			Statements: stmts,
			Expression: trailing,
		}, pt, true
	})
}

// statement parses one block entry: a bare semicolon, an item, or an
// expression with an optional terminating semicolon.
func (p *parser) statement(pt point) (ast.Statement, point, bool) {
	p.trace("statement", pt)
	spt := pt

	if tok, npt, ok := p.expect(pt, lexer.Semicolon); ok {
		return &ast.StatementEmpty{Extent: tok.Extent}, npt, true
	}

	// Outer attributes attach to whichever of item or expression follows.
	attrs, pt := zeroOrMore(pt, p.attribute)

	if p.startsItem(pt) {
		item, npt, ok := p.item(pt)
		if !ok {
			return nil, spt, false
		}
		wrapped := ast.Attributed[ast.Item]{
			Extent:     p.spanFrom(spt, npt),
			Attributes: attrs,
			Value:      item,
		}
		return &ast.StatementItem{
			Extent: p.spanFrom(spt, npt),
			Item:   wrapped,
		}, npt, true
	}

	expr, pt, ok := p.expression(pt)
	if !ok {
		p.fail(spt, ExpectedStatement)
		return nil, spt, false
	}

	terminated := false
	if _, npt, ok := p.expect(pt, lexer.Semicolon); ok {
		terminated = true
		pt = npt
	}

	return &ast.StatementExpression{
		Extent:     p.spanFrom(spt, pt),
		Attributes: attrs,
		Expression: expr,
		Terminated: terminated,
	}, pt, true
}

// startsItem reports whether the token at pt can only begin an item in
// statement position. Expression keywords (let, if, match, unsafe, ...) and
// macro calls stay on the expression path.
func (p *parser) startsItem(pt point) bool {
	switch tok := p.at(pt); tok.Type {
	case lexer.Const, lexer.Static, lexer.Enum, lexer.Struct,
		lexer.Trait, lexer.Impl, lexer.Fn, lexer.Type, lexer.Use,
		lexer.Mod, lexer.Extern, lexer.Pub:
		return true
	case lexer.Unsafe:
		// unsafe fn / unsafe trait / unsafe impl are items; unsafe { } is
		// an expression.
		switch p.at(point{idx: pt.idx + 1}).Type {
		case lexer.Fn, lexer.Trait, lexer.Impl, lexer.Extern:
			return true
		}
	case lexer.Ident:
		// union is contextual: it introduces an item only when a name
		// follows (union Name { ... }); union(x) and bare union stay on
		// the expression path.
		if tok.Text(p.input) == "union" && p.peekIs(point{idx: pt.idx + 1}, lexer.Ident) {
			return true
		}
	}
	return false
}
