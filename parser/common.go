package parser

import (
	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// ident matches a plain identifier.
func (p *parser) ident(pt point) (ast.Ident, point, bool) {
	if tok := p.at(pt); tok.Type == lexer.Ident {
		return ast.Ident{Extent: tok.Extent}, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedIdent)
	return ast.Ident{}, pt, false
}

// pathIdent matches an identifier or one of the keywords that may appear as
// a path segment (self, Self, crate).
func (p *parser) pathIdent(pt point) (ast.Ident, point, bool) {
	switch tok := p.at(pt); tok.Type {
	case lexer.Ident, lexer.SelfIdent, lexer.SelfType, lexer.Crate:
		return ast.Ident{Extent: tok.Extent}, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedIdent)
	return ast.Ident{}, pt, false
}

// lifetime matches a 'name token.
func (p *parser) lifetime(pt point) (ast.Lifetime, point, bool) {
	if tok := p.at(pt); tok.Type == lexer.Lifetime {
		return ast.Lifetime{Extent: tok.Extent}, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedLifetime)
	return ast.Lifetime{}, pt, false
}

// path parses a :: separated value path with optional turbofish arguments
// on each component.
func (p *parser) path(pt point) (ast.Path, point, bool) {
	spt := pt

	_, global, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.DoubleColon)
	})

	first, pt, ok := p.pathComponent(pt)
	if !ok {
		return ast.Path{}, spt, false
	}
	components := []ast.PathComponent{first}

	for {
		_, npt, ok := p.expect(pt, lexer.DoubleColon)
		if !ok {
			break
		}
		c, npt, ok := p.pathComponent(npt)
		if !ok {
			break
		}
		components = append(components, c)
		pt = npt
	}

	return ast.Path{
		Extent:     p.spanFrom(spt, pt),
		Global:     global,
		Components: components,
	}, pt, true
}

func (p *parser) pathComponent(pt point) (ast.PathComponent, point, bool) {
	spt := pt
	id, pt, ok := p.pathIdent(pt)
	if !ok {
		return ast.PathComponent{}, spt, false
	}

	// Turbofish binds to the component before it: foo::<T>.
	tf, pt := optionalPtr(pt, func(pt point) (ast.Turbofish, point, bool) {
		_, npt, ok := p.expect(pt, lexer.DoubleColon)
		if !ok {
			return ast.Turbofish{}, pt, false
		}
		return p.turbofish(npt)
	})

	return ast.PathComponent{
		Extent:    p.spanFrom(spt, pt),
		Ident:     id,
		Turbofish: tf,
	}, pt, true
}

// turbofish parses <'a, T, U> starting at the left angle.
func (p *parser) turbofish(pt point) (ast.Turbofish, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LessThan)
	if !ok {
		return ast.Turbofish{}, spt, false
	}

	lifetimes, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.lifetime)
	types, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.typ)

	_, pt, ok = p.expect(pt, lexer.GreaterThan)
	if !ok {
		return ast.Turbofish{}, spt, false
	}
	return ast.Turbofish{
		Extent:    p.spanFrom(spt, pt),
		Lifetimes: lifetimes.Values,
		Types:     types.Values,
	}, pt, true
}

// visibility parses pub with an optional parenthesized qualifier.
func (p *parser) visibility(pt point) (ast.Visibility, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Pub)
	if !ok {
		return ast.Visibility{}, spt, false
	}

	vis := ast.Visibility{Qualifier: ast.VisibilityPublic}
	if qual, npt, ok := p.visibilityQualifier(pt); ok {
		vis = qual
		pt = npt
	}
	vis.Extent = p.spanFrom(spt, pt)
	return vis, pt, true
}

func (p *parser) visibilityQualifier(pt point) (ast.Visibility, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftParen)
	if !ok {
		return ast.Visibility{}, spt, false
	}

	vis := ast.Visibility{}
	switch tok := p.at(pt); tok.Type {
	case lexer.Crate:
		vis.Qualifier = ast.VisibilityCrate
		pt = point{idx: pt.idx + 1}
	case lexer.SelfIdent:
		vis.Qualifier = ast.VisibilitySelf
		pt = point{idx: pt.idx + 1}
	default:
		path, npt, ok := p.path(pt)
		if !ok {
			return ast.Visibility{}, spt, false
		}
		vis.Qualifier = ast.VisibilityPath
		vis.Path = &path
		pt = npt
	}

	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return ast.Visibility{}, spt, false
	}
	return vis, pt, true
}

// attribute parses an outer #[...] attribute, capturing the body verbatim.
func (p *parser) attribute(pt point) (ast.Attribute, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Hash)
	if !ok {
		return ast.Attribute{}, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.LeftSquare)
	if !ok {
		return ast.Attribute{}, spt, false
	}
	text, pt, ok := p.parseNestedUntil(pt, lexer.LeftSquare, lexer.RightSquare)
	if !ok {
		return ast.Attribute{}, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.RightSquare)
	if !ok {
		return ast.Attribute{}, spt, false
	}
	return ast.Attribute{Extent: p.spanFrom(spt, pt), Text: text}, pt, true
}

// attributed wraps a rule with leading outer attributes. The wrapper extent
// begins at the first attribute or at the inner node when there are none.
func attributed[T ast.Node](p *parser, pt point, r rule[T]) (ast.Attributed[T], point, bool) {
	spt := pt
	attrs, pt := zeroOrMore(pt, p.attribute)
	v, pt, ok := r(pt)
	if !ok {
		return ast.Attributed[T]{}, spt, false
	}
	return ast.Attributed[T]{
		Extent:     p.spanFrom(spt, pt),
		Attributes: attrs,
		Value:      v,
	}, pt, true
}

// macroCall parses name ! [arg] followed by a bracketed verbatim body.
func (p *parser) macroCall(pt point) (*ast.MacroCall, point, bool) {
	spt := pt
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Bang)
	if !ok {
		return nil, spt, false
	}
	arg, pt := optionalPtr(pt, p.ident)

	var open, close lexer.TokenType
	var brace ast.MacroBrace
	switch p.at(pt).Type {
	case lexer.LeftParen:
		open, close, brace = lexer.LeftParen, lexer.RightParen, ast.MacroParen
	case lexer.LeftSquare:
		open, close, brace = lexer.LeftSquare, lexer.RightSquare, ast.MacroSquare
	case lexer.LeftCurly:
		open, close, brace = lexer.LeftCurly, lexer.RightCurly, ast.MacroCurly
	default:
		p.fail(pt, ExpectedToken(lexer.LeftParen))
		p.fail(pt, ExpectedToken(lexer.LeftSquare))
		p.fail(pt, ExpectedToken(lexer.LeftCurly))
		return nil, spt, false
	}

	_, pt, _ = p.expect(pt, open)
	body, pt, ok := p.parseNestedUntil(pt, open, close)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, close)
	if !ok {
		return nil, spt, false
	}

	return &ast.MacroCall{
		Extent: p.spanFrom(spt, pt),
		Name:   name,
		Arg:    arg,
		Brace:  brace,
		Body:   body,
	}, pt, true
}

// genericDeclarations parses the <'a, T: Bound = Default> parameter list of
// an item header. Lifetimes precede types.
func (p *parser) genericDeclarations(pt point) (*ast.GenericDeclarations, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LessThan)
	if !ok {
		return nil, spt, false
	}

	lifetimes, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, func(pt point) (ast.Attributed[ast.GenericDeclarationLifetime], point, bool) {
		return attributed(p, pt, p.genericDeclarationLifetime)
	})
	types, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, func(pt point) (ast.Attributed[ast.GenericDeclarationType], point, bool) {
		return attributed(p, pt, p.genericDeclarationType)
	})

	_, pt, ok = p.expect(pt, lexer.GreaterThan)
	if !ok {
		return nil, spt, false
	}
	return &ast.GenericDeclarations{
		Extent:    p.spanFrom(spt, pt),
		Lifetimes: lifetimes.Values,
		Types:     types.Values,
	}, pt, true
}

func (p *parser) genericDeclarationLifetime(pt point) (ast.GenericDeclarationLifetime, point, bool) {
	spt := pt
	name, pt, ok := p.lifetime(pt)
	if !ok {
		return ast.GenericDeclarationLifetime{}, spt, false
	}

	var bounds []ast.Lifetime
	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		t, npt, ok := oneOrMoreTailedValues(p, npt, lexer.Plus, p.lifetime)
		if !ok {
			return ast.GenericDeclarationLifetime{}, spt, false
		}
		bounds = t.Values
		pt = npt
	}

	return ast.GenericDeclarationLifetime{
		Extent: p.spanFrom(spt, pt),
		Name:   name,
		Bounds: bounds,
	}, pt, true
}

func (p *parser) genericDeclarationType(pt point) (ast.GenericDeclarationType, point, bool) {
	spt := pt
	name, pt, ok := p.ident(pt)
	if !ok {
		return ast.GenericDeclarationType{}, spt, false
	}

	var bounds []ast.TypeAdditional
	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		b, npt, ok := p.traitBounds(npt)
		if !ok {
			return ast.GenericDeclarationType{}, spt, false
		}
		bounds = b
		pt = npt
	}

	var def *ast.Type
	if _, npt, ok := p.expect(pt, lexer.Equals); ok {
		t, npt, ok := p.typ(npt)
		if !ok {
			return ast.GenericDeclarationType{}, spt, false
		}
		def = &t
		pt = npt
	}

	return ast.GenericDeclarationType{
		Extent:  p.spanFrom(spt, pt),
		Name:    name,
		Bounds:  bounds,
		Default: def,
	}, pt, true
}

// traitBounds parses a non-empty +-separated bound list.
func (p *parser) traitBounds(pt point) ([]ast.TypeAdditional, point, bool) {
	t, pt, ok := oneOrMoreTailedValues(p, pt, lexer.Plus, p.typeAdditional)
	if !ok {
		return nil, pt, false
	}
	return t.Values, pt, true
}

// whereClauses parses an optional where clause, returning nil when absent.
func (p *parser) whereClauses(pt point) ([]ast.WhereClause, point) {
	_, npt, ok := p.expect(pt, lexer.Where)
	if !ok {
		return nil, pt
	}
	t, npt, ok := oneOrMoreTailedValues(p, npt, lexer.Comma, p.whereClause)
	if !ok {
		return nil, pt
	}
	return t.Values, npt
}

func (p *parser) whereClause(pt point) (ast.WhereClause, point, bool) {
	return alternate[ast.WhereClause](pt,
		func(pt point) (ast.WhereClause, point, bool) {
			w, npt, ok := p.whereLifetime(pt)
			return w, npt, ok
		},
		func(pt point) (ast.WhereClause, point, bool) {
			w, npt, ok := p.whereType(pt)
			return w, npt, ok
		},
		func(pt point) (ast.WhereClause, point, bool) {
			w, npt, ok := p.whereEquality(pt)
			return w, npt, ok
		},
	)
}

func (p *parser) whereLifetime(pt point) (*ast.WhereLifetime, point, bool) {
	spt := pt
	name, pt, ok := p.lifetime(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Colon)
	if !ok {
		return nil, spt, false
	}
	bounds, pt, ok := oneOrMoreTailedValues(p, pt, lexer.Plus, p.lifetime)
	if !ok {
		return nil, spt, false
	}
	return &ast.WhereLifetime{
		Extent: p.spanFrom(spt, pt),
		Name:   name,
		Bounds: bounds.Values,
	}, pt, true
}

func (p *parser) whereType(pt point) (*ast.WhereType, point, bool) {
	spt := pt

	var lifetimes []ast.Lifetime
	if _, npt, ok := p.expect(pt, lexer.For); ok {
		ls, npt, ok := p.higherRankedLifetimes(npt)
		if !ok {
			return nil, spt, false
		}
		lifetimes = ls
		pt = npt
	}

	typ, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Colon)
	if !ok {
		return nil, spt, false
	}
	bounds, pt, ok := p.traitBounds(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.WhereType{
		Extent:    p.spanFrom(spt, pt),
		Lifetimes: lifetimes,
		Type:      typ,
		Bounds:    bounds,
	}, pt, true
}

func (p *parser) whereEquality(pt point) (*ast.WhereEquality, point, bool) {
	spt := pt
	left, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Equals)
	if !ok {
		return nil, spt, false
	}
	right, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.WhereEquality{
		Extent: p.spanFrom(spt, pt),
		Left:   left,
		Right:  right,
	}, pt, true
}

// higherRankedLifetimes parses the <'a, 'b> of a for<> quantifier, assuming
// the for keyword was already consumed.
func (p *parser) higherRankedLifetimes(pt point) ([]ast.Lifetime, point, bool) {
	_, pt, ok := p.expect(pt, lexer.LessThan)
	if !ok {
		return nil, pt, false
	}
	ls, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.lifetime)
	_, pt, ok = p.expect(pt, lexer.GreaterThan)
	if !ok {
		return nil, pt, false
	}
	return ls.Values, pt, true
}

// stringLiteralExtent matches a string literal token and returns its
// extent. Used for extern ABI strings.
func (p *parser) stringLiteralExtent(pt point) (source.Extent, point, bool) {
	switch tok := p.at(pt); tok.Type {
	case lexer.String, lexer.StringRaw:
		return tok.Extent, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedToken(lexer.String))
	return source.Extent{}, pt, false
}
