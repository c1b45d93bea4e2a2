package parser

import (
	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// typ parses a type: a kind optionally followed by +-separated additional
// bounds.
func (p *parser) typ(pt point) (ast.Type, point, bool) {
	p.trace("type", pt)
	spt := pt

	kind, pt, ok := p.typeKind(pt)
	if !ok {
		p.fail(spt, ExpectedType)
		return ast.Type{}, spt, false
	}

	var additional []ast.TypeAdditional
	for {
		_, npt, ok := p.expect(pt, lexer.Plus)
		if !ok {
			break
		}
		a, npt, ok := p.typeAdditional(npt)
		if !ok {
			break
		}
		additional = append(additional, a)
		pt = npt
	}

	return ast.Type{
		Extent:     p.spanFrom(spt, pt),
		Kind:       kind,
		Additional: additional,
	}, pt, true
}

func (p *parser) typeKind(pt point) (ast.TypeKind, point, bool) {
	return alternate[ast.TypeKind](pt,
		asTypeKind(p.typeUninhabited),
		asTypeKind(p.typeTuple),
		asTypeKind(p.typeReference),
		asTypeKind(p.typePointer),
		asTypeKind(p.typeArrayOrSlice),
		asTypeKind(p.typeFunction),
		asTypeKind(p.typeHigherRanked),
		asTypeKind(p.typeImplTrait),
		asTypeKind(p.typeDisambiguation),
		asTypeKind(p.typeNamedKind),
	)
}

// asTypeKind adapts a concrete kind rule to the TypeKind interface.
func asTypeKind[T ast.TypeKind](r rule[T]) rule[ast.TypeKind] {
	return func(pt point) (ast.TypeKind, point, bool) {
		v, npt, ok := r(pt)
		if !ok {
			return nil, pt, false
		}
		return v, npt, true
	}
}

// typeAdditional parses one +-separated bound: a lifetime or a possibly
// relaxed trait.
func (p *parser) typeAdditional(pt point) (ast.TypeAdditional, point, bool) {
	spt := pt

	if lt, npt, ok := p.lifetime(pt); ok {
		return &ast.AdditionalLifetime{Extent: p.spanFrom(spt, npt), Lifetime: lt}, npt, true
	}

	_, relaxed, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Question)
	})

	kind, pt, ok := alternate[ast.TypeKind](pt,
		asTypeKind(p.typeHigherRanked),
		asTypeKind(p.typeNamedKind),
	)
	if !ok {
		return nil, spt, false
	}
	return &ast.AdditionalTrait{
		Extent:  p.spanFrom(spt, pt),
		Relaxed: relaxed,
		Type:    kind,
	}, pt, true
}

func (p *parser) typeUninhabited(pt point) (*ast.TypeUninhabited, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Bang)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeUninhabited{Extent: p.spanFrom(spt, pt)}, pt, true
}

// typeTuple parses (T, U, ...); a single parenthesized type is represented
// as a one-element tuple.
func (p *parser) typeTuple(pt point) (*ast.TypeTuple, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftParen)
	if !ok {
		return nil, spt, false
	}
	elems, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.typ)
	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeTuple{
		Extent: p.spanFrom(spt, pt),
		Elems:  elems.Values,
	}, pt, true
}

// typeReference parses &['a] [mut] T. A leading && from the tokenizer is
// split, so &&T is a reference to a reference.
func (p *parser) typeReference(pt point) (*ast.TypeReference, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Ampersand)
	if !ok {
		return nil, spt, false
	}
	lt, pt := optionalPtr(pt, p.lifetime)
	_, mutable, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Mut)
	})
	inner, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeReference{
		Extent:   p.spanFrom(spt, pt),
		Lifetime: lt,
		Mutable:  mutable,
		Inner:    &inner,
	}, pt, true
}

func (p *parser) typePointer(pt point) (*ast.TypePointer, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Asterisk)
	if !ok {
		return nil, spt, false
	}

	mutable := false
	switch p.at(pt).Type {
	case lexer.Mut:
		mutable = true
		pt = point{idx: pt.idx + 1}
	case lexer.Const:
		pt = point{idx: pt.idx + 1}
	default:
		p.fail(pt, ExpectedToken(lexer.Const))
		p.fail(pt, ExpectedToken(lexer.Mut))
		return nil, spt, false
	}

	inner, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypePointer{
		Extent:  p.spanFrom(spt, pt),
		Mutable: mutable,
		Inner:   &inner,
	}, pt, true
}

// typeArrayOrSlice parses [T] and [T; count].
func (p *parser) typeArrayOrSlice(pt point) (ast.TypeKind, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftSquare)
	if !ok {
		return nil, spt, false
	}
	elem, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}

	if _, apt, ok := p.expect(pt, lexer.Semicolon); ok {
		count, apt, ok := grouped(p, func() (ast.Expression, point, bool) {
			return p.expression(apt)
		})
		if !ok {
			return nil, spt, false
		}
		_, apt, ok = p.expect(apt, lexer.RightSquare)
		if !ok {
			return nil, spt, false
		}
		return &ast.TypeArray{
			Extent: p.spanFrom(spt, apt),
			Elem:   &elem,
			Count:  count,
		}, apt, true
	}

	_, pt, ok = p.expect(pt, lexer.RightSquare)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeSlice{
		Extent: p.spanFrom(spt, pt),
		Elem:   &elem,
	}, pt, true
}

// typeFunction parses [unsafe] [extern "abi"] fn(args[, ...]) [-> R].
func (p *parser) typeFunction(pt point) (*ast.TypeFunction, point, bool) {
	spt := pt

	_, unsafe, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Unsafe)
	})

	var abi *source.Extent
	if _, npt, ok := p.expect(pt, lexer.Extern); ok {
		pt = npt
		if ext, npt, ok := p.stringLiteralExtent(pt); ok {
			abi = &ext
			pt = npt
		}
	}

	_, pt, ok := p.expect(pt, lexer.Fn)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.LeftParen)
	if !ok {
		return nil, spt, false
	}

	args, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.typeFunctionArgument)

	variadic := false
	if _, npt, ok := p.expect(pt, lexer.TriplePeriod); ok {
		variadic = true
		pt = npt
	}

	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return nil, spt, false
	}

	var ret *ast.Type
	if _, npt, ok := p.expect(pt, lexer.ThinArrow); ok {
		r, npt, ok := p.typ(npt)
		if !ok {
			return nil, spt, false
		}
		ret = &r
		pt = npt
	}

	return &ast.TypeFunction{
		Extent:    p.spanFrom(spt, pt),
		Unsafe:    unsafe,
		Abi:       abi,
		Arguments: args.Values,
		Variadic:  variadic,
		Return:    ret,
	}, pt, true
}

// typeFunctionArgument accepts `name: T` and bare `T`; only the type is
// kept, matching the function-pointer surface.
func (p *parser) typeFunctionArgument(pt point) (ast.Type, point, bool) {
	if _, npt, ok := p.ident(pt); ok {
		if _, npt, ok := p.expect(npt, lexer.Colon); ok {
			return p.typ(npt)
		}
	}
	return p.typ(pt)
}

func (p *parser) typeHigherRanked(pt point) (*ast.TypeHigherRanked, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.For)
	if !ok {
		return nil, spt, false
	}
	lifetimes, pt, ok := p.higherRankedLifetimes(pt)
	if !ok {
		return nil, spt, false
	}
	inner, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeHigherRanked{
		Extent:    p.spanFrom(spt, pt),
		Lifetimes: lifetimes,
		Inner:     &inner,
	}, pt, true
}

func (p *parser) typeImplTrait(pt point) (*ast.TypeImplTrait, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Impl)
	if !ok {
		return nil, spt, false
	}
	inner, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeImplTrait{
		Extent: p.spanFrom(spt, pt),
		Inner:  &inner,
	}, pt, true
}

// typeDisambiguation parses <From as To>::Path and the bare <From>::Path
// form.
func (p *parser) typeDisambiguation(pt point) (*ast.TypeDisambiguation, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LessThan)
	if !ok {
		return nil, spt, false
	}
	from, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}

	var to *ast.TypeNamed
	if _, npt, ok := p.expect(pt, lexer.As); ok {
		named, npt, ok := p.typeNamed(npt)
		if !ok {
			return nil, spt, false
		}
		to = named
		pt = npt
	}

	_, pt, ok = p.expect(pt, lexer.GreaterThan)
	if !ok {
		return nil, spt, false
	}

	var components []ast.TypeComponent
	for {
		_, npt, ok := p.expect(pt, lexer.DoubleColon)
		if !ok {
			break
		}
		c, npt, ok := p.typeComponent(npt)
		if !ok {
			break
		}
		components = append(components, c)
		pt = npt
	}

	return &ast.TypeDisambiguation{
		Extent:     p.spanFrom(spt, pt),
		From:       &from,
		To:         to,
		Components: components,
	}, pt, true
}

func (p *parser) typeNamedKind(pt point) (*ast.TypeNamed, point, bool) {
	return p.typeNamed(pt)
}

// typeNamed parses a path type; each component may carry angle-bracketed or
// function-sugared generic arguments.
func (p *parser) typeNamed(pt point) (*ast.TypeNamed, point, bool) {
	spt := pt

	_, global, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.DoubleColon)
	})

	first, pt, ok := p.typeComponent(pt)
	if !ok {
		return nil, spt, false
	}
	components := []ast.TypeComponent{first}

	for {
		_, npt, ok := p.expect(pt, lexer.DoubleColon)
		if !ok {
			break
		}
		c, npt, ok := p.typeComponent(npt)
		if !ok {
			break
		}
		components = append(components, c)
		pt = npt
	}

	return &ast.TypeNamed{
		Extent:     p.spanFrom(spt, pt),
		Global:     global,
		Components: components,
	}, pt, true
}

func (p *parser) typeComponent(pt point) (ast.TypeComponent, point, bool) {
	spt := pt
	id, pt, ok := p.pathIdent(pt)
	if !ok {
		return ast.TypeComponent{}, spt, false
	}

	var generics ast.TypeGenerics
	if g, npt, ok := p.typeGenericsFunction(pt); ok {
		generics = g
		pt = npt
	} else if g, npt, ok := p.typeGenericsAngle(pt); ok {
		generics = g
		pt = npt
	}

	return ast.TypeComponent{
		Extent:   p.spanFrom(spt, pt),
		Ident:    id,
		Generics: generics,
	}, pt, true
}

// typeGenericsFunction parses the (T, U) -> R sugar.
func (p *parser) typeGenericsFunction(pt point) (*ast.TypeGenericsFunction, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftParen)
	if !ok {
		return nil, spt, false
	}
	args, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.typ)
	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return nil, spt, false
	}

	var ret *ast.Type
	if _, npt, ok := p.expect(pt, lexer.ThinArrow); ok {
		r, npt, ok := p.typ(npt)
		if !ok {
			return nil, spt, false
		}
		ret = &r
		pt = npt
	}

	return &ast.TypeGenericsFunction{
		Extent:    p.spanFrom(spt, pt),
		Arguments: args.Values,
		Return:    ret,
	}, pt, true
}

// typeGenericsAngle parses <'a, T, Name = T>. The closing angle may have
// been lexed into >>, >=, or >>=; expect splits it.
func (p *parser) typeGenericsAngle(pt point) (*ast.TypeGenericsAngle, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LessThan)
	if !ok {
		return nil, spt, false
	}

	lifetimes, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.lifetime)
	bindingsAndTypes, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.typeGenericsAngleMember)

	_, pt, ok = p.expect(pt, lexer.GreaterThan)
	if !ok {
		return nil, spt, false
	}

	g := &ast.TypeGenericsAngle{
		Extent:    p.spanFrom(spt, pt),
		Lifetimes: lifetimes.Values,
	}
	for _, m := range bindingsAndTypes.Values {
		if m.binding != nil {
			g.Bindings = append(g.Bindings, *m.binding)
		} else {
			g.Types = append(g.Types, m.typ)
		}
	}
	return g, pt, true
}

// angleMember is a type argument or an associated-type binding inside <>.
type angleMember struct {
	typ     ast.Type
	binding *ast.TypeBinding
}

func (p *parser) typeGenericsAngleMember(pt point) (angleMember, point, bool) {
	if b, npt, ok := p.typeBinding(pt); ok {
		return angleMember{binding: b}, npt, true
	}
	t, npt, ok := p.typ(pt)
	if !ok {
		return angleMember{}, pt, false
	}
	return angleMember{typ: t}, npt, true
}

func (p *parser) typeBinding(pt point) (*ast.TypeBinding, point, bool) {
	spt := pt
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Equals)
	if !ok {
		return nil, spt, false
	}
	t, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeBinding{
		Extent: p.spanFrom(spt, pt),
		Name:   name,
		Type:   t,
	}, pt, true
}
