package parser

import (
	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// asItem adapts a concrete item rule to the Item interface.
func asItem[T ast.Item](r rule[T]) rule[ast.Item] {
	return func(pt point) (ast.Item, point, bool) {
		v, npt, ok := r(pt)
		if !ok {
			return nil, pt, false
		}
		return v, npt, true
	}
}

// attributedItem parses outer attributes followed by an item.
func (p *parser) attributedItem(pt point) (ast.Attributed[ast.Item], point, bool) {
	return attributed(p, pt, p.item)
}

// item parses any item form.
func (p *parser) item(pt point) (ast.Item, point, bool) {
	p.trace("item", pt)
	v, npt, ok := alternate[ast.Item](pt,
		asItem(p.innerAttributeItem),
		asItem(p.useItem),
		asItem(p.externCrate),
		asItem(p.function),
		asItem(p.externBlock),
		asItem(p.constItem),
		asItem(p.staticItem),
		asItem(p.enumItem),
		asItem(p.structItem),
		asItem(p.unionItem),
		asItem(p.traitItem),
		asItem(p.implItem),
		asItem(p.typeAlias),
		asItem(p.module),
		asItem(p.macroCallItem),
	)
	if !ok {
		p.fail(pt, ExpectedItem)
		return nil, pt, false
	}
	return v, npt, true
}

// innerAttributeItem parses a containing #![...] attribute.
func (p *parser) innerAttributeItem(pt point) (*ast.InnerAttribute, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Hash)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Bang)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.LeftSquare)
	if !ok {
		return nil, spt, false
	}
	text, pt, ok := p.parseNestedUntil(pt, lexer.LeftSquare, lexer.RightSquare)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.RightSquare)
	if !ok {
		return nil, spt, false
	}
	return &ast.InnerAttribute{Extent: p.spanFrom(spt, pt), Text: text}, pt, true
}

func (p *parser) useItem(pt point) (*ast.UseItem, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Use)
	if !ok {
		return nil, spt, false
	}
	path, pt, ok := p.usePath(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Semicolon)
	if !ok {
		return nil, spt, false
	}
	return &ast.UseItem{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Path:       path,
	}, pt, true
}

// usePath parses the path of a use declaration: segments ending in a plain
// name (optionally renamed), a glob, or a braced group.
func (p *parser) usePath(pt point) (ast.UsePath, point, bool) {
	spt := pt

	_, global, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.DoubleColon)
	})

	var segments []ast.Ident
	for {
		if tail, npt, ok := p.useTailEnd(pt); ok {
			return ast.UsePath{
				Extent:   p.spanFrom(spt, npt),
				Global:   global,
				Segments: segments,
				Tail:     tail,
			}, npt, true
		}

		id, npt, ok := p.pathIdent(pt)
		if !ok {
			return ast.UsePath{}, spt, false
		}

		if _, cpt, ok := p.expect(npt, lexer.DoubleColon); ok {
			segments = append(segments, id)
			pt = cpt
			continue
		}

		// Terminal segment, optionally renamed.
		var rename *ast.Ident
		if _, rpt, ok := p.expect(npt, lexer.As); ok {
			r, rpt, ok := p.ident(rpt)
			if !ok {
				return ast.UsePath{}, spt, false
			}
			rename = &r
			npt = rpt
		}
		tail := &ast.UseTailIdent{
			Extent: source.NewExtent(id.Extent.Start, p.spanFrom(pt, npt).End),
			Name:   id,
			Rename: rename,
		}
		return ast.UsePath{
			Extent:   p.spanFrom(spt, npt),
			Global:   global,
			Segments: segments,
			Tail:     tail,
		}, npt, true
	}
}

// useTailEnd parses the glob and braced-group tails.
func (p *parser) useTailEnd(pt point) (ast.UseTail, point, bool) {
	spt := pt
	switch p.at(pt).Type {
	case lexer.Asterisk:
		tok, npt, _ := p.expect(pt, lexer.Asterisk)
		return &ast.UseTailGlob{Extent: tok.Extent}, npt, true

	case lexer.LeftCurly:
		_, pt, _ := p.expect(pt, lexer.LeftCurly)
		names, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, func(pt point) (ast.UsePath, point, bool) {
			return p.usePath(pt)
		})
		_, pt, ok := p.expect(pt, lexer.RightCurly)
		if !ok {
			return nil, spt, false
		}
		return &ast.UseTailMulti{
			Extent: p.spanFrom(spt, pt),
			Names:  names.Values,
		}, pt, true
	}
	return nil, spt, false
}

func (p *parser) externCrate(pt point) (*ast.ExternCrate, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Extern)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Crate)
	if !ok {
		return nil, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}

	var rename *ast.Ident
	if _, npt, ok := p.expect(pt, lexer.As); ok {
		r, npt, ok := p.ident(npt)
		if !ok {
			return nil, spt, false
		}
		rename = &r
		pt = npt
	}

	_, pt, ok = p.expect(pt, lexer.Semicolon)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExternCrate{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Rename:     rename,
	}, pt, true
}

func (p *parser) externBlock(pt point) (*ast.ExternBlock, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Extern)
	if !ok {
		return nil, spt, false
	}

	var abi *source.Extent
	if ext, npt, ok := p.stringLiteralExtent(pt); ok {
		abi = &ext
		pt = npt
	}

	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}
	members, pt := zeroOrMore(pt, func(pt point) (ast.Attributed[ast.ExternBlockMember], point, bool) {
		return attributed(p, pt, p.externBlockMember)
	})
	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExternBlock{
		Extent:  p.spanFrom(spt, pt),
		Abi:     abi,
		Members: members,
	}, pt, true
}

func (p *parser) externBlockMember(pt point) (ast.ExternBlockMember, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	switch p.at(pt).Type {
	case lexer.Static:
		_, pt, _ := p.expect(pt, lexer.Static)
		_, mutable, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
			return p.expect(pt, lexer.Mut)
		})
		name, pt, ok := p.ident(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Colon)
		if !ok {
			return nil, spt, false
		}
		typ, pt, ok := p.typ(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		return &ast.ExternBlockStatic{
			Extent:     p.spanFrom(spt, pt),
			Visibility: vis,
			Mutable:    mutable,
			Name:       name,
			Type:       typ,
		}, pt, true

	case lexer.Fn:
		header, pt, ok := p.functionHeaderAfterVisibility(spt, vis, pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		return &ast.ExternBlockFunction{
			Extent:     p.spanFrom(spt, pt),
			Visibility: vis,
			Header:     header,
		}, pt, true
	}

	p.fail(pt, ExpectedToken(lexer.Static))
	p.fail(pt, ExpectedToken(lexer.Fn))
	return nil, spt, false
}

// constItem parses const NAME: Type = value;. A const fn is a function and
// is handled there.
func (p *parser) constItem(pt point) (*ast.Const, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Const)
	if !ok {
		return nil, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Colon)
	if !ok {
		return nil, spt, false
	}
	typ, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Equals)
	if !ok {
		return nil, spt, false
	}
	value, pt, ok := p.expression(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Semicolon)
	if !ok {
		return nil, spt, false
	}
	return &ast.Const{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Type:       typ,
		Value:      value,
	}, pt, true
}

func (p *parser) staticItem(pt point) (*ast.StaticItem, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Static)
	if !ok {
		return nil, spt, false
	}
	_, mutable, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Mut)
	})
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Colon)
	if !ok {
		return nil, spt, false
	}
	typ, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Equals)
	if !ok {
		return nil, spt, false
	}
	value, pt, ok := p.expression(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Semicolon)
	if !ok {
		return nil, spt, false
	}
	return &ast.StaticItem{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Mutable:    mutable,
		Name:       name,
		Type:       typ,
		Value:      value,
	}, pt, true
}

func (p *parser) enumItem(pt point) (*ast.EnumItem, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Enum)
	if !ok {
		return nil, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	generics, pt := optionalPtrDeref(pt, p.genericDeclarations)
	wheres, pt := p.whereClauses(pt)

	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}
	variants, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, func(pt point) (ast.Attributed[*ast.EnumVariant], point, bool) {
		return attributed(p, pt, p.enumVariant)
	})
	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return &ast.EnumItem{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Generics:   generics,
		Wheres:     wheres,
		Variants:   variants.Values,
	}, pt, true
}

func (p *parser) enumVariant(pt point) (*ast.EnumVariant, point, bool) {
	spt := pt
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}

	var body ast.EnumVariantBody
	switch p.at(pt).Type {
	case lexer.LeftParen:
		bpt := pt
		_, npt, _ := p.expect(pt, lexer.LeftParen)
		types, npt := zeroOrMoreTailedValues(p, npt, lexer.Comma, func(pt point) (ast.Attributed[ast.Type], point, bool) {
			return attributed(p, pt, p.typ)
		})
		_, npt, ok := p.expect(npt, lexer.RightParen)
		if !ok {
			return nil, spt, false
		}
		body = &ast.EnumVariantTuple{
			Extent: p.spanFrom(bpt, npt),
			Types:  types.Values,
		}
		pt = npt

	case lexer.LeftCurly:
		fields, npt, ok := p.structFields(pt)
		if !ok {
			return nil, spt, false
		}
		body = &ast.EnumVariantStruct{
			Extent: p.spanFrom(pt, npt),
			Fields: fields,
		}
		pt = npt

	case lexer.Equals:
		bpt := pt
		_, npt, _ := p.expect(pt, lexer.Equals)
		value, npt, ok := p.expression(npt)
		if !ok {
			return nil, spt, false
		}
		body = &ast.EnumVariantDiscriminant{
			Extent: p.spanFrom(bpt, npt),
			Value:  value,
		}
		pt = npt
	}

	return &ast.EnumVariant{
		Extent: p.spanFrom(spt, pt),
		Name:   name,
		Body:   body,
	}, pt, true
}

// structFields parses a braced named-field list.
func (p *parser) structFields(pt point) ([]ast.Attributed[*ast.StructField], point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}
	fields, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, func(pt point) (ast.Attributed[*ast.StructField], point, bool) {
		return attributed(p, pt, p.structField)
	})
	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return fields.Values, pt, true
}

func (p *parser) structField(pt point) (*ast.StructField, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Colon)
	if !ok {
		return nil, spt, false
	}
	typ, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.StructField{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Type:       typ,
	}, pt, true
}

func (p *parser) structItem(pt point) (*ast.StructItem, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Struct)
	if !ok {
		return nil, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	generics, pt := optionalPtrDeref(pt, p.genericDeclarations)

	// Tuple struct: the where clause follows the parens, then a semicolon.
	if p.peekIs(pt, lexer.LeftParen) {
		bpt := pt
		_, npt, _ := p.expect(pt, lexer.LeftParen)
		types, npt := zeroOrMoreTailedValues(p, npt, lexer.Comma, func(pt point) (ast.Attributed[ast.Type], point, bool) {
			return attributed(p, pt, p.tupleStructMember)
		})
		_, npt, ok := p.expect(npt, lexer.RightParen)
		if !ok {
			return nil, spt, false
		}
		tuple := &ast.StructBodyTuple{
			Extent: p.spanFrom(bpt, npt),
			Types:  types.Values,
		}
		wheres, npt := p.whereClauses(npt)
		_, npt, ok = p.expect(npt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		return &ast.StructItem{
			Extent:     p.spanFrom(spt, npt),
			Visibility: vis,
			Name:       name,
			Generics:   generics,
			Wheres:     wheres,
			Body:       tuple,
		}, npt, true
	}

	wheres, pt := p.whereClauses(pt)

	if p.peekIs(pt, lexer.LeftCurly) {
		bpt := pt
		fields, npt, ok := p.structFields(pt)
		if !ok {
			return nil, spt, false
		}
		return &ast.StructItem{
			Extent:     p.spanFrom(spt, npt),
			Visibility: vis,
			Name:       name,
			Generics:   generics,
			Wheres:     wheres,
			Body: &ast.StructBodyBraced{
				Extent: p.spanFrom(bpt, npt),
				Fields: fields,
			},
		}, npt, true
	}

	tok, pt, ok := p.expect(pt, lexer.Semicolon)
	if !ok {
		return nil, spt, false
	}
	return &ast.StructItem{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Generics:   generics,
		Wheres:     wheres,
		Body:       &ast.StructBodyUnit{Extent: tok.Extent},
	}, pt, true
}

// tupleStructMember is a tuple-struct field: optional visibility then a
// type.
func (p *parser) tupleStructMember(pt point) (ast.Type, point, bool) {
	_, pt = optionalPtr(pt, p.visibility)
	return p.typ(pt)
}

func (p *parser) unionItem(pt point) (*ast.UnionItem, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	// union is contextual: an identifier spelled "union" introduces the
	// item only here, everywhere else it stays an ordinary identifier.
	tok := p.at(pt)
	if tok.Type != lexer.Ident || tok.Text(p.input) != "union" {
		p.fail(pt, ExpectedIdent)
		return nil, spt, false
	}
	pt = point{idx: pt.idx + 1}

	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	generics, pt := optionalPtrDeref(pt, p.genericDeclarations)
	wheres, pt := p.whereClauses(pt)

	fields, pt, ok := p.structFields(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.UnionItem{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Generics:   generics,
		Wheres:     wheres,
		Fields:     fields,
	}, pt, true
}

func (p *parser) traitItem(pt point) (*ast.TraitItem, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, unsafe, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Unsafe)
	})
	_, pt, ok := p.expect(pt, lexer.Trait)
	if !ok {
		return nil, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	generics, pt := optionalPtrDeref(pt, p.genericDeclarations)

	var bounds []ast.TypeAdditional
	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		b, npt, ok := p.traitBounds(npt)
		if !ok {
			return nil, spt, false
		}
		bounds = b
		pt = npt
	}

	wheres, pt := p.whereClauses(pt)

	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}
	members, pt := zeroOrMore(pt, func(pt point) (ast.Attributed[ast.TraitMember], point, bool) {
		return attributed(p, pt, p.traitMember)
	})
	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return &ast.TraitItem{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Unsafe:     unsafe,
		Name:       name,
		Generics:   generics,
		Bounds:     bounds,
		Wheres:     wheres,
		Members:    members,
	}, pt, true
}

func (p *parser) traitMember(pt point) (ast.TraitMember, point, bool) {
	spt := pt

	switch p.at(pt).Type {
	case lexer.Type:
		_, pt, _ := p.expect(pt, lexer.Type)
		name, pt, ok := p.ident(pt)
		if !ok {
			return nil, spt, false
		}

		var bounds []ast.TypeAdditional
		if _, npt, ok := p.expect(pt, lexer.Colon); ok {
			b, npt, ok := p.traitBounds(npt)
			if !ok {
				return nil, spt, false
			}
			bounds = b
			pt = npt
		}

		var def *ast.Type
		if _, npt, ok := p.expect(pt, lexer.Equals); ok {
			t, npt, ok := p.typ(npt)
			if !ok {
				return nil, spt, false
			}
			def = &t
			pt = npt
		}

		_, pt, ok = p.expect(pt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		return &ast.TraitMemberType{
			Extent:  p.spanFrom(spt, pt),
			Name:    name,
			Bounds:  bounds,
			Default: def,
		}, pt, true

	case lexer.Const:
		// const fn in a trait is a function member.
		if p.at(point{idx: pt.idx + 1}).Type == lexer.Fn {
			break
		}
		_, pt, _ := p.expect(pt, lexer.Const)
		name, pt, ok := p.ident(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Colon)
		if !ok {
			return nil, spt, false
		}
		typ, pt, ok := p.typ(pt)
		if !ok {
			return nil, spt, false
		}

		var value ast.Expression
		if _, npt, ok := p.expect(pt, lexer.Equals); ok {
			v, npt, ok := p.expression(npt)
			if !ok {
				return nil, spt, false
			}
			value = v
			pt = npt
		}

		_, pt, ok = p.expect(pt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		return &ast.TraitMemberConst{
			Extent: p.spanFrom(spt, pt),
			Name:   name,
			Type:   typ,
			Value:  value,
		}, pt, true
	}

	if call, npt, ok := p.macroCallMember(pt); ok {
		return &ast.TraitMemberMacroCall{Extent: call.Extent, Call: call}, npt, true
	}

	header, pt, ok := p.functionHeader(pt)
	if !ok {
		return nil, spt, false
	}
	if _, npt, ok := p.expect(pt, lexer.Semicolon); ok {
		return &ast.TraitMemberFunction{
			Extent: p.spanFrom(spt, npt),
			Header: header,
		}, npt, true
	}
	body, pt, ok := p.block(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.TraitMemberFunction{
		Extent: p.spanFrom(spt, pt),
		Header: header,
		Body:   body,
	}, pt, true
}

func (p *parser) implItem(pt point) (*ast.Impl, point, bool) {
	spt := pt

	_, unsafe, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Unsafe)
	})
	_, pt, ok := p.expect(pt, lexer.Impl)
	if !ok {
		return nil, spt, false
	}
	generics, pt := optionalPtrDeref(pt, p.genericDeclarations)

	tpt := pt
	_, negative, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Bang)
	})
	first, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}

	var ofTrait *ast.ImplOfTrait
	selfType := first
	if _, npt, ok := p.expect(pt, lexer.For); ok {
		ofTrait = &ast.ImplOfTrait{
			Extent:   p.spanFrom(tpt, pt),
			Negative: negative,
			Trait:    first,
		}
		selfType, npt, ok = p.typ(npt)
		if !ok {
			return nil, spt, false
		}
		pt = npt
	} else if negative {
		return nil, spt, false
	}

	wheres, pt := p.whereClauses(pt)

	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}
	members, pt := zeroOrMore(pt, func(pt point) (ast.Attributed[ast.ImplMember], point, bool) {
		return attributed(p, pt, p.implMember)
	})
	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return &ast.Impl{
		Extent:   p.spanFrom(spt, pt),
		Unsafe:   unsafe,
		Generics: generics,
		OfTrait:  ofTrait,
		Type:     selfType,
		Wheres:   wheres,
		Members:  members,
	}, pt, true
}

func (p *parser) implMember(pt point) (ast.ImplMember, point, bool) {
	spt := pt

	if call, npt, ok := p.macroCallMember(pt); ok {
		return &ast.ImplMemberMacroCall{Extent: call.Extent, Call: call}, npt, true
	}

	vis, pt := optionalPtr(pt, p.visibility)

	_, deflt, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Default)
	})

	switch p.at(pt).Type {
	case lexer.Type:
		_, pt, _ := p.expect(pt, lexer.Type)
		name, pt, ok := p.ident(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Equals)
		if !ok {
			return nil, spt, false
		}
		typ, pt, ok := p.typ(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		return &ast.ImplMemberType{
			Extent: p.spanFrom(spt, pt),
			Name:   name,
			Type:   typ,
		}, pt, true

	case lexer.Const:
		if p.at(point{idx: pt.idx + 1}).Type == lexer.Fn {
			break
		}
		_, pt, _ := p.expect(pt, lexer.Const)
		name, pt, ok := p.ident(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Colon)
		if !ok {
			return nil, spt, false
		}
		typ, pt, ok := p.typ(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Equals)
		if !ok {
			return nil, spt, false
		}
		value, pt, ok := p.expression(pt)
		if !ok {
			return nil, spt, false
		}
		_, pt, ok = p.expect(pt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		return &ast.ImplMemberConst{
			Extent:     p.spanFrom(spt, pt),
			Visibility: vis,
			Name:       name,
			Type:       typ,
			Value:      value,
		}, pt, true
	}

	fn, pt, ok := p.functionAfterVisibility(spt, vis, pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ImplMemberFunction{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Default:    deflt,
		Function:   fn,
	}, pt, true
}

// macroCallMember parses a macro invocation in member position, with the
// trailing semicolon required for the paren and square forms.
func (p *parser) macroCallMember(pt point) (*ast.MacroCall, point, bool) {
	spt := pt
	call, pt, ok := p.macroCall(pt)
	if !ok {
		return nil, spt, false
	}
	if call.Brace != ast.MacroCurly {
		_, npt, ok := p.expect(pt, lexer.Semicolon)
		if !ok {
			return nil, spt, false
		}
		pt = npt
	}
	call.Extent = p.spanFrom(spt, pt)
	return call, pt, true
}

// function parses a free function definition.
func (p *parser) function(pt point) (*ast.Function, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)
	return p.functionAfterVisibility(spt, vis, pt)
}

func (p *parser) functionAfterVisibility(spt point, vis *ast.Visibility, pt point) (*ast.Function, point, bool) {
	header, pt, ok := p.functionHeaderAfterVisibility(spt, vis, pt)
	if !ok {
		return nil, spt, false
	}
	body, pt, ok := p.block(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.Function{
		Extent: p.spanFrom(spt, pt),
		Header: header,
		Body:   body,
	}, pt, true
}

// functionHeader parses everything of a function before its body.
func (p *parser) functionHeader(pt point) (ast.FunctionHeader, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)
	return p.functionHeaderAfterVisibility(spt, vis, pt)
}

func (p *parser) functionHeaderAfterVisibility(spt point, vis *ast.Visibility, pt point) (ast.FunctionHeader, point, bool) {
	qualifiers, pt, ok := p.functionQualifiers(pt)
	if !ok {
		return ast.FunctionHeader{}, spt, false
	}

	_, pt, ok = p.expect(pt, lexer.Fn)
	if !ok {
		return ast.FunctionHeader{}, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return ast.FunctionHeader{}, spt, false
	}
	generics, pt := optionalPtrDeref(pt, p.genericDeclarations)

	_, pt, ok = p.expect(pt, lexer.LeftParen)
	if !ok {
		return ast.FunctionHeader{}, spt, false
	}
	args, pt, ok := p.functionArguments(pt)
	if !ok {
		return ast.FunctionHeader{}, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return ast.FunctionHeader{}, spt, false
	}

	var ret *ast.Type
	if _, npt, ok := p.expect(pt, lexer.ThinArrow); ok {
		t, npt, ok := p.typ(npt)
		if !ok {
			return ast.FunctionHeader{}, spt, false
		}
		ret = &t
		pt = npt
	}

	wheres, pt := p.whereClauses(pt)

	return ast.FunctionHeader{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Qualifiers: qualifiers,
		Name:       name,
		Generics:   generics,
		Arguments:  args,
		ReturnType: ret,
		Wheres:     wheres,
	}, pt, true
}

func (p *parser) functionQualifiers(pt point) (ast.FunctionQualifiers, point, bool) {
	spt := pt
	q := ast.FunctionQualifiers{}

	if _, npt, ok := p.expect(pt, lexer.Const); ok {
		q.Const = true
		pt = npt
	}
	if _, npt, ok := p.expect(pt, lexer.Unsafe); ok {
		q.Unsafe = true
		pt = npt
	}
	if _, npt, ok := p.expect(pt, lexer.Extern); ok {
		q.Extern = true
		pt = npt
		if ext, npt, ok := p.stringLiteralExtent(pt); ok {
			q.Abi = &ext
			pt = npt
		}
	}

	q.Extent = p.spanFrom(spt, pt)
	return q, pt, true
}

// functionArguments parses an optional self receiver followed by named
// arguments.
func (p *parser) functionArguments(pt point) ([]ast.Argument, point, bool) {
	var args []ast.Argument

	if self, npt, ok := p.selfArgument(pt); ok {
		args = append(args, self)
		pt = npt
		if _, npt, ok := p.expect(pt, lexer.Comma); ok {
			pt = npt
		} else {
			return args, pt, true
		}
	}

	named, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.namedArgument)
	for _, a := range named.Values {
		args = append(args, a)
	}
	return args, pt, true
}

// selfArgument parses self, mut self, &self, &'a mut self, and self: Type.
func (p *parser) selfArgument(pt point) (*ast.SelfArgument, point, bool) {
	spt := pt

	if _, npt, ok := p.expect(pt, lexer.Ampersand); ok {
		lt, npt := optionalPtr(npt, p.lifetime)
		_, mutable, npt := optional(npt, func(pt point) (lexer.Token, point, bool) {
			return p.expect(pt, lexer.Mut)
		})
		_, npt, ok := p.expect(npt, lexer.SelfIdent)
		if !ok {
			return nil, spt, false
		}
		return &ast.SelfArgument{
			Extent:   p.spanFrom(spt, npt),
			Kind:     ast.SelfReference,
			Lifetime: lt,
			Mutable:  mutable,
		}, npt, true
	}

	_, mutable, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Mut)
	})
	_, pt, ok := p.expect(pt, lexer.SelfIdent)
	if !ok {
		return nil, spt, false
	}

	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		typ, npt, ok := p.typ(npt)
		if !ok {
			return nil, spt, false
		}
		return &ast.SelfArgument{
			Extent:  p.spanFrom(spt, npt),
			Kind:    ast.SelfTyped,
			Mutable: mutable,
			Type:    &typ,
		}, npt, true
	}

	return &ast.SelfArgument{
		Extent:  p.spanFrom(spt, pt),
		Kind:    ast.SelfValue,
		Mutable: mutable,
	}, pt, true
}

func (p *parser) namedArgument(pt point) (ast.Argument, point, bool) {
	spt := pt
	pat, pt, ok := p.pattern(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Colon)
	if !ok {
		return nil, spt, false
	}
	typ, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.NamedArgument{
		Extent: p.spanFrom(spt, pt),
		Name:   pat,
		Type:   typ,
	}, pt, true
}

func (p *parser) typeAlias(pt point) (*ast.TypeAliasItem, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Type)
	if !ok {
		return nil, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}
	generics, pt := optionalPtrDeref(pt, p.genericDeclarations)
	wheres, pt := p.whereClauses(pt)

	_, pt, ok = p.expect(pt, lexer.Equals)
	if !ok {
		return nil, spt, false
	}
	defn, pt, ok := p.typ(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Semicolon)
	if !ok {
		return nil, spt, false
	}
	return &ast.TypeAliasItem{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Generics:   generics,
		Wheres:     wheres,
		Defn:       defn,
	}, pt, true
}

func (p *parser) module(pt point) (*ast.Module, point, bool) {
	spt := pt
	vis, pt := optionalPtr(pt, p.visibility)

	_, pt, ok := p.expect(pt, lexer.Mod)
	if !ok {
		return nil, spt, false
	}
	name, pt, ok := p.ident(pt)
	if !ok {
		return nil, spt, false
	}

	if _, npt, ok := p.expect(pt, lexer.Semicolon); ok {
		return &ast.Module{
			Extent:     p.spanFrom(spt, npt),
			Visibility: vis,
			Name:       name,
		}, npt, true
	}

	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}
	var items []ast.Attributed[ast.Item]
	for !p.peekIs(pt, lexer.RightCurly) {
		item, npt, ok := p.attributedItem(pt)
		if !ok {
			return nil, spt, false
		}
		if !pt.before(npt) {
			return nil, spt, false
		}
		items = append(items, item)
		pt = npt
	}
	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return &ast.Module{
		Extent:     p.spanFrom(spt, pt),
		Visibility: vis,
		Name:       name,
		Items:      items,
		Inline:     true,
	}, pt, true
}

// macroCallItem parses a macro invocation in item position; paren and
// square bodies require a trailing semicolon, curly bodies do not.
func (p *parser) macroCallItem(pt point) (*ast.MacroCallItem, point, bool) {
	spt := pt
	call, pt, ok := p.macroCallMember(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.MacroCallItem{Extent: call.Extent, Call: call}, pt, true
}

// optionalPtrDeref is optional for rules that already return a pointer.
func optionalPtrDeref[T any](pt point, r rule[*T]) (*T, point) {
	if v, npt, ok := r(pt); ok {
		return v, npt
	}
	return nil, pt
}
