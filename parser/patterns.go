package parser

import (
	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
)

// pattern parses a pattern with an optional name @ binding.
func (p *parser) pattern(pt point) (ast.Pattern, point, bool) {
	p.trace("pattern", pt)
	spt := pt

	name, pt := optionalPtr(pt, p.patternName)
	kind, pt, ok := p.patternKind(pt)
	if !ok {
		p.fail(spt, ExpectedPattern)
		return ast.Pattern{}, spt, false
	}

	return ast.Pattern{
		Extent: p.spanFrom(spt, pt),
		Name:   name,
		Kind:   kind,
	}, pt, true
}

// patternName parses the [ref] [mut] name @ prefix.
func (p *parser) patternName(pt point) (ast.PatternName, point, bool) {
	spt := pt

	_, ref, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Ref)
	})
	_, mut, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Mut)
	})
	name, pt, ok := p.ident(pt)
	if !ok {
		return ast.PatternName{}, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.At)
	if !ok {
		return ast.PatternName{}, spt, false
	}
	return ast.PatternName{
		Extent: p.spanFrom(spt, pt),
		Ref:    ref,
		Mut:    mut,
		Name:   name,
	}, pt, true
}

// asPatternKind adapts a concrete kind rule to the PatternKind interface.
func asPatternKind[T ast.PatternKind](r rule[T]) rule[ast.PatternKind] {
	return func(pt point) (ast.PatternKind, point, bool) {
		v, npt, ok := r(pt)
		if !ok {
			return nil, pt, false
		}
		return v, npt, true
	}
}

func (p *parser) patternKind(pt point) (ast.PatternKind, point, bool) {
	return alternate[ast.PatternKind](pt,
		asPatternKind(p.patternRange),
		asPatternKind(p.patternBox),
		asPatternKind(p.patternReference),
		asPatternKind(p.patternSlice),
		asPatternKind(p.patternPlainTuple),
		asPatternKind(p.patternCharacter),
		asPatternKind(p.patternByte),
		asPatternKind(p.patternString),
		asPatternKind(p.patternByteString),
		asPatternKind(p.patternNumber),
		asPatternKind(p.patternMacroCall),
		asPatternKind(p.patternStruct),
		asPatternKind(p.patternTupleStruct),
		asPatternKind(p.patternIdent),
	)
}

// patternRange parses start..end, start..=end, and start...end over the
// literal-like endpoint components.
func (p *parser) patternRange(pt point) (ast.PatternKind, point, bool) {
	spt := pt
	start, pt, ok := p.patternRangeComponent(pt)
	if !ok {
		return nil, spt, false
	}

	inclusive := false
	switch p.at(pt).Type {
	case lexer.DoublePeriodEquals, lexer.TriplePeriod:
		inclusive = true
		pt = point{idx: pt.idx + 1}
	case lexer.DoublePeriod:
		pt = point{idx: pt.idx + 1}
	default:
		p.fail(pt, ExpectedToken(lexer.DoublePeriod))
		return nil, spt, false
	}

	end, pt, ok := p.patternRangeComponent(pt)
	if !ok {
		return nil, spt, false
	}

	if inclusive {
		return &ast.PatternRangeInclusive{
			Extent: p.spanFrom(spt, pt),
			Start:  start,
			End:    end,
		}, pt, true
	}
	return &ast.PatternRangeExclusive{
		Extent: p.spanFrom(spt, pt),
		Start:  start,
		End:    end,
	}, pt, true
}

// patternRangeComponent parses one endpoint: a path, character, byte, or
// number.
func (p *parser) patternRangeComponent(pt point) (ast.PatternRangeComponent, point, bool) {
	switch p.at(pt).Type {
	case lexer.Character:
		c, npt, _ := p.patternCharacter(pt)
		return c, npt, true
	case lexer.Byte:
		b, npt, _ := p.patternByte(pt)
		return b, npt, true
	case lexer.Number, lexer.Minus:
		n, npt, ok := p.patternNumber(pt)
		if !ok {
			return nil, pt, false
		}
		return n, npt, true
	}

	spt := pt
	path, pt, ok := p.path(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternIdent{Extent: path.Extent, Path: path}, pt, true
}

func (p *parser) patternBox(pt point) (*ast.PatternBox, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Box)
	if !ok {
		return nil, spt, false
	}
	inner, pt, ok := p.pattern(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternBox{Extent: p.spanFrom(spt, pt), Inner: &inner}, pt, true
}

// patternReference parses &[mut] pattern; && splits into nested references.
func (p *parser) patternReference(pt point) (*ast.PatternReference, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Ampersand)
	if !ok {
		return nil, spt, false
	}
	_, mutable, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Mut)
	})
	inner, pt, ok := p.pattern(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternReference{
		Extent:  p.spanFrom(spt, pt),
		Mutable: mutable,
		Inner:   &inner,
	}, pt, true
}

// patternMember parses a tuple or slice member: a nested pattern or the
// interior wildcard.
func (p *parser) patternMember(pt point) (ast.PatternMember, point, bool) {
	if tok, npt, ok := p.expect(pt, lexer.DoublePeriod); ok {
		return &ast.PatternMemberWildcard{Extent: tok.Extent}, npt, true
	}
	pat, npt, ok := p.pattern(pt)
	if !ok {
		return nil, pt, false
	}
	return ast.PatternMemberPattern{Pattern: pat}, npt, true
}

func (p *parser) patternSlice(pt point) (*ast.PatternSlice, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftSquare)
	if !ok {
		return nil, spt, false
	}
	members, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.patternMember)
	_, pt, ok = p.expect(pt, lexer.RightSquare)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternSlice{
		Extent:  p.spanFrom(spt, pt),
		Members: members.Values,
	}, pt, true
}

// patternPlainTuple parses (a, b, ..) without a leading path.
func (p *parser) patternPlainTuple(pt point) (*ast.PatternTuple, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftParen)
	if !ok {
		return nil, spt, false
	}
	members, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.patternMember)
	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternTuple{
		Extent:  p.spanFrom(spt, pt),
		Members: members.Values,
	}, pt, true
}

// patternTupleStruct parses Path(a, b, ..).
func (p *parser) patternTupleStruct(pt point) (*ast.PatternTuple, point, bool) {
	spt := pt
	path, pt, ok := p.path(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.LeftParen)
	if !ok {
		return nil, spt, false
	}
	members, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.patternMember)
	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternTuple{
		Extent:  p.spanFrom(spt, pt),
		Path:    &path,
		Members: members.Values,
	}, pt, true
}

// patternStruct parses Path { fields [, ..] }.
func (p *parser) patternStruct(pt point) (*ast.PatternStruct, point, bool) {
	spt := pt
	path, pt, ok := p.path(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}

	fields, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.patternStructField)

	wildcard := false
	if _, npt, ok := p.expect(pt, lexer.DoublePeriod); ok {
		wildcard = true
		pt = npt
	}

	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternStruct{
		Extent:   p.spanFrom(spt, pt),
		Path:     path,
		Fields:   fields.Values,
		Wildcard: wildcard,
	}, pt, true
}

// patternStructField parses the long (name: pattern) and short (name)
// forms.
func (p *parser) patternStructField(pt point) (ast.PatternStructField, point, bool) {
	spt := pt
	name, pt, ok := p.ident(pt)
	if !ok {
		return ast.PatternStructField{}, spt, false
	}

	var pat *ast.Pattern
	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		inner, npt, ok := p.pattern(npt)
		if !ok {
			return ast.PatternStructField{}, spt, false
		}
		pat = &inner
		pt = npt
	}

	return ast.PatternStructField{
		Extent:  p.spanFrom(spt, pt),
		Name:    name,
		Pattern: pat,
	}, pt, true
}

func (p *parser) patternCharacter(pt point) (*ast.PatternCharacter, point, bool) {
	if tok := p.at(pt); tok.Type == lexer.Character {
		return &ast.PatternCharacter{Extent: tok.Extent}, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedToken(lexer.Character))
	return nil, pt, false
}

func (p *parser) patternByte(pt point) (*ast.PatternByte, point, bool) {
	if tok := p.at(pt); tok.Type == lexer.Byte {
		return &ast.PatternByte{Extent: tok.Extent}, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedToken(lexer.Byte))
	return nil, pt, false
}

func (p *parser) patternString(pt point) (*ast.PatternString, point, bool) {
	switch tok := p.at(pt); tok.Type {
	case lexer.String, lexer.StringRaw:
		return &ast.PatternString{Extent: tok.Extent}, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedToken(lexer.String))
	return nil, pt, false
}

func (p *parser) patternByteString(pt point) (*ast.PatternByteString, point, bool) {
	switch tok := p.at(pt); tok.Type {
	case lexer.ByteString, lexer.ByteStringRaw:
		return &ast.PatternByteString{Extent: tok.Extent}, point{idx: pt.idx + 1}, true
	}
	p.fail(pt, ExpectedToken(lexer.ByteString))
	return nil, pt, false
}

// patternNumber parses a numeric literal pattern with an optional leading
// minus.
func (p *parser) patternNumber(pt point) (*ast.PatternNumber, point, bool) {
	spt := pt
	_, negated, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Minus)
	})

	tok := p.at(pt)
	if tok.Type != lexer.Number {
		p.fail(pt, ExpectedNumber)
		return nil, spt, false
	}
	pt = point{idx: pt.idx + 1}
	return &ast.PatternNumber{
		Extent:  p.spanFrom(spt, pt),
		Negated: negated,
		Parts:   *tok.Number,
	}, pt, true
}

func (p *parser) patternMacroCall(pt point) (*ast.PatternMacroCall, point, bool) {
	spt := pt
	call, pt, ok := p.macroCall(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternMacroCall{Extent: call.Extent, Call: call}, pt, true
}

// patternIdent parses [ref] [mut] path, covering plain bindings, the _
// wildcard, and unit enum variants.
func (p *parser) patternIdent(pt point) (*ast.PatternIdent, point, bool) {
	spt := pt

	_, ref, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Ref)
	})
	_, mut, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Mut)
	})

	path, pt, ok := p.path(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.PatternIdent{
		Extent: p.spanFrom(spt, pt),
		Ref:    ref,
		Mut:    mut,
		Path:   path,
	}, pt, true
}
